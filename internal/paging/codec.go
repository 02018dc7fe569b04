// Package paging implements id-cursor pagination for the list endpoints.
//
// A list request carries an optional continuation token. The token is an
// HS256-signed JWT whose claims are a flat map of cursor keys to the last
// emitted primary key ("lastContactId": 42). Tokens that fail verification
// are treated as absent, so a client holding a stale or tampered token simply
// starts again from the first record.
package paging

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"dispatchapi/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// NoToken is the documented query default meaning "no cursor".
const NoToken = "null"

const developmentSecret = "pagination-development-secret"

// Codec signs and verifies continuation tokens with a process-wide secret.
type Codec struct {
	secret []byte
}

// NewCodec returns a codec for secret. An empty secret falls back to a fixed
// development value and logs a warning.
func NewCodec(secret string) *Codec {
	if strings.TrimSpace(secret) == "" {
		utils.Logger().Warn("pagination secret is empty, using development secret")
		secret = developmentSecret
	}
	return &Codec{secret: []byte(secret)}
}

// Encode signs state. The token carries no time based claims, so equal
// states always produce equal tokens.
func (c *Codec) Encode(state map[string]int64) (string, error) {
	claims := jwt.MapClaims{}
	for k, v := range state {
		claims[k] = v
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign pagination token: %w", err)
	}
	return token, nil
}

// Decode verifies token and returns its cursor state. It never fails: absent,
// malformed or forged tokens all decode to an empty state.
func (c *Codec) Decode(token string) map[string]int64 {
	state := map[string]int64{}

	token = strings.TrimSpace(token)
	if token == "" || token == NoToken {
		return state
	}

	parsed, err := jwt.Parse(token,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithJSONNumber(),
	)
	if err != nil || !parsed.Valid {
		utils.Logger().Warn("invalid pagination token, restarting from the first record", zap.Error(err))
		return state
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return state
	}
	for k, v := range claims {
		if n, ok := claimInt(v); ok {
			state[k] = n
		}
	}
	return state
}

func claimInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
