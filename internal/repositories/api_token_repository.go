package repositories

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// APITokenRepository resolves public API bearer tokens. Tokens are stored as
// hex encoded SHA-256 digests, never in clear.
type APITokenRepository struct {
	DB *sql.DB
}

func (r APITokenRepository) db() *sql.DB { return dbOr(r.DB) }

// HashToken returns the stored form of a bearer token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// EnterpriseForToken returns the enterprise owning an active token.
// Unknown or inactive tokens yield sql.ErrNoRows.
func (r APITokenRepository) EnterpriseForToken(ctx context.Context, token string) (int64, error) {
	db := r.db()
	if db == nil {
		return 0, fmt.Errorf("database not connected")
	}
	var enterpriseID int64
	err := db.QueryRowContext(ctx, `
		SELECT enterprise_id FROM public_api_tokens
		WHERE token = ? AND active = 1
		LIMIT 1`, HashToken(token)).Scan(&enterpriseID)
	return enterpriseID, err
}
