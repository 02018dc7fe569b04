package middleware

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"dispatchapi/internal/utils"

	"github.com/gin-gonic/gin"
)

const enterpriseIDKey = "auth_enterprise_id"

// TokenLookup resolves a bearer token to its enterprise. Unknown tokens
// return sql.ErrNoRows.
type TokenLookup func(ctx context.Context, token string) (int64, error)

// Auth requires a public API bearer token and stores the owning enterprise
// in the context.
func Auth(lookup TokenLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "missing bearer token")
			return
		}

		enterpriseID, err := lookup(c.Request.Context(), token)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			abortAuth(c, http.StatusUnauthorized, "invalid token")
			return
		case err != nil:
			utils.LogError(GetRequestID(c), "auth", "token_lookup", err)
			abortAuth(c, http.StatusInternalServerError, "could not verify token")
			return
		}

		c.Set(enterpriseIDKey, enterpriseID)
		c.Next()
	}
}

// EnterpriseID returns the enterprise set by Auth.
func EnterpriseID(c *gin.Context) (int64, bool) {
	if c == nil {
		return 0, false
	}
	v, ok := c.Get(enterpriseIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortAuth(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_")),
		"message":    message,
		"request_id": GetRequestID(c),
	})
}
