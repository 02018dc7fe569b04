package middleware

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(lookup TokenLookup) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
	secured := r.Group("/v1", Auth(lookup))
	secured.GET("/whoami", func(c *gin.Context) {
		id, ok := EnterpriseID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"enterprise": id})
	})
	return r
}

func staticLookup(tokens map[string]int64) TokenLookup {
	return func(_ context.Context, token string) (int64, error) {
		if id, ok := tokens[token]; ok {
			return id, nil
		}
		return 0, sql.ErrNoRows
	}
}

func TestRequestIDEchoesHeader(t *testing.T) {
	r := newEngine(staticLookup(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestAuth(t *testing.T) {
	r := newEngine(staticLookup(map[string]int64{"good": 7}))

	cases := []struct {
		header string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer ", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer good", http.StatusOK},
		{"bearer good", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.status, w.Code, "header %q", tc.header)
	}
}

func TestAuthSetsEnterprise(t *testing.T) {
	r := newEngine(staticLookup(map[string]int64{"good": 7}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"enterprise":7}`, w.Body.String())
}

func TestAuthLookupFailure(t *testing.T) {
	r := newEngine(func(context.Context, string) (int64, error) { return 0, errors.New("db down") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://console.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://console.example")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://console.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
