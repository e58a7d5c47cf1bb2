package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/arcanalabs/tarot-backend/pkg/config"
)

func authTestRouter(cfg *config.Config, requireAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(cfg, requireAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_RejectsMissingAndInvalidTokens(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret"}}
	r := authTestRouter(cfg, false)

	w := doGet(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doGet(r, "garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Token signed with a different secret.
	other := &config.Config{Auth: config.AuthConfig{JWTSecret: "other"}}
	token, err := GenerateToken(other, "u1", "u1@example.com", "", time.Hour)
	require.NoError(t, err)
	w = doGet(r, token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RejectsExpiredToken(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret"}}
	r := authTestRouter(cfg, false)

	token, err := GenerateToken(cfg, "u1", "u1@example.com", "", -time.Minute)
	require.NoError(t, err)
	w := doGet(r, token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_AttachesUserID(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret"}}
	r := authTestRouter(cfg, false)

	token, err := GenerateToken(cfg, "u1", "u1@example.com", "", time.Hour)
	require.NoError(t, err)
	w := doGet(r, token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "u1", w.Body.String())
}

func TestAuthMiddleware_AdminRole(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret"}}
	r := authTestRouter(cfg, true)

	user, err := GenerateToken(cfg, "u1", "u1@example.com", "", time.Hour)
	require.NoError(t, err)
	w := doGet(r, user)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	admin, err := GenerateToken(cfg, "a1", "admin@example.com", RoleAdmin, time.Hour)
	require.NoError(t, err)
	w = doGet(r, admin)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "a1", w.Body.String())
}

func TestParseToken_RoundTrip(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret"}}

	token, err := GenerateToken(cfg, "u1", "u1@example.com", RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "u1@example.com", claims.Email)
	require.Equal(t, RoleAdmin, claims.Role)
}
