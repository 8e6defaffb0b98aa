package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"thooral.backend/pkg/jwt"
	"thooral.backend/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	os.Exit(m.Run())
}

func newGuardedRouter(svc *jwt.TokenService) *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		email, _ := GetUserEmail(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID.String(), "email": email})
	})
	return router
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	svc := jwt.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	router := newGuardedRouter(svc)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "missing bearer prefix", header: "Token abc123"},
		{name: "bare token", header: "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(AuthorizationHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Access denied. No token provided.")
		})
	}
}

func TestAuthMiddleware_RejectsBadTokens(t *testing.T) {
	svc := jwt.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	router := newGuardedRouter(svc)

	otherSvc := jwt.NewTokenService("other-secret", "refresh-secret", 15*time.Minute, time.Hour)
	wrongKey, err := otherSvc.GenerateAccessToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	expiredSvc := jwt.NewTokenService("access-secret", "refresh-secret", -time.Minute, time.Hour)
	expired, err := expiredSvc.GenerateAccessToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	refreshToken, err := svc.GenerateRefreshToken(uuid.New(), "user@example.com")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong signing key", token: wrongKey},
		{name: "expired", token: expired},
		{name: "refresh token on access route", token: refreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set(AuthorizationHeader, BearerPrefix+tt.token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid or expired token")
		})
	}
}

func TestAuthMiddleware_AttachesIdentity(t *testing.T) {
	svc := jwt.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	router := newGuardedRouter(svc)

	userID := uuid.New()
	token, err := svc.GenerateAccessToken(userID, "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "user@example.com")
}

func TestGetUserID_MissingFromContext(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)

	_, ok = GetUserEmail(c)
	assert.False(t, ok)
}
