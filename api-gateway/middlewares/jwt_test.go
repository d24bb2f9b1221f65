package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("gateway-test-secret")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return s
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTMiddleware(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString("userID"), "role": c.GetString("role")})
	})
	r.GET("/admin", JWTMiddleware(testSecret), AdminRoleMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func call(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTMiddleware_InjectsIdentity(t *testing.T) {
	r := setupRouter()
	token := signToken(t, jwt.MapClaims{
		"sub": "user-42", "role": "user", "typ": "access",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := call(r, "/me", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"user-42","role":"user"}`, w.Body.String())
}

func TestJWTMiddleware_Rejects(t *testing.T) {
	r := setupRouter()
	expired := signToken(t, jwt.MapClaims{"sub": "u", "typ": "access", "exp": time.Now().Add(-time.Minute).Unix()})
	refresh := signToken(t, jwt.MapClaims{"sub": "u", "typ": "refresh", "exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name string
		auth string
		msg  string
	}{
		{"missing", "", "Token is required"},
		{"not bearer", "Basic abc", "Invalid or expired token"},
		{"expired", "Bearer " + expired, "Invalid or expired token"},
		{"wrong type", "Bearer " + refresh, "Invalid or expired token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, "/me", tt.auth)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.msg)
		})
	}
}

func TestAdminRoleMiddleware(t *testing.T) {
	r := setupRouter()
	user := signToken(t, jwt.MapClaims{"sub": "u", "role": "user", "typ": "access", "exp": time.Now().Add(time.Hour).Unix()})
	admin := signToken(t, jwt.MapClaims{"sub": "a", "role": "admin", "typ": "access", "exp": time.Now().Add(time.Hour).Unix()})

	assert.Equal(t, http.StatusForbidden, call(r, "/admin", "Bearer "+user).Code)
	assert.Equal(t, http.StatusOK, call(r, "/admin", "Bearer "+admin).Code)
}
