package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/avirtanen/noshcart-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBlacklistChecker marks a fixed set of tokens as revoked
type fakeBlacklistChecker struct {
	revoked map[string]bool
	err     error
}

func (f *fakeBlacklistChecker) IsTokenBlacklisted(_ context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.revoked[token], nil
}

func signedTestToken(t *testing.T, secret string) string {
	pair, err := util.GenerateTokenPair(7, "ada@example.com", "user", secret, time.Hour, time.Hour)
	require.NoError(t, err)
	return pair.AccessToken
}

func setupAuthMiddlewareTest(checker *fakeBlacklistChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	m := NewAuthMiddleware("test-secret", checker)
	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		token, _ := GetToken(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "token": token})
	})
	router.GET("/optional", m.OptionalAuthenticate(), func(c *gin.Context) {
		_, authed := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": authed})
	})
	return router
}

func TestAuthenticateRejectsRevokedToken(t *testing.T) {
	token := signedTestToken(t, "test-secret")
	router := setupAuthMiddlewareTest(&fakeBlacklistChecker{revoked: map[string]bool{token: true}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AUTH_TOKEN_REVOKED", response["error"])
}

func TestAuthenticatePassesCleanToken(t *testing.T) {
	token := signedTestToken(t, "test-secret")
	router := setupAuthMiddlewareTest(&fakeBlacklistChecker{revoked: map[string]bool{}})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(7), response["user_id"])

	// the raw token lands in context so logout can revoke it
	assert.Equal(t, token, response["token"])
}

func TestAuthenticateToleratesBlacklistOutage(t *testing.T) {
	token := signedTestToken(t, "test-secret")
	router := setupAuthMiddlewareTest(&fakeBlacklistChecker{err: errors.New("redis down")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOptionalAuthenticateTreatsRevokedTokenAsGuest(t *testing.T) {
	token := signedTestToken(t, "test-secret")
	router := setupAuthMiddlewareTest(&fakeBlacklistChecker{revoked: map[string]bool{token: true}})

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["authenticated"])
}
