package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/avirtanen/noshcart-backend/config"
	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	"github.com/avirtanen/noshcart-backend/internal/app/service"
	"github.com/avirtanen/noshcart-backend/internal/db"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBlacklist remembers every token handed to it
type recordingBlacklist struct {
	mu     sync.Mutex
	tokens []string
}

func (r *recordingBlacklist) BlacklistToken(_ context.Context, token string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, token)
	return nil
}

func (r *recordingBlacklist) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

func setupAuthControllerTest(t *testing.T) (*AuthController, *gin.Engine, *recordingBlacklist) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	jwtCfg := config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
	}

	blacklist := &recordingBlacklist{}
	authService := service.NewAuthService(repository.NewUserRepository(testDB), jwtCfg, blacklist)
	controller := NewAuthController(authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	return controller, router, blacklist
}

func registerTestUser(t *testing.T, controller *AuthController, router *gin.Engine) string {
	router.POST("/auth/register", controller.Register)

	reqBody := map[string]interface{}{
		"email":    "ada@example.com",
		"password": "correct horse",
		"name":     "Ada",
	}
	jsonBody, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBuffer(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.Tokens.AccessToken)
	return response.Tokens.AccessToken
}

func TestAuthController_Logout(t *testing.T) {
	controller, router, blacklist := setupAuthControllerTest(t)
	token := registerTestUser(t, controller, router)

	router.POST("/auth/logout", func(c *gin.Context) {
		c.Set(middleware.TokenKey, token)
		controller.Logout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, blacklist.count())
}

func TestAuthController_LogoutWithoutToken(t *testing.T) {
	controller, router, blacklist := setupAuthControllerTest(t)

	router.POST("/auth/logout", controller.Logout)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// logout never fails, even with nothing to revoke
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, blacklist.count())
}
