package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/avirtanen/noshcart-backend/internal/app/cart"
	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/internal/app/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// in-memory stand-in for the Redis-backed repository
type stubNotificationRepo struct {
	mu    sync.Mutex
	feeds map[string][]model.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{feeds: make(map[string][]model.Notification)}
}

func (r *stubNotificationRepo) Load(_ context.Context, sessionID string) ([]model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Notification(nil), r.feeds[sessionID]...), nil
}

func (r *stubNotificationRepo) Save(_ context.Context, sessionID string, notifications []model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feeds[sessionID] = append([]model.Notification(nil), notifications...)
	return nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.feeds, sessionID)
	return nil
}

func setupNotificationControllerTest(t *testing.T) (*NotificationController, service.NotificationService, *gin.Engine, *cart.Session) {
	notificationService := service.NewNotificationService(newStubNotificationRepo(), nil)
	controller := NewNotificationController(notificationService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	sess := cart.NewSession("notif-session")
	return controller, notificationService, router, sess
}

func TestNotificationController_List(t *testing.T) {
	controller, notificationService, router, sess := setupNotificationControllerTest(t)
	ctx := context.Background()

	first, err := notificationService.Add(ctx, sess.ID(), model.Notification{Title: "order placed"})
	require.NoError(t, err)
	_, err = notificationService.Add(ctx, sess.ID(), model.Notification{Title: "damage assessed"})
	require.NoError(t, err)
	require.NoError(t, notificationService.MarkRead(ctx, sess.ID(), first.ID))

	router.GET("/notifications", func(c *gin.Context) {
		setSessionInContext(c, sess)
		controller.List(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Notifications []model.Notification `json:"notifications"`
		UnreadCount   int                  `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Len(t, response.Notifications, 2)
	assert.Equal(t, "damage assessed", response.Notifications[0].Title)
	assert.Equal(t, 1, response.UnreadCount)
}

func TestNotificationController_MarkReadMissing(t *testing.T) {
	controller, _, router, sess := setupNotificationControllerTest(t)

	router.PUT("/notifications/:id/read", func(c *gin.Context) {
		setSessionInContext(c, sess)
		controller.MarkRead(c)
	})

	req := httptest.NewRequest(http.MethodPut, "/notifications/missing/read", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "NOTIFICATION_NOT_FOUND", response["error"])
}
