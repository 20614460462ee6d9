package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const notificationTTL = 7 * 24 * time.Hour

// NotificationRepository persists a session's notification feed as one
// JSON array value in Redis, mirroring how the storefront used to keep
// it in browser storage: the whole array is rewritten on every change
// and reloaded when the session returns.
type NotificationRepository interface {
	Load(ctx context.Context, sessionID string) ([]model.Notification, error)
	Save(ctx context.Context, sessionID string, notifications []model.Notification) error
	Delete(ctx context.Context, sessionID string) error
}

type notificationRepository struct {
	client *redis.Client
}

func NewNotificationRepository(client *redis.Client) NotificationRepository {
	return &notificationRepository{client: client}
}

func notificationKey(sessionID string) string {
	return fmt.Sprintf("notifications:%s", sessionID)
}

// Load returns the stored feed. A missing key or an unreadable value
// both yield an empty list; a corrupt feed is not worth failing over.
func (r *notificationRepository) Load(ctx context.Context, sessionID string) ([]model.Notification, error) {
	val, err := r.client.Get(ctx, notificationKey(sessionID)).Result()
	if err == redis.Nil {
		return []model.Notification{}, nil
	}
	if err != nil {
		logger.Warn("Failed to load notifications, starting empty", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return []model.Notification{}, nil
	}

	var notifications []model.Notification
	if err := json.Unmarshal([]byte(val), &notifications); err != nil {
		logger.Warn("Corrupt notification feed, starting empty", map[string]interface{}{
			"session_id": sessionID,
		})
		return []model.Notification{}, nil
	}
	return notifications, nil
}

func (r *notificationRepository) Save(ctx context.Context, sessionID string, notifications []model.Notification) error {
	data, err := json.Marshal(notifications)
	if err != nil {
		return fmt.Errorf("failed to marshal notifications: %w", err)
	}

	if err := r.client.Set(ctx, notificationKey(sessionID), data, notificationTTL).Err(); err != nil {
		logger.Error("Failed to save notifications", err, map[string]interface{}{
			"session_id": sessionID,
			"count":      len(notifications),
		})
		return err
	}
	return nil
}

func (r *notificationRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, notificationKey(sessionID)).Err()
}
