package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"github.com/google/uuid"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Pusher delivers a payload to a session's live websocket connections.
// The hub satisfies it; a nil pusher just skips live delivery.
type Pusher interface {
	SendToSession(sessionID string, payload []byte)
}

type NotificationService interface {
	List(ctx context.Context, sessionID string) ([]model.Notification, error)
	Add(ctx context.Context, sessionID string, n model.Notification) (model.Notification, error)
	MarkRead(ctx context.Context, sessionID, notificationID string) error
	MarkAllRead(ctx context.Context, sessionID string) error
	ClearAll(ctx context.Context, sessionID string) error
	UnreadCount(ctx context.Context, sessionID string) (int, error)
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher Pusher
}

func NewNotificationService(repo repository.NotificationRepository, pusher Pusher) NotificationService {
	return &notificationService{repo: repo, pusher: pusher}
}

func (s *notificationService) List(ctx context.Context, sessionID string) ([]model.Notification, error) {
	return s.repo.Load(ctx, sessionID)
}

// Add stamps the notification, prepends it to the feed (newest first),
// rewrites the stored array, and pushes it to any live connection.
func (s *notificationService) Add(ctx context.Context, sessionID string, n model.Notification) (model.Notification, error) {
	existing, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return model.Notification{}, err
	}

	n.ID = uuid.NewString()
	n.Timestamp = time.Now()
	n.Read = false

	feed := append([]model.Notification{n}, existing...)
	if err := s.repo.Save(ctx, sessionID, feed); err != nil {
		return model.Notification{}, err
	}

	logger.Info("Notification added", map[string]interface{}{
		"session_id": sessionID,
		"type":       n.Type,
	})

	if s.pusher != nil {
		if payload, err := json.Marshal(n); err == nil {
			s.pusher.SendToSession(sessionID, payload)
		}
	}

	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, sessionID, notificationID string) error {
	feed, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return err
	}

	found := false
	for i := range feed {
		if feed[i].ID == notificationID {
			feed[i].Read = true
			found = true
			break
		}
	}
	if !found {
		return ErrNotificationNotFound
	}

	return s.repo.Save(ctx, sessionID, feed)
}

func (s *notificationService) MarkAllRead(ctx context.Context, sessionID string) error {
	feed, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	for i := range feed {
		feed[i].Read = true
	}
	return s.repo.Save(ctx, sessionID, feed)
}

func (s *notificationService) ClearAll(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

func (s *notificationService) UnreadCount(ctx context.Context, sessionID string) (int, error) {
	feed, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range feed {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
