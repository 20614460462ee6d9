package model

import (
	"time"

	"github.com/avirtanen/noshcart-backend/pkg/vision"
)

type NotificationType string

const (
	NotificationDamageAssessment NotificationType = "damage_assessment"
	NotificationOrderPlaced      NotificationType = "order_placed"
	NotificationGeneral          NotificationType = "general"
)

// Notification is one entry in a session's notification feed. The feed
// lives in Redis as a single JSON array that is rewritten on every
// change and reloaded when the session comes back.
type Notification struct {
	ID         string                   `json:"id"`
	Type       NotificationType         `json:"type"`
	Title      string                   `json:"title"`
	Message    string                   `json:"message"`
	Assessment *vision.DamageAssessment `json:"assessment,omitempty"`
	Timestamp  time.Time                `json:"timestamp"`
	Read       bool                     `json:"read"`
}
