package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"github.com/avirtanen/noshcart-backend/pkg/vision"
	"github.com/google/uuid"
)

var ErrImageRequired = errors.New("complaint image is required")

// VisionClient is the slice of the damage-detection service the
// complaint flow needs. *vision.Client satisfies it.
type VisionClient interface {
	DetectDamage(ctx context.Context, imageBase64, comment string) (*vision.DamageAssessment, error)
}

// PhotoArchiver stores complaint photos for audit. *storage.S3Storage
// satisfies it.
type PhotoArchiver interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type ComplaintService interface {
	SubmitDamageComplaint(ctx context.Context, sessionID, imageBase64, comment string) (*vision.DamageAssessment, error)
}

type complaintService struct {
	vision        VisionClient
	archive       PhotoArchiver
	notifications NotificationService
}

func NewComplaintService(visionClient VisionClient, archive PhotoArchiver, notifications NotificationService) ComplaintService {
	return &complaintService{
		vision:        visionClient,
		archive:       archive,
		notifications: notifications,
	}
}

// SubmitDamageComplaint sends the photo for AI assessment, archives the
// photo, and delivers the verdict as a notification. A detection
// failure is returned to the caller as-is and produces no notification;
// an archive failure is logged and otherwise ignored.
func (s *complaintService) SubmitDamageComplaint(ctx context.Context, sessionID, imageBase64, comment string) (*vision.DamageAssessment, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, ErrImageRequired
	}

	assessment, err := s.vision.DetectDamage(ctx, imageBase64, comment)
	if err != nil {
		logger.Error("Damage detection failed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}

	s.archivePhoto(ctx, sessionID, imageBase64)

	if s.notifications != nil {
		title, message := assessmentCopy(assessment)
		_, err := s.notifications.Add(ctx, sessionID, model.Notification{
			Type:       model.NotificationDamageAssessment,
			Title:      title,
			Message:    message,
			Assessment: assessment,
		})
		if err != nil {
			logger.Warn("Failed to add assessment notification", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}

	return assessment, nil
}

func (s *complaintService) archivePhoto(ctx context.Context, sessionID, imageBase64 string) {
	if s.archive == nil {
		return
	}

	// data URLs arrive as "data:image/jpeg;base64,<payload>"
	payload := imageBase64
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		logger.Warn("Complaint photo is not valid base64, skipping archive", map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	key := fmt.Sprintf("complaints/%s/%s.jpg", sessionID, uuid.NewString())
	if _, err := s.archive.Upload(ctx, key, data, "image/jpeg"); err != nil {
		logger.Warn("Failed to archive complaint photo", map[string]interface{}{
			"session_id": sessionID,
			"key":        key,
			"error":      err.Error(),
		})
	}
}

func assessmentCopy(a *vision.DamageAssessment) (title, message string) {
	switch a.Recommendation {
	case vision.RecommendApproveReturn:
		return "Refund approved", "Your damage claim was approved. A refund is on its way."
	case vision.RecommendRejectReturn:
		return "Claim declined", "We could not verify damage from the photo provided."
	default:
		return "Claim under review", "Your damage claim needs a closer look. Our team will follow up."
	}
}
