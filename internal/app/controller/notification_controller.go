package controller

import (
	"errors"
	"net/http"

	"github.com/avirtanen/noshcart-backend/internal/app/service"
	apperrors "github.com/avirtanen/noshcart-backend/internal/errors"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notificationService service.NotificationService
}

func NewNotificationController(notificationService service.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// List returns the session's notification feed, newest first
// GET /api/notifications
func (ctrl *NotificationController) List(c *gin.Context) {
	sess := middleware.GetSession(c)

	feed, err := ctrl.notificationService.List(c.Request.Context(), sess.ID())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to load notifications", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	unread, err := ctrl.notificationService.UnreadCount(c.Request.Context(), sess.ID())
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to count unread notifications", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": feed,
		"unread_count":  unread,
	})
}

// MarkRead marks one notification as read
// PUT /api/notifications/:id/read
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	sess := middleware.GetSession(c)

	err := ctrl.notificationService.MarkRead(c.Request.Context(), sess.ID(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			apperrors.NotFound(c, apperrors.NotificationNotFound, "notification not found")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// MarkAllRead marks the whole feed as read
// PUT /api/notifications/read-all
func (ctrl *NotificationController) MarkAllRead(c *gin.Context) {
	sess := middleware.GetSession(c)

	if err := ctrl.notificationService.MarkAllRead(c.Request.Context(), sess.ID()); err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked as read"})
}

// ClearAll deletes the session's feed
// DELETE /api/notifications
func (ctrl *NotificationController) ClearAll(c *gin.Context) {
	sess := middleware.GetSession(c)

	if err := ctrl.notificationService.ClearAll(c.Request.Context(), sess.ID()); err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notifications cleared"})
}
