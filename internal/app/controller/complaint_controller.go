package controller

import (
	"errors"
	"net/http"

	"github.com/avirtanen/noshcart-backend/internal/app/service"
	apperrors "github.com/avirtanen/noshcart-backend/internal/errors"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/avirtanen/noshcart-backend/pkg/vision"
	"github.com/gin-gonic/gin"
)

type ComplaintController struct {
	complaintService service.ComplaintService
}

func NewComplaintController(complaintService service.ComplaintService) *ComplaintController {
	return &ComplaintController{complaintService: complaintService}
}

type damageComplaintRequest struct {
	Image   string `json:"image" binding:"required"`
	Comment string `json:"comment"`
}

// SubmitDamage runs a photo through AI damage assessment
// POST /api/complaints/damage
func (ctrl *ComplaintController) SubmitDamage(c *gin.Context) {
	var req damageComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ComplaintImageRequired, "a photo of the damaged item is required")
		return
	}

	sess := middleware.GetSession(c)

	assessment, err := ctrl.complaintService.SubmitDamageComplaint(c.Request.Context(), sess.ID(), req.Image, req.Comment)
	if err != nil {
		if errors.Is(err, service.ErrImageRequired) {
			apperrors.BadRequest(c, apperrors.ComplaintImageRequired, "a photo of the damaged item is required")
			return
		}

		// the assessment service's own error message goes back unchanged
		var svcErr *vision.ServiceError
		if errors.As(err, &svcErr) {
			apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.ComplaintDetectionFailed, svcErr.Message)
			return
		}

		middleware.GetLoggerFromContext(c).Error("Damage complaint failed", err, map[string]interface{}{
			"session_id": sess.ID(),
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.InternalExternalAPI, "damage assessment is unavailable right now")
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessment": assessment})
}
