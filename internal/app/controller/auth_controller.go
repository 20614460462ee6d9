package controller

import (
	"errors"
	"net/http"

	"github.com/avirtanen/noshcart-backend/internal/app/service"
	apperrors "github.com/avirtanen/noshcart-backend/internal/errors"
	"github.com/avirtanen/noshcart-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account and signs the user in
// POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "email, password (min 8 chars) and name are required")
		return
	}

	user, tokens, err := ctrl.authService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "email is already registered")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Login exchanges credentials for a token pair
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "email and password are required")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "invalid email or password")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout revokes the caller's access token
// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	if token, ok := middleware.GetToken(c); ok {
		if err := ctrl.authService.RevokeToken(c.Request.Context(), token); err != nil {
			// logout always succeeds from the user's perspective; the
			// token still dies at its natural expiry
			middleware.GetLoggerFromContext(c).Error("Token revocation failed", err, nil)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// Me returns the authenticated user's profile
// GET /api/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetMe(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.SessionNotFound, "account no longer exists")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateDeliveryAddress saves the user's default delivery address
// PUT /api/auth/me/address
func (ctrl *AuthController) UpdateDeliveryAddress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req service.DeliveryAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "address_line, city and postal_code are required")
		return
	}

	user, err := ctrl.authService.UpdateDeliveryAddress(userID, req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.SessionNotFound, "account no longer exists")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, user)
}
