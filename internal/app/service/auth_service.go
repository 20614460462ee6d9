package service

import (
	"context"
	"errors"
	"time"

	"github.com/avirtanen/noshcart-backend/config"
	"github.com/avirtanen/noshcart-backend/internal/app/model"
	"github.com/avirtanen/noshcart-backend/internal/app/repository"
	"github.com/avirtanen/noshcart-backend/pkg/logger"
	"github.com/avirtanen/noshcart-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

type DeliveryAddressRequest struct {
	AddressLine  string `json:"address_line" binding:"required"`
	City         string `json:"city" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	Instructions string `json:"instructions"`
}

// TokenBlacklister keeps revoked tokens out of circulation until they
// expire on their own. redis.TokenBlacklist satisfies it.
type TokenBlacklister interface {
	BlacklistToken(ctx context.Context, token string, expiry time.Duration) error
}

type AuthService interface {
	Register(req RegisterRequest) (*model.User, *util.TokenPair, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	RevokeToken(ctx context.Context, token string) error
	GetMe(userID uint) (*model.User, error)
	UpdateDeliveryAddress(userID uint, req DeliveryAddressRequest) (*model.User, error)
}

type authService struct {
	users     repository.UserRepository
	jwtCfg    config.JWTConfig
	blacklist TokenBlacklister
}

func NewAuthService(users repository.UserRepository, jwtCfg config.JWTConfig, blacklist TokenBlacklister) AuthService {
	return &authService{users: users, jwtCfg: jwtCfg, blacklist: blacklist}
}

func (s *authService) Register(req RegisterRequest) (*model.User, *util.TokenPair, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(user); err != nil {
		return nil, nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// RevokeToken blacklists a token for the remainder of its lifetime.
// An expired or malformed token needs no blacklist entry, so those are
// a no-op.
func (s *authService) RevokeToken(ctx context.Context, token string) error {
	claims, err := util.ValidateToken(token, s.jwtCfg.Secret)
	if err != nil {
		return nil
	}

	if s.blacklist == nil || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.blacklist.BlacklistToken(ctx, token, ttl); err != nil {
		return err
	}

	logger.Info("Token revoked", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

func (s *authService) GetMe(userID uint) (*model.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateDeliveryAddress(userID uint, req DeliveryAddressRequest) (*model.User, error) {
	user, err := s.GetMe(userID)
	if err != nil {
		return nil, err
	}

	user.AddressLine = req.AddressLine
	user.City = req.City
	user.PostalCode = req.PostalCode
	user.Instructions = req.Instructions

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(user *model.User) (*util.TokenPair, error) {
	return util.GenerateTokenPair(
		user.ID,
		user.Email,
		string(user.Role),
		s.jwtCfg.Secret,
		s.jwtCfg.AccessTokenExpiry,
		s.jwtCfg.RefreshTokenExpiry,
	)
}
