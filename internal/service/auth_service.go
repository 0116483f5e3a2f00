package service

import (
	"crypto/subtle"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/leadthebusiness/platform-api/pkg/config"
	appErrors "github.com/leadthebusiness/platform-api/pkg/errors"
)

// Gate surfaces protected by a shared password.
const (
	SurfaceAdmin  = "admin"
	SurfaceStudio = "studio"
)

// LoginRequest carries the password submitted to a gate.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AuthService verifies gate passwords for the admin dashboard and the
// content studio. Each surface has its own shared password and there are
// no user accounts behind them.
type AuthService struct {
	passwords map[string]string
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(cfg config.GatesConfig, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		passwords: map[string]string{
			SurfaceAdmin:  cfg.AdminPassword,
			SurfaceStudio: cfg.StudioPassword,
		},
		validator: validate,
		logger:    logger,
	}
}

// Verify checks the submitted password against the surface's configured
// one. The comparison is constant time. A surface with no configured
// password rejects every attempt.
func (s *AuthService) Verify(surface string, req LoginRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	expected, ok := s.passwords[surface]
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "unknown surface")
	}
	if expected == "" {
		s.logger.Warn("login attempt against unconfigured surface", zap.String("surface", surface))
		return appErrors.Clone(appErrors.ErrInvalidPassword, "invalid password")
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(expected)) != 1 {
		s.logger.Info("failed login attempt", zap.String("surface", surface))
		return appErrors.Clone(appErrors.ErrInvalidPassword, "invalid password")
	}
	return nil
}
