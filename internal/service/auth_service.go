package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/soporte360/internal/auth"
	"github.com/spec-kit/soporte360/internal/config"
	"github.com/spec-kit/soporte360/internal/domain"
	"github.com/spec-kit/soporte360/internal/repository"
	apperrors "github.com/spec-kit/soporte360/pkg/util"
)

// AuthService coordinates login and the startup bootstrap of the master account.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	bootstrap  config.BootstrapConfig
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		bootstrap:  cfg.Bootstrap,
		logger:     logger,
	}
}

// Login authenticates by username and issues a bearer token. The error is the
// same for an unknown username, a wrong password and an inactive account.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("credenciales inválidas")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !user.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("credenciales inválidas")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("credenciales inválidas")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// EnsureMasterAdmin creates the master account at process start if absent.
// The existence check is best-effort: a lost insert race resolves through the
// unique index and a follow-up lookup.
func (s *AuthService) EnsureMasterAdmin(ctx context.Context) error {
	if _, err := s.users.GetByUsername(ctx, s.bootstrap.AdminUsername); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(s.bootstrap.AdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	master := &domain.User{
		Username:     s.bootstrap.AdminUsername,
		Email:        s.bootstrap.AdminEmail,
		FullName:     "Master Admin",
		Role:         domain.RoleMasterAdmin,
		Active:       true,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, master); err != nil {
		// A concurrent bootstrap may have won the insert.
		if _, lookupErr := s.users.GetByUsername(ctx, s.bootstrap.AdminUsername); lookupErr == nil {
			return nil
		}
		return err
	}

	s.logger.Info("master admin bootstrapped", zap.String("username", master.Username))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
