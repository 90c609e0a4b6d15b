package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/platform/config"
	"github.com/SscSPs/distributor_ledger_app/internal/utils"
)

// tokenService issues signed JWT access tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
	now func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvc {
	return &tokenService{cfg: cfg, now: time.Now}
}

var _ portssvc.TokenSvc = (*tokenService)(nil)

// GenerateAccessToken creates a new JWT access token carrying the user's role.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := s.now().Add(s.cfg.JWTExpiryDuration)
	accessToken, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return accessToken, expiryTime, nil
}
