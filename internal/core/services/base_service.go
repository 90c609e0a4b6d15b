package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/middleware"
)

// Role sets used by the services.
var (
	adminOnly   = []domain.UserRole{domain.RoleAdmin}
	staffRoles  = []domain.UserRole{domain.RoleAdmin, domain.RoleAccountant}
	anyRole     = []domain.UserRole{domain.RoleAdmin, domain.RoleAccountant, domain.RoleDistributor}
	distributor = []domain.UserRole{domain.RoleDistributor}
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer  portssvc.RoleAuthorizer
	ReportCache portssvc.ReportCache
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks that the user is active and holds one of roles.
func (s *BaseService) AuthorizeUser(ctx context.Context, userID string, roles ...domain.UserRole) (*domain.User, error) {
	if s.Authorizer != nil {
		return s.Authorizer.AuthorizeUserAction(ctx, userID, roles...)
	}
	s.LogDebug(ctx, "No role authorizer provided, access granted by default",
		slog.String("user_id", userID))
	return nil, nil
}

// InvalidateReports bumps the ledger version so cached reports are rebuilt.
// Cache failures are logged and never fail the write that triggered them.
func (s *BaseService) InvalidateReports(ctx context.Context) {
	if s.ReportCache == nil {
		return
	}
	if err := s.ReportCache.Bump(ctx); err != nil {
		s.GetLogger(ctx).Warn("Failed to invalidate report cache", slog.String("error", err.Error()))
	}
}

func auditFields(userID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}

// Option configures the shared BaseService part of a service.
type Option func(*BaseService)

// WithAuthorizer sets the role authorizer.
func WithAuthorizer(authorizer portssvc.RoleAuthorizer) Option {
	return func(s *BaseService) {
		s.Authorizer = authorizer
	}
}

// WithReportCache sets the cache invalidated on ledger writes.
func WithReportCache(cache portssvc.ReportCache) Option {
	return func(s *BaseService) {
		s.ReportCache = cache
	}
}

func applyOptions(base *BaseService, options []Option) {
	for _, option := range options {
		option(base)
	}
}
