package services

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
)

// TokenSvc issues access tokens.
type TokenSvc interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// RoleAuthorizer checks that a user exists, is active and holds one of the roles.
type RoleAuthorizer interface {
	AuthorizeUserAction(ctx context.Context, userID string, roles ...domain.UserRole) (*domain.User, error)
}
