package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/utils"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/google/uuid"
)

// SystemUserID is recorded as the creator of rows written by startup tasks.
const SystemUserID = "system"

// ErrInvalidCredentials is returned for any failed login so callers cannot tell which part was wrong.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates the user service. It also serves as the role authorizer for the other services.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) *userService {
	svc := &userService{userRepo: userRepo, now: time.Now}
	svc.Authorizer = svc
	return svc
}

var (
	_ portssvc.UserSvcFacade  = (*userService)(nil)
	_ portssvc.RoleAuthorizer = (*userService)(nil)
)

// AuthorizeUserAction loads the user and checks they are active and hold one of roles.
func (s *userService) AuthorizeUserAction(ctx context.Context, userID string, roles ...domain.UserRole) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Token subject no longer exists", slog.String("user_id", userID))
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to load user for authorization", slog.String("user_id", userID))
		return nil, err
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: user is inactive", apperrors.ErrForbidden)
	}
	if !user.HasRole(roles...) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("user_role", string(user.Role)))
		return nil, apperrors.ErrForbidden
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	form := req.ToRegistration()
	if err := validation.RegistrationForm(form); err != nil {
		return nil, err
	}
	user, err := s.createUser(ctx, form.Username, form.Name, form.Password, domain.RoleDistributor, "")
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Distributor registered", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, requestingUserID string) (*domain.User, error) {
	if _, err := s.AuthorizeUser(ctx, requestingUserID, adminOnly...); err != nil {
		return nil, err
	}
	role := domain.UserRole(strings.ToUpper(req.Role))
	if !role.IsValid() {
		return nil, validation.Errors{"role": {"must be one of ADMIN, ACCOUNTANT, DISTRIBUTOR"}}
	}
	user, err := s.createUser(ctx, strings.TrimSpace(req.Username), strings.TrimSpace(req.Name), req.Password, role, requestingUserID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID), slog.String("role", string(role)))
	return user, nil
}

// EnsureAdmin creates the bootstrap administrator unless the username is already taken.
func (s *userService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, bool, error) {
	existing, err := s.userRepo.FindUserByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}
	user, err := s.createUser(ctx, username, "Administrator", password, domain.RoleAdmin, SystemUserID)
	if err != nil {
		return nil, false, err
	}
	s.LogInfo(ctx, "Bootstrap administrator created", slog.String("username", username))
	return user, true, nil
}

func (s *userService) createUser(ctx context.Context, username, name, password string, role domain.UserRole, creatorID string) (*domain.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	userID := uuid.NewString()
	if creatorID == "" {
		creatorID = userID
	}
	user := domain.User{
		UserID:       userID,
		Username:     username,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		AuditFields:  auditFields(creatorID, s.now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, validation.Errors{"username": {"is already taken"}}
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser verifies a username and password.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch on login", slog.String("user_id", user.UserID))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive || user.DeletedAt != nil {
		return nil, fmt.Errorf("%w: user is inactive", apperrors.ErrForbidden)
	}
	return user, nil
}
