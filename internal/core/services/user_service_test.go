package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/core/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/platform/config"
	"github.com/SscSPs/distributor_ledger_app/internal/utils"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := utils.HashPassword(password)
	require.NoError(t, err)
	return h
}

func TestAuthorizeUserAction(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindUserByID", mock.Anything, "acct").Return(&domain.User{UserID: "acct", Role: domain.RoleAccountant, IsActive: true}, nil)
	repo.On("FindUserByID", mock.Anything, "gone").Return(nil, apperrors.ErrNotFound)
	repo.On("FindUserByID", mock.Anything, "off").Return(&domain.User{UserID: "off", Role: domain.RoleAdmin, IsActive: false}, nil)
	svc := services.NewUserService(repo)

	user, err := svc.AuthorizeUserAction(ctx, "acct", domain.RoleAdmin, domain.RoleAccountant)
	require.NoError(t, err)
	assert.Equal(t, "acct", user.UserID)

	_, err = svc.AuthorizeUserAction(ctx, "acct", domain.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.AuthorizeUserAction(ctx, "gone", domain.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.AuthorizeUserAction(ctx, "off", domain.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestRegister_CreatesDistributor(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleDistributor && u.PasswordHash != "s3cretpass" && u.CreatedBy == u.UserID
	})).Return(nil).Once()
	svc := services.NewUserService(repo)

	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "ramesh", Name: "Ramesh Shrestha", Password: "s3cretpass", ConfirmPassword: "s3cretpass",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleDistributor, user.Role)
	assert.True(t, utils.CheckPasswordHash("s3cretpass", user.PasswordHash))
	repo.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("SaveUser", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	svc := services.NewUserService(repo)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "ramesh", Name: "Ramesh", Password: "s3cretpass", ConfirmPassword: "s3cretpass",
	})

	errs, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, []string{"is already taken"}, errs["username"])
}

func TestRegister_PasswordMismatch(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Username: "ramesh", Name: "Ramesh", Password: "s3cretpass", ConfirmPassword: "other",
	})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestCreateUser_AdminOnly(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindUserByID", mock.Anything, "acct").Return(&domain.User{UserID: "acct", Role: domain.RoleAccountant, IsActive: true}, nil)
	repo.On("FindUserByID", mock.Anything, "admin").Return(&domain.User{UserID: "admin", Role: domain.RoleAdmin, IsActive: true}, nil)
	repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleAccountant && u.CreatedBy == "admin"
	})).Return(nil).Once()
	svc := services.NewUserService(repo)
	req := dto.CreateUserRequest{Username: "sita", Name: "Sita", Password: "s3cretpass", Role: "accountant"}

	_, err := svc.CreateUser(context.Background(), req, "acct")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	user, err := svc.CreateUser(context.Background(), req, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAccountant, user.Role)
	repo.AssertExpectations(t)
}

func TestAuthenticateUser(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindUserByUsername", mock.Anything, "ramesh").
		Return(&domain.User{UserID: "u-1", Username: "ramesh", PasswordHash: hashed(t, "s3cretpass"), IsActive: true}, nil)
	repo.On("FindUserByUsername", mock.Anything, "nobody").Return(nil, apperrors.ErrNotFound)
	svc := services.NewUserService(repo)
	ctx := context.Background()

	user, err := svc.AuthenticateUser(ctx, "ramesh", "s3cretpass")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)

	_, err = svc.AuthenticateUser(ctx, "ramesh", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.AuthenticateUser(ctx, "nobody", "s3cretpass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestEnsureAdmin(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("FindUserByUsername", mock.Anything, "admin").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleAdmin && u.CreatedBy == services.SystemUserID
	})).Return(nil).Once()
	svc := services.NewUserService(repo)

	_, created, err := svc.EnsureAdmin(context.Background(), "admin", "bootstrap-pass")
	require.NoError(t, err)
	assert.True(t, created)

	repo.On("FindUserByUsername", mock.Anything, "admin").Return(&domain.User{UserID: "a-1"}, nil).Once()
	user, created, err := svc.EnsureAdmin(context.Background(), "admin", "bootstrap-pass")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "a-1", user.UserID)
	repo.AssertExpectations(t)
}

func TestGenerateAccessToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "distributor-ledger"}
	svc := services.NewTokenService(cfg)

	token, expiresAt, err := svc.GenerateAccessToken(context.Background(), &domain.User{UserID: "u-1", Role: domain.RoleAdmin})

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
	claims, err := utils.ParseAndValidateJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
}
