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
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...Option) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		now:         time.Now,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if _, err := s.AuthorizeUser(ctx, userID, adminOnly...); err != nil {
		s.LogError(ctx, err, "User not authorized to create account", slog.String("user_id", userID))
		return nil, err
	}

	account := req.ToDomain()
	if err := validation.Account(account); err != nil {
		return nil, err
	}
	s.prepareNew(&account, userID)

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", account.Code))
		return nil, err
	}
	s.InvalidateReports(ctx)

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) prepareNew(account *domain.Account, userID string) {
	if account.NormalBalance == "" {
		account.NormalBalance = domain.ExpectedNormalBalance(account.AccountType)
	}
	account.AccountID = uuid.NewString()
	account.Balance = account.OpeningBalance
	account.IsActive = true
	account.AuditFields = auditFields(userID, s.now())
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string, userID string) (*domain.Account, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams, userID string) ([]domain.Account, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}

	filter := portsrepo.AccountFilter{IsActive: params.Active}
	if t := strings.ToUpper(strings.TrimSpace(params.Type)); t != "" {
		accountType := domain.AccountType(t)
		if !accountType.IsValid() {
			return nil, validation.Errors{"type": {"must be one of ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE"}}
		}
		filter.AccountType = &accountType
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}

	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if _, err := s.AuthorizeUser(ctx, userID, adminOnly...); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.SubType != nil {
		account.SubType = domain.AccountSubType(strings.ToUpper(strings.TrimSpace(*req.SubType)))
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update", slog.String("code", code))
		return account, nil
	}
	if err := validation.Account(*account); err != nil {
		return nil, err
	}

	account.LastUpdatedAt = s.now()
	account.LastUpdatedBy = userID
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("code", code))
		return nil, err
	}
	s.InvalidateReports(ctx)

	s.LogInfo(ctx, "Account updated successfully", slog.String("code", code))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	if _, err := s.AuthorizeUser(ctx, userID, adminOnly...); err != nil {
		return err
	}
	if _, err := s.accountRepo.FindAccountByCode(ctx, code); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, code, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("code", code))
		return err
	}
	s.InvalidateReports(ctx)

	s.LogInfo(ctx, "Account deactivated successfully", slog.String("code", code))
	return nil
}

// BootstrapChart seeds an empty chart. It is a startup task and runs without a caller role check.
func (s *accountService) BootstrapChart(ctx context.Context, accounts []domain.Account, userID string) (int, error) {
	count, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		s.LogDebug(ctx, "Chart of accounts already present, skipping bootstrap", slog.Int64("count", count))
		return 0, nil
	}

	errs := validation.Errors{}
	for i, account := range accounts {
		if err := validation.Account(account); err != nil {
			if ve, ok := validation.AsErrors(err); ok {
				errs.Merge(ve.Prefix(fmt.Sprintf("accounts[%d]", i)))
			}
		}
	}
	if err := errs.OrNil(); err != nil {
		return 0, err
	}

	for i := range accounts {
		account := accounts[i]
		s.prepareNew(&account, userID)
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			s.LogError(ctx, err, "Failed to save bootstrap account", slog.String("code", account.Code))
			return i, err
		}
	}
	s.InvalidateReports(ctx)

	s.LogInfo(ctx, "Chart of accounts bootstrapped", slog.Int("count", len(accounts)))
	return len(accounts), nil
}
