package services

import (
	"context"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByCode retrieves an account by its chart code.
	GetAccountByCode(ctx context.Context, code string, userID string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts, optionally filtered by type and active flag.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount validates and persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount changes an account's name, description or sub-type.
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, code string, userID string) error
}

// ChartBootstrapper seeds the chart of accounts when it is empty.
type ChartBootstrapper interface {
	// BootstrapChart creates the given accounts if no account exists yet; it returns how many were created.
	BootstrapChart(ctx context.Context, accounts []domain.Account, userID string) (int, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	ChartBootstrapper
}
