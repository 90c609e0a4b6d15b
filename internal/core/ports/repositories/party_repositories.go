package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PartyFilter narrows ListParties.
type PartyFilter struct {
	PartyType *domain.PartyType
	IsActive  *bool
	Search    string
}

// PartyReader defines read operations for party ledgers
type PartyReader interface {
	FindPartyByID(ctx context.Context, partyID string) (*domain.PartyLedger, error)
	FindPartiesByIDs(ctx context.Context, partyIDs []string) (map[string]domain.PartyLedger, error)
	ListParties(ctx context.Context, filter PartyFilter, limit int, offset int) ([]domain.PartyLedger, error)
}

// PartyWriter defines write operations for party ledgers
type PartyWriter interface {
	SaveParty(ctx context.Context, party domain.PartyLedger) error
	UpdateParty(ctx context.Context, party domain.PartyLedger) error
	DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error
}

// PartyTransactionSupport defines the posting-time operations on party balances
type PartyTransactionSupport interface {
	// FindPartiesByIDsForUpdate selects parties and locks them, in ID order, within a transaction.
	FindPartiesByIDsForUpdate(ctx context.Context, tx pgx.Tx, partyIDs []string) (map[string]domain.PartyLedger, error)

	// UpdatePartyBalancesInTx adds signed deltas to current_balance within a given transaction.
	UpdatePartyBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// PartyRepositoryFacade combines all party-related repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
	PartyTransactionSupport
}
