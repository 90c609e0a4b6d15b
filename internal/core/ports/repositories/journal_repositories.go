package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// JournalFilter narrows ListJournals. Nil fields are not filtered on.
type JournalFilter struct {
	Status   *domain.JournalStatus
	FromDate *time.Time
	ToDate   *time.Time
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal entry together with its lines.
	FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListJournals retrieves journal headers newest first using token-based pagination.
	// It returns the journals, a token for the next page, and an error.
	ListJournals(ctx context.Context, filter JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// MovementReader reads posted movements for the balance aggregator.
type MovementReader interface {
	// SumAccountMovements totals posted debits and credits on an account dated on or before asOf (nil: all).
	SumAccountMovements(ctx context.Context, accountCode string, asOf *time.Time) (debit, credit decimal.Decimal, err error)

	// SumPartyMovements totals posted debits and credits on lines tagged with the party.
	SumPartyMovements(ctx context.Context, partyID string, asOf *time.Time) (debit, credit decimal.Decimal, err error)

	// ListPostedLinesByAccount returns posted lines for an account, oldest first, with token pagination.
	ListPostedLinesByAccount(ctx context.Context, accountCode string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error)
}

// JournalTransactionSupport holds the write steps the journal service composes inside one transaction.
type JournalTransactionSupport interface {
	// FindJournalByIDForUpdate locks the journal header row and returns it with its lines.
	FindJournalByIDForUpdate(ctx context.Context, tx pgx.Tx, journalID string) (*domain.JournalEntry, error)

	// SaveJournalInTx inserts a header and its lines.
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.JournalEntry) error

	// ReplaceDraftInTx overwrites the header fields and lines of a draft.
	ReplaceDraftInTx(ctx context.Context, tx pgx.Tx, journal domain.JournalEntry) error

	// DeleteDraftInTx removes a draft and its lines.
	DeleteDraftInTx(ctx context.Context, tx pgx.Tx, journalID string) error

	// MarkPostedInTx flips a draft to POSTED.
	MarkPostedInTx(ctx context.Context, tx pgx.Tx, journalID string, userID string, now time.Time) error

	// LinkReversalInTx records the reversing entry on the original.
	LinkReversalInTx(ctx context.Context, tx pgx.Tx, originalJournalID, reversingJournalID string, userID string, now time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	MovementReader
	JournalTransactionSupport
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
