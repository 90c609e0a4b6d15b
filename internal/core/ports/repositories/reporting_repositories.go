package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ReportingRepository reads the raw aggregates reports are built from.
// Every read takes the snapshot transaction so one report sees one consistent state.
type ReportingRepository interface {
	SnapshotManager

	// GetAccountActivity returns, for every account, posted debit and credit totals dated on or before asOf.
	GetAccountActivity(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.AccountActivity, error)

	// ListPurchaseVAT returns the VAT projection of bills dated within [from, to].
	ListPurchaseVAT(ctx context.Context, tx pgx.Tx, from, to time.Time) ([]domain.VATDocument, error)

	// ListSalesVAT returns the VAT projection of invoices dated within [from, to].
	ListSalesVAT(ctx context.Context, tx pgx.Tx, from, to time.Time) ([]domain.VATDocument, error)
}
