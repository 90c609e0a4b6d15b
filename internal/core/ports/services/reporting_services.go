package services

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
)

// ReportingService defines the interface for financial reporting operations
type ReportingService interface {
	// GetTrialBalance generates a trial balance report as of the given date.
	GetTrialBalance(ctx context.Context, asOf time.Time, userID string) (*domain.TrialBalanceReport, error)

	// GetBalanceSheet generates a balance sheet with ratios as of the given date.
	GetBalanceSheet(ctx context.Context, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)

	// GetVATSummary generates the VAT summary for a calendar quarter.
	GetVATSummary(ctx context.Context, year, quarter int, userID string) (*domain.VATSummary, error)
}

// ReportCache stores rendered reports keyed by the current ledger version.
// Implementations must treat every method as best-effort.
type ReportCache interface {
	// Version returns the current ledger version used to build keys.
	Version(ctx context.Context) (int64, error)
	// Bump invalidates every cached report.
	Bump(ctx context.Context) error
	// Fetch returns the cached value for key or computes, stores and returns it.
	Fetch(ctx context.Context, key string, dest any, compute func(ctx context.Context) (any, error)) error
}
