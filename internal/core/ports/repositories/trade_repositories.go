package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
)

// TradeFilter narrows purchase and sales listings.
type TradeFilter struct {
	Status   *domain.SettlementStatus
	PartyID  *string
	FromDate *time.Time
	ToDate   *time.Time
}

// PurchaseRepository persists supplier bills.
type PurchaseRepository interface {
	// SavePurchase inserts a bill; a bill number already used by the supplier yields ErrDuplicate.
	SavePurchase(ctx context.Context, purchase domain.PurchaseEntry) error
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.PurchaseEntry, error)
	ListPurchases(ctx context.Context, filter TradeFilter, limit int, offset int) ([]domain.PurchaseEntry, error)

	// UpdatePurchaseStatus moves a bill to status `to` only if it is currently in one of `from`.
	// A bill in any other status yields ErrConflict.
	UpdatePurchaseStatus(ctx context.Context, purchaseID string, from []domain.SettlementStatus, to domain.SettlementStatus, userID string, now time.Time) error

	// MarkOverduePurchases flips PENDING credit bills due before now to OVERDUE and returns how many changed.
	MarkOverduePurchases(ctx context.Context, now time.Time) (int64, error)
}

// SalesRepository persists customer invoices.
type SalesRepository interface {
	// SaveSale inserts an invoice; a reused invoice number yields ErrDuplicate.
	SaveSale(ctx context.Context, sale domain.SalesEntry) error
	FindSaleByID(ctx context.Context, salesID string) (*domain.SalesEntry, error)
	ListSales(ctx context.Context, filter TradeFilter, limit int, offset int) ([]domain.SalesEntry, error)
	UpdateSaleStatus(ctx context.Context, salesID string, from []domain.SettlementStatus, to domain.SettlementStatus, userID string, now time.Time) error
	MarkOverdueSales(ctx context.Context, now time.Time) (int64, error)
}
