package services

import (
	"context"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
)

// OverdueMarker flips unpaid credit documents whose due date passed to OVERDUE.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context) (int64, error)
}

// PurchaseSvcFacade covers supplier bills.
type PurchaseSvcFacade interface {
	// CreatePurchase validates amounts and stores the bill.
	CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseEntry, error)
	GetPurchaseByID(ctx context.Context, purchaseID string, userID string) (*domain.PurchaseEntry, error)
	ListPurchases(ctx context.Context, params dto.ListTradeParams, userID string) ([]domain.PurchaseEntry, error)
	// MarkPurchasePaid settles a PENDING or OVERDUE bill.
	MarkPurchasePaid(ctx context.Context, purchaseID string, userID string) (*domain.PurchaseEntry, error)
	OverdueMarker
}

// SalesSvcFacade covers customer invoices.
type SalesSvcFacade interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.SalesEntry, error)
	GetSaleByID(ctx context.Context, salesID string, userID string) (*domain.SalesEntry, error)
	ListSales(ctx context.Context, params dto.ListTradeParams, userID string) ([]domain.SalesEntry, error)
	MarkSalePaid(ctx context.Context, salesID string, userID string) (*domain.SalesEntry, error)
	OverdueMarker
}

// OverdueScanner runs the overdue flip over purchases and sales together.
type OverdueScanner interface {
	// ScanOverdue is the administrator-triggered scan.
	ScanOverdue(ctx context.Context, userID string) (*dto.OverdueScanResponse, error)
	// RunScan is the scheduled scan; it performs no role check.
	RunScan(ctx context.Context) (*dto.OverdueScanResponse, error)
}
