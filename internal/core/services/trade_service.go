package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/pagination"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/google/uuid"
)

// ErrNotSettleable is returned when a bill or invoice is already paid.
var ErrNotSettleable = fmt.Errorf("%w: only PENDING or OVERDUE documents can be marked paid", apperrors.ErrConflict)

var settleableStatuses = []domain.SettlementStatus{domain.StatusPending, domain.StatusOverdue}

// TradeOption configures purchase and sales services.
type TradeOption func(*tradeBase)

// WithClock replaces time.Now, which decides credit due dates and the overdue cutoff.
func WithClock(now func() time.Time) TradeOption {
	return func(b *tradeBase) {
		b.now = now
	}
}

// WithTradeOptions applies shared BaseService options.
func WithTradeOptions(options ...Option) TradeOption {
	return func(b *tradeBase) {
		applyOptions(&b.BaseService, options)
	}
}

type tradeBase struct {
	BaseService
	partyRepo portsrepo.PartyReader
	now       func() time.Time
}

func newTradeBase(partyRepo portsrepo.PartyReader, options []TradeOption) tradeBase {
	b := tradeBase{partyRepo: partyRepo, now: time.Now}
	for _, option := range options {
		option(&b)
	}
	return b
}

// checkCounterparty verifies the referenced party exists, is active and has the expected type.
func (b *tradeBase) checkCounterparty(ctx context.Context, field, partyID string, want domain.PartyType) error {
	if partyID == "" {
		return nil
	}
	party, err := b.partyRepo.FindPartyByID(ctx, partyID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return validation.Errors{field: {"party does not exist"}}
	}
	if err != nil {
		return err
	}
	switch {
	case party.PartyType != want:
		return validation.Errors{field: {fmt.Sprintf("must reference a %s party", want)}}
	case !party.IsActive:
		return validation.Errors{field: {"party is inactive"}}
	}
	return nil
}

func tradeFilter(params dto.ListTradeParams) (portsrepo.TradeFilter, int, int, error) {
	if err := validation.DateRange(params.FromDate, params.ToDate); err != nil {
		return portsrepo.TradeFilter{}, 0, 0, err
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return portsrepo.TradeFilter{
		Status:   params.Status,
		PartyID:  params.PartyID,
		FromDate: params.FromDate,
		ToDate:   params.ToDate,
	}, pagination.NormalizeLimit(params.Limit), offset, nil
}

// purchaseService records supplier bills.
type purchaseService struct {
	tradeBase
	purchaseRepo portsrepo.PurchaseRepository
}

// NewPurchaseService creates the purchase service.
func NewPurchaseService(repo portsrepo.PurchaseRepository, partyRepo portsrepo.PartyReader, options ...TradeOption) portssvc.PurchaseSvcFacade {
	return &purchaseService{tradeBase: newTradeBase(partyRepo, options), purchaseRepo: repo}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

func (s *purchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	now := s.now()
	purchase := req.ToDomain()
	if err := validation.Purchase(purchase, now); err != nil {
		return nil, err
	}
	if err := s.checkCounterparty(ctx, "supplierID", purchase.SupplierID, domain.PartySupplier); err != nil {
		return nil, err
	}

	purchase.PurchaseID = uuid.NewString()
	purchase.Status = domain.InitialSettlementStatus(purchase.PaymentMethod)
	purchase.AuditFields = auditFields(userID, now)

	if err := s.purchaseRepo.SavePurchase(ctx, purchase); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, validation.Errors{"billNumber": {"bill number already recorded for this supplier"}}
		}
		s.LogError(ctx, err, "Failed to save purchase", slog.String("bill_number", purchase.BillNumber))
		return nil, err
	}
	s.InvalidateReports(ctx)

	s.LogInfo(ctx, "Purchase recorded",
		slog.String("purchase_id", purchase.PurchaseID),
		slog.String("total", purchase.TotalAmount.String()),
		slog.String("status", string(purchase.Status)))
	return &purchase, nil
}

func (s *purchaseService) GetPurchaseByID(ctx context.Context, purchaseID string, userID string) (*domain.PurchaseEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	return s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
}

func (s *purchaseService) ListPurchases(ctx context.Context, params dto.ListTradeParams, userID string) ([]domain.PurchaseEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	filter, limit, offset, err := tradeFilter(params)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchaseRepo.ListPurchases(ctx, filter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list purchases")
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	if purchases == nil {
		return []domain.PurchaseEntry{}, nil
	}
	return purchases, nil
}

func (s *purchaseService) MarkPurchasePaid(ctx context.Context, purchaseID string, userID string) (*domain.PurchaseEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	purchase, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if !domain.CanSettle(purchase.Status) {
		return nil, ErrNotSettleable
	}
	now := s.now()
	if err := s.purchaseRepo.UpdatePurchaseStatus(ctx, purchaseID, settleableStatuses, domain.StatusPaid, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrNotSettleable
		}
		return nil, err
	}
	purchase.Status = domain.StatusPaid
	purchase.LastUpdatedAt = now
	purchase.LastUpdatedBy = userID
	s.LogInfo(ctx, "Purchase marked paid", slog.String("purchase_id", purchaseID))
	return purchase, nil
}

func (s *purchaseService) MarkOverdue(ctx context.Context) (int64, error) {
	n, err := s.purchaseRepo.MarkOverduePurchases(ctx, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to mark overdue purchases")
		return 0, err
	}
	return n, nil
}

// salesService records customer invoices.
type salesService struct {
	tradeBase
	salesRepo portsrepo.SalesRepository
}

// NewSalesService creates the sales service.
func NewSalesService(repo portsrepo.SalesRepository, partyRepo portsrepo.PartyReader, options ...TradeOption) portssvc.SalesSvcFacade {
	return &salesService{tradeBase: newTradeBase(partyRepo, options), salesRepo: repo}
}

var _ portssvc.SalesSvcFacade = (*salesService)(nil)

func (s *salesService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.SalesEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	now := s.now()
	sale := req.ToDomain()
	if err := validation.Sale(sale, now); err != nil {
		return nil, err
	}
	if err := s.checkCounterparty(ctx, "customerID", sale.CustomerID, domain.PartyCustomer); err != nil {
		return nil, err
	}

	sale.SalesID = uuid.NewString()
	sale.Status = domain.InitialSettlementStatus(sale.PaymentMethod)
	sale.AuditFields = auditFields(userID, now)

	if err := s.salesRepo.SaveSale(ctx, sale); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, validation.Errors{"invoiceNumber": {"invoice number already used"}}
		}
		s.LogError(ctx, err, "Failed to save sale", slog.String("invoice_number", sale.InvoiceNumber))
		return nil, err
	}
	s.InvalidateReports(ctx)

	s.LogInfo(ctx, "Sale recorded",
		slog.String("sales_id", sale.SalesID),
		slog.String("total", sale.TotalAmount.String()),
		slog.String("status", string(sale.Status)))
	return &sale, nil
}

func (s *salesService) GetSaleByID(ctx context.Context, salesID string, userID string) (*domain.SalesEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	return s.salesRepo.FindSaleByID(ctx, salesID)
}

func (s *salesService) ListSales(ctx context.Context, params dto.ListTradeParams, userID string) ([]domain.SalesEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	filter, limit, offset, err := tradeFilter(params)
	if err != nil {
		return nil, err
	}
	sales, err := s.salesRepo.ListSales(ctx, filter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales")
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	if sales == nil {
		return []domain.SalesEntry{}, nil
	}
	return sales, nil
}

func (s *salesService) MarkSalePaid(ctx context.Context, salesID string, userID string) (*domain.SalesEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	sale, err := s.salesRepo.FindSaleByID(ctx, salesID)
	if err != nil {
		return nil, err
	}
	if !domain.CanSettle(sale.Status) {
		return nil, ErrNotSettleable
	}
	now := s.now()
	if err := s.salesRepo.UpdateSaleStatus(ctx, salesID, settleableStatuses, domain.StatusPaid, userID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, ErrNotSettleable
		}
		return nil, err
	}
	sale.Status = domain.StatusPaid
	sale.LastUpdatedAt = now
	sale.LastUpdatedBy = userID
	s.LogInfo(ctx, "Sale marked paid", slog.String("sales_id", salesID))
	return sale, nil
}

func (s *salesService) MarkOverdue(ctx context.Context) (int64, error) {
	n, err := s.salesRepo.MarkOverdueSales(ctx, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to mark overdue sales")
		return 0, err
	}
	return n, nil
}

// overdueScanner flips overdue purchases and sales in one call.
type overdueScanner struct {
	BaseService
	purchases portssvc.OverdueMarker
	sales     portssvc.OverdueMarker
}

// NewOverdueScanner combines the purchase and sales overdue markers.
func NewOverdueScanner(purchases, sales portssvc.OverdueMarker, options ...Option) portssvc.OverdueScanner {
	svc := &overdueScanner{purchases: purchases, sales: sales}
	applyOptions(&svc.BaseService, options)
	return svc
}

func (s *overdueScanner) ScanOverdue(ctx context.Context, userID string) (*dto.OverdueScanResponse, error) {
	if _, err := s.AuthorizeUser(ctx, userID, adminOnly...); err != nil {
		return nil, err
	}
	return s.RunScan(ctx)
}

func (s *overdueScanner) RunScan(ctx context.Context) (*dto.OverdueScanResponse, error) {
	purchases, err := s.purchases.MarkOverdue(ctx)
	if err != nil {
		return nil, fmt.Errorf("overdue scan of purchases failed: %w", err)
	}
	sales, err := s.sales.MarkOverdue(ctx)
	if err != nil {
		return nil, fmt.Errorf("overdue scan of sales failed: %w", err)
	}
	s.LogInfo(ctx, "Overdue scan finished", slog.Int64("purchases", purchases), slog.Int64("sales", sales))
	return &dto.OverdueScanResponse{Purchases: purchases, Sales: sales}, nil
}
