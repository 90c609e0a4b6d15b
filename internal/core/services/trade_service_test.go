package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/core/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TradeServiceTestSuite struct {
	suite.Suite
	purchaseRepo *MockPurchaseRepository
	salesRepo    *MockSalesRepository
	partyRepo    *MockPartyRepository
	cache        *MockReportCache
	purchases    portssvc.PurchaseSvcFacade
	sales        portssvc.SalesSvcFacade

	ctx    context.Context
	now    time.Time
	userID string
}

func (suite *TradeServiceTestSuite) SetupTest() {
	suite.purchaseRepo = new(MockPurchaseRepository)
	suite.salesRepo = new(MockSalesRepository)
	suite.partyRepo = new(MockPartyRepository)
	suite.cache = new(MockReportCache)
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	suite.userID = "accountant-1"

	opts := []services.TradeOption{
		services.WithClock(func() time.Time { return suite.now }),
		services.WithTradeOptions(services.WithAuthorizer(staffAuthorizer(suite.userID)), services.WithReportCache(suite.cache)),
	}
	suite.purchases = services.NewPurchaseService(suite.purchaseRepo, suite.partyRepo, opts...)
	suite.sales = services.NewSalesService(suite.salesRepo, suite.partyRepo, opts...)
}

func TestTradeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TradeServiceTestSuite))
}

func flourBill() dto.CreatePurchaseRequest {
	return dto.CreatePurchaseRequest{
		BillNumber:    "B-001",
		SupplierID:    "sup-1",
		BillDate:      dto.Date{Time: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		Items:         []dto.LineItemRequest{{Description: "Flour", Quantity: d("10"), UnitPrice: d("100"), Amount: d("1000")}},
		PaymentMethod: "cash",
		AmountsRequest: dto.AmountsRequest{
			Subtotal: d("1000"), DiscountAmount: decimal.Zero, TaxableAmount: d("1000"),
			VATAmount: d("130"), TotalAmount: d("1130"),
		},
	}
}

func (suite *TradeServiceTestSuite) supplier() {
	suite.partyRepo.On("FindPartyByID", mock.Anything, "sup-1").
		Return(&domain.PartyLedger{PartyID: "sup-1", PartyType: domain.PartySupplier, IsActive: true}, nil).Once()
}

func (suite *TradeServiceTestSuite) TestCreatePurchase_CashIsPaid() {
	suite.supplier()
	suite.purchaseRepo.On("SavePurchase", mock.Anything, mock.MatchedBy(func(p domain.PurchaseEntry) bool {
		return p.Status == domain.StatusPaid && p.PaymentMethod == domain.PaymentCash && p.PurchaseID != ""
	})).Return(nil).Once()
	suite.cache.On("Bump", mock.Anything).Return(nil).Once()

	purchase, err := suite.purchases.CreatePurchase(suite.ctx, flourBill(), suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, purchase.Status)
	suite.Equal(suite.now, purchase.CreatedAt)
	suite.purchaseRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestCreatePurchase_CreditIsPending() {
	req := flourBill()
	req.PaymentMethod = "CREDIT"
	req.DueDate = &dto.Date{Time: suite.now.AddDate(0, 0, 30)}
	suite.supplier()
	suite.purchaseRepo.On("SavePurchase", mock.Anything, mock.AnythingOfType("domain.PurchaseEntry")).Return(nil).Once()
	suite.cache.On("Bump", mock.Anything).Return(nil).Once()

	purchase, err := suite.purchases.CreatePurchase(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPending, purchase.Status)
}

func (suite *TradeServiceTestSuite) TestCreatePurchase_VATMismatch() {
	req := flourBill()
	req.VATAmount = d("100")
	req.TotalAmount = d("1100")

	_, err := suite.purchases.CreatePurchase(suite.ctx, req, suite.userID)

	errs, ok := validation.AsErrors(err)
	suite.Require().True(ok)
	suite.Equal([]string{"VAT amount should be 130.00, but got 100"}, errs["vatAmount"])
	suite.purchaseRepo.AssertNotCalled(suite.T(), "SavePurchase", mock.Anything, mock.Anything)
}

func (suite *TradeServiceTestSuite) TestCreatePurchase_WrongCounterparty() {
	suite.partyRepo.On("FindPartyByID", mock.Anything, "sup-1").
		Return(&domain.PartyLedger{PartyID: "sup-1", PartyType: domain.PartyCustomer, IsActive: true}, nil).Once()

	_, err := suite.purchases.CreatePurchase(suite.ctx, flourBill(), suite.userID)

	errs, ok := validation.AsErrors(err)
	suite.Require().True(ok)
	suite.Equal([]string{"must reference a SUPPLIER party"}, errs["supplierID"])
}

func (suite *TradeServiceTestSuite) TestCreatePurchase_MissingSupplier() {
	suite.partyRepo.On("FindPartyByID", mock.Anything, "sup-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.purchases.CreatePurchase(suite.ctx, flourBill(), suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TradeServiceTestSuite) TestCreatePurchase_DuplicateBill() {
	suite.supplier()
	suite.purchaseRepo.On("SavePurchase", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.purchases.CreatePurchase(suite.ctx, flourBill(), suite.userID)

	errs, ok := validation.AsErrors(err)
	suite.Require().True(ok)
	suite.Contains(errs, "billNumber")
	suite.cache.AssertNotCalled(suite.T(), "Bump", mock.Anything)
}

func (suite *TradeServiceTestSuite) TestMarkPurchasePaid() {
	suite.purchaseRepo.On("FindPurchaseByID", mock.Anything, "p-1").
		Return(&domain.PurchaseEntry{PurchaseID: "p-1", Status: domain.StatusOverdue}, nil).Once()
	suite.purchaseRepo.On("UpdatePurchaseStatus", mock.Anything, "p-1",
		[]domain.SettlementStatus{domain.StatusPending, domain.StatusOverdue}, domain.StatusPaid, suite.userID, suite.now).Return(nil).Once()

	purchase, err := suite.purchases.MarkPurchasePaid(suite.ctx, "p-1", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusPaid, purchase.Status)
	suite.purchaseRepo.AssertExpectations(suite.T())
}

func (suite *TradeServiceTestSuite) TestMarkPurchasePaid_AlreadyPaid() {
	suite.purchaseRepo.On("FindPurchaseByID", mock.Anything, "p-1").
		Return(&domain.PurchaseEntry{PurchaseID: "p-1", Status: domain.StatusPaid}, nil).Once()

	_, err := suite.purchases.MarkPurchasePaid(suite.ctx, "p-1", suite.userID)

	suite.ErrorIs(err, services.ErrNotSettleable)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *TradeServiceTestSuite) TestMarkSalePaid_LostRace() {
	suite.salesRepo.On("FindSaleByID", mock.Anything, "s-1").
		Return(&domain.SalesEntry{SalesID: "s-1", Status: domain.StatusPending}, nil).Once()
	suite.salesRepo.On("UpdateSaleStatus", mock.Anything, "s-1", mock.Anything, domain.StatusPaid, suite.userID, suite.now).
		Return(apperrors.ErrConflict).Once()

	_, err := suite.sales.MarkSalePaid(suite.ctx, "s-1", suite.userID)

	suite.ErrorIs(err, services.ErrNotSettleable)
}

func (suite *TradeServiceTestSuite) TestCreateSale_DuplicateInvoice() {
	bill := flourBill()
	req := dto.CreateSaleRequest{
		InvoiceNumber:  "INV-1",
		CustomerID:     "cus-1",
		InvoiceDate:    bill.BillDate,
		Items:          bill.Items,
		PaymentMethod:  "BANK",
		AmountsRequest: bill.AmountsRequest,
	}
	suite.partyRepo.On("FindPartyByID", mock.Anything, "cus-1").
		Return(&domain.PartyLedger{PartyID: "cus-1", PartyType: domain.PartyCustomer, IsActive: true}, nil).Once()
	suite.salesRepo.On("SaveSale", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.sales.CreateSale(suite.ctx, req, suite.userID)

	errs, ok := validation.AsErrors(err)
	suite.Require().True(ok)
	suite.Equal([]string{"invoice number already used"}, errs["invoiceNumber"])
}

func (suite *TradeServiceTestSuite) TestListPurchases_InvertedRange() {
	from := suite.now
	to := suite.now.AddDate(0, 0, -1)

	_, err := suite.purchases.ListPurchases(suite.ctx, dto.ListTradeParams{FromDate: &from, ToDate: &to}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TradeServiceTestSuite) TestOverdueScan() {
	suite.purchaseRepo.On("MarkOverduePurchases", mock.Anything, suite.now).Return(int64(2), nil).Once()
	suite.salesRepo.On("MarkOverdueSales", mock.Anything, suite.now).Return(int64(3), nil).Once()

	admin := new(MockAuthorizer)
	admin.On("AuthorizeUserAction", mock.Anything, "admin-1", mock.Anything).
		Return(&domain.User{UserID: "admin-1", Role: domain.RoleAdmin, IsActive: true}, nil).Once()
	scanner := services.NewOverdueScanner(suite.purchases, suite.sales, services.WithAuthorizer(admin))

	resp, err := scanner.ScanOverdue(suite.ctx, "admin-1")

	suite.Require().NoError(err)
	suite.Equal(int64(2), resp.Purchases)
	suite.Equal(int64(3), resp.Sales)
}
