package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// result unpacks a (pointer, error) pair from a mock call.
func result[T any](args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func sliceResult[T any](args mock.Arguments) ([]T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

// --- Users and tokens ---

type MockUserService struct{ mock.Mock }

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return result[domain.User](m.Called(ctx, userID))
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	return result[domain.User](m.Called(ctx, req))
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest, requestingUserID string) (*domain.User, error) {
	return result[domain.User](m.Called(ctx, req, requestingUserID))
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, username, password string) (*domain.User, bool, error) {
	args := m.Called(ctx, username, password)
	u, err := result[domain.User](mock.Arguments{args.Get(0), args.Error(2)})
	return u, args.Bool(1), err
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	return result[domain.User](m.Called(ctx, username, password))
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

type MockTokenService struct{ mock.Mock }

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

var _ portssvc.TokenSvc = (*MockTokenService)(nil)

// --- Accounts and ledger ---

type MockAccountService struct{ mock.Mock }

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string, userID string) (*domain.Account, error) {
	return result[domain.Account](m.Called(ctx, code, userID))
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams, userID string) ([]domain.Account, error) {
	return sliceResult[domain.Account](m.Called(ctx, params, userID))
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	return result[domain.Account](m.Called(ctx, req, userID))
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	return result[domain.Account](m.Called(ctx, code, req, userID))
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	return m.Called(ctx, code, userID).Error(0)
}

func (m *MockAccountService) BootstrapChart(ctx context.Context, accounts []domain.Account, userID string) (int, error) {
	args := m.Called(ctx, accounts, userID)
	return args.Int(0), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

type MockLedgerService struct{ mock.Mock }

func (m *MockLedgerService) GetAccountBalance(ctx context.Context, code string, asOf *time.Time, userID string) (*domain.LedgerBalance, error) {
	return result[domain.LedgerBalance](m.Called(ctx, code, asOf, userID))
}

func (m *MockLedgerService) GetPartyBalance(ctx context.Context, partyID string, asOf *time.Time, userID string) (*domain.LedgerBalance, error) {
	return result[domain.LedgerBalance](m.Called(ctx, partyID, asOf, userID))
}

func (m *MockLedgerService) ListAccountStatement(ctx context.Context, code string, params dto.ListStatementParams, userID string) (*dto.AccountStatementResponse, error) {
	return result[dto.AccountStatementResponse](m.Called(ctx, code, params, userID))
}

var _ portssvc.LedgerSvc = (*MockLedgerService)(nil)

// --- Journals ---

type MockJournalService struct{ mock.Mock }

func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	return result[domain.JournalEntry](m.Called(ctx, journalID, userID))
}

func (m *MockJournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams, userID string) (*dto.ListJournalsResponse, error) {
	return result[dto.ListJournalsResponse](m.Called(ctx, params, userID))
}

func (m *MockJournalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	return result[domain.JournalEntry](m.Called(ctx, req, userID))
}

func (m *MockJournalService) UpdateDraft(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error) {
	return result[domain.JournalEntry](m.Called(ctx, journalID, req, userID))
}

func (m *MockJournalService) DeleteDraft(ctx context.Context, journalID string, userID string) error {
	return m.Called(ctx, journalID, userID).Error(0)
}

func (m *MockJournalService) PostJournal(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	return result[domain.JournalEntry](m.Called(ctx, journalID, userID))
}

func (m *MockJournalService) ReverseJournal(ctx context.Context, journalID string, date *time.Time, description string, userID string) (*domain.JournalEntry, error) {
	return result[domain.JournalEntry](m.Called(ctx, journalID, date, description, userID))
}

func (m *MockJournalService) ValidateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*dto.JournalValidationResponse, error) {
	return result[dto.JournalValidationResponse](m.Called(ctx, req, userID))
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Parties ---

type MockPartyService struct{ mock.Mock }

func (m *MockPartyService) GetPartyByID(ctx context.Context, partyID string, userID string) (*domain.PartyLedger, error) {
	return result[domain.PartyLedger](m.Called(ctx, partyID, userID))
}

func (m *MockPartyService) ListParties(ctx context.Context, params dto.ListPartiesParams, userID string) ([]domain.PartyLedger, error) {
	return sliceResult[domain.PartyLedger](m.Called(ctx, params, userID))
}

func (m *MockPartyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.PartyLedger, error) {
	return result[domain.PartyLedger](m.Called(ctx, req, userID))
}

func (m *MockPartyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.PartyLedger, error) {
	return result[domain.PartyLedger](m.Called(ctx, partyID, req, userID))
}

func (m *MockPartyService) DeactivateParty(ctx context.Context, partyID string, userID string) error {
	return m.Called(ctx, partyID, userID).Error(0)
}

var _ portssvc.PartySvcFacade = (*MockPartyService)(nil)

// --- Purchases and sales ---

type MockPurchaseService struct{ mock.Mock }

func (m *MockPurchaseService) CreatePurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseEntry, error) {
	return result[domain.PurchaseEntry](m.Called(ctx, req, userID))
}

func (m *MockPurchaseService) GetPurchaseByID(ctx context.Context, purchaseID string, userID string) (*domain.PurchaseEntry, error) {
	return result[domain.PurchaseEntry](m.Called(ctx, purchaseID, userID))
}

func (m *MockPurchaseService) ListPurchases(ctx context.Context, params dto.ListTradeParams, userID string) ([]domain.PurchaseEntry, error) {
	return sliceResult[domain.PurchaseEntry](m.Called(ctx, params, userID))
}

func (m *MockPurchaseService) MarkPurchasePaid(ctx context.Context, purchaseID string, userID string) (*domain.PurchaseEntry, error) {
	return result[domain.PurchaseEntry](m.Called(ctx, purchaseID, userID))
}

func (m *MockPurchaseService) MarkOverdue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.PurchaseSvcFacade = (*MockPurchaseService)(nil)

type MockSalesService struct{ mock.Mock }

func (m *MockSalesService) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.SalesEntry, error) {
	return result[domain.SalesEntry](m.Called(ctx, req, userID))
}

func (m *MockSalesService) GetSaleByID(ctx context.Context, salesID string, userID string) (*domain.SalesEntry, error) {
	return result[domain.SalesEntry](m.Called(ctx, salesID, userID))
}

func (m *MockSalesService) ListSales(ctx context.Context, params dto.ListTradeParams, userID string) ([]domain.SalesEntry, error) {
	return sliceResult[domain.SalesEntry](m.Called(ctx, params, userID))
}

func (m *MockSalesService) MarkSalePaid(ctx context.Context, salesID string, userID string) (*domain.SalesEntry, error) {
	return result[domain.SalesEntry](m.Called(ctx, salesID, userID))
}

func (m *MockSalesService) MarkOverdue(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.SalesSvcFacade = (*MockSalesService)(nil)

type MockOverdueScanner struct{ mock.Mock }

func (m *MockOverdueScanner) ScanOverdue(ctx context.Context, userID string) (*dto.OverdueScanResponse, error) {
	return result[dto.OverdueScanResponse](m.Called(ctx, userID))
}

func (m *MockOverdueScanner) RunScan(ctx context.Context) (*dto.OverdueScanResponse, error) {
	return result[dto.OverdueScanResponse](m.Called(ctx))
}

var _ portssvc.OverdueScanner = (*MockOverdueScanner)(nil)

// --- Reports ---

type MockReportingService struct{ mock.Mock }

func (m *MockReportingService) GetTrialBalance(ctx context.Context, asOf time.Time, userID string) (*domain.TrialBalanceReport, error) {
	return result[domain.TrialBalanceReport](m.Called(ctx, asOf, userID))
}

func (m *MockReportingService) GetBalanceSheet(ctx context.Context, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	return result[domain.BalanceSheetReport](m.Called(ctx, asOf, userID))
}

func (m *MockReportingService) GetVATSummary(ctx context.Context, year, quarter int, userID string) (*domain.VATSummary, error) {
	return result[domain.VATSummary](m.Called(ctx, year, quarter, userID))
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Distributor applications ---

type MockDistributorService struct{ mock.Mock }

func (m *MockDistributorService) SubmitApplication(ctx context.Context, raw []byte, userID string) (*domain.DistributorApplication, error) {
	return result[domain.DistributorApplication](m.Called(ctx, raw, userID))
}

func (m *MockDistributorService) UpdateApplication(ctx context.Context, applicationID string, raw []byte, userID string) (*domain.DistributorApplication, error) {
	return result[domain.DistributorApplication](m.Called(ctx, applicationID, raw, userID))
}

func (m *MockDistributorService) ListMyApplications(ctx context.Context, userID string) ([]domain.DistributorApplication, error) {
	return sliceResult[domain.DistributorApplication](m.Called(ctx, userID))
}

func (m *MockDistributorService) GetApplication(ctx context.Context, applicationID string, userID string) (*domain.DistributorApplication, error) {
	return result[domain.DistributorApplication](m.Called(ctx, applicationID, userID))
}

func (m *MockDistributorService) ListApplications(ctx context.Context, params dto.ListApplicationsParams, userID string) ([]domain.DistributorApplication, error) {
	return sliceResult[domain.DistributorApplication](m.Called(ctx, params, userID))
}

func (m *MockDistributorService) TransitionStatus(ctx context.Context, applicationID string, req dto.ApplicationStatusRequest, userID string) (*domain.DistributorApplication, error) {
	return result[domain.DistributorApplication](m.Called(ctx, applicationID, req, userID))
}

var _ portssvc.DistributorSvcFacade = (*MockDistributorService)(nil)

// pinger is a Pinger returning a fixed error.
type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }
