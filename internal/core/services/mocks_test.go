package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Transactions ---

// MockTxManager implements Begin/Commit/Rollback. Begin hands out a nil pgx.Tx;
// the repositories under test are mocks and never use it.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) BeginSnapshot(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Accounts ---

type MockAccountRepository struct {
	MockTxManager
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	return m.Called(ctx, code, userID, now).Error(0)
}

func (m *MockAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	return m.Called(ctx, tx, balanceChanges, userID, now).Error(0)
}

// --- Journals ---

type MockJournalRepository struct {
	MockTxManager
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, filter portsrepo.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), token, args.Error(2)
}

func (m *MockJournalRepository) SumAccountMovements(ctx context.Context, accountCode string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountCode, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJournalRepository) SumPartyMovements(ctx context.Context, partyID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, partyID, asOf)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJournalRepository) ListPostedLinesByAccount(ctx context.Context, accountCode string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	args := m.Called(ctx, accountCode, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntryLine), token, args.Error(2)
}

func (m *MockJournalRepository) FindJournalByIDForUpdate(ctx context.Context, tx pgx.Tx, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.JournalEntry) error {
	return m.Called(ctx, tx, journal).Error(0)
}

func (m *MockJournalRepository) ReplaceDraftInTx(ctx context.Context, tx pgx.Tx, journal domain.JournalEntry) error {
	return m.Called(ctx, tx, journal).Error(0)
}

func (m *MockJournalRepository) DeleteDraftInTx(ctx context.Context, tx pgx.Tx, journalID string) error {
	return m.Called(ctx, tx, journalID).Error(0)
}

func (m *MockJournalRepository) MarkPostedInTx(ctx context.Context, tx pgx.Tx, journalID string, userID string, now time.Time) error {
	return m.Called(ctx, tx, journalID, userID, now).Error(0)
}

func (m *MockJournalRepository) LinkReversalInTx(ctx context.Context, tx pgx.Tx, originalJournalID, reversingJournalID string, userID string, now time.Time) error {
	return m.Called(ctx, tx, originalJournalID, reversingJournalID, userID, now).Error(0)
}

// --- Parties ---

type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.PartyLedger, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartyLedger), args.Error(1)
}

func (m *MockPartyRepository) FindPartiesByIDs(ctx context.Context, partyIDs []string) (map[string]domain.PartyLedger, error) {
	args := m.Called(ctx, partyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PartyLedger), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, filter portsrepo.PartyFilter, limit int, offset int) ([]domain.PartyLedger, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartyLedger), args.Error(1)
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.PartyLedger) error {
	return m.Called(ctx, party).Error(0)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.PartyLedger) error {
	return m.Called(ctx, party).Error(0)
}

func (m *MockPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	return m.Called(ctx, partyID, userID, now).Error(0)
}

func (m *MockPartyRepository) FindPartiesByIDsForUpdate(ctx context.Context, tx pgx.Tx, partyIDs []string) (map[string]domain.PartyLedger, error) {
	args := m.Called(ctx, tx, partyIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.PartyLedger), args.Error(1)
}

func (m *MockPartyRepository) UpdatePartyBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	return m.Called(ctx, tx, balanceChanges, userID, now).Error(0)
}

// --- Trade documents ---

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.PurchaseEntry) error {
	return m.Called(ctx, purchase).Error(0)
}

func (m *MockPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.PurchaseEntry, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, filter portsrepo.TradeFilter, limit int, offset int) ([]domain.PurchaseEntry, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseEntry), args.Error(1)
}

func (m *MockPurchaseRepository) UpdatePurchaseStatus(ctx context.Context, purchaseID string, from []domain.SettlementStatus, to domain.SettlementStatus, userID string, now time.Time) error {
	return m.Called(ctx, purchaseID, from, to, userID, now).Error(0)
}

func (m *MockPurchaseRepository) MarkOverduePurchases(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockSalesRepository struct {
	mock.Mock
}

func (m *MockSalesRepository) SaveSale(ctx context.Context, sale domain.SalesEntry) error {
	return m.Called(ctx, sale).Error(0)
}

func (m *MockSalesRepository) FindSaleByID(ctx context.Context, salesID string) (*domain.SalesEntry, error) {
	args := m.Called(ctx, salesID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesEntry), args.Error(1)
}

func (m *MockSalesRepository) ListSales(ctx context.Context, filter portsrepo.TradeFilter, limit int, offset int) ([]domain.SalesEntry, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesEntry), args.Error(1)
}

func (m *MockSalesRepository) UpdateSaleStatus(ctx context.Context, salesID string, from []domain.SettlementStatus, to domain.SettlementStatus, userID string, now time.Time) error {
	return m.Called(ctx, salesID, from, to, userID, now).Error(0)
}

func (m *MockSalesRepository) MarkOverdueSales(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Reporting ---

type MockReportingRepository struct {
	MockTxManager
}

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, tx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) ListPurchaseVAT(ctx context.Context, tx pgx.Tx, from, to time.Time) ([]domain.VATDocument, error) {
	args := m.Called(ctx, tx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATDocument), args.Error(1)
}

func (m *MockReportingRepository) ListSalesVAT(ctx context.Context, tx pgx.Tx, from, to time.Time) ([]domain.VATDocument, error) {
	args := m.Called(ctx, tx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VATDocument), args.Error(1)
}

// --- Users and applications ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) FindApplicationByID(ctx context.Context, applicationID string) (*domain.DistributorApplication, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DistributorApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListApplicationsByApplicant(ctx context.Context, userID string) ([]domain.DistributorApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DistributorApplication), args.Error(1)
}

func (m *MockApplicationRepository) ListApplications(ctx context.Context, status *domain.ApplicationStatus, limit int, offset int) ([]domain.DistributorApplication, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DistributorApplication), args.Error(1)
}

func (m *MockApplicationRepository) SaveApplication(ctx context.Context, application domain.DistributorApplication) error {
	return m.Called(ctx, application).Error(0)
}

func (m *MockApplicationRepository) UpdateApplicationContent(ctx context.Context, application domain.DistributorApplication) error {
	return m.Called(ctx, application).Error(0)
}

func (m *MockApplicationRepository) UpdateApplicationStatus(ctx context.Context, applicationID string, from, to domain.ApplicationStatus, notes string, reviewerID string, now time.Time) error {
	return m.Called(ctx, applicationID, from, to, notes, reviewerID, now).Error(0)
}

// --- Collaborators ---

// MockAuthorizer implements portssvc.RoleAuthorizer.
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizeUserAction(ctx context.Context, userID string, roles ...domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, userID, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockReportCache implements portssvc.ReportCache. Fetch always computes.
type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) Version(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportCache) Bump(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockReportCache) Fetch(ctx context.Context, key string, dest any, compute func(ctx context.Context) (any, error)) error {
	return m.Called(ctx, key, dest, compute).Error(0)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}
