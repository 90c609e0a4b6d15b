package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/handlers"
	"github.com/SscSPs/distributor_ledger_app/internal/platform/config"
	"github.com/SscSPs/distributor_ledger_app/internal/utils"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret-key-that-is-long-enough"

// RouterTestSuite drives the full router, middleware chain included, against mocked services.
type RouterTestSuite struct {
	suite.Suite
	cfg    *config.Config
	router *gin.Engine

	users       *MockUserService
	tokens      *MockTokenService
	accounts    *MockAccountService
	ledger      *MockLedgerService
	journals    *MockJournalService
	parties     *MockPartyService
	purchases   *MockPurchaseService
	sales       *MockSalesService
	overdue     *MockOverdueScanner
	reports     *MockReportingService
	distributor *MockDistributorService
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.cfg = &config.Config{
		JWTSecret:          testSecret,
		JWTExpiryDuration:  time.Hour,
		JWTIssuer:          "dla-test",
		AuthRateLimit:      "100-M",
		APIRateLimit:       "1000-M",
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	}
	s.users = new(MockUserService)
	s.tokens = new(MockTokenService)
	s.accounts = new(MockAccountService)
	s.ledger = new(MockLedgerService)
	s.journals = new(MockJournalService)
	s.parties = new(MockPartyService)
	s.purchases = new(MockPurchaseService)
	s.sales = new(MockSalesService)
	s.overdue = new(MockOverdueScanner)
	s.reports = new(MockReportingService)
	s.distributor = new(MockDistributorService)
	s.router = s.newRouter(nil)
}

func (s *RouterTestSuite) TearDownTest() {
	for _, m := range []interface{ AssertExpectations(mock.TestingT) bool }{
		s.users, s.tokens, s.accounts, s.ledger, s.journals, s.parties,
		s.purchases, s.sales, s.overdue, s.reports, s.distributor,
	} {
		m.AssertExpectations(s.T())
	}
}

func (s *RouterTestSuite) newRouter(db handlers.Pinger) *gin.Engine {
	services := &portssvc.ServiceContainer{
		Account:     s.accounts,
		Journal:     s.journals,
		Ledger:      s.ledger,
		Party:       s.parties,
		Purchase:    s.purchases,
		Sales:       s.sales,
		Overdue:     s.overdue,
		Reporting:   s.reports,
		Distributor: s.distributor,
		User:        s.users,
		Token:       s.tokens,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := handlers.NewRouter(s.cfg, services, db, nil, logger)
	s.Require().NoError(err)
	return r
}

func (s *RouterTestSuite) token(userID string, role domain.UserRole) string {
	tok, err := utils.GenerateJWT(userID, string(role), testSecret, time.Hour, "dla-test")
	s.Require().NoError(err)
	return tok
}

// do sends a request; a non-empty userID authenticates it as an accountant.
func (s *RouterTestSuite) do(method, path, userID string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(userID, domain.RoleAccountant))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterTestSuite) decode(w *httptest.ResponseRecorder, dest any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), dest), w.Body.String())
}

func (s *RouterTestSuite) errorBody(w *httptest.ResponseRecorder) handlers.ErrorResponse {
	var body handlers.ErrorResponse
	s.decode(w, &body)
	return body
}

// --- Health, auth middleware, CORS ---

func (s *RouterTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())
	s.NotEmpty(w.Header().Get("X-Request-ID"))
}

func (s *RouterTestSuite) TestHealth_DatabaseDown() {
	s.router = s.newRouter(pinger{err: errors.New("connection refused")})
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusServiceUnavailable, w.Code)
}

func (s *RouterTestSuite) TestMissingToken() {
	w := s.do(http.MethodGet, "/api/v1/accounts", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestTokenSignedWithOtherSecret() {
	tok, err := utils.GenerateJWT("u-1", "ADMIN", "another-secret", time.Hour, "dla-test")
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/accounts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func (s *RouterTestSuite) TestSecurityHeaders() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal("DENY", w.Header().Get("X-Frame-Options"))
	s.Equal("nosniff", w.Header().Get("X-Content-Type-Options"))
}

// --- Auth ---

func (s *RouterTestSuite) TestLogin() {
	user := &domain.User{UserID: "u-1", Username: "ramesh", Name: "Ramesh", Role: domain.RoleAccountant, IsActive: true}
	expires := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s.users.On("AuthenticateUser", mock.Anything, "ramesh", "s3cretpass").Return(user, nil).Once()
	s.tokens.On("GenerateAccessToken", mock.Anything, user).Return("signed.jwt.token", expires, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "ramesh", "password": "s3cretpass"})

	s.Equal(http.StatusOK, w.Code)
	var body struct {
		Token     string    `json:"token"`
		TokenType string    `json:"tokenType"`
		ExpiresAt time.Time `json:"expiresAt"`
		User      struct {
			UserID string `json:"userID"`
			Role   string `json:"role"`
		} `json:"user"`
	}
	s.decode(w, &body)
	s.Equal("signed.jwt.token", body.Token)
	s.Equal("Bearer", body.TokenType)
	s.True(expires.Equal(body.ExpiresAt))
	s.Equal("ACCOUNTANT", body.User.Role)
	s.NotContains(w.Body.String(), "password")
}

func (s *RouterTestSuite) TestLogin_InvalidCredentials() {
	s.users.On("AuthenticateUser", mock.Anything, "ramesh", "wrong").
		Return(nil, fmt.Errorf("%w: invalid username or password", apperrors.ErrUnauthorized)).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "ramesh", "password": "wrong"})

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Contains(s.errorBody(w).Error, "invalid username or password")
}

func (s *RouterTestSuite) TestLogin_MissingFields() {
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "ramesh"})

	s.Equal(http.StatusBadRequest, w.Code)
	body := s.errorBody(w)
	s.Equal([]string{"is required"}, body.Fields["password"])
}

func (s *RouterTestSuite) TestLogin_RateLimited() {
	s.cfg.AuthRateLimit = "2-M"
	s.router = s.newRouter(nil)
	s.users.On("AuthenticateUser", mock.Anything, "ramesh", "wrong").Return(nil, apperrors.ErrUnauthorized).Twice()

	creds := map[string]string{"username": "ramesh", "password": "wrong"}
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)
	s.Equal(http.StatusTooManyRequests, s.do(http.MethodPost, "/api/v1/auth/login", "", creds).Code)
}

func (s *RouterTestSuite) TestRegister_FieldErrors() {
	s.users.On("Register", mock.Anything, mock.Anything).
		Return(nil, validation.Errors{"confirmPassword": {"must match password"}}).Once()

	w := s.do(http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "sita", "name": "Sita", "password": "s3cretpass", "confirmPassword": "other",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	body := s.errorBody(w)
	s.Equal("Validation failed", body.Error)
	s.Equal([]string{"must match password"}, body.Fields["confirmPassword"])
}

// --- Users ---

func (s *RouterTestSuite) TestGetMe() {
	s.users.On("GetUserByID", mock.Anything, "u-7").
		Return(&domain.User{UserID: "u-7", Username: "hari", Role: domain.RoleDistributor, IsActive: true}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/users/me", "u-7", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"username":"hari"`)
}

func (s *RouterTestSuite) TestCreateUser_Forbidden() {
	s.users.On("CreateUser", mock.Anything, mock.Anything, "u-1").
		Return(nil, fmt.Errorf("%w: requires ADMIN", apperrors.ErrForbidden)).Once()

	w := s.do(http.MethodPost, "/api/v1/users", "u-1", map[string]string{
		"username": "clerk1", "name": "Clerk", "password": "s3cretpass", "role": "ACCOUNTANT",
	})

	s.Equal(http.StatusForbidden, w.Code)
}

// --- Accounts and ledger ---

func (s *RouterTestSuite) TestCreateAccount() {
	s.accounts.On("CreateAccount", mock.Anything, mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
		acc := r.ToDomain()
		return acc.Code == "1000" && acc.AccountType == domain.Asset
	}), "u-1").Return(&domain.Account{AccountID: "a-1", Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.DebitBalance, IsActive: true}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/accounts", "u-1", map[string]any{"code": "1000", "name": "Cash", "type": "asset", "openingBalance": "0"})

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"normalBalance":"DEBIT"`)
}

func (s *RouterTestSuite) TestCreateAccount_Duplicate() {
	s.accounts.On("CreateAccount", mock.Anything, mock.Anything, "u-1").
		Return(nil, fmt.Errorf("%w: account code 1000", apperrors.ErrDuplicate)).Once()

	w := s.do(http.MethodPost, "/api/v1/accounts", "u-1", map[string]any{"code": "1000", "name": "Cash", "type": "ASSET"})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterTestSuite) TestCreateAccount_BindRejectsMalformedCode() {
	w := s.do(http.MethodPost, "/api/v1/accounts", "u-1", map[string]any{"code": "10A", "type": "ASSET"})

	s.Equal(http.StatusBadRequest, w.Code)
	fields := s.errorBody(w).Fields
	s.Equal([]string{"must be 4 to 10 digits"}, fields["code"])
	s.Equal([]string{"is required"}, fields["name"])
	s.accounts.AssertNotCalled(s.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestCreateParty_BindRejectsContactFormats() {
	w := s.do(http.MethodPost, "/api/v1/parties", "u-1", map[string]any{
		"partyName": "Himal Traders", "partyType": "SUPPLIER", "taxID": "12345", "phone": "abc", "email": "nope",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	fields := s.errorBody(w).Fields
	s.Equal([]string{"must be exactly 9 digits"}, fields["taxID"])
	s.Equal([]string{"must be a valid phone number"}, fields["phone"])
	s.Equal([]string{"must be a valid email address"}, fields["email"])
	s.parties.AssertNotCalled(s.T(), "CreateParty", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestCreatePurchase_BindChecksItems() {
	w := s.do(http.MethodPost, "/api/v1/purchases", "u-1", map[string]any{
		"billNumber": "B-001", "supplierID": "sup-1", "billDate": "2025-02-01", "paymentMethod": "CASH",
		"items": []map[string]any{{"quantity": "1", "unitPrice": "10", "amount": "10"}},
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal([]string{"is required"}, s.errorBody(w).Fields["items[0].description"])
	s.purchases.AssertNotCalled(s.T(), "CreatePurchase", mock.Anything, mock.Anything, mock.Anything)
}

func (s *RouterTestSuite) TestListAccounts_Filters() {
	s.accounts.On("ListAccounts", mock.Anything, mock.MatchedBy(func(p dto.ListAccountsParams) bool {
		return p.Type == "EXPENSE" && p.Active != nil && *p.Active
	}), "u-1").Return([]domain.Account{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts?type=EXPENSE&active=true", "u-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"accounts":[]}`, w.Body.String())
}

func (s *RouterTestSuite) TestDeactivateAccount_NotFound() {
	s.accounts.On("DeactivateAccount", mock.Anything, "9999", "u-1").Return(apperrors.ErrNotFound).Once()

	w := s.do(http.MethodPost, "/api/v1/accounts/9999/deactivate", "u-1", nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterTestSuite) TestAccountBalance_AsOf() {
	asOf := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	s.ledger.On("GetAccountBalance", mock.Anything, "1000", mock.MatchedBy(func(t *time.Time) bool {
		return t != nil && t.Equal(asOf)
	}), "u-1").Return(&domain.LedgerBalance{Code: "1000", Name: "Cash", NormalBalance: domain.DebitBalance, BalanceType: domain.DebitBalance, AsOf: &asOf}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts/1000/balance?asOf=2025-03-31", "u-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"asOf":"2025-03-31"`)
}

func (s *RouterTestSuite) TestAccountBalance_BadDate() {
	w := s.do(http.MethodGet, "/api/v1/accounts/1000/balance?asOf=31-03-2025", "u-1", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorBody(w).Fields, "asOf")
}

func (s *RouterTestSuite) TestPartyBalance_AllTime() {
	s.ledger.On("GetPartyBalance", mock.Anything, "sup-1", (*time.Time)(nil), "u-1").
		Return(&domain.LedgerBalance{Code: "sup-1", Name: "Himal Traders", NormalBalance: domain.CreditBalance, BalanceType: domain.CreditBalance}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/parties/sup-1/balance", "u-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"partyID":"sup-1"`)
}

// --- Journals ---

func balancedEntry() map[string]any {
	return map[string]any{
		"date":        "2025-01-15",
		"description": "Opening cash",
		"entries": []map[string]any{
			{"accountCode": "1000", "debitAmount": "100", "creditAmount": "0"},
			{"accountCode": "3000", "debitAmount": "0", "creditAmount": "100"},
		},
	}
}

func (s *RouterTestSuite) TestCreateJournal() {
	entry := &domain.JournalEntry{JournalID: "j-1", EntryDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), Description: "Opening cash", Status: domain.Draft}
	s.journals.On("CreateJournal", mock.Anything, mock.MatchedBy(func(r dto.CreateJournalRequest) bool {
		j := r.ToDomain()
		return len(j.Lines) == 2 && j.Lines[0].LineNumber == 1 && j.EntryDate.Day() == 15
	}), "u-1").Return(entry, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journals", "u-1", balancedEntry())

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"status":"DRAFT"`)
	s.Contains(w.Body.String(), `"date":"2025-01-15"`)
}

func (s *RouterTestSuite) TestCreateJournal_Unbalanced() {
	s.journals.On("CreateJournal", mock.Anything, mock.Anything, "u-1").
		Return(nil, validation.Errors{"entries": {"total debits must equal total credits (difference 10.00)"}}).Once()

	w := s.do(http.MethodPost, "/api/v1/journals", "u-1", balancedEntry())

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorBody(w).Fields["entries"][0], "difference 10.00")
}

func (s *RouterTestSuite) TestCreateJournal_MalformedDate() {
	body := balancedEntry()
	body["date"] = "15/01/2025"

	w := s.do(http.MethodPost, "/api/v1/journals", "u-1", body)

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterTestSuite) TestValidateJournal() {
	s.journals.On("ValidateJournal", mock.Anything, mock.Anything, "u-1").
		Return(&dto.JournalValidationResponse{Valid: true, TotalDebit: decimal.NewFromInt(100), TotalCredit: decimal.NewFromInt(100)}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journals/validate", "u-1", balancedEntry())

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"valid":true`)
}

func (s *RouterTestSuite) TestListJournals() {
	s.journals.On("ListJournals", mock.Anything, mock.MatchedBy(func(p dto.ListJournalsParams) bool {
		return p.Status != nil && *p.Status == domain.Posted &&
			p.FromDate != nil && p.FromDate.Month() == time.January &&
			p.ToDate == nil && p.Limit == 5 && p.NextToken != nil && *p.NextToken == "abc"
	}), "u-1").Return(&dto.ListJournalsResponse{Journals: []dto.JournalResponse{}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/journals?status=posted&fromDate=2025-01-01&limit=5&nextToken=abc", "u-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"journals":[]}`, w.Body.String())
}

func (s *RouterTestSuite) TestListJournals_BadFilters() {
	w := s.do(http.MethodGet, "/api/v1/journals?status=VOID&toDate=tomorrow", "u-1", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	fields := s.errorBody(w).Fields
	s.Contains(fields, "status")
	s.Contains(fields, "toDate")
}

func (s *RouterTestSuite) TestPostJournal_NotDraft() {
	s.journals.On("PostJournal", mock.Anything, "j-1", "u-1").
		Return(nil, fmt.Errorf("%w: journal entry is not a draft", apperrors.ErrConflict)).Once()

	w := s.do(http.MethodPost, "/api/v1/journals/j-1/post", "u-1", nil)

	s.Equal(http.StatusConflict, w.Code)
	s.Contains(s.errorBody(w).Error, "not a draft")
}

func (s *RouterTestSuite) TestReverseJournal_NoBody() {
	orig := "j-1"
	s.journals.On("ReverseJournal", mock.Anything, "j-1", (*time.Time)(nil), "", "u-1").
		Return(&domain.JournalEntry{JournalID: "j-2", Status: domain.Posted, OriginalJournalID: &orig}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journals/j-1/reverse", "u-1", nil)

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"originalJournalID":"j-1"`)
}

func (s *RouterTestSuite) TestReverseJournal_WithDate() {
	s.journals.On("ReverseJournal", mock.Anything, "j-1", mock.MatchedBy(func(t *time.Time) bool {
		return t != nil && t.Equal(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	}), "Correction", "u-1").Return(&domain.JournalEntry{JournalID: "j-2", Status: domain.Posted}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/journals/j-1/reverse", "u-1", map[string]string{"date": "2025-02-01", "description": "Correction"})

	s.Equal(http.StatusCreated, w.Code)
}

func (s *RouterTestSuite) TestDeleteJournal() {
	s.journals.On("DeleteDraft", mock.Anything, "j-1", "u-1").Return(nil).Once()

	w := s.do(http.MethodDelete, "/api/v1/journals/j-1", "u-1", nil)

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *RouterTestSuite) TestGetJournal_InternalError() {
	s.journals.On("GetJournalByID", mock.Anything, "j-1", "u-1").Return(nil, errors.New("connection reset")).Once()

	w := s.do(http.MethodGet, "/api/v1/journals/j-1", "u-1", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to retrieve journal", s.errorBody(w).Error)
}

// --- Purchases, sales, overdue scan ---

func (s *RouterTestSuite) TestListPurchases_Filters() {
	s.purchases.On("ListPurchases", mock.Anything, mock.MatchedBy(func(p dto.ListTradeParams) bool {
		return p.Status != nil && *p.Status == domain.StatusOverdue &&
			p.PartyID != nil && *p.PartyID == "sup-1" && p.Limit == 20 && p.Offset == 0
	}), "u-1").Return([]domain.PurchaseEntry{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/purchases?status=overdue&partyID=sup-1", "u-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"purchases":[]}`, w.Body.String())
}

func (s *RouterTestSuite) TestListSales_BadStatus() {
	w := s.do(http.MethodGet, "/api/v1/sales?status=LATE", "u-1", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorBody(w).Fields, "status")
}

func (s *RouterTestSuite) TestPaySale_AlreadyPaid() {
	s.sales.On("MarkSalePaid", mock.Anything, "s-1", "u-1").
		Return(nil, fmt.Errorf("%w: only PENDING or OVERDUE documents can be marked paid", apperrors.ErrConflict)).Once()

	w := s.do(http.MethodPost, "/api/v1/sales/s-1/pay", "u-1", nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *RouterTestSuite) TestOverdueScan() {
	s.overdue.On("ScanOverdue", mock.Anything, "admin-1").Return(&dto.OverdueScanResponse{Purchases: 2, Sales: 1}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/purchases/overdue-scan", "admin-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"purchases":2,"sales":1}`, w.Body.String())
}

// --- Reports ---

func (s *RouterTestSuite) TestTrialBalance() {
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	s.reports.On("GetTrialBalance", mock.Anything, asOf, "u-1").
		Return(&domain.TrialBalanceReport{AsOf: asOf, IsBalanced: true}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/trial-balance?asOf=2025-06-30", "u-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"rows":[]`)
	s.Contains(w.Body.String(), `"isBalanced":true`)
}

func (s *RouterTestSuite) TestTrialBalance_DefaultsToToday() {
	s.reports.On("GetTrialBalance", mock.Anything, mock.MatchedBy(func(t time.Time) bool {
		return t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0
	}), "u-1").Return(&domain.TrialBalanceReport{IsBalanced: true}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/trial-balance", "u-1", nil)

	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterTestSuite) TestVATSummary_MissingQuarter() {
	w := s.do(http.MethodGet, "/api/v1/reports/vat-summary?year=2025", "u-1", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal([]string{"is required"}, s.errorBody(w).Fields["quarter"])
}

func (s *RouterTestSuite) TestVATSummary_Forwarded() {
	s.reports.On("GetVATSummary", mock.Anything, 2025, 5, "u-1").
		Return(nil, validation.Errors{"quarter": {"must be between 1 and 4"}}).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/vat-summary?year=2025&quarter=5", "u-1", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorBody(w).Fields, "quarter")
}

// --- Distributor applications ---

func (s *RouterTestSuite) TestSubmitApplication_PassesRawBody() {
	form := `{"business":{"businessName":"Koshi Distributors"},"termsAccepted":true}`
	s.distributor.On("SubmitApplication", mock.Anything, []byte(form), "d-1").
		Return(&domain.DistributorApplication{ApplicationID: "app-1", ApplicantUserID: "d-1", Status: domain.ApplicationPending}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/distributor-applications", "d-1", form)

	s.Equal(http.StatusCreated, w.Code)
	s.Contains(w.Body.String(), `"status":"PENDING"`)
	s.Contains(w.Body.String(), `"documents":[]`)
}

func (s *RouterTestSuite) TestListMyApplications_RoutesBeforeID() {
	s.distributor.On("ListMyApplications", mock.Anything, "d-1").Return([]domain.DistributorApplication{}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/distributor-applications/mine", "d-1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"applications":[]}`, w.Body.String())
}

func (s *RouterTestSuite) TestTransitionStatus_Invalid() {
	s.distributor.On("TransitionStatus", mock.Anything, "app-1", mock.Anything, "admin-1").
		Return(nil, validation.Errors{"status": {"cannot change status from APPROVED to REJECTED"}}).Once()

	w := s.do(http.MethodPost, "/api/v1/distributor-applications/app-1/status", "admin-1", map[string]string{"status": "REJECTED", "reviewNotes": "late"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal([]string{"cannot change status from APPROVED to REJECTED"}, s.errorBody(w).Fields["status"])
}

func (s *RouterTestSuite) TestTransitionStatus_StatusRequired() {
	w := s.do(http.MethodPost, "/api/v1/distributor-applications/app-1/status", "admin-1", map[string]string{"reviewNotes": "ok"})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(s.errorBody(w).Fields, "status")
}
