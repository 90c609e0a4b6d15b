package services_test

import (
	"context"
	"errors"
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

type JournalServiceTestSuite struct {
	suite.Suite
	journalRepo *MockJournalRepository
	accountRepo *MockAccountRepository
	partyRepo   *MockPartyRepository
	authorizer  *MockAuthorizer
	cache       *MockReportCache
	service     portssvc.JournalSvcFacade

	ctx    context.Context
	userID string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.journalRepo = new(MockJournalRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.partyRepo = new(MockPartyRepository)
	suite.authorizer = new(MockAuthorizer)
	suite.cache = new(MockReportCache)
	suite.service = services.NewJournalService(suite.journalRepo, suite.accountRepo, suite.partyRepo,
		services.WithAuthorizer(suite.authorizer), services.WithReportCache(suite.cache))

	suite.ctx = context.Background()
	suite.userID = "accountant-1"
	suite.authorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, mock.Anything).
		Return(&domain.User{UserID: suite.userID, Role: domain.RoleAccountant, IsActive: true}, nil).Maybe()
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

// --- Helpers ---

func cashAndCapital() map[string]domain.Account {
	return map[string]domain.Account{
		"1000": {Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.DebitBalance, IsActive: true},
		"3000": {Code: "3000", Name: "Capital", AccountType: domain.Equity, NormalBalance: domain.CreditBalance, IsActive: true},
	}
}

func openingRequest(debit, credit string) dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		Date:        dto.Date{Time: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		Description: "Opening capital",
		Entries: []dto.JournalLineRequest{
			{AccountCode: "1000", DebitAmount: d(debit), CreditAmount: decimal.Zero},
			{AccountCode: "3000", DebitAmount: decimal.Zero, CreditAmount: d(credit)},
		},
	}
}

func postedOpening() *domain.JournalEntry {
	return &domain.JournalEntry{
		JournalID:   "j-1",
		EntryDate:   time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "Opening capital",
		Status:      domain.Posted,
		Amount:      d("100"),
		Lines: []domain.JournalEntryLine{
			{LineID: "l-1", JournalID: "j-1", LineNumber: 1, AccountCode: "1000", DebitAmount: d("100"), CreditAmount: decimal.Zero},
			{LineID: "l-2", JournalID: "j-1", LineNumber: 2, AccountCode: "3000", DebitAmount: decimal.Zero, CreditAmount: d("100")},
		},
	}
}

// changesEqual matches a balance-change map by decimal value.
func changesEqual(want map[string]string) any {
	return mock.MatchedBy(func(got map[string]decimal.Decimal) bool {
		if len(got) != len(want) {
			return false
		}
		for k, v := range want {
			if !got[k].Equal(d(v)) {
				return false
			}
		}
		return true
	})
}

func (suite *JournalServiceTestSuite) expectTx(commit bool) {
	suite.journalRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.journalRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Once()
	if commit {
		suite.journalRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	}
}

func (suite *JournalServiceTestSuite) assertMocks() {
	suite.journalRepo.AssertExpectations(suite.T())
	suite.accountRepo.AssertExpectations(suite.T())
	suite.partyRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

// --- Create ---

func (suite *JournalServiceTestSuite) TestCreateJournal_Draft() {
	suite.accountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()
	suite.expectTx(true)
	suite.journalRepo.On("SaveJournalInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(j domain.JournalEntry) bool {
		return j.Status == domain.Draft && len(j.Lines) == 2 && j.PostedAt == nil
	})).Return(nil).Once()

	journal, err := suite.service.CreateJournal(suite.ctx, openingRequest("100", "100"), suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(journal.JournalID)
	suite.Equal(domain.Draft, journal.Status)
	suite.True(journal.Amount.Equal(d("100")))
	for i, line := range journal.Lines {
		suite.Equal(journal.JournalID, line.JournalID)
		suite.Equal(i+1, line.LineNumber)
		suite.NotEmpty(line.LineID)
	}
	suite.Equal(suite.userID, journal.CreatedBy)
	suite.cache.AssertNotCalled(suite.T(), "Bump", mock.Anything)
	suite.assertMocks()
}

func (suite *JournalServiceTestSuite) TestCreateJournal_PostImmediately() {
	suite.accountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()
	suite.expectTx(true)
	suite.accountRepo.On("FindAccountsByCodesForUpdate", mock.Anything, mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()
	suite.accountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything,
		changesEqual(map[string]string{"1000": "100", "3000": "100"}), suite.userID, mock.Anything).Return(nil).Once()
	suite.journalRepo.On("SaveJournalInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(j domain.JournalEntry) bool {
		return j.Status == domain.Posted && j.PostedBy != nil && *j.PostedBy == suite.userID
	})).Return(nil).Once()
	suite.cache.On("Bump", mock.Anything).Return(nil).Once()

	req := openingRequest("100", "100")
	req.Post = true
	journal, err := suite.service.CreateJournal(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, journal.Status)
	suite.NotNil(journal.PostedAt)
	suite.assertMocks()
}

func (suite *JournalServiceTestSuite) TestCreateJournal_Unbalanced() {
	suite.accountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()

	journal, err := suite.service.CreateJournal(suite.ctx, openingRequest("50", "40"), suite.userID)

	suite.Nil(journal)
	suite.Require().Error(err)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	errs, ok := validation.AsErrors(err)
	suite.Require().True(ok)
	suite.Contains(errs["entries"][0], "difference 10.00")
	suite.journalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateJournal_UnknownAndInactiveAccounts() {
	accounts := cashAndCapital()
	cash := accounts["1000"]
	cash.IsActive = false
	accounts["1000"] = cash
	delete(accounts, "3000")
	suite.accountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1000", "3000"}).Return(accounts, nil).Once()

	_, err := suite.service.CreateJournal(suite.ctx, openingRequest("100", "100"), suite.userID)

	errs, ok := validation.AsErrors(err)
	suite.Require().True(ok)
	suite.Equal([]string{"account 1000 is inactive"}, errs["entries[0].accountCode"])
	suite.Equal([]string{"account 3000 does not exist"}, errs["entries[1].accountCode"])
}

func (suite *JournalServiceTestSuite) TestCreateJournal_AuthorizationFail() {
	other := "distributor-1"
	suite.authorizer.On("AuthorizeUserAction", mock.Anything, other, mock.Anything).Return(nil, apperrors.ErrForbidden).Once()

	journal, err := suite.service.CreateJournal(suite.ctx, openingRequest("100", "100"), other)

	suite.Nil(journal)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.accountRepo.AssertNotCalled(suite.T(), "FindAccountsByCodes", mock.Anything, mock.Anything)
}

// --- Post ---

func (suite *JournalServiceTestSuite) TestPostJournal_UpdatesAccountAndPartyBalances() {
	draft := postedOpening()
	draft.Status = domain.Draft
	draft.Lines[0].PartyID = ptr("cust-1")
	parties := map[string]domain.PartyLedger{
		"cust-1": {PartyID: "cust-1", PartyType: domain.PartyCustomer, IsActive: true},
	}

	suite.expectTx(true)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(draft, nil).Once()
	suite.accountRepo.On("FindAccountsByCodesForUpdate", mock.Anything, mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()
	suite.partyRepo.On("FindPartiesByIDsForUpdate", mock.Anything, mock.Anything, []string{"cust-1"}).Return(parties, nil).Once()
	suite.accountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything,
		changesEqual(map[string]string{"1000": "100", "3000": "100"}), suite.userID, mock.Anything).Return(nil).Once()
	suite.partyRepo.On("UpdatePartyBalancesInTx", mock.Anything, mock.Anything,
		changesEqual(map[string]string{"cust-1": "100"}), suite.userID, mock.Anything).Return(nil).Once()
	suite.journalRepo.On("MarkPostedInTx", mock.Anything, mock.Anything, "j-1", suite.userID, mock.Anything).Return(nil).Once()
	suite.cache.On("Bump", mock.Anything).Return(nil).Once()

	journal, err := suite.service.PostJournal(suite.ctx, "j-1", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, journal.Status)
	suite.Require().NotNil(journal.PostedBy)
	suite.Equal(suite.userID, *journal.PostedBy)
	suite.assertMocks()
}

func (suite *JournalServiceTestSuite) TestPostJournal_SupplierBalanceGrowsOnCredit() {
	draft := postedOpening()
	draft.Status = domain.Draft
	draft.Lines[1].AccountCode = "2000"
	draft.Lines[1].PartyID = ptr("sup-1")
	accounts := map[string]domain.Account{
		"1000": cashAndCapital()["1000"],
		"2000": {Code: "2000", AccountType: domain.Liability, NormalBalance: domain.CreditBalance, IsActive: true},
	}

	suite.expectTx(true)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(draft, nil).Once()
	suite.accountRepo.On("FindAccountsByCodesForUpdate", mock.Anything, mock.Anything, []string{"1000", "2000"}).Return(accounts, nil).Once()
	suite.partyRepo.On("FindPartiesByIDsForUpdate", mock.Anything, mock.Anything, []string{"sup-1"}).
		Return(map[string]domain.PartyLedger{"sup-1": {PartyID: "sup-1", PartyType: domain.PartySupplier, IsActive: true}}, nil).Once()
	suite.accountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything,
		changesEqual(map[string]string{"1000": "100", "2000": "100"}), suite.userID, mock.Anything).Return(nil).Once()
	suite.partyRepo.On("UpdatePartyBalancesInTx", mock.Anything, mock.Anything,
		changesEqual(map[string]string{"sup-1": "100"}), suite.userID, mock.Anything).Return(nil).Once()
	suite.journalRepo.On("MarkPostedInTx", mock.Anything, mock.Anything, "j-1", suite.userID, mock.Anything).Return(nil).Once()
	suite.cache.On("Bump", mock.Anything).Return(nil).Once()

	_, err := suite.service.PostJournal(suite.ctx, "j-1", suite.userID)

	suite.Require().NoError(err)
	suite.assertMocks()
}

func (suite *JournalServiceTestSuite) TestPostJournal_AlreadyPosted() {
	suite.expectTx(false)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(postedOpening(), nil).Once()

	journal, err := suite.service.PostJournal(suite.ctx, "j-1", suite.userID)

	suite.Nil(journal)
	suite.ErrorIs(err, services.ErrJournalNotDraft)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.accountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.cache.AssertNotCalled(suite.T(), "Bump", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_AccountDeactivatedSinceDraft() {
	draft := postedOpening()
	draft.Status = domain.Draft
	accounts := cashAndCapital()
	capital := accounts["3000"]
	capital.IsActive = false
	accounts["3000"] = capital

	suite.expectTx(false)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(draft, nil).Once()
	suite.accountRepo.On("FindAccountsByCodesForUpdate", mock.Anything, mock.Anything, []string{"1000", "3000"}).Return(accounts, nil).Once()

	_, err := suite.service.PostJournal(suite.ctx, "j-1", suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.journalRepo.AssertNotCalled(suite.T(), "MarkPostedInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_NotFound() {
	suite.expectTx(false)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.PostJournal(suite.ctx, "missing", suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Reverse ---

func (suite *JournalServiceTestSuite) TestReverseJournal_Success() {
	suite.expectTx(true)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(postedOpening(), nil).Once()
	suite.accountRepo.On("FindAccountsByCodesForUpdate", mock.Anything, mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()
	suite.accountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything,
		changesEqual(map[string]string{"1000": "-100", "3000": "-100"}), suite.userID, mock.Anything).Return(nil).Once()
	suite.journalRepo.On("SaveJournalInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.journalRepo.On("LinkReversalInTx", mock.Anything, mock.Anything, "j-1", mock.AnythingOfType("string"), suite.userID, mock.Anything).Return(nil).Once()
	suite.cache.On("Bump", mock.Anything).Return(nil).Once()

	reversal, err := suite.service.ReverseJournal(suite.ctx, "j-1", nil, "", suite.userID)

	suite.Require().NoError(err)
	suite.NotEqual("j-1", reversal.JournalID)
	suite.Equal(domain.Posted, reversal.Status)
	suite.Equal("Reversal of: Opening capital", reversal.Description)
	suite.Equal(postedOpening().EntryDate, reversal.EntryDate)
	suite.Require().NotNil(reversal.OriginalJournalID)
	suite.Equal("j-1", *reversal.OriginalJournalID)
	suite.Require().Len(reversal.Lines, 2)
	suite.True(reversal.Lines[0].CreditAmount.Equal(d("100")))
	suite.True(reversal.Lines[0].DebitAmount.IsZero())
	suite.True(reversal.Lines[1].DebitAmount.Equal(d("100")))
	suite.Equal(reversal.JournalID, reversal.Lines[0].JournalID)
	suite.assertMocks()
}

func (suite *JournalServiceTestSuite) TestReverseJournal_OverridesDateAndDescription() {
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	suite.expectTx(true)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(postedOpening(), nil).Once()
	suite.accountRepo.On("FindAccountsByCodesForUpdate", mock.Anything, mock.Anything, mock.Anything).Return(cashAndCapital(), nil).Once()
	suite.accountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, suite.userID, mock.Anything).Return(nil).Once()
	suite.journalRepo.On("SaveJournalInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.journalRepo.On("LinkReversalInTx", mock.Anything, mock.Anything, "j-1", mock.Anything, suite.userID, mock.Anything).Return(nil).Once()
	suite.cache.On("Bump", mock.Anything).Return(nil).Once()

	reversal, err := suite.service.ReverseJournal(suite.ctx, "j-1", &date, "Wrong amount", suite.userID)

	suite.Require().NoError(err)
	suite.Equal(date, reversal.EntryDate)
	suite.Equal("Wrong amount", reversal.Description)
}

func (suite *JournalServiceTestSuite) TestReverseJournal_Conflicts() {
	draft := postedOpening()
	draft.Status = domain.Draft
	reversed := postedOpening()
	reversed.ReversingJournalID = ptr("j-2")
	reversing := postedOpening()
	reversing.OriginalJournalID = ptr("j-0")

	cases := []struct {
		name    string
		journal *domain.JournalEntry
		want    error
	}{
		{"draft", draft, services.ErrJournalNotPosted},
		{"already reversed", reversed, services.ErrJournalAlreadyReversed},
		{"reversal of a reversal", reversing, services.ErrReversalOfReversal},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.expectTx(false)
			suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(tc.journal, nil).Once()

			_, err := suite.service.ReverseJournal(suite.ctx, "j-1", nil, "", suite.userID)

			suite.ErrorIs(err, tc.want)
			suite.ErrorIs(err, apperrors.ErrConflict)
		})
	}
	suite.cache.AssertNotCalled(suite.T(), "Bump", mock.Anything)
}

// --- Drafts ---

func (suite *JournalServiceTestSuite) TestUpdateDraft_PostedIsConflict() {
	suite.accountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()
	suite.expectTx(false)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(postedOpening(), nil).Once()

	req := openingRequest("100", "100")
	_, err := suite.service.UpdateDraft(suite.ctx, "j-1", dto.UpdateJournalRequest{
		Date: req.Date, Description: "Edited", Entries: req.Entries,
	}, suite.userID)

	suite.ErrorIs(err, services.ErrJournalNotDraft)
	suite.journalRepo.AssertNotCalled(suite.T(), "ReplaceDraftInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateDraft_KeepsIdentityAndCreator() {
	draft := postedOpening()
	draft.Status = domain.Draft
	draft.CreatedBy = "someone-else"

	suite.accountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()
	suite.expectTx(true)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(draft, nil).Once()
	suite.journalRepo.On("ReplaceDraftInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(j domain.JournalEntry) bool {
		return j.JournalID == "j-1" && j.Description == "Edited" && j.Amount.Equal(d("250"))
	})).Return(nil).Once()

	req := openingRequest("250", "250")
	journal, err := suite.service.UpdateDraft(suite.ctx, "j-1", dto.UpdateJournalRequest{
		Date: req.Date, Description: "Edited", Entries: req.Entries,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("someone-else", journal.CreatedBy)
	suite.Equal(suite.userID, journal.LastUpdatedBy)
	suite.assertMocks()
}

func (suite *JournalServiceTestSuite) TestDeleteDraft() {
	draft := postedOpening()
	draft.Status = domain.Draft
	suite.expectTx(true)
	suite.journalRepo.On("FindJournalByIDForUpdate", mock.Anything, mock.Anything, "j-1").Return(draft, nil).Once()
	suite.journalRepo.On("DeleteDraftInTx", mock.Anything, mock.Anything, "j-1").Return(nil).Once()

	suite.NoError(suite.service.DeleteDraft(suite.ctx, "j-1", suite.userID))
	suite.assertMocks()
}

// --- Validate ---

func (suite *JournalServiceTestSuite) TestValidateJournal_ReportsWithoutSaving() {
	suite.accountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()

	resp, err := suite.service.ValidateJournal(suite.ctx, openingRequest("60", "50"), suite.userID)

	suite.Require().NoError(err)
	suite.False(resp.Valid)
	suite.True(resp.TotalDebit.Equal(d("60")))
	suite.True(resp.TotalCredit.Equal(d("50")))
	suite.True(resp.Difference.Equal(d("10")))
	suite.Contains(resp.Errors, "entries")
	suite.journalRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestValidateJournal_Valid() {
	suite.accountRepo.On("FindAccountsByCodes", mock.Anything, []string{"1000", "3000"}).Return(cashAndCapital(), nil).Once()

	resp, err := suite.service.ValidateJournal(suite.ctx, openingRequest("75", "75"), suite.userID)

	suite.Require().NoError(err)
	suite.True(resp.Valid)
	suite.Empty(resp.Errors)
	suite.True(resp.Difference.IsZero())
}
