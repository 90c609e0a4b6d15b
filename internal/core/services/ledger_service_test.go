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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	accounts *MockAccountRepository
	parties  *MockPartyRepository
	journals *MockJournalRepository
	service  portssvc.LedgerSvc
}

func newLedger() ledgerFixture {
	f := ledgerFixture{accounts: new(MockAccountRepository), parties: new(MockPartyRepository), journals: new(MockJournalRepository)}
	f.service = services.NewLedgerService(f.accounts, f.parties, f.journals, services.WithAuthorizer(staffAuthorizer("u-1")))
	return f
}

func TestGetAccountBalance_AsOf(t *testing.T) {
	f := newLedger()
	accounts, journals := f.accounts, f.journals
	cutoff := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	accounts.On("FindAccountByCode", mock.Anything, "1000").
		Return(&domain.Account{Code: "1000", Name: "Cash", NormalBalance: domain.DebitBalance, OpeningBalance: d("200")}, nil).Once()
	journals.On("SumAccountMovements", mock.Anything, "1000", &cutoff).Return(d("500"), d("100"), nil).Once()

	balance, err := f.service.GetAccountBalance(context.Background(), "1000", &cutoff, "u-1")

	require.NoError(t, err)
	assert.Equal(t, "Cash", balance.Name)
	assert.True(t, balance.Balance.Equal(d("600")))
	assert.Equal(t, domain.DebitBalance, balance.BalanceType)
	assert.Equal(t, &cutoff, balance.AsOf)
	journals.AssertExpectations(t)
}

func TestGetAccountBalance_OppositeSide(t *testing.T) {
	f := newLedger()
	accounts, journals := f.accounts, f.journals
	accounts.On("FindAccountByCode", mock.Anything, "2000").
		Return(&domain.Account{Code: "2000", NormalBalance: domain.CreditBalance}, nil).Once()
	journals.On("SumAccountMovements", mock.Anything, "2000", (*time.Time)(nil)).Return(d("300"), d("100"), nil).Once()

	balance, err := f.service.GetAccountBalance(context.Background(), "2000", nil, "u-1")

	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(d("-200")))
	assert.Equal(t, domain.DebitBalance, balance.BalanceType)
}

func TestGetAccountBalance_UnknownAccount(t *testing.T) {
	f := newLedger()
	accounts, journals := f.accounts, f.journals
	accounts.On("FindAccountByCode", mock.Anything, "9999").Return(nil, apperrors.ErrNotFound).Once()

	_, err := f.service.GetAccountBalance(context.Background(), "9999", nil, "u-1")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	journals.AssertNotCalled(t, "SumAccountMovements", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPartyBalance_Supplier(t *testing.T) {
	f := newLedger()
	parties, journals := f.parties, f.journals
	parties.On("FindPartyByID", mock.Anything, "sup-1").
		Return(&domain.PartyLedger{PartyID: "sup-1", PartyName: "Himal Traders", PartyType: domain.PartySupplier, OpeningBalance: d("100")}, nil).Once()
	journals.On("SumPartyMovements", mock.Anything, "sup-1", (*time.Time)(nil)).Return(d("50"), d("1130"), nil).Once()

	balance, err := f.service.GetPartyBalance(context.Background(), "sup-1", nil, "u-1")

	require.NoError(t, err)
	assert.Equal(t, domain.CreditBalance, balance.NormalBalance)
	assert.True(t, balance.Balance.Equal(d("1180")))
	assert.Equal(t, "Himal Traders", balance.Name)
}

func TestListAccountStatement(t *testing.T) {
	f := newLedger()
	accounts, journals := f.accounts, f.journals
	next := "token-2"
	accounts.On("FindAccountByCode", mock.Anything, "1000").Return(&domain.Account{Code: "1000"}, nil).Once()
	journals.On("ListPostedLinesByAccount", mock.Anything, "1000", 20, (*string)(nil)).
		Return([]domain.JournalEntryLine{{LineID: "l-1", AccountCode: "1000", DebitAmount: d("10")}}, &next, nil).Once()

	resp, err := f.service.ListAccountStatement(context.Background(), "1000", dto.ListStatementParams{}, "u-1")

	require.NoError(t, err)
	assert.Len(t, resp.Lines, 1)
	assert.Equal(t, &next, resp.NextToken)
}

// movementBook is an in-memory MovementReader that filters like the SQL sum: posted only, dated on or before asOf.
type movementBook struct {
	journals []domain.JournalEntry
}

func (b *movementBook) sum(match func(domain.JournalEntryLine) bool, asOf *time.Time) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, j := range b.journals {
		if j.Status != domain.Posted || (asOf != nil && j.EntryDate.After(*asOf)) {
			continue
		}
		for _, l := range j.Lines {
			if match(l) {
				debit = debit.Add(l.DebitAmount)
				credit = credit.Add(l.CreditAmount)
			}
		}
	}
	return debit, credit
}

func (b *movementBook) SumAccountMovements(_ context.Context, code string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	debit, credit := b.sum(func(l domain.JournalEntryLine) bool { return l.AccountCode == code }, asOf)
	return debit, credit, nil
}

func (b *movementBook) SumPartyMovements(_ context.Context, partyID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	debit, credit := b.sum(func(l domain.JournalEntryLine) bool { return l.PartyID != nil && *l.PartyID == partyID }, asOf)
	return debit, credit, nil
}

func (b *movementBook) ListPostedLinesByAccount(context.Context, string, int, *string) ([]domain.JournalEntryLine, *string, error) {
	return nil, nil, nil
}

func cashSale(date time.Time, status domain.JournalStatus, amount string) domain.JournalEntry {
	return domain.JournalEntry{
		EntryDate: date,
		Status:    status,
		Lines: []domain.JournalEntryLine{
			{AccountCode: "1000", DebitAmount: d(amount), CreditAmount: decimal.Zero},
			{AccountCode: "4000", DebitAmount: decimal.Zero, CreditAmount: d(amount)},
		},
	}
}

func TestGetAccountBalance_ExcludesDraftsAndLaterMovements(t *testing.T) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	cutoff := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	book := &movementBook{journals: []domain.JournalEntry{
		cashSale(jan, domain.Posted, "400"),
		cashSale(cutoff, domain.Posted, "100"),
		cashSale(jan, domain.Draft, "999"),
		cashSale(cutoff.AddDate(0, 0, 1), domain.Posted, "50"),
	}}
	accounts := new(MockAccountRepository)
	accounts.On("FindAccountByCode", mock.Anything, "1000").
		Return(&domain.Account{Code: "1000", NormalBalance: domain.DebitBalance, OpeningBalance: d("200")}, nil)
	svc := services.NewLedgerService(accounts, new(MockPartyRepository), book, services.WithAuthorizer(staffAuthorizer("u-1")))

	atCutoff, err := svc.GetAccountBalance(context.Background(), "1000", &cutoff, "u-1")
	require.NoError(t, err)
	assert.True(t, atCutoff.Balance.Equal(d("700")), atCutoff.Balance.String())

	all, err := svc.GetAccountBalance(context.Background(), "1000", nil, "u-1")
	require.NoError(t, err)
	assert.True(t, all.Balance.Equal(d("750")), all.Balance.String())
}

func TestGetAccountBalance_RoundTripAfterCutoff(t *testing.T) {
	cutoff := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	book := &movementBook{journals: []domain.JournalEntry{cashSale(cutoff.AddDate(0, 0, -5), domain.Posted, "250.75")}}
	accounts := new(MockAccountRepository)
	accounts.On("FindAccountByCode", mock.Anything, "4000").
		Return(&domain.Account{Code: "4000", NormalBalance: domain.CreditBalance}, nil)
	svc := services.NewLedgerService(accounts, new(MockPartyRepository), book, services.WithAuthorizer(staffAuthorizer("u-1")))

	before, err := svc.GetAccountBalance(context.Background(), "4000", &cutoff, "u-1")
	require.NoError(t, err)

	book.journals = append(book.journals,
		cashSale(cutoff.AddDate(0, 0, 1), domain.Posted, "80"),
		cashSale(cutoff.AddDate(0, 0, -1), domain.Draft, "80"),
	)
	after, err := svc.GetAccountBalance(context.Background(), "4000", &cutoff, "u-1")
	require.NoError(t, err)

	assert.True(t, before.Balance.Equal(d("250.75")), before.Balance.String())
	assert.True(t, after.Balance.Equal(before.Balance), "balance at %s moved from %s to %s", cutoff.Format(time.DateOnly), before.Balance, after.Balance)
	assert.Equal(t, domain.CreditBalance, after.BalanceType)
}

func TestGetPartyBalance_CountsOnlyTaggedPostedLines(t *testing.T) {
	supplier := "sup-1"
	other := "sup-2"
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	bill := func(party *string, status domain.JournalStatus, amount string) domain.JournalEntry {
		return domain.JournalEntry{EntryDate: date, Status: status, Lines: []domain.JournalEntryLine{
			{AccountCode: "5000", DebitAmount: d(amount), CreditAmount: decimal.Zero},
			{AccountCode: "2000", PartyID: party, DebitAmount: decimal.Zero, CreditAmount: d(amount)},
		}}
	}
	book := &movementBook{journals: []domain.JournalEntry{
		bill(&supplier, domain.Posted, "1130"),
		bill(&supplier, domain.Draft, "500"),
		bill(&other, domain.Posted, "70"),
	}}
	parties := new(MockPartyRepository)
	parties.On("FindPartyByID", mock.Anything, supplier).
		Return(&domain.PartyLedger{PartyID: supplier, PartyType: domain.PartySupplier}, nil)
	svc := services.NewLedgerService(new(MockAccountRepository), parties, book, services.WithAuthorizer(staffAuthorizer("u-1")))

	balance, err := svc.GetPartyBalance(context.Background(), supplier, nil, "u-1")

	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(d("1130")), balance.Balance.String())
}
