package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Enum fields are case-insensitive; normalBalance may be omitted and is then derived from type.
type CreateAccountRequest struct {
	Code           string          `json:"code" binding:"required,account_code"`
	Name           string          `json:"name" binding:"required,max=100"`
	AccountType    string          `json:"type" binding:"required"`
	NormalBalance  string          `json:"normalBalance,omitempty"`
	SubType        string          `json:"subType,omitempty"`
	Description    string          `json:"description,omitempty" binding:"max=500"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// ToDomain converts the request into an unsaved domain.Account.
func (r CreateAccountRequest) ToDomain() domain.Account {
	return domain.Account{
		Code:           strings.TrimSpace(r.Code),
		Name:           strings.TrimSpace(r.Name),
		AccountType:    domain.AccountType(strings.ToUpper(strings.TrimSpace(r.AccountType))),
		NormalBalance:  domain.NormalBalance(strings.ToUpper(strings.TrimSpace(r.NormalBalance))),
		SubType:        domain.AccountSubType(strings.ToUpper(strings.TrimSpace(r.SubType))),
		Description:    r.Description,
		OpeningBalance: r.OpeningBalance,
	}
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	SubType     *string `json:"subType"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountType    string          `json:"type"`
	NormalBalance  string          `json:"normalBalance"`
	SubType        string          `json:"subType,omitempty"`
	Description    string          `json:"description"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Code:           acc.Code,
		Name:           acc.Name,
		AccountType:    string(acc.AccountType),
		NormalBalance:  string(acc.NormalBalance),
		SubType:        string(acc.SubType),
		Description:    acc.Description,
		OpeningBalance: acc.OpeningBalance,
		Balance:        acc.Balance,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Type   string `form:"type"`
	Active *bool  `form:"active"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// BalanceResponse is the as-of balance of an account or party.
type BalanceResponse struct {
	Code           string          `json:"code,omitempty"`
	PartyID        string          `json:"partyID,omitempty"`
	Name           string          `json:"name"`
	NormalBalance  string          `json:"normalBalance"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	Balance        decimal.Decimal `json:"balance"`
	BalanceType    string          `json:"balanceType"`
	AsOf           *Date           `json:"asOf,omitempty"`
}

// ToAccountBalanceResponse maps an account balance.
func ToAccountBalanceResponse(b *domain.LedgerBalance) BalanceResponse {
	resp := toBalanceResponse(b)
	resp.Code = b.Code
	return resp
}

// ToPartyBalanceResponse maps a party balance.
func ToPartyBalanceResponse(b *domain.LedgerBalance) BalanceResponse {
	resp := toBalanceResponse(b)
	resp.PartyID = b.Code
	return resp
}

func toBalanceResponse(b *domain.LedgerBalance) BalanceResponse {
	return BalanceResponse{
		Name:           b.Name,
		NormalBalance:  string(b.NormalBalance),
		OpeningBalance: b.OpeningBalance,
		TotalDebit:     b.TotalDebit,
		TotalCredit:    b.TotalCredit,
		Balance:        b.Balance,
		BalanceType:    string(b.BalanceType),
		AsOf:           DatePtr(b.AsOf),
	}
}
