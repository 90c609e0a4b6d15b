package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every valid account type in chart order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance is the side on which an account's balance increases.
type NormalBalance string

const (
	DebitBalance  NormalBalance = "DEBIT"
	CreditBalance NormalBalance = "CREDIT"
)

// Opposite returns the other side.
func (n NormalBalance) Opposite() NormalBalance {
	if n == DebitBalance {
		return CreditBalance
	}
	return DebitBalance
}

// ExpectedNormalBalance returns the normal side implied by an account type.
// Asset and expense accounts are debit-normal; liability, equity and revenue are credit-normal.
func ExpectedNormalBalance(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitBalance
	default:
		return CreditBalance
	}
}

// AccountSubType refines assets and liabilities for ratio calculations.
type AccountSubType string

const (
	SubTypeNone       AccountSubType = ""
	SubTypeCurrent    AccountSubType = "CURRENT"
	SubTypeNonCurrent AccountSubType = "NON_CURRENT"
	SubTypeInventory  AccountSubType = "INVENTORY"
)

// Account represents a ledger category within the core domain.
type Account struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	NormalBalance  NormalBalance   `json:"normalBalance"`
	SubType        AccountSubType  `json:"subType,omitempty"`
	Description    string          `json:"description"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // On the normal side
	Balance        decimal.Decimal `json:"balance"`        // Persisted, maintained on posting
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// IsCurrentAsset reports whether the account counts toward current assets.
func (a Account) IsCurrentAsset() bool {
	return a.AccountType == Asset && (a.SubType == SubTypeCurrent || a.SubType == SubTypeInventory)
}

// IsCurrentLiability reports whether the account counts toward current liabilities.
func (a Account) IsCurrentLiability() bool {
	return a.AccountType == Liability && a.SubType == SubTypeCurrent
}
