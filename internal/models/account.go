package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	AccountType    string          `db:"account_type"`
	NormalBalance  string          `db:"normal_balance"`
	SubType        string          `db:"sub_type"`
	Description    string          `db:"description"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	Balance        decimal.Decimal `db:"balance"` // Persisted, signed toward the normal side
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// AccountActivity is an account row joined with its posted debit and credit totals.
type AccountActivity struct {
	Account
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
}
