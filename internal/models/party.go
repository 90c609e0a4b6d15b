package models

import "github.com/shopspring/decimal"

// Party is a row of the parties table.
type Party struct {
	PartyID        string          `db:"party_id"`
	PartyName      string          `db:"party_name"`
	PartyType      string          `db:"party_type"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	TaxID          string          `db:"tax_id"`
	Phone          string          `db:"phone"`
	Email          string          `db:"email"`
	Address        string          `db:"address"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
