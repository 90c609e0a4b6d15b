package domain

import "github.com/shopspring/decimal"

// PartyType classifies a counterparty sub-ledger.
type PartyType string

const (
	PartyCustomer PartyType = "CUSTOMER"
	PartySupplier PartyType = "SUPPLIER"
	PartyBank     PartyType = "BANK"
	PartyCash     PartyType = "CASH"
	PartyOther    PartyType = "OTHER"
)

// NormalBalance returns the side on which the party's balance grows.
// Suppliers are owed money and run credit-normal; everything else runs debit-normal.
func (p PartyType) NormalBalance() NormalBalance {
	if p == PartySupplier {
		return CreditBalance
	}
	return DebitBalance
}

// PartyLedger is a counterparty account.
type PartyLedger struct {
	PartyID        string          `json:"partyID"`
	PartyName      string          `json:"partyName"`
	PartyType      PartyType       `json:"partyType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TaxID          string          `json:"taxID,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	Address        string          `json:"address,omitempty"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
