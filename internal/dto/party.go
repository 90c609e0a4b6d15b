package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest defines the data needed to open a party ledger.
type CreatePartyRequest struct {
	PartyName      string          `json:"partyName" binding:"required,max=150"`
	PartyType      string          `json:"partyType" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TaxID          string          `json:"taxID,omitempty" binding:"omitempty,taxid"`
	Phone          string          `json:"phone,omitempty" binding:"omitempty,phone_np"`
	Email          string          `json:"email,omitempty" binding:"omitempty,email"`
	Address        string          `json:"address,omitempty" binding:"max=255"`
}

// ToDomain converts the request into an unsaved party.
func (r CreatePartyRequest) ToDomain() domain.PartyLedger {
	return domain.PartyLedger{
		PartyName:      strings.TrimSpace(r.PartyName),
		PartyType:      domain.PartyType(strings.ToUpper(strings.TrimSpace(r.PartyType))),
		OpeningBalance: r.OpeningBalance,
		TaxID:          strings.TrimSpace(r.TaxID),
		Phone:          strings.TrimSpace(r.Phone),
		Email:          strings.TrimSpace(r.Email),
		Address:        strings.TrimSpace(r.Address),
	}
}

// UpdatePartyRequest holds optional contact changes. Type and opening balance are fixed once created.
type UpdatePartyRequest struct {
	PartyName *string `json:"partyName" binding:"omitempty,max=150"`
	TaxID     *string `json:"taxID" binding:"omitempty,taxid"`
	Phone     *string `json:"phone" binding:"omitempty,phone_np"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   *string `json:"address" binding:"omitempty,max=255"`
}

// PartyResponse defines the data returned for a party ledger.
type PartyResponse struct {
	PartyID        string          `json:"partyID"`
	PartyName      string          `json:"partyName"`
	PartyType      string          `json:"partyType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	TaxID          string          `json:"taxID,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Email          string          `json:"email,omitempty"`
	Address        string          `json:"address,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToPartyResponse converts a domain.PartyLedger.
func ToPartyResponse(p *domain.PartyLedger) PartyResponse {
	return PartyResponse{
		PartyID:        p.PartyID,
		PartyName:      p.PartyName,
		PartyType:      string(p.PartyType),
		OpeningBalance: p.OpeningBalance,
		CurrentBalance: p.CurrentBalance,
		TaxID:          p.TaxID,
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		LastUpdatedAt:  p.LastUpdatedAt,
	}
}

// ListPartiesParams defines query parameters for listing parties.
type ListPartiesParams struct {
	Type   string `form:"type"`
	Active *bool  `form:"active"`
	Search string `form:"q"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListPartiesResponse wraps the list of parties.
type ListPartiesResponse struct {
	Parties []PartyResponse `json:"parties"`
}

// ToListPartiesResponse maps a page of parties.
func ToListPartiesResponse(parties []domain.PartyLedger) ListPartiesResponse {
	out := make([]PartyResponse, len(parties))
	for i := range parties {
		out[i] = ToPartyResponse(&parties[i])
	}
	return ListPartiesResponse{Parties: out}
}
