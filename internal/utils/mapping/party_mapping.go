package mapping

import (
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/models"
)

// ToModelParty converts a domain PartyLedger to a model Party
func ToModelParty(d domain.PartyLedger) models.Party {
	return models.Party{
		PartyID:        d.PartyID,
		PartyName:      d.PartyName,
		PartyType:      string(d.PartyType),
		OpeningBalance: d.OpeningBalance,
		CurrentBalance: d.CurrentBalance,
		TaxID:          d.TaxID,
		Phone:          d.Phone,
		Email:          d.Email,
		Address:        d.Address,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParty converts a model Party to a domain PartyLedger
func ToDomainParty(m models.Party) domain.PartyLedger {
	return domain.PartyLedger{
		PartyID:        m.PartyID,
		PartyName:      m.PartyName,
		PartyType:      domain.PartyType(m.PartyType),
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		TaxID:          m.TaxID,
		Phone:          m.Phone,
		Email:          m.Email,
		Address:        m.Address,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPartySlice converts model parties to domain parties
func ToDomainPartySlice(ms []models.Party) []domain.PartyLedger {
	return toDomainSlice(ms, ToDomainParty)
}
