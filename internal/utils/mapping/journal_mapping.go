package mapping

import (
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/models"
)

// ToModelJournal converts a domain JournalEntry header to a model JournalEntry
func ToModelJournal(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		JournalID:          d.JournalID,
		EntryDate:          d.EntryDate,
		Description:        d.Description,
		ReferenceNumber:    d.ReferenceNumber,
		Status:             string(d.Status),
		Amount:             d.Amount,
		OriginalJournalID:  d.OriginalJournalID,
		ReversingJournalID: d.ReversingJournalID,
		PostedAt:           d.PostedAt,
		PostedBy:           d.PostedBy,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model JournalEntry to a domain JournalEntry without lines
func ToDomainJournal(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		JournalID:          m.JournalID,
		EntryDate:          m.EntryDate,
		Description:        m.Description,
		ReferenceNumber:    m.ReferenceNumber,
		Status:             domain.JournalStatus(m.Status),
		Amount:             m.Amount,
		OriginalJournalID:  m.OriginalJournalID,
		ReversingJournalID: m.ReversingJournalID,
		PostedAt:           m.PostedAt,
		PostedBy:           m.PostedBy,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalSlice converts a slice of model journals to domain journals
func ToDomainJournalSlice(ms []models.JournalEntry) []domain.JournalEntry {
	return toDomainSlice(ms, ToDomainJournal)
}

// ToModelJournalLine converts a domain line to a model line
func ToModelJournalLine(d domain.JournalEntryLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		JournalID:    d.JournalID,
		LineNumber:   d.LineNumber,
		AccountCode:  d.AccountCode,
		PartyID:      d.PartyID,
		Description:  d.Description,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainJournalLine converts a model line to a domain line
func ToDomainJournalLine(m models.JournalLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:       m.LineID,
		JournalID:    m.JournalID,
		LineNumber:   m.LineNumber,
		AccountCode:  m.AccountCode,
		PartyID:      m.PartyID,
		Description:  m.Description,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainJournalLineSlice converts model lines to domain lines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalEntryLine {
	return toDomainSlice(ms, ToDomainJournalLine)
}

// ToDomainStatementLine converts a statement row, carrying the header date and description
func ToDomainStatementLine(m models.StatementLine) domain.JournalEntryLine {
	line := ToDomainJournalLine(m.JournalLine)
	line.EntryDate = m.EntryDate
	line.JournalDescription = m.JournalDescription
	return line
}
