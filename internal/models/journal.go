package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	JournalID          string          `db:"journal_id"`
	EntryDate          time.Time       `db:"entry_date"`
	Description        string          `db:"description"`
	ReferenceNumber    string          `db:"reference_number"`
	Status             string          `db:"status"`
	Amount             decimal.Decimal `db:"amount"`
	OriginalJournalID  *string         `db:"original_journal_id"`
	ReversingJournalID *string         `db:"reversing_journal_id"`
	PostedAt           *time.Time      `db:"posted_at"`
	PostedBy           *string         `db:"posted_by"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	JournalID    string          `db:"journal_id"`
	LineNumber   int             `db:"line_number"`
	AccountCode  string          `db:"account_code"`
	PartyID      *string         `db:"party_id"`
	Description  string          `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	CreatedAt    time.Time       `db:"created_at"`
}

// StatementLine is a posted line joined with its header, as read for account statements.
type StatementLine struct {
	JournalLine
	EntryDate          time.Time `db:"entry_date"`
	JournalDescription string    `db:"journal_description"`
}
