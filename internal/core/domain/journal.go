package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// JournalEntry is an atomic, balanced set of debit and credit lines recorded on a date.
type JournalEntry struct {
	JournalID          string             `json:"journalID"`
	EntryDate          time.Time          `json:"date"`
	Description        string             `json:"description"`
	ReferenceNumber    string             `json:"referenceNumber,omitempty"`
	Status             JournalStatus      `json:"status"`
	Amount             decimal.Decimal    `json:"amount"` // Sum of the debit side
	OriginalJournalID  *string            `json:"originalJournalID,omitempty"`
	ReversingJournalID *string            `json:"reversingJournalID,omitempty"`
	PostedAt           *time.Time         `json:"postedAt,omitempty"`
	PostedBy           *string            `json:"postedBy,omitempty"`
	Lines              []JournalEntryLine `json:"entries,omitempty"`
	AuditFields
}

// IsReversal reports whether the entry reverses another entry.
func (j JournalEntry) IsReversal() bool {
	return j.OriginalJournalID != nil
}

// JournalEntryLine is one debit-or-credit movement against one account.
type JournalEntryLine struct {
	LineID       string          `json:"lineID"`
	JournalID    string          `json:"journalID"`
	LineNumber   int             `json:"lineNumber"` // 1-based
	AccountCode  string          `json:"accountCode"`
	PartyID      *string         `json:"partyID,omitempty"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`

	// Populated on statement reads.
	EntryDate          time.Time `json:"date,omitempty"`
	JournalDescription string    `json:"journalDescription,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Reversed returns a copy of the line with debit and credit swapped.
func (l JournalEntryLine) Reversed() JournalEntryLine {
	r := l
	r.DebitAmount, r.CreditAmount = l.CreditAmount, l.DebitAmount
	return r
}
