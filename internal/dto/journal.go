package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit-or-credit line of a journal entry request.
type JournalLineRequest struct {
	AccountCode  string          `json:"accountCode" binding:"omitempty,account_code"`
	PartyID      *string         `json:"partyID,omitempty"`
	Description  string          `json:"description,omitempty" binding:"max=255"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// CreateJournalRequest defines a journal entry submission. Post=true posts immediately after creation.
// Binding checks only lengths and formats; balance and line-count rules are reported by the service.
type CreateJournalRequest struct {
	Date            Date                 `json:"date"`
	Description     string               `json:"description" binding:"max=500"`
	ReferenceNumber string               `json:"referenceNumber,omitempty" binding:"max=50"`
	Entries         []JournalLineRequest `json:"entries" binding:"dive"`
	Post            bool                 `json:"post,omitempty"`
}

// UpdateJournalRequest replaces the header and lines of a draft.
type UpdateJournalRequest struct {
	Date            Date                 `json:"date"`
	Description     string               `json:"description" binding:"max=500"`
	ReferenceNumber string               `json:"referenceNumber,omitempty" binding:"max=50"`
	Entries         []JournalLineRequest `json:"entries" binding:"dive"`
}

// ToDomain converts the request into an unsaved draft entry. Lines are numbered from 1.
func (r CreateJournalRequest) ToDomain() domain.JournalEntry {
	return toJournalDomain(r.Date, r.Description, r.ReferenceNumber, r.Entries)
}

// ToDomain converts the request into the replacement content of a draft.
func (r UpdateJournalRequest) ToDomain() domain.JournalEntry {
	return toJournalDomain(r.Date, r.Description, r.ReferenceNumber, r.Entries)
}

func toJournalDomain(date Date, description, reference string, entries []JournalLineRequest) domain.JournalEntry {
	lines := make([]domain.JournalEntryLine, len(entries))
	for i, e := range entries {
		var partyID *string
		if e.PartyID != nil && strings.TrimSpace(*e.PartyID) != "" {
			p := strings.TrimSpace(*e.PartyID)
			partyID = &p
		}
		lines[i] = domain.JournalEntryLine{
			LineNumber:   i + 1,
			AccountCode:  strings.TrimSpace(e.AccountCode),
			PartyID:      partyID,
			Description:  e.Description,
			DebitAmount:  e.DebitAmount,
			CreditAmount: e.CreditAmount,
		}
	}
	return domain.JournalEntry{
		EntryDate:       date.Time,
		Description:     strings.TrimSpace(description),
		ReferenceNumber: strings.TrimSpace(reference),
		Status:          domain.Draft,
		Lines:           lines,
	}
}

// ReverseJournalRequest optionally overrides the date and description of the reversing entry.
type ReverseJournalRequest struct {
	Date        *Date  `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	LineNumber   int             `json:"lineNumber"`
	AccountCode  string          `json:"accountCode"`
	PartyID      *string         `json:"partyID,omitempty"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID          string                `json:"journalID"`
	Date               Date                  `json:"date"`
	Description        string                `json:"description"`
	ReferenceNumber    string                `json:"referenceNumber,omitempty"`
	Status             string                `json:"status"`
	Amount             decimal.Decimal       `json:"amount"`
	OriginalJournalID  *string               `json:"originalJournalID,omitempty"`
	ReversingJournalID *string               `json:"reversingJournalID,omitempty"`
	PostedAt           *time.Time            `json:"postedAt,omitempty"`
	PostedBy           *string               `json:"postedBy,omitempty"`
	Entries            []JournalLineResponse `json:"entries,omitempty"`
	CreatedAt          time.Time             `json:"createdAt"`
	CreatedBy          string                `json:"createdBy"`
	LastUpdatedAt      time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy      string                `json:"lastUpdatedBy"`
}

// ToJournalResponse converts a domain.JournalEntry to JournalResponse DTO.
func ToJournalResponse(j *domain.JournalEntry) JournalResponse {
	resp := JournalResponse{
		JournalID:          j.JournalID,
		Date:               NewDate(j.EntryDate),
		Description:        j.Description,
		ReferenceNumber:    j.ReferenceNumber,
		Status:             string(j.Status),
		Amount:             j.Amount,
		OriginalJournalID:  j.OriginalJournalID,
		ReversingJournalID: j.ReversingJournalID,
		PostedAt:           j.PostedAt,
		PostedBy:           j.PostedBy,
		CreatedAt:          j.CreatedAt,
		CreatedBy:          j.CreatedBy,
		LastUpdatedAt:      j.LastUpdatedAt,
		LastUpdatedBy:      j.LastUpdatedBy,
	}
	if len(j.Lines) > 0 {
		resp.Entries = make([]JournalLineResponse, len(j.Lines))
		for i, l := range j.Lines {
			resp.Entries[i] = JournalLineResponse{
				LineID:       l.LineID,
				LineNumber:   l.LineNumber,
				AccountCode:  l.AccountCode,
				PartyID:      l.PartyID,
				Description:  l.Description,
				DebitAmount:  l.DebitAmount,
				CreditAmount: l.CreditAmount,
			}
		}
	}
	return resp
}

// ListJournalsParams holds the parsed filters for listing journals.
type ListJournalsParams struct {
	Status    *domain.JournalStatus
	FromDate  *time.Time
	ToDate    *time.Time
	Limit     int
	NextToken *string
}

// ListJournalsResponse defines the response for listing journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// JournalValidationResponse is the result of a dry-run balance check.
type JournalValidationResponse struct {
	Valid       bool              `json:"valid"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Difference  decimal.Decimal   `json:"difference"`
	Errors      validation.Errors `json:"errors,omitempty"`
}

// StatementLineResponse is one posted line on an account statement.
type StatementLineResponse struct {
	JournalID          string          `json:"journalID"`
	LineID             string          `json:"lineID"`
	Date               Date            `json:"date"`
	JournalDescription string          `json:"journalDescription"`
	Description        string          `json:"description,omitempty"`
	PartyID            *string         `json:"partyID,omitempty"`
	DebitAmount        decimal.Decimal `json:"debitAmount"`
	CreditAmount       decimal.Decimal `json:"creditAmount"`
}

// ListStatementParams holds paging for an account statement.
type ListStatementParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// AccountStatementResponse lists posted lines for one account.
type AccountStatementResponse struct {
	AccountCode string                  `json:"accountCode"`
	Lines       []StatementLineResponse `json:"lines"`
	NextToken   *string                 `json:"nextToken,omitempty"`
}

// ToStatementLines maps posted lines.
func ToStatementLines(lines []domain.JournalEntryLine) []StatementLineResponse {
	out := make([]StatementLineResponse, len(lines))
	for i, l := range lines {
		out[i] = StatementLineResponse{
			JournalID:          l.JournalID,
			LineID:             l.LineID,
			Date:               NewDate(l.EntryDate),
			JournalDescription: l.JournalDescription,
			Description:        l.Description,
			PartyID:            l.PartyID,
			DebitAmount:        l.DebitAmount,
			CreditAmount:       l.CreditAmount,
		}
	}
	return out
}
