package services

import (
	"context"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal entry with its lines.
	GetJournalByID(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a page of journal entries, newest first.
	ListJournals(ctx context.Context, params dto.ListJournalsParams, userID string) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal stores a new draft, or posts it immediately when req.Post is set.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error)

	// UpdateDraft replaces the header and lines of a draft entry.
	UpdateDraft(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error)

	// DeleteDraft removes a draft entry.
	DeleteDraft(ctx context.Context, journalID string, userID string) error
}

// JournalPosterSvc defines the posting lifecycle.
type JournalPosterSvc interface {
	// PostJournal moves a draft to POSTED after re-running every check.
	PostJournal(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error)

	// ReverseJournal creates and posts an entry with every line's sides swapped.
	ReverseJournal(ctx context.Context, journalID string, date *time.Time, description string, userID string) (*domain.JournalEntry, error)
}

// JournalValidatorSvc runs the entry checks without persisting anything.
type JournalValidatorSvc interface {
	ValidateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*dto.JournalValidationResponse, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalPosterSvc
	JournalValidatorSvc
}
