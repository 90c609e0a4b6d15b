package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/dto"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/accounting"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/pagination"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
	"github.com/shopspring/decimal"
)

var (
	ErrJournalNotDraft        = fmt.Errorf("%w: journal entry is not a draft", apperrors.ErrConflict)
	ErrJournalNotPosted       = fmt.Errorf("%w: only posted journal entries can be reversed", apperrors.ErrConflict)
	ErrJournalAlreadyReversed = fmt.Errorf("%w: journal entry has already been reversed", apperrors.ErrConflict)
	ErrReversalOfReversal     = fmt.Errorf("%w: a reversing entry cannot itself be reversed", apperrors.ErrConflict)
)

const (
	reversalPrefix       = "Reversal of: "
	maxDescriptionLength = 500
)

// journalService provides the journal lifecycle: drafts, posting and reversal.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryFacade
	partyRepo   portsrepo.PartyRepositoryFacade
	now         func() time.Time
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryFacade,
	partyRepo portsrepo.PartyRepositoryFacade,
	options ...Option,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		partyRepo:   partyRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// withTx runs fn in one transaction and commits when fn succeeds.
func (s *journalService) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rbErr := s.journalRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back journal transaction")
		}
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return s.journalRepo.Commit(ctx, tx)
}

// CreateJournal stores a new entry as a draft, or posts it right away when req.Post is set.
func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*domain.JournalEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}

	entry := req.ToDomain()
	if err := s.checkEntry(ctx, entry); err != nil {
		return nil, err
	}

	now := s.now()
	s.assignIDs(&entry)
	entry.AuditFields = auditFields(userID, now)

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		if !req.Post {
			return s.journalRepo.SaveJournalInTx(ctx, tx, entry)
		}
		if err := s.applyPosting(ctx, tx, entry, userID, now); err != nil {
			return err
		}
		markPosted(&entry, userID, now)
		return s.journalRepo.SaveJournalInTx(ctx, tx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry", slog.Bool("post", req.Post))
		return nil, err
	}
	if req.Post {
		s.InvalidateReports(ctx)
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("journal_id", entry.JournalID),
		slog.String("status", string(entry.Status)))
	return &entry, nil
}

// checkEntry runs the structural and balance checks plus a last-committed read of the referenced accounts and parties.
func (s *journalService) checkEntry(ctx context.Context, entry domain.JournalEntry) error {
	errs := validation.Errors{}
	if err := validation.JournalEntry(entry); err != nil {
		ve, ok := validation.AsErrors(err)
		if !ok {
			return err
		}
		errs.Merge(ve)
	}
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, accountCodes(entry.Lines))
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	var parties map[string]domain.PartyLedger
	if ids := partyIDs(entry.Lines); len(ids) > 0 {
		if parties, err = s.partyRepo.FindPartiesByIDs(ctx, ids); err != nil {
			return fmt.Errorf("failed to load parties: %w", err)
		}
	}
	errs.Merge(checkReferences(entry.Lines, accounts, parties))
	return errs.OrNil()
}

func (s *journalService) assignIDs(entry *domain.JournalEntry) {
	entry.JournalID = uuid.NewString()
	for i := range entry.Lines {
		entry.Lines[i].LineID = uuid.NewString()
		entry.Lines[i].JournalID = entry.JournalID
		entry.Lines[i].LineNumber = i + 1
	}
	entry.Amount, _ = accounting.Totals(entry.Lines)
}

func markPosted(entry *domain.JournalEntry, userID string, now time.Time) {
	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.PostedBy = &userID
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
}

// applyPosting locks every referenced account and party, re-runs the entry checks against
// the locked rows and adds the signed line amounts to their persisted balances.
func (s *journalService) applyPosting(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, userID string, now time.Time) error {
	if err := validation.JournalEntry(entry); err != nil {
		return err
	}

	accounts, err := s.accountRepo.FindAccountsByCodesForUpdate(ctx, tx, accountCodes(entry.Lines))
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	var parties map[string]domain.PartyLedger
	ids := partyIDs(entry.Lines)
	if len(ids) > 0 {
		if parties, err = s.partyRepo.FindPartiesByIDsForUpdate(ctx, tx, ids); err != nil {
			return fmt.Errorf("failed to lock parties: %w", err)
		}
	}
	if err := checkReferences(entry.Lines, accounts, parties).OrNil(); err != nil {
		return err
	}

	accountChanges, partyChanges := balanceChanges(entry.Lines, accounts, parties)
	if err := s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, accountChanges, userID, now); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}
	if len(partyChanges) > 0 {
		if err := s.partyRepo.UpdatePartyBalancesInTx(ctx, tx, partyChanges, userID, now); err != nil {
			return fmt.Errorf("failed to update party balances: %w", err)
		}
	}
	return nil
}

// balanceChanges computes the signed delta per account and per party, each relative to its own normal side.
func balanceChanges(lines []domain.JournalEntryLine, accounts map[string]domain.Account, parties map[string]domain.PartyLedger) (map[string]decimal.Decimal, map[string]decimal.Decimal) {
	accountChanges := make(map[string]decimal.Decimal)
	partyChanges := make(map[string]decimal.Decimal)
	for _, line := range lines {
		acc := accounts[line.AccountCode]
		accountChanges[line.AccountCode] = accountChanges[line.AccountCode].Add(accounting.SignedLineAmount(line, acc.NormalBalance))
		if line.PartyID != nil {
			party := parties[*line.PartyID]
			partyChanges[*line.PartyID] = partyChanges[*line.PartyID].Add(accounting.SignedLineAmount(line, party.PartyType.NormalBalance()))
		}
	}
	return accountChanges, partyChanges
}

// checkReferences reports unknown or inactive accounts and parties per line.
func checkReferences(lines []domain.JournalEntryLine, accounts map[string]domain.Account, parties map[string]domain.PartyLedger) validation.Errors {
	errs := validation.Errors{}
	for i, line := range lines {
		key := fmt.Sprintf("entries[%d]", i)
		acc, ok := accounts[line.AccountCode]
		switch {
		case !ok:
			errs.Add(key+".accountCode", fmt.Sprintf("account %s does not exist", line.AccountCode))
		case !acc.IsActive:
			errs.Add(key+".accountCode", fmt.Sprintf("account %s is inactive", line.AccountCode))
		}
		if line.PartyID == nil {
			continue
		}
		party, ok := parties[*line.PartyID]
		switch {
		case !ok:
			errs.Add(key+".partyID", fmt.Sprintf("party %s does not exist", *line.PartyID))
		case !party.IsActive:
			errs.Add(key+".partyID", fmt.Sprintf("party %s is inactive", *line.PartyID))
		}
	}
	return errs
}

// accountCodes returns the distinct account codes of lines in sorted order, which is also the lock order.
func accountCodes(lines []domain.JournalEntryLine) []string {
	codes := make([]string, 0, len(lines))
	for _, l := range lines {
		codes = append(codes, l.AccountCode)
	}
	return sortedUnique(codes)
}

func partyIDs(lines []domain.JournalEntryLine) []string {
	ids := make([]string, 0)
	for _, l := range lines {
		if l.PartyID != nil {
			ids = append(ids, *l.PartyID)
		}
	}
	return sortedUnique(ids)
}

func sortedUnique(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	sort.Strings(result)
	return result
}

// GetJournalByID retrieves a journal entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by ID", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

// ListJournals retrieves a page of journal headers.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams, userID string) (*dto.ListJournalsResponse, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	if err := validation.DateRange(params.FromDate, params.ToDate); err != nil {
		return nil, err
	}

	filter := portsrepo.JournalFilter{Status: params.Status, FromDate: params.FromDate, ToDate: params.ToDate}
	journals, nextToken, err := s.journalRepo.ListJournals(ctx, filter, pagination.NormalizeLimit(params.Limit), params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals from repository")
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	resp := &dto.ListJournalsResponse{
		Journals:  make([]dto.JournalResponse, len(journals)),
		NextToken: nextToken,
	}
	for i := range journals {
		resp.Journals[i] = dto.ToJournalResponse(&journals[i])
	}
	s.LogDebug(ctx, "Journals listed successfully", slog.Int("count", len(journals)))
	return resp, nil
}

// UpdateDraft replaces a draft's content after running the same checks as creation.
func (s *journalService) UpdateDraft(ctx context.Context, journalID string, req dto.UpdateJournalRequest, userID string) (*domain.JournalEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}

	entry := req.ToDomain()
	if err := s.checkEntry(ctx, entry); err != nil {
		return nil, err
	}

	now := s.now()
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		current, err := s.journalRepo.FindJournalByIDForUpdate(ctx, tx, journalID)
		if err != nil {
			return err
		}
		if current.Status != domain.Draft {
			return ErrJournalNotDraft
		}
		entry.JournalID = current.JournalID
		for i := range entry.Lines {
			entry.Lines[i].LineID = uuid.NewString()
			entry.Lines[i].JournalID = current.JournalID
		}
		entry.Amount, _ = accounting.Totals(entry.Lines)
		entry.AuditFields = current.AuditFields
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = userID
		return s.journalRepo.ReplaceDraftInTx(ctx, tx, entry)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update draft", slog.String("journal_id", journalID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Draft journal updated", slog.String("journal_id", journalID))
	return &entry, nil
}

// DeleteDraft removes a draft entry.
func (s *journalService) DeleteDraft(ctx context.Context, journalID string, userID string) error {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return err
	}
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		current, err := s.journalRepo.FindJournalByIDForUpdate(ctx, tx, journalID)
		if err != nil {
			return err
		}
		if current.Status != domain.Draft {
			return ErrJournalNotDraft
		}
		return s.journalRepo.DeleteDraftInTx(ctx, tx, journalID)
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Draft journal deleted", slog.String("journal_id", journalID))
	return nil
}

// PostJournal moves a draft to POSTED and applies it to account and party balances.
func (s *journalService) PostJournal(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}

	now := s.now()
	var posted *domain.JournalEntry
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		entry, err := s.journalRepo.FindJournalByIDForUpdate(ctx, tx, journalID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return ErrJournalNotDraft
		}
		if err := s.applyPosting(ctx, tx, *entry, userID, now); err != nil {
			return err
		}
		if err := s.journalRepo.MarkPostedInTx(ctx, tx, journalID, userID, now); err != nil {
			return err
		}
		markPosted(entry, userID, now)
		posted = entry
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to post journal", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	s.InvalidateReports(ctx)

	s.LogInfo(ctx, "Journal posted", slog.String("journal_id", journalID), slog.String("amount", posted.Amount.String()))
	return posted, nil
}

// ReverseJournal posts a new entry with every line's sides swapped and links it to the original.
// The original stays POSTED. A reversing entry cannot be reversed and an entry is reversed at most once.
func (s *journalService) ReverseJournal(ctx context.Context, journalID string, date *time.Time, description string, userID string) (*domain.JournalEntry, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}

	now := s.now()
	var reversal domain.JournalEntry
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		original, err := s.journalRepo.FindJournalByIDForUpdate(ctx, tx, journalID)
		if err != nil {
			return err
		}
		switch {
		case original.Status != domain.Posted:
			return ErrJournalNotPosted
		case original.IsReversal():
			return ErrReversalOfReversal
		case original.ReversingJournalID != nil:
			return ErrJournalAlreadyReversed
		}

		reversal = buildReversal(*original, date, description)
		s.assignIDs(&reversal)
		reversal.AuditFields = auditFields(userID, now)
		if err := s.applyPosting(ctx, tx, reversal, userID, now); err != nil {
			return err
		}
		markPosted(&reversal, userID, now)
		if err := s.journalRepo.SaveJournalInTx(ctx, tx, reversal); err != nil {
			return err
		}
		return s.journalRepo.LinkReversalInTx(ctx, tx, original.JournalID, reversal.JournalID, userID, now)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to reverse journal", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	s.InvalidateReports(ctx)

	s.LogInfo(ctx, "Journal reversed",
		slog.String("original_journal_id", journalID),
		slog.String("reversing_journal_id", reversal.JournalID))
	return &reversal, nil
}

func buildReversal(original domain.JournalEntry, date *time.Time, description string) domain.JournalEntry {
	entryDate := original.EntryDate
	if date != nil {
		entryDate = *date
	}
	if description == "" {
		description = truncateRunes(reversalPrefix+original.Description, maxDescriptionLength)
	}
	originalID := original.JournalID
	lines := make([]domain.JournalEntryLine, len(original.Lines))
	for i, line := range original.Lines {
		lines[i] = line.Reversed()
	}
	return domain.JournalEntry{
		EntryDate:         entryDate,
		Description:       description,
		ReferenceNumber:   original.ReferenceNumber,
		OriginalJournalID: &originalID,
		Lines:             lines,
	}
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// ValidateJournal runs every creation check and reports the totals without saving anything.
func (s *journalService) ValidateJournal(ctx context.Context, req dto.CreateJournalRequest, userID string) (*dto.JournalValidationResponse, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}

	entry := req.ToDomain()
	debit, credit := accounting.Totals(entry.Lines)
	resp := &dto.JournalValidationResponse{
		Valid:       true,
		TotalDebit:  debit,
		TotalCredit: credit,
		Difference:  debit.Sub(credit).Abs(),
	}

	err := s.checkEntry(ctx, entry)
	if err == nil {
		return resp, nil
	}
	errs, ok := validation.AsErrors(err)
	if !ok {
		return nil, err
	}
	resp.Valid = false
	resp.Errors = errs
	return resp, nil
}
