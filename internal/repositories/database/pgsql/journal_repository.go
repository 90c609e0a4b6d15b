package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/distributor_ledger_app/internal/models"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const journalColumns = `journal_id, entry_date, description, reference_number, status, amount,
	original_journal_id, reversing_journal_id, posted_at, posted_by,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, journal_id, line_number, account_code, party_id, description,
	debit_amount, credit_amount, created_at`

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func decodeCursor(nextToken *string) (*pagination.Cursor, error) {
	if nextToken == nil || *nextToken == "" {
		return nil, nil
	}
	c, err := pagination.DecodeToken(*nextToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return &c, nil
}

func (r *PgxJournalRepository) findJournal(ctx context.Context, q querier, journalID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE journal_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, journalID)
	if err != nil {
		return nil, translateError(err, "journal "+journalID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, translateError(err, "journal "+journalID)
	}

	rows, err = q.Query(ctx, `SELECT `+lineColumns+` FROM journal_lines WHERE journal_id = $1 ORDER BY line_number;`, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines for journal %s: %w", journalID, err)
	}

	journal := mapping.ToDomainJournal(m)
	journal.Lines = mapping.ToDomainJournalLineSlice(lines)
	return &journal, nil
}

// FindJournalByID retrieves a journal entry together with its lines.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	return r.findJournal(ctx, r.Pool, journalID, false)
}

// FindJournalByIDForUpdate locks the header row and returns it with its lines.
func (r *PgxJournalRepository) FindJournalByIDForUpdate(ctx context.Context, tx pgx.Tx, journalID string) (*domain.JournalEntry, error) {
	return r.findJournal(ctx, tx, journalID, true)
}

// ListJournals retrieves journal headers newest first using token-based pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, filter portsrepo.JournalFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	cursor, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	var where whereBuilder
	if filter.Status != nil {
		where.add("status = ?", string(*filter.Status))
	}
	if filter.FromDate != nil {
		where.add("entry_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		where.add("entry_date <= ?", *filter.ToDate)
	}
	if cursor != nil {
		d, c, id := where.next(cursor.Date), where.next(cursor.CreatedAt), where.next(cursor.ID)
		where.conds = append(where.conds, "(entry_date, created_at, journal_id) < ("+d+", "+c+", "+id+")")
	}
	query := `SELECT ` + journalColumns + ` FROM journal_entries` + where.clause() +
		` ORDER BY entry_date DESC, created_at DESC, journal_id DESC LIMIT ` + where.next(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list journals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan journals: %w", err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.JournalID})
		next = &token
	}
	return mapping.ToDomainJournalSlice(ms), next, nil
}

// movementSumQuery totals posted lines matching $1 on column, dated on or before $2 when $2 is set.
// Drafts never count.
func movementSumQuery(column string) string {
	return `
		SELECT COALESCE(SUM(l.debit_amount), 0), COALESCE(SUM(l.credit_amount), 0)
		FROM journal_lines l
		JOIN journal_entries j ON j.journal_id = l.journal_id
		WHERE l.` + column + ` = $1 AND j.status = 'POSTED' AND ($2::date IS NULL OR j.entry_date <= $2::date);
	`
}

func (r *PgxJournalRepository) sumMovements(ctx context.Context, column, key string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var debit, credit decimal.Decimal
	if err := r.Pool.QueryRow(ctx, movementSumQuery(column), key, asOf).Scan(&debit, &credit); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum movements for %s: %w", key, err)
	}
	return debit, credit, nil
}

// SumAccountMovements totals posted debits and credits on an account dated on or before asOf.
func (r *PgxJournalRepository) SumAccountMovements(ctx context.Context, accountCode string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return r.sumMovements(ctx, "account_code", accountCode, asOf)
}

// SumPartyMovements totals posted debits and credits on lines tagged with the party.
func (r *PgxJournalRepository) SumPartyMovements(ctx context.Context, partyID string, asOf *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return r.sumMovements(ctx, "party_id", partyID, asOf)
}

// ListPostedLinesByAccount returns posted lines for an account, oldest first.
func (r *PgxJournalRepository) ListPostedLinesByAccount(ctx context.Context, accountCode string, limit int, nextToken *string) ([]domain.JournalEntryLine, *string, error) {
	cursor, err := decodeCursor(nextToken)
	if err != nil {
		return nil, nil, err
	}

	args := []any{accountCode}
	cursorCond := ""
	if cursor != nil {
		args = append(args, cursor.Date, cursor.CreatedAt, cursor.ID)
		cursorCond = ` AND (j.entry_date, l.created_at, l.line_id) > ($2, $3, $4)`
	}
	args = append(args, limit+1)
	query := `
		SELECT l.line_id, l.journal_id, l.line_number, l.account_code, l.party_id, l.description,
			l.debit_amount, l.credit_amount, l.created_at,
			j.entry_date, j.description AS journal_description
		FROM journal_lines l
		JOIN journal_entries j ON j.journal_id = l.journal_id
		WHERE l.account_code = $1 AND j.status = 'POSTED'` + cursorCond + `
		ORDER BY j.entry_date, l.created_at, l.line_id
		LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list lines for account %s: %w", accountCode, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.StatementLine])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan lines for account %s: %w", accountCode, err)
	}

	var next *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.EntryDate, CreatedAt: last.CreatedAt, ID: last.LineID})
		next = &token
	}
	lines := make([]domain.JournalEntryLine, len(ms))
	for i, m := range ms {
		lines[i] = mapping.ToDomainStatementLine(m)
	}
	return lines, next, nil
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, tx pgx.Tx, journalID string, lines []domain.JournalEntryLine) error {
	query := `INSERT INTO journal_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query, m.LineID, journalID, m.LineNumber, m.AccountCode, m.PartyID, m.Description,
			m.DebitAmount, m.CreditAmount, m.CreatedAt)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for _, line := range lines {
		if _, err := br.Exec(); err != nil {
			return translateError(err, fmt.Sprintf("journal %s line %d", journalID, line.LineNumber))
		}
	}
	return br.Close()
}

// SaveJournalInTx inserts a header and its lines.
func (r *PgxJournalRepository) SaveJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.JournalEntry) error {
	m := mapping.ToModelJournal(journal)
	query := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalID, m.EntryDate, m.Description, m.ReferenceNumber, m.Status, m.Amount,
		m.OriginalJournalID, m.ReversingJournalID, m.PostedAt, m.PostedBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "journal "+m.JournalID)
	}
	return r.insertLines(ctx, tx, m.JournalID, journal.Lines)
}

// ReplaceDraftInTx overwrites the header fields and lines of a draft.
func (r *PgxJournalRepository) ReplaceDraftInTx(ctx context.Context, tx pgx.Tx, journal domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET entry_date = $1, description = $2, reference_number = $3, amount = $4, last_updated_at = $5, last_updated_by = $6
		WHERE journal_id = $7 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query, journal.EntryDate, journal.Description, journal.ReferenceNumber, journal.Amount,
		journal.LastUpdatedAt, journal.LastUpdatedBy, journal.JournalID)
	if err != nil {
		return translateError(err, "journal "+journal.JournalID)
	}
	if err := requireOneRow(tag, fmt.Errorf("%w: journal %s is not a draft", apperrors.ErrConflict, journal.JournalID)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journal.JournalID); err != nil {
		return fmt.Errorf("failed to clear lines for journal %s: %w", journal.JournalID, err)
	}
	return r.insertLines(ctx, tx, journal.JournalID, journal.Lines)
}

// DeleteDraftInTx removes a draft; its lines cascade.
func (r *PgxJournalRepository) DeleteDraftInTx(ctx context.Context, tx pgx.Tx, journalID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE journal_id = $1 AND status = 'DRAFT';`, journalID)
	if err != nil {
		return translateError(err, "journal "+journalID)
	}
	return requireOneRow(tag, fmt.Errorf("%w: journal %s is not a draft", apperrors.ErrConflict, journalID))
}

// MarkPostedInTx flips a draft to POSTED.
func (r *PgxJournalRepository) MarkPostedInTx(ctx context.Context, tx pgx.Tx, journalID string, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'POSTED', posted_at = $1, posted_by = $2, last_updated_at = $1, last_updated_by = $2
		WHERE journal_id = $3 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query, now, userID, journalID)
	if err != nil {
		return translateError(err, "journal "+journalID)
	}
	return requireOneRow(tag, fmt.Errorf("%w: journal %s is already posted", apperrors.ErrConflict, journalID))
}

// LinkReversalInTx records the reversing entry on the original.
func (r *PgxJournalRepository) LinkReversalInTx(ctx context.Context, tx pgx.Tx, originalJournalID, reversingJournalID string, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET reversing_journal_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE journal_id = $4 AND reversing_journal_id IS NULL;
	`
	tag, err := tx.Exec(ctx, query, reversingJournalID, now, userID, originalJournalID)
	if err != nil {
		return translateError(err, "journal "+originalJournalID)
	}
	return requireOneRow(tag, fmt.Errorf("%w: journal %s has already been reversed", apperrors.ErrConflict, originalJournalID))
}
