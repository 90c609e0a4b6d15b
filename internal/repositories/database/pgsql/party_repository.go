package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/distributor_ledger_app/internal/models"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const partyColumns = `party_id, party_name, party_type, opening_balance, current_balance, tax_id, phone, email,
	address, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxPartyRepository struct {
	BaseRepository
}

func newPgxPartyRepository(pool *pgxpool.Pool) *PgxPartyRepository {
	return &PgxPartyRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

func partyMap(ms []models.Party) map[string]domain.PartyLedger {
	out := make(map[string]domain.PartyLedger, len(ms))
	for _, m := range ms {
		out[m.PartyID] = mapping.ToDomainParty(m)
	}
	return out
}

func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.PartyLedger) error {
	m := mapping.ToModelParty(party)
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PartyID, m.PartyName, m.PartyType, m.OpeningBalance, m.CurrentBalance, m.TaxID, m.Phone, m.Email,
		m.Address, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "party "+m.PartyID)
}

func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.PartyLedger, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+partyColumns+` FROM parties WHERE party_id = $1;`, partyID)
	if err != nil {
		return nil, translateError(err, "party "+partyID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Party])
	if err != nil {
		return nil, translateError(err, "party "+partyID)
	}
	party := mapping.ToDomainParty(m)
	return &party, nil
}

func (r *PgxPartyRepository) FindPartiesByIDs(ctx context.Context, partyIDs []string) (map[string]domain.PartyLedger, error) {
	if len(partyIDs) == 0 {
		return map[string]domain.PartyLedger{}, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+partyColumns+` FROM parties WHERE party_id = ANY($1);`, partyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Party])
	if err != nil {
		return nil, fmt.Errorf("failed to scan parties: %w", err)
	}
	return partyMap(ms), nil
}

// ListParties returns parties by name, optionally filtered by type, activity and a name/tax ID search.
func (r *PgxPartyRepository) ListParties(ctx context.Context, filter portsrepo.PartyFilter, limit int, offset int) ([]domain.PartyLedger, error) {
	var where whereBuilder
	if filter.PartyType != nil {
		where.add("party_type = ?", string(*filter.PartyType))
	}
	if filter.IsActive != nil {
		where.add("is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		p := where.next("%" + filter.Search + "%")
		where.conds = append(where.conds, "(party_name ILIKE "+p+" OR tax_id ILIKE "+p+")")
	}
	query := `SELECT ` + partyColumns + ` FROM parties` + where.clause() +
		` ORDER BY party_name, party_id LIMIT ` + where.next(limit) + ` OFFSET ` + where.next(offset) + `;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Party])
	if err != nil {
		return nil, fmt.Errorf("failed to scan parties: %w", err)
	}
	return mapping.ToDomainPartySlice(ms), nil
}

func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.PartyLedger) error {
	query := `
		UPDATE parties
		SET party_name = $1, tax_id = $2, phone = $3, email = $4, address = $5, last_updated_at = $6, last_updated_by = $7
		WHERE party_id = $8;
	`
	tag, err := r.Pool.Exec(ctx, query, party.PartyName, party.TaxID, party.Phone, party.Email, party.Address,
		party.LastUpdatedAt, party.LastUpdatedBy, party.PartyID)
	if err != nil {
		return translateError(err, "party "+party.PartyID)
	}
	return requireOneRow(tag, fmt.Errorf("%w: party %s", apperrors.ErrNotFound, party.PartyID))
}

func (r *PgxPartyRepository) DeactivateParty(ctx context.Context, partyID string, userID string, now time.Time) error {
	query := `UPDATE parties SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE party_id = $3;`
	tag, err := r.Pool.Exec(ctx, query, now, userID, partyID)
	if err != nil {
		return translateError(err, "party "+partyID)
	}
	return requireOneRow(tag, fmt.Errorf("%w: party %s", apperrors.ErrNotFound, partyID))
}

// FindPartiesByIDsForUpdate selects parties and locks them in ID order.
func (r *PgxPartyRepository) FindPartiesByIDsForUpdate(ctx context.Context, tx pgx.Tx, partyIDs []string) (map[string]domain.PartyLedger, error) {
	if len(partyIDs) == 0 {
		return map[string]domain.PartyLedger{}, nil
	}
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = ANY($1) ORDER BY party_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, partyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock parties: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Party])
	if err != nil {
		return nil, fmt.Errorf("failed to scan locked parties: %w", err)
	}
	return partyMap(ms), nil
}

// UpdatePartyBalancesInTx adds signed deltas to current_balance within a given transaction.
func (r *PgxPartyRepository) UpdatePartyBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	query := `UPDATE parties SET current_balance = current_balance + $1, last_updated_at = $2, last_updated_by = $3 WHERE party_id = $4;`

	ids := sortedKeys(balanceChanges)
	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(query, balanceChanges[id], now, userID, id)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, id := range ids {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to update balance for party %s: %w", id, err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("%w: balance update touched %d rows for party %s", apperrors.ErrInternal, tag.RowsAffected(), id)
		}
	}
	return br.Close()
}
