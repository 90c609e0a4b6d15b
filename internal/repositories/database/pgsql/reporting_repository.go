package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/distributor_ledger_app/internal/models"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) *reportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetAccountActivity returns every account with its posted debit and credit totals up to asOf.
// Reversals are ordinary posted entries, so they are included.
func (r *reportingRepository) GetAccountActivity(ctx context.Context, tx pgx.Tx, asOf time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT
			a.account_id, a.code, a.name, a.account_type, a.normal_balance, a.sub_type, a.description,
			a.opening_balance, a.balance, a.is_active, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
			COALESCE(m.total_debit, 0) AS total_debit,
			COALESCE(m.total_credit, 0) AS total_credit
		FROM accounts a
		LEFT JOIN (
			SELECT l.account_code, SUM(l.debit_amount) AS total_debit, SUM(l.credit_amount) AS total_credit
			FROM journal_lines l
			JOIN journal_entries j ON j.journal_id = l.journal_id
			WHERE j.status = 'POSTED' AND j.entry_date <= $1::date
			GROUP BY l.account_code
		) m ON m.account_code = a.code
		ORDER BY a.code;
	`
	rows, err := tx.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AccountActivity])
	if err != nil {
		return nil, fmt.Errorf("error scanning account activity: %w", err)
	}
	return mapping.ToDomainAccountActivitySlice(ms), nil
}

func (r *reportingRepository) listVAT(ctx context.Context, tx pgx.Tx, t tradeTable, from, to time.Time) ([]domain.VATDocument, error) {
	query := `SELECT ` + t.dateColumn + ` AS doc_date, taxable_amount, vat_amount FROM ` + t.name + `
		WHERE ` + t.dateColumn + ` BETWEEN $1::date AND $2::date ORDER BY ` + t.dateColumn + `;`
	rows, err := tx.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying %s VAT: %w", t.name, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.VATDocument])
	if err != nil {
		return nil, fmt.Errorf("error scanning %s VAT: %w", t.name, err)
	}
	return mapping.ToDomainVATDocumentSlice(ms), nil
}

// ListPurchaseVAT returns the VAT projection of bills dated within [from, to].
func (r *reportingRepository) ListPurchaseVAT(ctx context.Context, tx pgx.Tx, from, to time.Time) ([]domain.VATDocument, error) {
	return r.listVAT(ctx, tx, purchasesTable, from, to)
}

// ListSalesVAT returns the VAT projection of invoices dated within [from, to].
func (r *reportingRepository) ListSalesVAT(ctx context.Context, tx pgx.Tx, from, to time.Time) ([]domain.VATDocument, error) {
	return r.listVAT(ctx, tx, salesTable, from, to)
}
