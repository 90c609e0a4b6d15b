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
)

const tradeAmountColumns = `subtotal, discount_amount, taxable_amount, vat_amount, total_amount,
	created_at, created_by, last_updated_at, last_updated_by`

const purchaseColumns = `purchase_id, bill_number, supplier_id, bill_date, items, payment_method, due_date, status, notes, ` + tradeAmountColumns

const salesColumns = `sales_id, invoice_number, customer_id, invoice_date, items, payment_method, due_date, status, notes, ` + tradeAmountColumns

// tradeTable describes the column names that differ between purchases and sales.
type tradeTable struct {
	name, idColumn, partyColumn, dateColumn, columns string
}

var (
	purchasesTable = tradeTable{"purchases", "purchase_id", "supplier_id", "bill_date", purchaseColumns}
	salesTable     = tradeTable{"sales", "sales_id", "customer_id", "invoice_date", salesColumns}
)

func (t tradeTable) listQuery(filter portsrepo.TradeFilter, limit, offset int) (string, []any) {
	var where whereBuilder
	if filter.Status != nil {
		where.add("status = ?", string(*filter.Status))
	}
	if filter.PartyID != nil {
		where.add(t.partyColumn+" = ?", *filter.PartyID)
	}
	if filter.FromDate != nil {
		where.add(t.dateColumn+" >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		where.add(t.dateColumn+" <= ?", *filter.ToDate)
	}
	query := `SELECT ` + t.columns + ` FROM ` + t.name + where.clause() +
		` ORDER BY ` + t.dateColumn + ` DESC, created_at DESC LIMIT ` + where.next(limit) + ` OFFSET ` + where.next(offset) + `;`
	return query, where.args
}

func (t tradeTable) insertQuery() string {
	return `INSERT INTO ` + t.name + ` (` + t.columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`
}

func (t tradeTable) updateStatus(ctx context.Context, pool *pgxpool.Pool, id string, from []domain.SettlementStatus, to domain.SettlementStatus, userID string, now time.Time) error {
	fromStrs := make([]string, len(from))
	for i, s := range from {
		fromStrs[i] = string(s)
	}
	query := `UPDATE ` + t.name + ` SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE ` + t.idColumn + ` = $4 AND status = ANY($5);`
	tag, err := pool.Exec(ctx, query, string(to), now, userID, id, fromStrs)
	if err != nil {
		return translateError(err, t.name+" "+id)
	}
	return requireOneRow(tag, fmt.Errorf("%w: %s %s is not in a settleable status", apperrors.ErrConflict, t.name, id))
}

// overdueStatement flips pending credit documents due before now's calendar date.
// The stamp and the cutoff are separate parameters so last_updated_at keeps its time of day.
func (t tradeTable) overdueStatement(now time.Time) (string, []any) {
	query := `UPDATE ` + t.name + ` SET status = 'OVERDUE', last_updated_at = $1, last_updated_by = 'system'
		WHERE status = 'PENDING' AND payment_method = 'CREDIT' AND due_date < $2::date;`
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return query, []any{now, today}
}

func (t tradeTable) markOverdue(ctx context.Context, pool *pgxpool.Pool, now time.Time) (int64, error) {
	query, args := t.overdueStatement(now)
	tag, err := pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue %s: %w", t.name, err)
	}
	return tag.RowsAffected(), nil
}

type PgxPurchaseRepository struct {
	BaseRepository
}

func newPgxPurchaseRepository(pool *pgxpool.Pool) *PgxPurchaseRepository {
	return &PgxPurchaseRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.PurchaseRepository = (*PgxPurchaseRepository)(nil)

func (r *PgxPurchaseRepository) SavePurchase(ctx context.Context, purchase domain.PurchaseEntry) error {
	m := mapping.ToModelPurchase(purchase)
	_, err := r.Pool.Exec(ctx, purchasesTable.insertQuery(),
		m.PurchaseID, m.BillNumber, m.SupplierID, m.BillDate, m.Items, m.PaymentMethod, m.DueDate, m.Status, m.Notes,
		m.Subtotal, m.DiscountAmount, m.TaxableAmount, m.VATAmount, m.TotalAmount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "bill "+m.BillNumber)
}

func (r *PgxPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.PurchaseEntry, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE purchase_id = $1;`, purchaseID)
	if err != nil {
		return nil, translateError(err, "purchase "+purchaseID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Purchase])
	if err != nil {
		return nil, translateError(err, "purchase "+purchaseID)
	}
	p := mapping.ToDomainPurchase(m)
	return &p, nil
}

func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, filter portsrepo.TradeFilter, limit int, offset int) ([]domain.PurchaseEntry, error) {
	query, args := purchasesTable.listQuery(filter, limit, offset)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Purchase])
	if err != nil {
		return nil, fmt.Errorf("failed to scan purchases: %w", err)
	}
	return mapping.ToDomainPurchaseSlice(ms), nil
}

func (r *PgxPurchaseRepository) UpdatePurchaseStatus(ctx context.Context, purchaseID string, from []domain.SettlementStatus, to domain.SettlementStatus, userID string, now time.Time) error {
	return purchasesTable.updateStatus(ctx, r.Pool, purchaseID, from, to, userID, now)
}

func (r *PgxPurchaseRepository) MarkOverduePurchases(ctx context.Context, now time.Time) (int64, error) {
	return purchasesTable.markOverdue(ctx, r.Pool, now)
}

type PgxSalesRepository struct {
	BaseRepository
}

func newPgxSalesRepository(pool *pgxpool.Pool) *PgxSalesRepository {
	return &PgxSalesRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.SalesRepository = (*PgxSalesRepository)(nil)

func (r *PgxSalesRepository) SaveSale(ctx context.Context, sale domain.SalesEntry) error {
	m := mapping.ToModelSale(sale)
	_, err := r.Pool.Exec(ctx, salesTable.insertQuery(),
		m.SalesID, m.InvoiceNumber, m.CustomerID, m.InvoiceDate, m.Items, m.PaymentMethod, m.DueDate, m.Status, m.Notes,
		m.Subtotal, m.DiscountAmount, m.TaxableAmount, m.VATAmount, m.TotalAmount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "invoice "+m.InvoiceNumber)
}

func (r *PgxSalesRepository) FindSaleByID(ctx context.Context, salesID string) (*domain.SalesEntry, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+salesColumns+` FROM sales WHERE sales_id = $1;`, salesID)
	if err != nil {
		return nil, translateError(err, "sale "+salesID)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		return nil, translateError(err, "sale "+salesID)
	}
	s := mapping.ToDomainSale(m)
	return &s, nil
}

func (r *PgxSalesRepository) ListSales(ctx context.Context, filter portsrepo.TradeFilter, limit int, offset int) ([]domain.SalesEntry, error) {
	query, args := salesTable.listQuery(filter, limit, offset)
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		return nil, fmt.Errorf("failed to scan sales: %w", err)
	}
	return mapping.ToDomainSaleSlice(ms), nil
}

func (r *PgxSalesRepository) UpdateSaleStatus(ctx context.Context, salesID string, from []domain.SettlementStatus, to domain.SettlementStatus, userID string, now time.Time) error {
	return salesTable.updateStatus(ctx, r.Pool, salesID, from, to, userID, now)
}

func (r *PgxSalesRepository) MarkOverdueSales(ctx context.Context, now time.Time) (int64, error) {
	return salesTable.markOverdue(ctx, r.Pool, now)
}
