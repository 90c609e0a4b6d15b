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

const accountColumns = `account_id, code, name, account_type, normal_balance, sub_type, description,
	opening_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func collectAccounts(rows pgx.Rows) ([]models.Account, error) {
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
}

// SaveAccount inserts a new account. Its balance starts at the opening balance.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Code, m.Name, m.AccountType, m.NormalBalance, m.SubType, m.Description,
		m.OpeningBalance, m.Balance, m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "account "+m.Code)
}

// FindAccountByCode retrieves an account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1;`, code)
	if err != nil {
		return nil, translateError(err, "account "+code)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, translateError(err, "account "+code)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByCodes retrieves multiple accounts keyed by code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = ANY($1);`, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by codes: %w", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountMap(ms), nil
}

// ListAccounts retrieves accounts in code order.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	var where whereBuilder
	if filter.AccountType != nil {
		where.add("account_type = ?", string(*filter.AccountType))
	}
	if filter.IsActive != nil {
		where.add("is_active = ?", *filter.IsActive)
	}
	query := `SELECT ` + accountColumns + ` FROM accounts` + where.clause() + ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// CountAccounts returns the size of the chart of accounts.
func (r *PgxAccountRepository) CountAccounts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}

// UpdateAccount updates an existing account's descriptive fields.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, description = $2, sub_type = $3, last_updated_at = $4, last_updated_by = $5
		WHERE code = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.Name, account.Description, string(account.SubType), account.LastUpdatedAt, account.LastUpdatedBy, account.Code)
	if err != nil {
		return translateError(err, "account "+account.Code)
	}
	return requireOneRow(tag, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.Code))
}

// DeactivateAccount marks an account as inactive.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	query := `UPDATE accounts SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2 WHERE code = $3;`
	tag, err := r.Pool.Exec(ctx, query, now, userID, code)
	if err != nil {
		return translateError(err, "account "+code)
	}
	return requireOneRow(tag, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code))
}

// FindAccountsByCodesForUpdate selects accounts and locks them in code order.
func (r *PgxAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ANY($1) ORDER BY code FOR UPDATE;`
	rows, err := tx.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan locked accounts: %w", err)
	}
	return mapping.ToDomainAccountMap(ms), nil
}

// UpdateAccountBalancesInTx adds signed deltas to the persisted balances within a given transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}
	query := `UPDATE accounts SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3 WHERE code = $4;`

	codes := sortedKeys(balanceChanges)
	batch := &pgx.Batch{}
	for _, code := range codes {
		batch.Queue(query, balanceChanges[code], now, userID, code)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, code := range codes {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("failed to update balance for account %s: %w", code, err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("%w: balance update touched %d rows for account %s", apperrors.ErrInternal, tag.RowsAffected(), code)
		}
	}
	return br.Close()
}
