package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
)

// translateError maps driver errors onto the application sentinels.
// what names the thing being read or written, e.g. "account 1000".
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, what)
		case pgForeignKeyViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, what, pgErr.ConstraintName)
		case pgStringTooLong:
			return fmt.Errorf("%w: %s has a value too long for its column", apperrors.ErrValidation, what)
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

// requireOneRow turns an UPDATE that touched nothing into miss.
func requireOneRow(tag pgconn.CommandTag, miss error) error {
	if tag.RowsAffected() == 0 {
		return miss
	}
	return nil
}
