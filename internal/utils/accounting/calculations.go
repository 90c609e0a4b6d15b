package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/apperrors"
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// VATRate is the value added tax rate applied to taxable purchase and sale amounts.
	VATRate = decimal.RequireFromString("0.13")

	// BalanceTolerance is the largest difference treated as equal when comparing money totals.
	BalanceTolerance = decimal.RequireFromString("0.01")
)

// MinJournalLines is the minimum number of lines in a journal entry.
const MinJournalLines = 2

// MoneyScale is the number of decimal places a stored amount keeps (paisa).
const MoneyScale int32 = 2

// ErrTooFewLines is returned for a journal entry with fewer than MinJournalLines lines.
var ErrTooFewLines = fmt.Errorf("%w: journal entry must have at least %d lines", apperrors.ErrValidation, MinJournalLines)

// LineError reports a problem with a single journal line. Index is 1-based.
type LineError struct {
	Index  int
	Reason string
}

// Error renders the reason prefixed with the 1-based line number.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %s", e.Index, e.Reason)
}

// Is makes a LineError match apperrors.ErrValidation.
func (e *LineError) Is(target error) bool {
	return target == apperrors.ErrValidation
}

// UnbalancedError reports a journal whose debit and credit totals differ by more than BalanceTolerance.
type UnbalancedError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Difference  decimal.Decimal
}

// Error renders both totals and their difference to two decimals.
func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("journal entry is not balanced: total debit %s, total credit %s, difference %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2), e.Difference.StringFixed(2))
}

// Is makes an UnbalancedError match apperrors.ErrValidation.
func (e *UnbalancedError) Is(target error) bool {
	return target == apperrors.ErrValidation
}

// Totals sums the debit and credit sides of the given lines.
func Totals(lines []domain.JournalEntryLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.DebitAmount)
		credit = credit.Add(l.CreditAmount)
	}
	return debit, credit
}

// CheckLine validates a single line. index is 1-based.
func CheckLine(index int, line domain.JournalEntryLine) error {
	if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
		return &LineError{Index: index, Reason: "amounts cannot be negative"}
	}
	if !HasMoneyScale(line.DebitAmount) || !HasMoneyScale(line.CreditAmount) {
		return &LineError{Index: index, Reason: "amounts cannot have more than 2 decimal places"}
	}
	hasDebit := line.DebitAmount.IsPositive()
	hasCredit := line.CreditAmount.IsPositive()
	if hasDebit && hasCredit {
		return &LineError{Index: index, Reason: "cannot have both debit and credit"}
	}
	if !hasDebit && !hasCredit {
		return &LineError{Index: index, Reason: "must have either a debit or a credit amount"}
	}
	return nil
}

// CheckEntryBalance enforces the double-entry rules on a fully assembled set of lines.
// It is pure: the same lines always produce the same verdict and message.
func CheckEntryBalance(lines []domain.JournalEntryLine) error {
	if len(lines) < MinJournalLines {
		return ErrTooFewLines
	}
	for i, line := range lines {
		if err := CheckLine(i+1, line); err != nil {
			return err
		}
	}
	debit, credit := Totals(lines)
	diff := debit.Sub(credit).Abs()
	if diff.GreaterThan(BalanceTolerance) {
		return &UnbalancedError{TotalDebit: debit, TotalCredit: credit, Difference: diff}
	}
	return nil
}

// HasMoneyScale reports whether amount fits in MoneyScale decimal places without rounding.
func HasMoneyScale(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyScale))
}

// WithinTolerance reports whether a and b differ by at most BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}

// ExpectedVAT returns taxable × VATRate rounded to paisa.
func ExpectedVAT(taxable decimal.Decimal) decimal.Decimal {
	return taxable.Mul(VATRate).Round(2)
}

// SignedAmount applies the sign convention for a target whose normal side is normal:
// a movement on the normal side increases the balance, one on the opposite side decreases it.
func SignedAmount(debit, credit decimal.Decimal, normal domain.NormalBalance) decimal.Decimal {
	if normal == domain.DebitBalance {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// SignedLineAmount is SignedAmount for a journal line.
func SignedLineAmount(line domain.JournalEntryLine, normal domain.NormalBalance) decimal.Decimal {
	return SignedAmount(line.DebitAmount, line.CreditAmount, normal)
}

// BalanceSide returns the side a signed balance falls on.
// Non-negative balances sit on the normal side.
func BalanceSide(balance decimal.Decimal, normal domain.NormalBalance) domain.NormalBalance {
	if balance.IsNegative() {
		return normal.Opposite()
	}
	return normal
}

// NetBalance computes opening + signed(totalDebit, totalCredit) and the side it falls on.
func NetBalance(opening, totalDebit, totalCredit decimal.Decimal, normal domain.NormalBalance) (decimal.Decimal, domain.NormalBalance) {
	balance := opening.Add(SignedAmount(totalDebit, totalCredit, normal))
	return balance, BalanceSide(balance, normal)
}

// QuarterRange returns the first and last day of a calendar quarter.
func QuarterRange(year, quarter int) (time.Time, time.Time) {
	startMonth := time.Month((quarter-1)*3 + 1)
	from := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 3, -1)
	return from, to
}

// SafeRatio divides numerator by denominator, returning nil when the denominator is zero.
func SafeRatio(numerator, denominator decimal.Decimal) *decimal.Decimal {
	if denominator.IsZero() {
		return nil
	}
	r := numerator.DivRound(denominator, 4)
	return &r
}
