package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/distributor_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/distributor_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/accounting"
	"github.com/SscSPs/distributor_ledger_app/internal/validation"
)

// CurrentEarningsName labels the computed net income line in the equity section.
const CurrentEarningsName = "Current earnings"

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...Option) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// inSnapshot runs fn inside one read-only snapshot so every figure of a report agrees.
func (s *reportingService) inSnapshot(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.reportingRepo.BeginSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to open report snapshot: %w", err)
	}
	defer func() {
		if rbErr := s.reportingRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to close report snapshot")
		}
	}()
	return fn(tx)
}

// cached serves key from the report cache when one is configured.
func cached[T any](ctx context.Context, s *reportingService, key string, build func(ctx context.Context) (*T, error)) (*T, error) {
	if s.ReportCache == nil {
		return build(ctx)
	}
	var out T
	err := s.ReportCache.Fetch(ctx, key, &out, func(ctx context.Context) (any, error) {
		return build(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTrialBalance generates a trial balance report as of a specific date
func (s *reportingService) GetTrialBalance(ctx context.Context, asOf time.Time, userID string) (*domain.TrialBalanceReport, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		s.LogError(ctx, err, "User not authorized to view trial balance", slog.String("user_id", userID))
		return nil, err
	}

	key := "trial-balance:" + asOf.Format(time.DateOnly)
	report, err := cached(ctx, s, key, func(ctx context.Context) (*domain.TrialBalanceReport, error) {
		var activity []domain.AccountActivity
		err := s.inSnapshot(ctx, func(tx pgx.Tx) error {
			var err error
			activity, err = s.reportingRepo.GetAccountActivity(ctx, tx, asOf)
			return err
		})
		if err != nil {
			return nil, err
		}
		r := BuildTrialBalance(asOf, activity)
		return &r, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate trial balance", slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to generate trial balance: %w", err)
	}

	s.LogInfo(ctx, "Trial balance report generated",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(report.Rows)),
		slog.Bool("balanced", report.IsBalanced))
	return report, nil
}

// GetBalanceSheet generates a balance sheet with ratios as of a specific date
func (s *reportingService) GetBalanceSheet(ctx context.Context, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		s.LogError(ctx, err, "User not authorized to view balance sheet", slog.String("user_id", userID))
		return nil, err
	}

	key := "balance-sheet:" + asOf.Format(time.DateOnly)
	report, err := cached(ctx, s, key, func(ctx context.Context) (*domain.BalanceSheetReport, error) {
		var activity []domain.AccountActivity
		err := s.inSnapshot(ctx, func(tx pgx.Tx) error {
			var err error
			activity, err = s.reportingRepo.GetAccountActivity(ctx, tx, asOf)
			return err
		})
		if err != nil {
			return nil, err
		}
		r := BuildBalanceSheet(asOf, activity)
		return &r, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate balance sheet", slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to generate balance sheet: %w", err)
	}

	s.LogInfo(ctx, "Balance sheet report generated",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Bool("balanced", report.IsBalanced))
	return report, nil
}

// GetVATSummary generates the VAT summary for a calendar quarter.
func (s *reportingService) GetVATSummary(ctx context.Context, year, quarter int, userID string) (*domain.VATSummary, error) {
	if _, err := s.AuthorizeUser(ctx, userID, staffRoles...); err != nil {
		return nil, err
	}
	if err := validation.VATPeriod(year, quarter); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("vat-summary:%d-Q%d", year, quarter)
	summary, err := cached(ctx, s, key, func(ctx context.Context) (*domain.VATSummary, error) {
		from, to := accounting.QuarterRange(year, quarter)
		var purchases, sales []domain.VATDocument
		err := s.inSnapshot(ctx, func(tx pgx.Tx) error {
			var err error
			if purchases, err = s.reportingRepo.ListPurchaseVAT(ctx, tx, from, to); err != nil {
				return err
			}
			sales, err = s.reportingRepo.ListSalesVAT(ctx, tx, from, to)
			return err
		})
		if err != nil {
			return nil, err
		}
		r := BuildVATSummary(year, quarter, purchases, sales)
		return &r, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to generate VAT summary", slog.Int("year", year), slog.Int("quarter", quarter))
		return nil, fmt.Errorf("failed to generate VAT summary: %w", err)
	}

	s.LogInfo(ctx, "VAT summary generated",
		slog.Int("year", year), slog.Int("quarter", quarter),
		slog.String("net_vat", summary.NetVAT.String()))
	return summary, nil
}

// accountBalance is the as-of position of one account on its normal side.
type accountBalance struct {
	account domain.Account
	balance decimal.Decimal
	side    domain.NormalBalance
}

// reportableBalances computes balances and drops inactive accounts that carry nothing.
// Inactive accounts with a balance stay in so the report still adds up.
func reportableBalances(activity []domain.AccountActivity) []accountBalance {
	out := make([]accountBalance, 0, len(activity))
	for _, a := range activity {
		balance, side := accounting.NetBalance(a.Account.OpeningBalance, a.TotalDebit, a.TotalCredit, a.Account.NormalBalance)
		if !a.Account.IsActive && balance.IsZero() {
			continue
		}
		out = append(out, accountBalance{account: a.Account, balance: balance, side: side})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].account.Code < out[j].account.Code })
	return out
}

// BuildTrialBalance places each balance in the column of the side it falls on.
// An imbalance beyond tolerance is reported as a warning.
func BuildTrialBalance(asOf time.Time, activity []domain.AccountActivity) domain.TrialBalanceReport {
	report := domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Warnings:    []string{},
	}
	for _, b := range reportableBalances(activity) {
		row := domain.TrialBalanceRow{
			AccountCode: b.account.Code,
			AccountName: b.account.Name,
			AccountType: b.account.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		amount := b.balance.Abs()
		if b.side == domain.DebitBalance {
			row.Debit = amount
			report.TotalDebit = report.TotalDebit.Add(amount)
		} else {
			row.Credit = amount
			report.TotalCredit = report.TotalCredit.Add(amount)
		}
		report.Rows = append(report.Rows, row)
	}

	report.IsBalanced = accounting.WithinTolerance(report.TotalDebit, report.TotalCredit)
	if !report.IsBalanced {
		diff := report.TotalDebit.Sub(report.TotalCredit).Abs()
		report.Warnings = append(report.Warnings, fmt.Sprintf("trial balance is out of balance by %s", diff.StringFixed(2)))
	}
	return report
}

// BuildBalanceSheet groups balances by section, adds current earnings to equity and computes ratios.
func BuildBalanceSheet(asOf time.Time, activity []domain.AccountActivity) domain.BalanceSheetReport {
	report := domain.BalanceSheetReport{
		AsOf:               asOf,
		Assets:             []domain.AccountAmount{},
		Liabilities:        []domain.AccountAmount{},
		Equity:             []domain.AccountAmount{},
		TotalAssets:        decimal.Zero,
		TotalLiabilities:   decimal.Zero,
		TotalEquity:        decimal.Zero,
		CurrentAssets:      decimal.Zero,
		Inventory:          decimal.Zero,
		CurrentLiabilities: decimal.Zero,
		Warnings:           []string{},
	}
	revenue, expense := decimal.Zero, decimal.Zero

	for _, b := range reportableBalances(activity) {
		line := domain.AccountAmount{
			AccountCode: b.account.Code,
			Name:        b.account.Name,
			SubType:     b.account.SubType,
			NetAmount:   b.balance,
		}
		switch b.account.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, line)
			report.TotalAssets = report.TotalAssets.Add(b.balance)
			if b.account.IsCurrentAsset() {
				report.CurrentAssets = report.CurrentAssets.Add(b.balance)
			}
			if b.account.SubType == domain.SubTypeInventory {
				report.Inventory = report.Inventory.Add(b.balance)
			}
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, line)
			report.TotalLiabilities = report.TotalLiabilities.Add(b.balance)
			if b.account.IsCurrentLiability() {
				report.CurrentLiabilities = report.CurrentLiabilities.Add(b.balance)
			}
		case domain.Equity:
			report.Equity = append(report.Equity, line)
			report.TotalEquity = report.TotalEquity.Add(b.balance)
		case domain.Revenue:
			revenue = revenue.Add(b.balance)
		case domain.Expense:
			expense = expense.Add(b.balance)
		}
	}

	report.NetIncome = revenue.Sub(expense)
	report.Equity = append(report.Equity, domain.AccountAmount{Name: CurrentEarningsName, NetAmount: report.NetIncome})
	report.TotalEquity = report.TotalEquity.Add(report.NetIncome)

	liabilitiesAndEquity := report.TotalLiabilities.Add(report.TotalEquity)
	report.IsBalanced = accounting.WithinTolerance(report.TotalAssets, liabilitiesAndEquity)
	if !report.IsBalanced {
		diff := report.TotalAssets.Sub(liabilitiesAndEquity).Abs()
		report.Warnings = append(report.Warnings, fmt.Sprintf("balance sheet is out of balance by %s", diff.StringFixed(2)))
	}

	report.Ratios = domain.FinancialRatios{
		CurrentRatio:   accounting.SafeRatio(report.CurrentAssets, report.CurrentLiabilities),
		QuickRatio:     accounting.SafeRatio(report.CurrentAssets.Sub(report.Inventory), report.CurrentLiabilities),
		DebtToEquity:   accounting.SafeRatio(report.TotalLiabilities, report.TotalEquity),
		ReturnOnAssets: accounting.SafeRatio(report.NetIncome, report.TotalAssets),
		ReturnOnEquity: accounting.SafeRatio(report.NetIncome, report.TotalEquity),
	}
	return report
}

// BuildVATSummary splits VAT for the quarter into input and output with a monthly breakdown.
func BuildVATSummary(year, quarter int, purchases, sales []domain.VATDocument) domain.VATSummary {
	from, to := accounting.QuarterRange(year, quarter)
	summary := domain.VATSummary{
		Year:     year,
		Quarter:  quarter,
		FromDate: from,
		ToDate:   to,
		Months:   make([]domain.VATMonth, 3),
	}
	for i := range summary.Months {
		summary.Months[i] = domain.VATMonth{
			Month:     from.Month() + time.Month(i),
			InputVAT:  decimal.Zero,
			OutputVAT: decimal.Zero,
			NetVAT:    decimal.Zero,
		}
	}
	monthIndex := func(d time.Time) int {
		return int(d.Month() - from.Month())
	}

	summary.Purchases = vatTotals(purchases)
	summary.Sales = vatTotals(sales)
	for _, p := range purchases {
		if i := monthIndex(p.Date); i >= 0 && i < 3 {
			summary.Months[i].InputVAT = summary.Months[i].InputVAT.Add(p.VATAmount)
		}
	}
	for _, s := range sales {
		if i := monthIndex(s.Date); i >= 0 && i < 3 {
			summary.Months[i].OutputVAT = summary.Months[i].OutputVAT.Add(s.VATAmount)
		}
	}
	for i := range summary.Months {
		summary.Months[i].NetVAT = summary.Months[i].OutputVAT.Sub(summary.Months[i].InputVAT)
	}

	summary.InputVAT = summary.Purchases.VATAmount
	summary.OutputVAT = summary.Sales.VATAmount
	summary.NetVAT = summary.OutputVAT.Sub(summary.InputVAT)
	switch summary.NetVAT.Sign() {
	case 1:
		summary.Position = domain.VATPayable
	case -1:
		summary.Position = domain.VATReceivable
	default:
		summary.Position = domain.VATNil
	}
	return summary
}

func vatTotals(docs []domain.VATDocument) domain.VATTotals {
	t := domain.VATTotals{TaxableAmount: decimal.Zero, VATAmount: decimal.Zero}
	for _, d := range docs {
		t.DocumentCount++
		t.TaxableAmount = t.TaxableAmount.Add(d.TaxableAmount)
		t.VATAmount = t.VATAmount.Add(d.VATAmount)
	}
	return t
}
