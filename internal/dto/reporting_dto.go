package dto

import (
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/utils"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf        Date                     `json:"asOf"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
	IsBalanced  bool                     `json:"isBalanced"`
	Warnings    []string                 `json:"warnings"`
}

// ToTrialBalanceResponse maps a trial balance report.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	return TrialBalanceResponse{
		AsOf:        NewDate(r.AsOf),
		Rows:        nonNilRows(r.Rows),
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
		IsBalanced:  r.IsBalanced,
		Warnings:    nonNilStrings(r.Warnings),
	}
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        Date                   `json:"asOf"`
	Assets      []domain.AccountAmount `json:"assets"`
	Liabilities []domain.AccountAmount `json:"liabilities"`
	Equity      []domain.AccountAmount `json:"equity"`
	Summary     struct {
		TotalAssets        decimal.Decimal `json:"totalAssets"`
		TotalLiabilities   decimal.Decimal `json:"totalLiabilities"`
		TotalEquity        decimal.Decimal `json:"totalEquity"`
		CurrentAssets      decimal.Decimal `json:"currentAssets"`
		Inventory          decimal.Decimal `json:"inventory"`
		CurrentLiabilities decimal.Decimal `json:"currentLiabilities"`
		NetIncome          decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
	Ratios     domain.FinancialRatios `json:"ratios"`
	IsBalanced bool                   `json:"isBalanced"`
	Warnings   []string               `json:"warnings"`
}

// ToBalanceSheetResponse maps a balance sheet.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	resp := BalanceSheetResponse{
		AsOf:        NewDate(r.AsOf),
		Assets:      nonNilAmounts(r.Assets),
		Liabilities: nonNilAmounts(r.Liabilities),
		Equity:      nonNilAmounts(r.Equity),
		Ratios:      r.Ratios,
		IsBalanced:  r.IsBalanced,
		Warnings:    nonNilStrings(r.Warnings),
	}
	resp.Summary.TotalAssets = r.TotalAssets
	resp.Summary.TotalLiabilities = r.TotalLiabilities
	resp.Summary.TotalEquity = r.TotalEquity
	resp.Summary.CurrentAssets = r.CurrentAssets
	resp.Summary.Inventory = r.Inventory
	resp.Summary.CurrentLiabilities = r.CurrentLiabilities
	resp.Summary.NetIncome = r.NetIncome
	return resp
}

// VATMonthResponse is one month of a VAT summary with display strings.
type VATMonthResponse struct {
	Month     string          `json:"month"`
	InputVAT  decimal.Decimal `json:"inputVAT"`
	OutputVAT decimal.Decimal `json:"outputVAT"`
	NetVAT    decimal.Decimal `json:"netVAT"`
}

// VATSummaryResponse represents the quarterly VAT summary.
type VATSummaryResponse struct {
	Year      int                `json:"year"`
	Quarter   int                `json:"quarter"`
	FromDate  Date               `json:"fromDate"`
	ToDate    Date               `json:"toDate"`
	Purchases domain.VATTotals   `json:"purchases"`
	Sales     domain.VATTotals   `json:"sales"`
	InputVAT  decimal.Decimal    `json:"inputVAT"`
	OutputVAT decimal.Decimal    `json:"outputVAT"`
	NetVAT    decimal.Decimal    `json:"netVAT"`
	Position  string             `json:"position"`
	Months    []VATMonthResponse `json:"months"`
	Display   struct {
		InputVAT  string `json:"inputVAT"`
		OutputVAT string `json:"outputVAT"`
		NetVAT    string `json:"netVAT"`
	} `json:"display"`
}

// ToVATSummaryResponse maps a VAT summary and renders its display amounts.
func ToVATSummaryResponse(s *domain.VATSummary) VATSummaryResponse {
	resp := VATSummaryResponse{
		Year:      s.Year,
		Quarter:   s.Quarter,
		FromDate:  NewDate(s.FromDate),
		ToDate:    NewDate(s.ToDate),
		Purchases: s.Purchases,
		Sales:     s.Sales,
		InputVAT:  s.InputVAT,
		OutputVAT: s.OutputVAT,
		NetVAT:    s.NetVAT,
		Position:  string(s.Position),
		Months:    make([]VATMonthResponse, len(s.Months)),
	}
	for i, m := range s.Months {
		resp.Months[i] = VATMonthResponse{
			Month:     m.Month.String(),
			InputVAT:  m.InputVAT,
			OutputVAT: m.OutputVAT,
			NetVAT:    m.NetVAT,
		}
	}
	resp.Display.InputVAT = utils.FormatNPR(s.InputVAT)
	resp.Display.OutputVAT = utils.FormatNPR(s.OutputVAT)
	resp.Display.NetVAT = utils.FormatNPR(s.NetVAT)
	return resp
}

func nonNilRows(rows []domain.TrialBalanceRow) []domain.TrialBalanceRow {
	if rows == nil {
		return []domain.TrialBalanceRow{}
	}
	return rows
}

func nonNilAmounts(a []domain.AccountAmount) []domain.AccountAmount {
	if a == nil {
		return []domain.AccountAmount{}
	}
	return a
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
