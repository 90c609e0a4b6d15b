package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerBalance is the as-of balance of an account or party.
// Balance is signed relative to the normal side: positive means the balance sits on the normal side.
type LedgerBalance struct {
	Code           string          `json:"code"` // Account code or party ID
	Name           string          `json:"name"`
	NormalBalance  NormalBalance   `json:"normalBalance"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	Balance        decimal.Decimal `json:"balance"`
	BalanceType    NormalBalance   `json:"balanceType"`
	AsOf           *time.Time      `json:"asOf,omitempty"`
}

// AccountActivity is the raw aggregate a repository returns for one account up to a cutoff.
type AccountActivity struct {
	Account     Account
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every active account's balance as of a date.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
	Warnings    []string          `json:"warnings"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	SubType     AccountSubType  `json:"subType,omitempty"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// FinancialRatios holds balance sheet ratios. A nil ratio means its denominator was zero.
type FinancialRatios struct {
	CurrentRatio   *decimal.Decimal `json:"currentRatio"`
	QuickRatio     *decimal.Decimal `json:"quickRatio"`
	DebtToEquity   *decimal.Decimal `json:"debtToEquity"`
	ReturnOnAssets *decimal.Decimal `json:"returnOnAssets"`
	ReturnOnEquity *decimal.Decimal `json:"returnOnEquity"`
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	AsOf               time.Time       `json:"asOf"`
	Assets             []AccountAmount `json:"assets"`
	Liabilities        []AccountAmount `json:"liabilities"`
	Equity             []AccountAmount `json:"equity"`
	TotalAssets        decimal.Decimal `json:"totalAssets"`
	TotalLiabilities   decimal.Decimal `json:"totalLiabilities"`
	TotalEquity        decimal.Decimal `json:"totalEquity"`
	CurrentAssets      decimal.Decimal `json:"currentAssets"`
	Inventory          decimal.Decimal `json:"inventory"`
	CurrentLiabilities decimal.Decimal `json:"currentLiabilities"`
	NetIncome          decimal.Decimal `json:"netIncome"`
	Ratios             FinancialRatios `json:"ratios"`
	IsBalanced         bool            `json:"isBalanced"`
	Warnings           []string        `json:"warnings"`
}

// VATPosition says which way the net VAT flows.
type VATPosition string

const (
	VATPayable    VATPosition = "PAYABLE"
	VATReceivable VATPosition = "RECEIVABLE"
	VATNil        VATPosition = "NIL"
)

// VATTotals aggregates taxable and VAT amounts for a set of documents.
type VATTotals struct {
	DocumentCount int             `json:"documentCount"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	VATAmount     decimal.Decimal `json:"vatAmount"`
}

// VATMonth is one month of a quarterly VAT summary.
type VATMonth struct {
	Month     time.Month      `json:"month"`
	InputVAT  decimal.Decimal `json:"inputVAT"`
	OutputVAT decimal.Decimal `json:"outputVAT"`
	NetVAT    decimal.Decimal `json:"netVAT"`
}

// VATSummary splits VAT for a quarter into input (purchases) and output (sales).
type VATSummary struct {
	Year      int             `json:"year"`
	Quarter   int             `json:"quarter"`
	FromDate  time.Time       `json:"fromDate"`
	ToDate    time.Time       `json:"toDate"`
	Purchases VATTotals       `json:"purchases"`
	Sales     VATTotals       `json:"sales"`
	InputVAT  decimal.Decimal `json:"inputVAT"`
	OutputVAT decimal.Decimal `json:"outputVAT"`
	NetVAT    decimal.Decimal `json:"netVAT"`
	Position  VATPosition     `json:"position"`
	Months    []VATMonth      `json:"months"`
}

// VATDocument is the minimal projection of a purchase or sale used by the VAT summary.
type VATDocument struct {
	Date          time.Time
	TaxableAmount decimal.Decimal
	VATAmount     decimal.Decimal
}
