package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is the JSONB shape of a bill or invoice item.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// TradeAmounts are the money columns shared by purchases and sales.
type TradeAmounts struct {
	Subtotal       decimal.Decimal `db:"subtotal"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	TaxableAmount  decimal.Decimal `db:"taxable_amount"`
	VATAmount      decimal.Decimal `db:"vat_amount"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
}

// Purchase is a row of the purchases table.
type Purchase struct {
	PurchaseID    string     `db:"purchase_id"`
	BillNumber    string     `db:"bill_number"`
	SupplierID    string     `db:"supplier_id"`
	BillDate      time.Time  `db:"bill_date"`
	Items         []LineItem `db:"items"`
	PaymentMethod string     `db:"payment_method"`
	DueDate       *time.Time `db:"due_date"`
	Status        string     `db:"status"`
	Notes         string     `db:"notes"`
	TradeAmounts
	AuditFields
}

// Sale is a row of the sales table.
type Sale struct {
	SalesID       string     `db:"sales_id"`
	InvoiceNumber string     `db:"invoice_number"`
	CustomerID    string     `db:"customer_id"`
	InvoiceDate   time.Time  `db:"invoice_date"`
	Items         []LineItem `db:"items"`
	PaymentMethod string     `db:"payment_method"`
	DueDate       *time.Time `db:"due_date"`
	Status        string     `db:"status"`
	Notes         string     `db:"notes"`
	TradeAmounts
	AuditFields
}

// VATDocument is the VAT projection of a bill or invoice.
type VATDocument struct {
	Date          time.Time       `db:"doc_date"`
	TaxableAmount decimal.Decimal `db:"taxable_amount"`
	VATAmount     decimal.Decimal `db:"vat_amount"`
}
