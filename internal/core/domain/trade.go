package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod describes how a bill or invoice is settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentBank   PaymentMethod = "BANK"
	PaymentCheque PaymentMethod = "CHEQUE"
	PaymentCredit PaymentMethod = "CREDIT"
)

// SettlementStatus tracks payment of a purchase or sale.
type SettlementStatus string

const (
	StatusPending SettlementStatus = "PENDING"
	StatusPaid    SettlementStatus = "PAID"
	StatusOverdue SettlementStatus = "OVERDUE"
)

// LineItem is a single priced row on a bill or invoice.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// TradeAmounts is the money block shared by purchases and sales.
type TradeAmounts struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	VATAmount      decimal.Decimal `json:"vatAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

// PurchaseEntry is a supplier bill.
type PurchaseEntry struct {
	PurchaseID    string           `json:"purchaseID"`
	BillNumber    string           `json:"billNumber"`
	SupplierID    string           `json:"supplierID"`
	BillDate      time.Time        `json:"billDate"`
	Items         []LineItem       `json:"items"`
	PaymentMethod PaymentMethod    `json:"paymentMethod"`
	DueDate       *time.Time       `json:"dueDate,omitempty"`
	Status        SettlementStatus `json:"status"`
	Notes         string           `json:"notes,omitempty"`
	TradeAmounts
	AuditFields
}

// SalesEntry is a customer invoice.
type SalesEntry struct {
	SalesID       string           `json:"salesID"`
	InvoiceNumber string           `json:"invoiceNumber"`
	CustomerID    string           `json:"customerID"`
	InvoiceDate   time.Time        `json:"invoiceDate"`
	Items         []LineItem       `json:"items"`
	PaymentMethod PaymentMethod    `json:"paymentMethod"`
	DueDate       *time.Time       `json:"dueDate,omitempty"`
	Status        SettlementStatus `json:"status"`
	Notes         string           `json:"notes,omitempty"`
	TradeAmounts
	AuditFields
}

// InitialSettlementStatus is PENDING for credit documents and PAID otherwise.
func InitialSettlementStatus(method PaymentMethod) SettlementStatus {
	if method == PaymentCredit {
		return StatusPending
	}
	return StatusPaid
}

// CanSettle reports whether a document in status s may be marked paid.
func CanSettle(s SettlementStatus) bool {
	return s == StatusPending || s == StatusOverdue
}
