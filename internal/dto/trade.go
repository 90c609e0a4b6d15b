package dto

import (
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is a priced row on a bill or invoice.
type LineItemRequest struct {
	Description string          `json:"description" binding:"required,max=255"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// AmountsRequest is the money block of a bill or invoice.
type AmountsRequest struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxableAmount  decimal.Decimal `json:"taxableAmount"`
	VATAmount      decimal.Decimal `json:"vatAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

func (a AmountsRequest) toDomain() domain.TradeAmounts {
	return domain.TradeAmounts{
		Subtotal:       a.Subtotal,
		DiscountAmount: a.DiscountAmount,
		TaxableAmount:  a.TaxableAmount,
		VATAmount:      a.VATAmount,
		TotalAmount:    a.TotalAmount,
	}
}

func toLineItems(items []LineItemRequest) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		out[i] = domain.LineItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      it.Amount,
		}
	}
	return out
}

// CreatePurchaseRequest records a supplier bill.
type CreatePurchaseRequest struct {
	BillNumber    string            `json:"billNumber" binding:"required,max=50"`
	SupplierID    string            `json:"supplierID" binding:"required"`
	BillDate      Date              `json:"billDate"`
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	DueDate       *Date             `json:"dueDate,omitempty"`
	Notes         string            `json:"notes,omitempty" binding:"max=500"`
	AmountsRequest
}

// ToDomain converts the request into an unsaved purchase.
func (r CreatePurchaseRequest) ToDomain() domain.PurchaseEntry {
	return domain.PurchaseEntry{
		BillNumber:    strings.TrimSpace(r.BillNumber),
		SupplierID:    strings.TrimSpace(r.SupplierID),
		BillDate:      r.BillDate.Time,
		Items:         toLineItems(r.Items),
		PaymentMethod: domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(r.PaymentMethod))),
		DueDate:       r.DueDate.Ptr(),
		Notes:         r.Notes,
		TradeAmounts:  r.AmountsRequest.toDomain(),
	}
}

// CreateSaleRequest records a customer invoice.
type CreateSaleRequest struct {
	InvoiceNumber string            `json:"invoiceNumber" binding:"required,max=50"`
	CustomerID    string            `json:"customerID" binding:"required"`
	InvoiceDate   Date              `json:"invoiceDate"`
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod string            `json:"paymentMethod" binding:"required"`
	DueDate       *Date             `json:"dueDate,omitempty"`
	Notes         string            `json:"notes,omitempty" binding:"max=500"`
	AmountsRequest
}

// ToDomain converts the request into an unsaved sale.
func (r CreateSaleRequest) ToDomain() domain.SalesEntry {
	return domain.SalesEntry{
		InvoiceNumber: strings.TrimSpace(r.InvoiceNumber),
		CustomerID:    strings.TrimSpace(r.CustomerID),
		InvoiceDate:   r.InvoiceDate.Time,
		Items:         toLineItems(r.Items),
		PaymentMethod: domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(r.PaymentMethod))),
		DueDate:       r.DueDate.Ptr(),
		Notes:         r.Notes,
		TradeAmounts:  r.AmountsRequest.toDomain(),
	}
}

// PurchaseResponse defines the data returned for a purchase.
type PurchaseResponse struct {
	PurchaseID    string            `json:"purchaseID"`
	BillNumber    string            `json:"billNumber"`
	SupplierID    string            `json:"supplierID"`
	BillDate      Date              `json:"billDate"`
	Items         []domain.LineItem `json:"items"`
	PaymentMethod string            `json:"paymentMethod"`
	DueDate       *Date             `json:"dueDate,omitempty"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	domain.TradeAmounts
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToPurchaseResponse converts a domain.PurchaseEntry.
func ToPurchaseResponse(p *domain.PurchaseEntry) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:    p.PurchaseID,
		BillNumber:    p.BillNumber,
		SupplierID:    p.SupplierID,
		BillDate:      NewDate(p.BillDate),
		Items:         p.Items,
		PaymentMethod: string(p.PaymentMethod),
		DueDate:       DatePtr(p.DueDate),
		Status:        string(p.Status),
		Notes:         p.Notes,
		TradeAmounts:  p.TradeAmounts,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
	}
}

// SaleResponse defines the data returned for a sale.
type SaleResponse struct {
	SalesID       string            `json:"salesID"`
	InvoiceNumber string            `json:"invoiceNumber"`
	CustomerID    string            `json:"customerID"`
	InvoiceDate   Date              `json:"invoiceDate"`
	Items         []domain.LineItem `json:"items"`
	PaymentMethod string            `json:"paymentMethod"`
	DueDate       *Date             `json:"dueDate,omitempty"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	domain.TradeAmounts
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ToSaleResponse converts a domain.SalesEntry.
func ToSaleResponse(s *domain.SalesEntry) SaleResponse {
	return SaleResponse{
		SalesID:       s.SalesID,
		InvoiceNumber: s.InvoiceNumber,
		CustomerID:    s.CustomerID,
		InvoiceDate:   NewDate(s.InvoiceDate),
		Items:         s.Items,
		PaymentMethod: string(s.PaymentMethod),
		DueDate:       DatePtr(s.DueDate),
		Status:        string(s.Status),
		Notes:         s.Notes,
		TradeAmounts:  s.TradeAmounts,
		CreatedAt:     s.CreatedAt,
		CreatedBy:     s.CreatedBy,
	}
}

// ListTradeParams holds the parsed filters for purchase and sales listings.
type ListTradeParams struct {
	Status   *domain.SettlementStatus
	PartyID  *string
	FromDate *time.Time
	ToDate   *time.Time
	Limit    int
	Offset   int
}

// ListPurchasesResponse wraps a page of purchases.
type ListPurchasesResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
}

// ListSalesResponse wraps a page of sales.
type ListSalesResponse struct {
	Sales []SaleResponse `json:"sales"`
}

// OverdueScanResponse reports how many documents the overdue scan flipped.
type OverdueScanResponse struct {
	Purchases int64 `json:"purchases"`
	Sales     int64 `json:"sales"`
}
