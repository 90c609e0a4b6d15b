package mapping

import (
	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/models"
)

func toModelItems(items []domain.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, it := range items {
		out[i] = models.LineItem(it)
	}
	return out
}

func toDomainItems(items []models.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		out[i] = domain.LineItem(it)
	}
	return out
}

func toModelAmounts(a domain.TradeAmounts) models.TradeAmounts {
	return models.TradeAmounts{
		Subtotal:       a.Subtotal,
		DiscountAmount: a.DiscountAmount,
		TaxableAmount:  a.TaxableAmount,
		VATAmount:      a.VATAmount,
		TotalAmount:    a.TotalAmount,
	}
}

func toDomainAmounts(a models.TradeAmounts) domain.TradeAmounts {
	return domain.TradeAmounts{
		Subtotal:       a.Subtotal,
		DiscountAmount: a.DiscountAmount,
		TaxableAmount:  a.TaxableAmount,
		VATAmount:      a.VATAmount,
		TotalAmount:    a.TotalAmount,
	}
}

// ToModelPurchase converts a domain PurchaseEntry to a model Purchase
func ToModelPurchase(d domain.PurchaseEntry) models.Purchase {
	return models.Purchase{
		PurchaseID:    d.PurchaseID,
		BillNumber:    d.BillNumber,
		SupplierID:    d.SupplierID,
		BillDate:      d.BillDate,
		Items:         toModelItems(d.Items),
		PaymentMethod: string(d.PaymentMethod),
		DueDate:       d.DueDate,
		Status:        string(d.Status),
		Notes:         d.Notes,
		TradeAmounts:  toModelAmounts(d.TradeAmounts),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPurchase converts a model Purchase to a domain PurchaseEntry
func ToDomainPurchase(m models.Purchase) domain.PurchaseEntry {
	return domain.PurchaseEntry{
		PurchaseID:    m.PurchaseID,
		BillNumber:    m.BillNumber,
		SupplierID:    m.SupplierID,
		BillDate:      m.BillDate,
		Items:         toDomainItems(m.Items),
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		DueDate:       m.DueDate,
		Status:        domain.SettlementStatus(m.Status),
		Notes:         m.Notes,
		TradeAmounts:  toDomainAmounts(m.TradeAmounts),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPurchaseSlice converts model purchases to domain purchases
func ToDomainPurchaseSlice(ms []models.Purchase) []domain.PurchaseEntry {
	return toDomainSlice(ms, ToDomainPurchase)
}

// ToModelSale converts a domain SalesEntry to a model Sale
func ToModelSale(d domain.SalesEntry) models.Sale {
	return models.Sale{
		SalesID:       d.SalesID,
		InvoiceNumber: d.InvoiceNumber,
		CustomerID:    d.CustomerID,
		InvoiceDate:   d.InvoiceDate,
		Items:         toModelItems(d.Items),
		PaymentMethod: string(d.PaymentMethod),
		DueDate:       d.DueDate,
		Status:        string(d.Status),
		Notes:         d.Notes,
		TradeAmounts:  toModelAmounts(d.TradeAmounts),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSale converts a model Sale to a domain SalesEntry
func ToDomainSale(m models.Sale) domain.SalesEntry {
	return domain.SalesEntry{
		SalesID:       m.SalesID,
		InvoiceNumber: m.InvoiceNumber,
		CustomerID:    m.CustomerID,
		InvoiceDate:   m.InvoiceDate,
		Items:         toDomainItems(m.Items),
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		DueDate:       m.DueDate,
		Status:        domain.SettlementStatus(m.Status),
		Notes:         m.Notes,
		TradeAmounts:  toDomainAmounts(m.TradeAmounts),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSaleSlice converts model sales to domain sales
func ToDomainSaleSlice(ms []models.Sale) []domain.SalesEntry {
	return toDomainSlice(ms, ToDomainSale)
}

// ToDomainVATDocumentSlice converts VAT projections
func ToDomainVATDocumentSlice(ms []models.VATDocument) []domain.VATDocument {
	return toDomainSlice(ms, func(m models.VATDocument) domain.VATDocument {
		return domain.VATDocument(m)
	})
}
