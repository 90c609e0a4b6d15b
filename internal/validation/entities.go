package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/distributor_ledger_app/internal/core/domain"
	"github.com/SscSPs/distributor_ledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var accountRules = []Rule[domain.Account]{
	Field("code", func(a domain.Account) string { return a.Code },
		Required(), Matches(AccountCodePattern, "must be 4 to 10 digits")),
	Field("name", func(a domain.Account) string { return a.Name }, Required(), Length(1, 100)),
	Field("accountType", func(a domain.Account) domain.AccountType { return a.AccountType },
		OneOf(domain.AccountTypes...)),
	Field("subType", func(a domain.Account) domain.AccountSubType { return a.SubType },
		OneOf(domain.SubTypeNone, domain.SubTypeCurrent, domain.SubTypeNonCurrent, domain.SubTypeInventory)),
	Field("description", func(a domain.Account) string { return a.Description }, MaxLength(500)),
	Field("openingBalance", func(a domain.Account) decimal.Decimal { return a.OpeningBalance }, NonNegative(), Money()),
	accountNormalBalance,
}

// accountNormalBalance rejects a normal side that disagrees with the account type.
// An empty side is accepted; callers derive it from the type.
func accountNormalBalance(a domain.Account) Errors {
	if !a.AccountType.IsValid() || a.NormalBalance == "" {
		return nil
	}
	expected := domain.ExpectedNormalBalance(a.AccountType)
	if a.NormalBalance != expected {
		return Errors{"normalBalance": {fmt.Sprintf("%s accounts should have %s normal balance",
			strings.ToLower(string(a.AccountType)), strings.ToLower(string(expected)))}}
	}
	return nil
}

// Account validates a chart-of-accounts entry.
func Account(a domain.Account) error {
	return Validate(a, accountRules...)
}

var journalLineRules = []Rule[domain.JournalEntryLine]{
	Field("accountCode", func(l domain.JournalEntryLine) string { return l.AccountCode },
		Required(), Matches(AccountCodePattern, "must be 4 to 10 digits")),
	Field("description", func(l domain.JournalEntryLine) string { return l.Description }, MaxLength(255)),
}

var journalRules = []Rule[domain.JournalEntry]{
	Field("date", func(j domain.JournalEntry) time.Time { return j.EntryDate }, RequiredDate()),
	Field("description", func(j domain.JournalEntry) string { return j.Description }, Required(), Length(1, 500)),
	Field("referenceNumber", func(j domain.JournalEntry) string { return j.ReferenceNumber }, MaxLength(50)),
	Each("entries", func(j domain.JournalEntry) []domain.JournalEntryLine { return j.Lines }, journalLineRules...),
	journalBalance,
}

// journalBalance runs the double-entry checker and keys its verdict onto the entries array.
func journalBalance(j domain.JournalEntry) Errors {
	err := accounting.CheckEntryBalance(j.Lines)
	if err == nil {
		return nil
	}
	var le *accounting.LineError
	if errors.As(err, &le) {
		return Errors{fmt.Sprintf("entries[%d]", le.Index-1): {err.Error()}}
	}
	return Errors{"entries": {err.Error()}}
}

// JournalEntry validates the header and lines of a journal entry, including the balance check.
func JournalEntry(j domain.JournalEntry) error {
	return Validate(j, journalRules...)
}

var partyRules = []Rule[domain.PartyLedger]{
	Field("partyName", func(p domain.PartyLedger) string { return p.PartyName }, Required(), Length(2, 150)),
	Field("partyType", func(p domain.PartyLedger) domain.PartyType { return p.PartyType },
		OneOf(domain.PartyCustomer, domain.PartySupplier, domain.PartyBank, domain.PartyCash, domain.PartyOther)),
	Field("taxID", func(p domain.PartyLedger) string { return p.TaxID },
		Optional(Matches(TaxIDPattern, "must be exactly 9 digits"))),
	Field("phone", func(p domain.PartyLedger) string { return p.Phone },
		Optional(Matches(PhonePattern, "must be a valid phone number"))),
	Field("email", func(p domain.PartyLedger) string { return p.Email },
		Optional(Tag("email", "must be a valid email address"))),
	Field("address", func(p domain.PartyLedger) string { return p.Address }, MaxLength(255)),
	Field("openingBalance", func(p domain.PartyLedger) decimal.Decimal { return p.OpeningBalance }, Money()),
}

// Party validates a party ledger.
func Party(p domain.PartyLedger) error {
	return Validate(p, partyRules...)
}

// tradeDocument is the part of a purchase or sale the amount rules look at.
type tradeDocument struct {
	Items         []domain.LineItem
	PaymentMethod domain.PaymentMethod
	DueDate       *time.Time
	Amounts       domain.TradeAmounts
	Now           time.Time
}

var lineItemRules = []Rule[domain.LineItem]{
	Field("description", func(i domain.LineItem) string { return i.Description }, Required(), MaxLength(255)),
	Field("quantity", func(i domain.LineItem) decimal.Decimal { return i.Quantity }, Positive()),
	Field("unitPrice", func(i domain.LineItem) decimal.Decimal { return i.UnitPrice }, NonNegative(), Money()),
	Field("amount", func(i domain.LineItem) decimal.Decimal { return i.Amount }, Money()),
	func(i domain.LineItem) Errors {
		expected := i.Quantity.Mul(i.UnitPrice)
		if !accounting.WithinTolerance(i.Amount, expected) {
			return Errors{"amount": {mismatch("amount", expected, i.Amount)}}
		}
		return nil
	},
}

var tradeRules = []Rule[tradeDocument]{
	Field("items", func(t tradeDocument) []domain.LineItem { return t.Items }, NotEmpty[domain.LineItem]("must contain at least 1 item")),
	Each("items", func(t tradeDocument) []domain.LineItem { return t.Items }, lineItemRules...),
	Field("paymentMethod", func(t tradeDocument) domain.PaymentMethod { return t.PaymentMethod },
		OneOf(domain.PaymentCash, domain.PaymentBank, domain.PaymentCheque, domain.PaymentCredit)),
	Field("discountAmount", func(t tradeDocument) decimal.Decimal { return t.Amounts.DiscountAmount }, NonNegative(), Money()),
	Field("subtotal", func(t tradeDocument) decimal.Decimal { return t.Amounts.Subtotal }, Money()),
	Field("taxableAmount", func(t tradeDocument) decimal.Decimal { return t.Amounts.TaxableAmount }, Money()),
	Field("vatAmount", func(t tradeDocument) decimal.Decimal { return t.Amounts.VATAmount }, Money()),
	Field("totalAmount", func(t tradeDocument) decimal.Decimal { return t.Amounts.TotalAmount }, Money()),
	tradeAmounts,
	When(func(t tradeDocument) bool { return t.PaymentMethod == domain.PaymentCredit }, creditDueDate),
}

// tradeAmounts checks the subtotal, taxable, VAT and total chain. Every comparison allows BalanceTolerance.
func tradeAmounts(t tradeDocument) Errors {
	errs := Errors{}
	a := t.Amounts
	if len(t.Items) > 0 {
		sum := decimal.Zero
		for _, item := range t.Items {
			sum = sum.Add(item.Amount)
		}
		if !accounting.WithinTolerance(a.Subtotal, sum) {
			errs.Add("subtotal", mismatch("subtotal", sum, a.Subtotal))
		}
		taxable := a.Subtotal.Sub(a.DiscountAmount)
		if !accounting.WithinTolerance(a.TaxableAmount, taxable) {
			errs.Add("taxableAmount", mismatch("taxable amount", taxable, a.TaxableAmount))
		}
	}
	if a.TaxableAmount.IsNegative() {
		errs.Add("taxableAmount", "must not be negative")
	}
	expectedVAT := accounting.ExpectedVAT(a.TaxableAmount)
	if !accounting.WithinTolerance(a.VATAmount, expectedVAT) {
		errs.Add("vatAmount", mismatch("VAT amount", expectedVAT, a.VATAmount))
	}
	expectedTotal := a.TaxableAmount.Add(a.VATAmount)
	if !accounting.WithinTolerance(a.TotalAmount, expectedTotal) {
		errs.Add("totalAmount", mismatch("total amount", expectedTotal, a.TotalAmount))
	}
	return errs
}

func creditDueDate(t tradeDocument) Errors {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return Errors{"dueDate": {"is required for credit purchases"}}
	}
	if !t.DueDate.After(t.Now) {
		return Errors{"dueDate": {"must be in the future for credit purchases"}}
	}
	return nil
}

func mismatch(what string, expected, actual decimal.Decimal) string {
	return fmt.Sprintf("%s should be %s, but got %s", what, expected.StringFixed(2), actual.String())
}

// Purchase validates a supplier bill. now is the creation instant used for the credit due-date rule.
func Purchase(p domain.PurchaseEntry, now time.Time) error {
	header := Validate(p,
		Field("billNumber", func(p domain.PurchaseEntry) string { return p.BillNumber }, Required(), MaxLength(50)),
		Field("supplierID", func(p domain.PurchaseEntry) string { return p.SupplierID }, Required()),
		Field("billDate", func(p domain.PurchaseEntry) time.Time { return p.BillDate }, RequiredDate()),
		Field("notes", func(p domain.PurchaseEntry) string { return p.Notes }, MaxLength(500)),
	)
	body := Validate(tradeDocument{
		Items: p.Items, PaymentMethod: p.PaymentMethod, DueDate: p.DueDate, Amounts: p.TradeAmounts, Now: now,
	}, tradeRules...)
	return merge(header, body)
}

// Sale validates a customer invoice with the same amount rules as purchases.
func Sale(s domain.SalesEntry, now time.Time) error {
	header := Validate(s,
		Field("invoiceNumber", func(s domain.SalesEntry) string { return s.InvoiceNumber }, Required(), MaxLength(50)),
		Field("customerID", func(s domain.SalesEntry) string { return s.CustomerID }, Required()),
		Field("invoiceDate", func(s domain.SalesEntry) time.Time { return s.InvoiceDate }, RequiredDate()),
		Field("notes", func(s domain.SalesEntry) string { return s.Notes }, MaxLength(500)),
	)
	body := Validate(tradeDocument{
		Items: s.Items, PaymentMethod: s.PaymentMethod, DueDate: s.DueDate, Amounts: s.TradeAmounts, Now: now,
	}, tradeRules...)
	return merge(header, body)
}

func merge(errs ...error) error {
	all := Errors{}
	for _, err := range errs {
		if ve, ok := AsErrors(err); ok {
			all.Merge(ve)
		}
	}
	return all.OrNil()
}

// DateRange rejects a range whose end precedes its start. Either bound may be nil.
func DateRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return Errors{"toDate": {"must be on or after fromDate"}}
	}
	return nil
}

// VATPeriod validates a quarterly VAT report request.
func VATPeriod(year, quarter int) error {
	errs := Errors{}
	if msg := IntRange(2000, 2100)(year); msg != "" {
		errs.Add("year", msg)
	}
	if msg := IntRange(1, 4)(quarter); msg != "" {
		errs.Add("quarter", msg)
	}
	return errs.OrNil()
}

// Registration is the self-service sign-up form.
type Registration struct {
	Username        string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Name            string `json:"name" validate:"required,max=100"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// RegistrationForm validates a sign-up form; a confirmation mismatch is reported on confirmPassword.
func RegistrationForm(r Registration) error {
	return Struct(r)
}

var applicationRules = []Rule[domain.DistributorApplication]{
	Field("business.businessName", func(a domain.DistributorApplication) string { return a.Business.BusinessName },
		Required(), Length(2, 150)),
	Field("business.panNumber", func(a domain.DistributorApplication) string { return a.Business.PANNumber },
		Required(), Matches(TaxIDPattern, "must be exactly 9 digits")),
	Field("business.businessType", func(a domain.DistributorApplication) string { return a.Business.BusinessType },
		OneOf(BusinessTypes...)),
	Field("business.yearsInBusiness", func(a domain.DistributorApplication) int { return a.Business.YearsInBusiness },
		IntRange(0, 100)),
	Field("contact.contactPerson", func(a domain.DistributorApplication) string { return a.Contact.ContactPerson },
		Required(), Length(2, 100)),
	Field("contact.email", func(a domain.DistributorApplication) string { return a.Contact.Email },
		Required(), Tag("email", "must be a valid email address")),
	Field("contact.phone", func(a domain.DistributorApplication) string { return a.Contact.Phone },
		Required(), Matches(PhonePattern, "must be a valid phone number")),
	Field("contact.address", func(a domain.DistributorApplication) string { return a.Contact.Address },
		Required(), MaxLength(255)),
	Field("contact.district", func(a domain.DistributorApplication) string { return a.Contact.District }, Required()),
	Field("contact.province", func(a domain.DistributorApplication) int { return a.Contact.Province }, IntRange(1, 7)),
	Field("distribution.coverageAreas", func(a domain.DistributorApplication) []string { return a.Distribution.CoverageAreas },
		NotEmpty[string]("must contain at least 1 area")),
	Field("distribution.expectedMonthlyVolume", func(a domain.DistributorApplication) float64 { return a.Distribution.ExpectedMonthlyVolume },
		func(v float64) string {
			if v <= 0 {
				return "must be greater than zero"
			}
			return ""
		}),
	Field("distribution.warehouseAreaSqFt", func(a domain.DistributorApplication) float64 { return a.Distribution.WarehouseAreaSqFt },
		func(v float64) string {
			if v < 0 {
				return "must not be negative"
			}
			return ""
		}),
	Field("distribution.vehicleCount", func(a domain.DistributorApplication) int { return a.Distribution.VehicleCount },
		IntRange(0, 10000)),
	Field("termsAccepted", func(a domain.DistributorApplication) bool { return a.TermsAccepted },
		func(v bool) string {
			if !v {
				return "must be accepted"
			}
			return ""
		}),
}

// BusinessTypes are the legal forms a distributor may register under.
var BusinessTypes = []string{"SOLE_PROPRIETORSHIP", "PARTNERSHIP", "PRIVATE_LIMITED", "PUBLIC_LIMITED"}

// DistributorApplication validates the content sections of an application.
func DistributorApplication(a domain.DistributorApplication) error {
	return Validate(a, applicationRules...)
}

// StatusTransition validates an administrator's status change on an application in status from.
func StatusTransition(from, to domain.ApplicationStatus, notes string) error {
	if !to.IsValid() {
		return Errors{"status": {"must be one of: PENDING, UNDER_REVIEW, APPROVED, REJECTED, REQUIRES_CHANGES"}}
	}
	if !from.CanTransitionTo(to) {
		return Errors{"status": {fmt.Sprintf("cannot change status from %s to %s", from, to)}}
	}
	if to.RequiresNotes() && strings.TrimSpace(notes) == "" {
		return Errors{"reviewNotes": {fmt.Sprintf("are required when status is %s", to)}}
	}
	return nil
}
