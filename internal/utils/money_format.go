package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatNPR renders an amount in rupees with thousands separators, e.g. "Rs. 1,130.00".
func FormatNPR(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return moneyPrinter.Sprintf("Rs. %v", number.Decimal(f, number.Scale(2)))
}
