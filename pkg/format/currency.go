// Package format provides display formatting for currency amounts and
// calculation figures.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

var currencySymbols = map[string]string{
	"TRY": "₺",
	"EUR": "€",
	"USD": "$",
}

// Currency formats an amount with its currency symbol, abbreviating large
// values (e.g. "₺500.0M", "€12.5K", "$850.00"). Unknown codes fall back to
// the code itself as the symbol.
func Currency(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}

	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("%s%.1fM", symbol, amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("%s%.1fK", symbol, amount/1_000)
	default:
		return printer.Sprintf("%s%.2f", symbol, amount)
	}
}

// CurrencyExact formats an amount with thousands separators and no
// abbreviation, for report tables where precision matters.
func CurrencyExact(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}
	return printer.Sprintf("%s%.2f", symbol, amount)
}

// Percent formats a share value for display (one decimal place).
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// Index formats an HHI value for display (no decimal places).
func Index(value float64) string {
	return fmt.Sprintf("%.0f", value)
}
