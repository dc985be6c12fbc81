// Package money formats rupee amounts for display. Arithmetic stays in
// shopspring decimals everywhere else; this package is the single place
// where an amount becomes a user-facing string with the right symbol and
// thousands grouping.
package money

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ISO-4217 code every amount in the system is in.
const DefaultCurrency = "INR"

var hundred = decimal.NewFromInt(100)

// Display renders an amount as a localized currency string, e.g. "₹1,298.00".
func Display(amount decimal.Decimal) string {
	return DisplayIn(amount, DefaultCurrency)
}

// DisplayIn renders an amount in an arbitrary currency. Unknown codes fall
// back to the default.
func DisplayIn(amount decimal.Decimal, currencyCode string) string {
	if money.GetCurrency(currencyCode) == nil {
		currencyCode = DefaultCurrency
	}
	cents := amount.Mul(hundred).Round(0).IntPart()
	return money.New(cents, currencyCode).Display()
}

// Sum adds any number of decimal amounts without float round-off.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
