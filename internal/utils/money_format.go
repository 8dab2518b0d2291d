package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount as a locale-aware display string for the
// given ISO currency code, e.g. "€1,234.56". Unknown codes fall back to a
// plain two-decimal string.
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		return amount.StringFixed(2)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// FormatPercent renders a percentage with two decimals, e.g. "12.34%".
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}
