package model

import "github.com/shopspring/decimal"

func init() {
	// Amounts travel as JSON numbers, e.g. 199.98 rather than "199.98".
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundMoney rounds an amount to cents.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
