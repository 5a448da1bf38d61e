package utils

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places stored for rupiah amounts (NUMERIC(18,2)).
const AmountScale = 2

// FormatAmount renders an amount with the stored precision.
// Example: 50000 returns "50000.00", 12.345 returns "12.35"
func FormatAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, AmountScale)
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}
