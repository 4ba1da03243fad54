package utils

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to two decimal places, half away from
// zero. Settlement amounts are legally payable, so this must match the
// paper math exactly; decimal.Round already carries that semantic.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Amount computes quantity * rate rounded to a payable amount.
func Amount(quantity, rate decimal.Decimal) decimal.Decimal {
	return Round2(quantity.Mul(rate))
}

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
