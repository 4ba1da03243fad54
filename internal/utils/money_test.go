package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRound2HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.346", "2.35"},
		{"-2.345", "-2.35"},
		{"10.125", "10.13"}, // banker's rounding would give 10.12
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"150", "150.00"},
	}
	for _, tc := range cases {
		got := Round2(decimal.RequireFromString(tc.in))
		if got.StringFixed(2) != tc.want {
			t.Fatalf("Round2(%s) = %s, want %s", tc.in, got.StringFixed(2), tc.want)
		}
	}
}

func TestAmountQuantityTimesRate(t *testing.T) {
	qty := decimal.RequireFromString("10")
	rate := decimal.RequireFromString("15.00")
	if got := Amount(qty, rate); got.StringFixed(2) != "150.00" {
		t.Fatalf("Amount(10, 15.00) = %s, want 150.00", got.StringFixed(2))
	}

	// fractional tons hit the rounding path
	qty = decimal.RequireFromString("12.345")
	rate = decimal.RequireFromString("3.21")
	// 12.345 * 3.21 = 39.62745 -> 39.63
	if got := Amount(qty, rate); got.StringFixed(2) != "39.63" {
		t.Fatalf("Amount(12.345, 3.21) = %s, want 39.63", got.StringFixed(2))
	}
}

func TestFormatMoneyTwoDecimals(t *testing.T) {
	if got := FormatMoney(decimal.RequireFromString("7.5")); got != "7.50" {
		t.Fatalf("FormatMoney(7.5) = %s, want 7.50", got)
	}
}
