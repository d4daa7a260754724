// Package money converts between the gateway's wire representation of
// amounts (integer cents) and decimal major units.
package money

import (
	"github.com/shopspring/decimal"
)

// FromMajor converts an amount in major units (e.g. 10.50 EUR) to cents.
// Fractions beyond two decimal places are rounded half away from zero.
func FromMajor(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// ParseMajor parses a decimal string like "10.50" into cents
func ParseMajor(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return FromMajor(d), nil
}

// ToMajor converts cents to a decimal amount in major units
func ToMajor(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatMajor renders cents as a major-unit string with two decimals
func FormatMajor(cents int64) string {
	return ToMajor(cents).StringFixed(2)
}
