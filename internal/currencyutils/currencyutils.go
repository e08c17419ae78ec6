// Package currencyutils provides the decimal operations used on invoice amounts.
package currencyutils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred         = decimal.NewFromInt(100)
	currencyRemover = strings.NewReplacer("€", "", "EUR", "", " ", "", " ", "", "'", "")
)

// ParseAmount parses a string representation of an amount into a decimal value.
// FatturaPA amounts use a dot separator; "1.234,56" and "1234,56" are also
// accepted. Empty input is zero.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amountStr = strings.TrimSpace(amountStr)
	if amountStr == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(StandardizeAmount(amountStr))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	return amount, nil
}

// StandardizeAmount converts an amount string into the form accepted by
// decimal.NewFromString.
func StandardizeAmount(amountStr string) string {
	amountStr = currencyRemover.Replace(amountStr)

	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")
	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// 1.234,56
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// 1,234.56
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	return amountStr
}

// Round2 rounds to cents, half away from zero.
func Round2(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// AmountExcludingTax derives the taxable base contained in a gross amount
// (scorporo), rounded to cents.
// e.g., AmountExcludingTax(1220, 22) returns 1000
func AmountExcludingTax(grossAmount decimal.Decimal, taxRatePercent decimal.Decimal) decimal.Decimal {
	divisor := hundred.Add(taxRatePercent)
	if divisor.IsZero() {
		return decimal.Zero
	}
	return Round2(grossAmount.Mul(hundred).Div(divisor))
}

// FormatItalian renders an amount with two decimals and a decimal comma.
// Zero renders as an empty string.
func FormatItalian(amount decimal.Decimal) string {
	if amount.IsZero() {
		return ""
	}
	return strings.Replace(amount.StringFixed(2), ".", ",", 1)
}
