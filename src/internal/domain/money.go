package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const rupeeSymbol = "₹"

// FormatINR renders an amount the way en-IN formats currency: two decimals
// and lakh/crore digit grouping (₹12,34,567.89).
func FormatINR(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	whole, fraction, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString(rupeeSymbol)
	b.WriteString(groupIndian(whole))
	b.WriteString(".")
	b.WriteString(fraction)
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	parts := make([]string, 0, len(head)/2+1)
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}

	return strings.Join(parts, ",") + "," + tail
}
