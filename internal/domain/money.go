package domain

import (
	"fmt"
	"strings"
)

// FormatBRL renders an amount the way the panel shows currency: "R$ 1.234,56".
// Negative amounts keep the sign in front of the symbol.
func FormatBRL(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	cents := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(cents, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	return sign + "R$ " + b.String() + "," + fracPart
}
