// Package cli provides formatting and rendering helpers for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney renders a whole-unit amount with separators, e.g. -1234567 -> "-$1,234,567".
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return strconv.FormatFloat(amount, 'f', 0, 64)
	}
	rounded := math.Round(amount)
	if rounded < 0 {
		return "-$" + groupDigits(strconv.FormatFloat(-rounded, 'f', 0, 64))
	}
	return "$" + groupDigits(strconv.FormatFloat(rounded, 'f', 0, 64))
}

// FormatNumber adds comma separators to an integer.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		return "-" + groupDigits(s[1:])
	}
	return groupDigits(s)
}

func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a percentage value with one decimal.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatProbability renders a [0,1] fraction as a percentage.
func FormatProbability(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}
