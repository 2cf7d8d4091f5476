// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatKg formats a kg CO2 value with one decimal under 1,000 and
// comma-grouped whole numbers above.
// e.g., 167.4 -> "167.4 kg", 12345.6 -> "12,346 kg"
func FormatKg(kg float64) string {
	if math.Abs(kg) >= 1000 {
		return FormatNumber(int64(math.Round(kg))) + " kg"
	}
	return fmt.Sprintf("%.1f kg", kg)
}

// FormatTonnes formats a kg value as metric tonnes.
// e.g., 9780 -> "9.8 t"
func FormatTonnes(kg float64) string {
	return fmt.Sprintf("%.1f t", kg/1000)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDeltaKg formats a signed kg difference with an explicit sign.
func FormatDeltaKg(delta float64) string {
	if delta >= 0 {
		return "+" + FormatKg(delta)
	}
	return "-" + FormatKg(-delta)
}

// FormatFactor formats an emission factor without trailing zeros.
// e.g., 0.450 -> "0.45", 15 -> "15"
func FormatFactor(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
