package greenops

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatNumber formats an integer with thousand separators.
// Example: FormatNumber(18248) returns "18,248".
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatLarge formats values of a million or more as "X.X million" or
// "X.X billion".
func FormatLarge(v float64) string {
	if v >= BillionThreshold {
		return fmt.Sprintf("%.1f billion", v/BillionThreshold)
	}
	return fmt.Sprintf("%.1f million", v/LargeNumberThreshold)
}
