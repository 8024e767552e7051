// Package receipt renders station tickets and invoices onto an ESC/POS sink.
// Rendering is deterministic: identical input and clock produce identical
// output bytes.
package receipt

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// InvoiceWidth is the character width of a font-B invoice line used for
// column padding.
const InvoiceWidth = 32

// Currency formats an amount as Colombian-style pesos: rounded half-up to
// whole units, thousands separated by commas, "$" prefix. 1234.5 -> "$1,235".
func Currency(amount decimal.Decimal) string {
	whole := amount.Round(0).StringFixed(0)

	neg := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	return b.String()
}

// TwoColumn lays out left and right on one line padded to width, counting
// runes since every rune maps to one printed glyph. When the content does not
// fit, a single space still separates the columns.
func TwoColumn(left, right string, width int) string {
	pad := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func separator(ch string, n int) string {
	return strings.Repeat(ch, n) + "\n"
}
