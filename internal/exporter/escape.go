package exporter

import (
	"fmt"
	"strings"
	"unicode"
)

// NullCell is what a nil value renders as: an explicitly empty, quoted field.
// An empty string stays a zero-length field, so the two cases remain
// distinguishable in the raw output.
const NullCell = `""`

// Escape converts a single cell value into its CSV-safe form.
//
// Nil renders as NullCell. Any other value is stringified, every literal
// quote is doubled, and the cell is wrapped in quotes when the original text
// contains a comma, a quote, a newline or any whitespace rune. The result is
// safe to join with commas without ambiguity.
func Escape(v any) string {
	if v == nil {
		return NullCell
	}

	s := stringify(v)
	escaped := strings.ReplaceAll(s, `"`, `""`)
	if needsQuoting(s) {
		return `"` + escaped + `"`
	}
	return escaped
}

// needsQuoting reports whether the raw cell text must be wrapped in quotes.
func needsQuoting(s string) bool {
	if strings.ContainsAny(s, `,"`) {
		return true
	}
	return strings.ContainsFunc(s, unicode.IsSpace)
}

// stringify renders a cell value as text. Numeric formatting is fixed
// (formatFloat, formatInt) so output never depends on locale.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return formatInt(int64(val))
	case int64:
		return formatInt(val)
	case bool:
		return formatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
