// Package currency derives a display-currency snapshot of the day list
// from the write-once original amounts on each cost item. The canonical
// document is never touched; conversion always reads OriginalAmount so
// repeated currency toggles cannot compound rounding error.
package currency

import (
	"strconv"
	"strings"
)

// Amount is a parsed cost value. Approximate costs like "100-150" carry
// distinct bounds and IsRange set; exact costs have Min == Max.
type Amount struct {
	Min     float64
	Max     float64
	IsRange bool
}

// rangeSeparators are the dash-like runes that denote an approximate cost.
const rangeSeparators = "-–—"

// ParseAmount extracts the numeric value (or range) from a free-form cost
// string. Everything except digits, dots and dash-like separators is
// stripped first; a surviving separator splits the value into two bounds,
// each falling back to 0 when non-numeric or empty.
func ParseAmount(raw string) Amount {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || strings.ContainsRune(rangeSeparators, r) {
			return r
		}
		return -1
	}, raw)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return Amount{}
	}

	if i := strings.IndexAny(cleaned, rangeSeparators); i >= 0 {
		lo := parseBound(cleaned[:i])
		hi := parseBound(strings.TrimLeft(cleaned[i:], rangeSeparators))
		switch {
		case lo != nil && hi != nil:
			return Amount{Min: *lo, Max: *hi, IsRange: true}
		case lo != nil:
			return Amount{Min: *lo, Max: *lo, IsRange: true}
		case hi != nil:
			return Amount{Min: *hi, Max: *hi, IsRange: true}
		default:
			return Amount{}
		}
	}

	if v := parseBound(cleaned); v != nil {
		return Amount{Min: *v, Max: *v}
	}
	return Amount{}
}

func parseBound(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}

// String renders the amount back into the display form: "min-max" for
// ranges, a bare number otherwise.
func (a Amount) String() string {
	if a.IsRange {
		return formatBound(a.Min) + "-" + formatBound(a.Max)
	}
	return formatBound(a.Min)
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
