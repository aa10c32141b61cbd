// Package size converts between byte counts and the textual size tokens
// used in disk-usage reports.
//
// Units are decimal (KB = 1000 bytes, not 1024) and case-sensitive, matching
// the report format: b, KB, MB, GB, TB.
package size

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidUnit is returned when a size token does not end in one of the
// recognized unit suffixes, or has no digits before the suffix.
var ErrInvalidUnit = errors.New("invalid size unit")

// units lists the recognized suffixes with their decimal multipliers.
// "b" is last so that it never shadows the two-letter suffixes.
//
//nolint:gochecknoglobals // Unit table constant
var units = []struct {
	suffix string
	mult   uint64
}{
	{"KB", 1e3},
	{"MB", 1e6},
	{"GB", 1e9},
	{"TB", 1e12},
	{"b", 1},
}

// Parse converts a formatted size such as "3.2MB" into a byte count.
// The integer part is mandatory, the fraction optional; the result is the
// decimal value multiplied by the unit and truncated toward zero.
func Parse(formatted string) (uint64, error) {
	for _, u := range units {
		if !strings.HasSuffix(formatted, u.suffix) {
			continue
		}

		return parseDecimal(strings.TrimSuffix(formatted, u.suffix), u.mult, formatted)
	}

	return 0, fmt.Errorf("size %q: %w", formatted, ErrInvalidUnit)
}

// parseDecimal evaluates "<digits>[.<digits>]" times mult using integer
// arithmetic only, so truncation is exact and no float rounding can move
// the result (3.2MB is 3200000, never 3199999).
func parseDecimal(digits string, mult uint64, token string) (uint64, error) {
	intPart, fracPart, hasDot := strings.Cut(digits, ".")
	if !allDigits(intPart) || (hasDot && !allDigits(fracPart)) {
		return 0, fmt.Errorf("size %q: %w", token, ErrInvalidUnit)
	}

	var total uint64
	for i := 0; i < len(intPart); i++ {
		total = total*10 + uint64(intPart[i]-'0')
	}

	total *= mult

	// Each fractional digit contributes d * mult/10^position; mult is a
	// power of 1000, so the division stays exact until the scale hits zero.
	scale := mult
	for i := 0; i < len(fracPart) && scale > 0; i++ {
		scale /= 10
		total += uint64(fracPart[i]-'0') * scale
	}

	return total, nil
}

// allDigits reports whether s is non-empty and consists only of '0'-'9'.
func allDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// Format renders bytes as a report size token, using the largest unit that
// keeps the integer part non-zero and at most one truncated decimal digit.
// Parse(Format(b)) never exceeds b.
func Format(bytes uint64) string {
	if bytes < 1000 {
		return fmt.Sprintf("%db", bytes)
	}

	// Walk the table backwards: TB down to KB.
	for i := len(units) - 2; i >= 0; i-- {
		u := units[i]
		if bytes < u.mult {
			continue
		}

		whole := bytes / u.mult

		if tenth := bytes % u.mult * 10 / u.mult; tenth > 0 {
			return fmt.Sprintf("%d.%d%s", whole, tenth, u.suffix)
		}

		return fmt.Sprintf("%d%s", whole, u.suffix)
	}

	return fmt.Sprintf("%db", bytes)
}
