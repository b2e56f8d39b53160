// Package normalize converts the external CSV representations of prices and
// dates to and from their canonical internal forms: integer cents and
// time.Time.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatError reports a price, date, or numeric field that could not be
// parsed. Interactive callers turn it into a re-prompt; bulk ingestion lets
// it abort the load.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid value %q: %s", e.Input, e.Reason)
}

// ParsePrice converts a currency string like "$12.34" to integer cents.
// Fraction digits past the second are truncated ("$12.999" -> 1299). The
// amount is parsed as decimal text rather than via float64, so values like
// "$4.09" survive a format/parse round-trip exactly.
func ParsePrice(text string) (int64, error) {
	_, amount, found := strings.Cut(text, "$")
	if !found {
		return 0, &FormatError{Input: text, Reason: "missing currency symbol"}
	}
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, &FormatError{Input: text, Reason: "missing amount"}
	}

	// Both parts must be bare digit runs. strconv alone is too lenient
	// here: it accepts signs, so "$0.-5" would slip through as negative
	// cents and "$-0.50" would lose its sign entirely.
	dollarPart, centPart, _ := strings.Cut(amount, ".")
	if !isDigits(dollarPart) || !isDigits(centPart) || (dollarPart == "" && centPart == "") {
		return 0, &FormatError{Input: text, Reason: "amount is not a non-negative decimal"}
	}
	var dollars int64
	if dollarPart != "" {
		var err error
		dollars, err = strconv.ParseInt(dollarPart, 10, 64)
		if err != nil {
			return 0, &FormatError{Input: text, Reason: "amount is not a non-negative decimal"}
		}
	}

	// Pad or truncate the fraction to exactly two digits.
	if len(centPart) > 2 {
		centPart = centPart[:2]
	}
	for len(centPart) < 2 {
		centPart += "0"
	}
	cents, err := strconv.ParseInt(centPart, 10, 64)
	if err != nil {
		return 0, &FormatError{Input: text, Reason: "amount is not a non-negative decimal"}
	}

	return dollars*100 + cents, nil
}

// isDigits reports whether s is empty or consists only of ASCII digits.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FormatPrice renders integer cents as "$D.DD".
func FormatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// ParseDate parses a "M/D/YYYY" date (US convention, month first).
func ParseDate(text string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) != 3 {
		return time.Time{}, &FormatError{Input: text, Reason: "expected M/D/YYYY"}
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, &FormatError{Input: text, Reason: "month is not a number"}
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, &FormatError{Input: text, Reason: "day is not a number"}
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, &FormatError{Input: text, Reason: "year is not a number"}
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components (e.g. 2/30 -> 3/2), so
	// a changed component means the input was not a real calendar date.
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, &FormatError{Input: text, Reason: "not a valid calendar date"}
	}
	return d, nil
}

// FormatDateISO renders a date as "YYYY/MM/DD" for interactive display.
func FormatDateISO(t time.Time) string {
	return t.Format("2006/01/02")
}

// FormatDateUS renders a date as "MM/DD/YYYY", the CSV export format.
func FormatDateUS(t time.Time) string {
	return t.Format("01/02/2006")
}
