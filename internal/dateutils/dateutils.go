// Package dateutils provides the date operations used on invoice dates.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts used by invoices and exports
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutItalian  = "02/01/2006"
	DateLayoutDashed   = "02-01-2006"
	DateLayoutDateTime = "2006-01-02T15:04:05"
)

// CommonFormats is the list of formats ParseDate tries, in order.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutDateTime,
	time.RFC3339,
	DateLayoutItalian,
	DateLayoutDashed,
}

// ParseDate parses a date string trying CommonFormats in order.
// It returns the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = strings.TrimSpace(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// NormalizeISO rewrites any accepted date as YYYY-MM-DD. Empty input stays
// empty and unparsable input is returned trimmed, unchanged.
func NormalizeISO(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return ""
	}
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return ToISODate(t)
}

func startOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return startOfMonth(date).AddDate(0, 1, -1)
}

// EndOfMonthISO returns the last calendar day of the month of an ISO date.
// ok is false when dateStr cannot be parsed.
func EndOfMonthISO(dateStr string) (string, bool) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return "", false
	}
	return ToISODate(EndOfMonth(t)), true
}

// FormatDate renders an ISO date with layout, defaulting to the Italian
// dd/mm/yyyy form. Empty input renders empty; unparsable input is returned
// as is.
func FormatDate(dateStr, layout string) string {
	if strings.TrimSpace(dateStr) == "" {
		return ""
	}
	if layout == "" {
		layout = DateLayoutItalian
	}
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return dateStr
	}
	return t.Format(layout)
}
