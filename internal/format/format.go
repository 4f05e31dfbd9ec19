// Package format provides display formatting for amounts and dates, and the
// "YYYY-MM" month key used to partition transactions and budgets.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// monthKeyLayout is the canonical month key layout ("YYYY-MM").
const monthKeyLayout = "2006-01"

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats an amount as a grouped USD string, e.g. "$1,234.56".
// Negative amounts render with a leading minus: "-$12.00".
func Currency(amount float64) string {
	if amount < 0 {
		return printer.Sprintf("-$%.2f", -amount)
	}
	return printer.Sprintf("$%.2f", amount)
}

// Date formats a date for display, e.g. "Jan 02, 2026".
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 02, 2006")
}

// ShortDate formats a date as "01/02/2026".
func ShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("01/02/2006")
}

// MonthYear formats a date as "January 2026".
func MonthYear(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2006")
}

// MonthKey projects a date onto its "YYYY-MM" month key using the date's
// own calendar components, with no timezone adjustment.
func MonthKey(t time.Time) string {
	return t.Format(monthKeyLayout)
}

// CurrentMonthKey returns the month key for the current month.
func CurrentMonthKey() string {
	return MonthKey(time.Now())
}

// ParseMonthKey parses a "YYYY-MM" key into the first instant of that month.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(monthKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month key %q: %w", key, err)
	}
	return t, nil
}

// Percentage renders value as a percentage of total with one decimal,
// e.g. "37.5%". A zero total yields "0%".
func Percentage(value, total float64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", value/total*100)
}
