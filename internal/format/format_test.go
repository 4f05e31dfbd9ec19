package format

import (
	"testing"
	"time"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$0.00"},
		{"small", 12.5, "$12.50"},
		{"grouped", 1234.56, "$1,234.56"},
		{"large", 1234567.891, "$1,234,567.89"},
		{"negative", -12, "-$12.00"},
		{"negative_grouped", -9876.5, "-$9,876.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.want {
				t.Errorf("Currency(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestDateFormats(t *testing.T) {
	d := time.Date(2026, time.March, 5, 14, 30, 0, 0, time.UTC)

	t.Run("date", func(t *testing.T) {
		if got := Date(d); got != "Mar 05, 2026" {
			t.Errorf("Date() = %q", got)
		}
	})

	t.Run("short_date", func(t *testing.T) {
		if got := ShortDate(d); got != "03/05/2026" {
			t.Errorf("ShortDate() = %q", got)
		}
	})

	t.Run("month_year", func(t *testing.T) {
		if got := MonthYear(d); got != "March 2026" {
			t.Errorf("MonthYear() = %q", got)
		}
	})

	t.Run("zero_time_is_empty", func(t *testing.T) {
		if got := Date(time.Time{}); got != "" {
			t.Errorf("Date(zero) = %q, want empty", got)
		}
	})
}

func TestMonthKey(t *testing.T) {
	t.Run("pads_single_digit_months", func(t *testing.T) {
		d := time.Date(2026, time.March, 31, 23, 59, 0, 0, time.UTC)
		if got := MonthKey(d); got != "2026-03" {
			t.Errorf("MonthKey() = %q, want 2026-03", got)
		}
	})

	t.Run("uses_calendar_components_as_is", func(t *testing.T) {
		// A late-evening timestamp in a western zone stays in its own
		// calendar month; no UTC conversion is applied.
		loc := time.FixedZone("PST", -8*3600)
		d := time.Date(2026, time.January, 31, 22, 0, 0, 0, loc)
		if got := MonthKey(d); got != "2026-01" {
			t.Errorf("MonthKey() = %q, want 2026-01", got)
		}
	})
}

func TestParseMonthKey(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		got, err := ParseMonthKey("2026-07")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Year() != 2026 || got.Month() != time.July || got.Day() != 1 {
			t.Errorf("ParseMonthKey() = %v", got)
		}
	})

	t.Run("round_trips_with_month_key", func(t *testing.T) {
		got, err := ParseMonthKey("2025-12")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if MonthKey(got) != "2025-12" {
			t.Errorf("round trip produced %q", MonthKey(got))
		}
	})

	invalid := []string{"2026-13", "2026-0", "202603", "March 2026", ""}
	for _, key := range invalid {
		t.Run("rejects_"+key, func(t *testing.T) {
			if _, err := ParseMonthKey(key); err == nil {
				t.Errorf("expected error for %q", key)
			}
		})
	}
}

func TestPercentage(t *testing.T) {
	t.Run("one_decimal", func(t *testing.T) {
		if got := Percentage(3, 8); got != "37.5%" {
			t.Errorf("Percentage() = %q", got)
		}
	})

	t.Run("zero_total", func(t *testing.T) {
		if got := Percentage(5, 0); got != "0%" {
			t.Errorf("Percentage() = %q, want 0%%", got)
		}
	})
}
