package ingest

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// zeroAmount is the sentinel for empty or unparseable numeric cells: zero at
// two-decimal scale.
func zeroAmount() decimal.Decimal {
	return decimal.New(0, -2)
}

// CleanDecimal coerces a raw cell value to a decimal. Currency symbols,
// thousands separators and other noise are stripped; only digits, the dot
// and the minus sign survive. Empty or unparseable input yields 0.00.
// CleanDecimal never fails.
func CleanDecimal(raw string) decimal.Decimal {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return zeroAmount()
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return zeroAmount()
	}
	return d
}

// Date layouts seen in the upload feeds.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"01-02-06",
	"2006-01-02 15:04:05",
}

// ParseDate coerces a cell value to a calendar date. The second return is
// false when the value is empty or matches no known layout; callers skip
// such rows instead of failing the batch.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTimeOfDay normalizes a deposit-time cell to HH:MM:SS. Empty or
// unparseable values come back as the empty string.
func ParseTimeOfDay(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range []string{"15:04:05", "15:04", "3:04:05 PM"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04:05")
		}
	}
	return ""
}

// CleanVirtualAccount strips hyphens and surrounding whitespace from a
// virtual account number.
func CleanVirtualAccount(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), "-", "")
}
