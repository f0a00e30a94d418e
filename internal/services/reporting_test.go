package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatComma(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"1000", "1,000.00"},
		{"1234567.5", "1,234,567.50"},
		{"999", "999.00"},
		{"-1500", "-1,500.00"},
	}
	for _, c := range cases {
		d, _ := decimal.NewFromString(c.in)
		if got := formatComma(d); got != c.want {
			t.Errorf("formatComma(%s): expected %s, got %s", c.in, c.want, got)
		}
	}
}

func TestFormatOrDash(t *testing.T) {
	if got := formatOrDash(decimal.NewFromInt(25000)); got != "25,000.00" {
		t.Errorf("Expected 25,000.00, got %s", got)
	}
	if got := formatOrDash(decimal.Zero); got != "-" {
		t.Errorf("Expected dash for zero, got %s", got)
	}
	if got := formatOrDash(decimal.NewFromInt(-100)); got != "-" {
		t.Errorf("Expected dash for negative, got %s", got)
	}
}

func TestFixedOrZero(t *testing.T) {
	if got := fixedOrZero(decimal.NewFromFloat(1234.5)); got != "1234.50" {
		t.Errorf("Expected 1234.50, got %s", got)
	}
	if got := fixedOrZero(decimal.NewFromInt(-50)); got != "0.00" {
		t.Errorf("Expected 0.00 for negative, got %s", got)
	}
}

func TestDailyGridInvalidPeriod(t *testing.T) {
	svc := NewReportingService(nil)

	for _, c := range []struct{ year, month int }{
		{0, 5},
		{2026, 0},
		{2026, 13},
	} {
		_, err := svc.DailyGrid(c.year, c.month, "")
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("DailyGrid(%d, %d): expected ErrInvalidPeriod, got %v", c.year, c.month, err)
		}
	}
}
