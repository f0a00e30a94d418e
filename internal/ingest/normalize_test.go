package ingest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCleanDecimalStripsNoise(t *testing.T) {
	cases := map[string]string{
		"1,000":      "1000",
		"₩12,345.67": "12345.67",
		" 250 ":      "250",
		"-1,500.00":  "-1500",
		"3.14원":      "3.14",
	}
	for in, want := range cases {
		got := CleanDecimal(in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "CleanDecimal(%q) = %s, want %s", in, got, want)
	}
}

func TestCleanDecimalUnparseableIsTwoPlaceZero(t *testing.T) {
	for _, in := range []string{"", "abc", "-", "--..", "원"} {
		got := CleanDecimal(in)
		assert.True(t, got.IsZero(), "CleanDecimal(%q) = %s", in, got)
		assert.Equal(t, int32(-2), got.Exponent(), "CleanDecimal(%q)", in)
		assert.Equal(t, "0.00", got.StringFixed(2))
	}
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2025-03-01")
	assert.True(t, ok)
	assert.Equal(t, "2025-03-01", d.Format("2006-01-02"))

	d, ok = ParseDate("2025/03/01")
	assert.True(t, ok)
	assert.Equal(t, "2025-03-01", d.Format("2006-01-02"))

	_, ok = ParseDate("not a date")
	assert.False(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestParseTimeOfDay(t *testing.T) {
	assert.Equal(t, "09:00:00", ParseTimeOfDay("09:00:00"))
	assert.Equal(t, "14:30:00", ParseTimeOfDay("14:30"))
	assert.Equal(t, "", ParseTimeOfDay("soon"))
}

func TestCleanVirtualAccount(t *testing.T) {
	assert.Equal(t, "123456", CleanVirtualAccount(" 123-456 "))
	assert.Equal(t, "9876543210", CleanVirtualAccount("98-765-432-10"))
	assert.Equal(t, "", CleanVirtualAccount("  "))
}
