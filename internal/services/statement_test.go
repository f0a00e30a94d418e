package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPadRegNo(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123-45-67890", "1234567890"},
		{"123-45", "12345-----"},
		{"", "----------"},
		{"123456789012", "1234567890"},
	}
	for _, c := range cases {
		if got := padRegNo(c.in); got != c.want {
			t.Errorf("padRegNo(%q): expected %q, got %q", c.in, c.want, got)
		}
	}
}

func writeTestTemplate(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	// Supplier registration number spans a merged range; writes through the
	// range must land on its anchor.
	require.NoError(t, f.MergeCell("Sheet1", "F3", "H3"))
	path := filepath.Join(dir, "template.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRenderWorkbook(t *testing.T) {
	dir := t.TempDir()
	template := writeTestTemplate(t, dir)

	svc := NewStatementService(nil, nil, nil, template, dir, SupplierInfo{
		RegNo:     "112-81-22058",
		Name:      "Nolboo Co.",
		President: "Kim",
		Address:   "Seoul",
	})

	rows := []StatementRow{
		{
			OrderDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			RepName:     "Rep A",
			ClientCode:  "C100",
			ClientName:  "Gangnam Outlet",
			ItemName:    "Kimchi Stew Base",
			Unit:        "EA",
			Qty:         decimal.NewFromInt(3),
			UnitPrice:   decimal.NewFromInt(10000),
			OrderAmount: decimal.NewFromInt(30000),
			Vat:         decimal.NewFromInt(3000),
			TotalAmount: decimal.NewFromInt(33000),
			FullName:    "Gangnam Franchise Ltd.",
			RegNo:       "123-45-67890",
			President:   "Lee",
			Address1:    "Gangnam-gu",
		},
		{
			OrderDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			RepName:   "Rep A", ClientCode: "C100", ClientName: "Gangnam Outlet",
			ItemName: "Returned Noodles", Unit: "BOX",
			Qty: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(5000),
			OrderAmount: decimal.NewFromInt(-5000), Vat: decimal.NewFromInt(-500),
			TotalAmount: decimal.NewFromInt(-5500),
			FullName:    "Gangnam Franchise Ltd.", RegNo: "123-45-67890",
		},
	}

	path, err := svc.renderWorkbook("Gangnam Outlet", "2026-04-01", rows)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "statement_Gangnam Outlet_20260401.xlsx"), path)

	out, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer out.Close()

	get := func(cell string) string {
		v, err := out.GetCellValue("Sheet1", cell)
		require.NoError(t, err)
		return v
	}

	// Supplier block; G3 sits inside the merged F3:H3 range, so the value
	// lands on the anchor.
	assert.Equal(t, "112-81-22058", get("F3"))
	assert.Equal(t, "Nolboo Co.", get("G4"))
	assert.Equal(t, "2026-04-01", get("A2"))
	assert.Equal(t, "Rep A", get("U2"))

	// Client registration digits, one per box.
	assert.Equal(t, "1", get("V3"))
	assert.Equal(t, "2", get("W3"))
	assert.Equal(t, "0", get("AG3"))
	assert.Equal(t, "Gangnam Franchise Ltd.", get("V4"))

	// First item line.
	assert.Equal(t, "Kimchi Stew Base", get("A8"))
	assert.Equal(t, "EA", get("N8"))
	assert.Equal(t, "30000", get("Z8"))

	// Return line is sign-flipped.
	assert.Equal(t, "5000", get("Z9"))
	assert.Equal(t, "500", get("AD9"))

	// Totals: 30000 + 5000 and 3000 + 500.
	assert.Equal(t, "35,000", get("Z43"))
	assert.Equal(t, "3,500", get("AD43"))
	assert.Equal(t, "38,500", get("M44"))
}
