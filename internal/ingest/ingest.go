// Package ingest reads uploaded workbooks whose header row floats somewhere
// below decorative banner rows, validates the required columns and hands the
// data rows to the reconciliation pipeline as raw string records.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Bank-payment upload columns, as labeled by the bank's export.
const (
	ColDepositDate    = "입금일자"
	ColDepositTime    = "입금시간"
	ColVirtualAccount = "가상계좌번호"
	ColDepositAmount  = "입금금액"
)

// Bulk order upload columns.
const (
	ColOrderDate    = "order_date"
	ColClientCode   = "client_code"
	ColOrderAmount  = "order_amount"
	ColCollectorKey = "collector_key"
)

// ErrHeaderNotFound means no row in the sheet matched the upload's header
// signature.
var ErrHeaderNotFound = errors.New("header row not found in sheet")

// MissingColumnsError reports required columns absent from a located header
// row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("sheet is missing required columns: %s", strings.Join(e.Columns, ", "))
}

// SheetSpec describes how to locate the header row of one upload shape.
// When MarkerValue is set, the header is the first row whose MarkerColumn
// cell equals it; otherwise the header is the first row containing every
// Required name as a literal cell value.
type SheetSpec struct {
	MarkerColumn int
	MarkerValue  string
	Required     []string
}

// BankPaymentSheet matches the bank's deposit export: the first column is a
// row counter, so the header is identified by the second column.
func BankPaymentSheet() SheetSpec {
	return SheetSpec{
		MarkerColumn: 1,
		MarkerValue:  ColDepositDate,
		Required:     []string{ColDepositDate, ColDepositTime, ColVirtualAccount, ColDepositAmount},
	}
}

// OrderSheet matches the bulk order upload.
func OrderSheet() SheetSpec {
	return SheetSpec{
		Required: []string{ColOrderDate, ColClientCode, ColOrderAmount, ColCollectorKey},
	}
}

// Row is one data row keyed by required column name. Index is the zero-based
// sheet row, kept for per-row warnings.
type Row struct {
	Index int
	cells map[string]string
}

// Get returns the trimmed cell value for a required column.
func (r Row) Get(col string) string {
	return strings.TrimSpace(r.cells[col])
}

// Table is the finite sequence of data rows below the header.
type Table struct {
	HeaderIndex int
	Rows        []Row
}

// Ingest scans the first sheet of the workbook for the header row described
// by spec, validates the required columns and extracts all rows below it.
func Ingest(r io.Reader, spec SheetSpec) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, err
	}

	headerIdx := -1
	for i, row := range rows {
		if spec.matchesHeader(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrHeaderNotFound
	}

	colIdx := make(map[string]int)
	for j, name := range rows[headerIdx] {
		name = strings.TrimSpace(name)
		if _, ok := colIdx[name]; !ok {
			colIdx[name] = j
		}
	}
	var missing []string
	for _, req := range spec.Required {
		if _, ok := colIdx[req]; !ok {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	table := &Table{HeaderIndex: headerIdx}
	for i := headerIdx + 1; i < len(rows); i++ {
		cells := make(map[string]string, len(spec.Required))
		for _, req := range spec.Required {
			if j := colIdx[req]; j < len(rows[i]) {
				cells[req] = rows[i][j]
			}
		}
		table.Rows = append(table.Rows, Row{Index: i, cells: cells})
	}
	return table, nil
}

func (s SheetSpec) matchesHeader(row []string) bool {
	if s.MarkerValue != "" {
		if s.MarkerColumn >= len(row) {
			return false
		}
		return strings.TrimSpace(row[s.MarkerColumn]) == s.MarkerValue
	}
	for _, req := range s.Required {
		found := false
		for _, cell := range row {
			if strings.TrimSpace(cell) == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
