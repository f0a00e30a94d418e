package ingest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestIngestBankPaymentsFloatingHeader(t *testing.T) {
	// Banner rows above, header marker in the second column at row index 5.
	rows := [][]interface{}{
		{"하나은행 가상계좌 입금내역"},
		{},
		{"조회기간", "2025-03-01 ~ 2025-03-31"},
		{},
		{},
		{"No.", ColDepositDate, ColDepositTime, ColVirtualAccount, ColDepositAmount, "비고"},
		{"1", "2025-03-01", "09:00:00", "123-456", "1,000", "x"},
		{"2", "2025-03-02", "10:30:00", "789-012", "2,500", ""},
	}
	table, err := Ingest(buildWorkbook(t, rows), BankPaymentSheet())
	require.NoError(t, err)
	assert.Equal(t, 5, table.HeaderIndex)
	require.Len(t, table.Rows, 2)

	first := table.Rows[0]
	assert.Equal(t, "2025-03-01", first.Get(ColDepositDate))
	assert.Equal(t, "123-456", first.Get(ColVirtualAccount))
	assert.Equal(t, "1,000", first.Get(ColDepositAmount))
	assert.Equal(t, 6, first.Index)
}

func TestIngestHeaderNotFound(t *testing.T) {
	rows := [][]interface{}{
		{"just", "some", "cells"},
		{"no", "header", "here"},
	}
	_, err := Ingest(buildWorkbook(t, rows), BankPaymentSheet())
	assert.ErrorIs(t, err, ErrHeaderNotFound)
}

func TestIngestMissingColumns(t *testing.T) {
	// Marker present but the amount column is absent.
	rows := [][]interface{}{
		{"No.", ColDepositDate, ColDepositTime, ColVirtualAccount},
		{"1", "2025-03-01", "09:00:00", "123-456"},
	}
	_, err := Ingest(buildWorkbook(t, rows), BankPaymentSheet())

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{ColDepositAmount}, missing.Columns)
}

func TestIngestOrderSheetMatchesAnyColumnOrder(t *testing.T) {
	rows := [][]interface{}{
		{"사내 발주 집계"},
		{ColCollectorKey, ColOrderDate, "memo", ColClientCode, ColOrderAmount},
		{"K1", "2025-03-05", "", "C001", "1500.50"},
	}
	table, err := Ingest(buildWorkbook(t, rows), OrderSheet())
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "C001", table.Rows[0].Get(ColClientCode))
	assert.Equal(t, "1500.50", table.Rows[0].Get(ColOrderAmount))
	assert.Equal(t, "K1", table.Rows[0].Get(ColCollectorKey))
}
