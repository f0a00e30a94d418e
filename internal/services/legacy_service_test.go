package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"receivables-service/internal/legacy"
)

type fakeERP struct {
	staged  int
	deleted []string
	result  legacy.LoadResult
	orders  []legacy.OrderRecord
}

func (f *fakeERP) CountStagedOrders(date string) (int, error) {
	return f.staged, nil
}

func (f *fakeERP) DeleteStagedOrders(date string) error {
	f.deleted = append(f.deleted, date)
	return nil
}

func (f *fakeERP) CallOrderLoad(date, flag string) (*legacy.LoadResult, error) {
	return &f.result, nil
}

func (f *fakeERP) FetchOrders(date string) ([]legacy.OrderRecord, error) {
	return f.orders, nil
}

func TestRunDailyLoadSuccess(t *testing.T) {
	dir := t.TempDir()
	erp := &fakeERP{
		staged: 5,
		result: legacy.LoadResult{Code: legacy.CodeSuccess, Desc: "ok", WebCount: 2},
		orders: []legacy.OrderRecord{
			{Date: "20260415", OutletName: "Gangnam Outlet", ItemNo: "I1", ItemName: "Stew Base", Qty: 3},
			{Date: "20260415", OutletName: "Mapo Outlet", ItemNo: "I2", ItemName: "Noodles", Qty: 1},
		},
	}
	svc := NewLegacyLoadService(erp, dir)

	now := time.Date(2026, 4, 15, 9, 30, 0, 0, time.UTC)
	path, err := svc.RunDailyLoad(now)
	if err != nil {
		t.Fatalf("RunDailyLoad failed: %v", err)
	}
	if len(erp.deleted) != 1 || erp.deleted[0] != "20260415" {
		t.Errorf("Expected staged rows for 20260415 deleted, got %v", erp.deleted)
	}
	want := filepath.Join(dir, "t_po_order_master_20260415_093000.xlsx")
	if path != want {
		t.Errorf("Expected workbook %s, got %s", want, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Workbook not written: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("Failed to read workbook: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("Expected header plus 2 rows, got %d", len(rows))
	}
}

func TestRunDailyLoadSkipsDeleteWhenNothingStaged(t *testing.T) {
	erp := &fakeERP{
		staged: 0,
		result: legacy.LoadResult{Code: legacy.CodeNothingToProcess},
	}
	svc := NewLegacyLoadService(erp, t.TempDir())

	path, err := svc.RunDailyLoad(time.Now())
	if err != nil {
		t.Fatalf("RunDailyLoad failed: %v", err)
	}
	if path != "" {
		t.Errorf("Expected no workbook, got %s", path)
	}
	if len(erp.deleted) != 0 {
		t.Errorf("Expected no delete, got %v", erp.deleted)
	}
}

func TestRunDailyLoadAlreadyProcessed(t *testing.T) {
	erp := &fakeERP{result: legacy.LoadResult{Code: legacy.CodeAlreadyProcessed}}
	svc := NewLegacyLoadService(erp, t.TempDir())

	path, err := svc.RunDailyLoad(time.Now())
	if err != nil {
		t.Fatalf("RunDailyLoad failed: %v", err)
	}
	if path != "" {
		t.Errorf("Expected no workbook, got %s", path)
	}
}

func TestRunDailyLoadUnexpectedCode(t *testing.T) {
	erp := &fakeERP{result: legacy.LoadResult{Code: "9", Desc: "boom"}}
	svc := NewLegacyLoadService(erp, t.TempDir())

	_, err := svc.RunDailyLoad(time.Now())
	if !errors.Is(err, ErrUnexpectedProcResult) {
		t.Errorf("Expected ErrUnexpectedProcResult, got %v", err)
	}
}
