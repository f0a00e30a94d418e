package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"receivables-service/internal/legacy"
)

// ErrUnexpectedProcResult is returned when the ERP load procedure reports a
// code outside its documented set.
var ErrUnexpectedProcResult = errors.New("unexpected order load result code")

// ErrNoExtractedOrders is returned when the load succeeds but the day's
// extraction query yields no rows.
var ErrNoExtractedOrders = errors.New("no order rows extracted")

// LegacyLoadService runs the daily order pull from the upstream ERP and
// snapshots the extracted rows to a workbook.
type LegacyLoadService struct {
	ERP       legacy.Client
	OutputDir string
}

func NewLegacyLoadService(erp legacy.Client, outputDir string) *LegacyLoadService {
	return &LegacyLoadService{ERP: erp, OutputDir: outputDir}
}

var orderExtractHeader = []interface{}{
	"date", "full_name", "rechain_no", "rep_full_name", "item_no",
	"item_full_name", "qty", "time", "remark", "out_date",
	"item_price", "item_tax", "tax", "total",
}

// RunDailyLoad clears the day's staging rows, invokes the load procedure,
// and writes the extracted orders to a timestamped workbook. The returned
// path is the workbook location; it is empty when the procedure reported
// nothing to process or already processed.
func (s *LegacyLoadService) RunDailyLoad(now time.Time) (string, error) {
	date := now.Format("20060102")
	log := logrus.WithField("date", date)

	count, err := s.ERP.CountStagedOrders(date)
	if err != nil {
		return "", err
	}
	if count > 0 {
		log.WithField("count", count).Info("clearing staged orders")
		if err := s.ERP.DeleteStagedOrders(date); err != nil {
			return "", err
		}
	}

	result, err := s.ERP.CallOrderLoad(date, "0")
	if err != nil {
		return "", err
	}
	log.WithFields(logrus.Fields{
		"code": result.Code,
		"pos":  result.PosCount,
		"web":  result.WebCount,
		"ars":  result.ArsCount,
	}).Info("order load procedure finished: ", result.Desc)

	switch result.Code {
	case legacy.CodeSuccess:
	case legacy.CodeNothingToProcess:
		log.Warn("no order data to process")
		return "", nil
	case legacy.CodeAlreadyProcessed:
		log.Warn("order data already processed")
		return "", nil
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnexpectedProcResult, result.Code, result.Desc)
	}

	records, err := s.ERP.FetchOrders(date)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", ErrNoExtractedOrders
	}

	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("t_po_order_master_%s_%s.xlsx", date, now.Format("150405"))
	path := filepath.Join(s.OutputDir, name)
	if err := writeOrderWorkbook(path, records); err != nil {
		return "", err
	}
	log.WithField("rows", len(records)).Info("order extraction saved: ", path)
	return path, nil
}

func writeOrderWorkbook(path string, records []legacy.OrderRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &orderExtractHeader); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			r.Date, r.OutletName, r.RechainNo, r.RepName, r.ItemNo,
			r.ItemName, r.Qty, r.Time, r.Remark, r.OutDate,
			r.ItemPrice, r.ItemTax, r.TaxType, r.TotalAmount,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// StartScheduler initializes the cron job to run the daily load at 06:00.
func (s *LegacyLoadService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 6 * * *", func() {
		logrus.Info("Running scheduled daily order load...")
		if _, err := s.RunDailyLoad(time.Now()); err != nil {
			logrus.Error("scheduled order load failed: ", err)
		}
	})
	if err != nil {
		logrus.Error("Error scheduling daily order load: ", err)
		return
	}
	c.Start()
	logrus.Info("Daily order load scheduler started (06:00)")
}
