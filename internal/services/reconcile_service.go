package services

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"receivables-service/internal/ingest"
	"receivables-service/internal/models"
)

// ErrBatchInsert marks an unexpected store failure during a batch write.
// The whole batch was rolled back and the upload can be resubmitted.
var ErrBatchInsert = errors.New("batch insert failed")

// ErrClientNotFound is returned by single-row operations when the referenced
// client code is missing from the master.
var ErrClientNotFound = errors.New("client not found")

// ErrNoValidOrders is returned when an order upload contains rows but every
// one of them was skipped. Nothing was written.
var ErrNoValidOrders = errors.New("no valid order rows in upload")

// SkippedRow records one row excluded from a batch for a business reason
// (unmatched master data, duplicate, missing required field).
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ReconcileResult summarizes one upload batch.
type ReconcileResult struct {
	Inserted int          `json:"inserted"`
	Skipped  []SkippedRow `json:"skipped"`
}

type ReconcileService struct {
	DB     *gorm.DB
	Master *MasterService
}

func NewReconcileService(db *gorm.DB, master *MasterService) *ReconcileService {
	return &ReconcileService{DB: db, Master: master}
}

// paymentLedgerEntry posts a bank deposit: credit and cash_deposit carry the
// amount, debit stays zero.
func paymentLedgerEntry(id Identity, date time.Time, amount decimal.Decimal) models.LedgerEntry {
	return models.LedgerEntry{
		TransactionDate:    date,
		RepresentativeCode: id.RepresentativeCode,
		Client:             id.ClientCode,
		OutletName:         id.ClientName,
		Credit:             amount,
		CashDeposit:        amount,
	}
}

// orderLedgerEntry posts an order: debit and food_material_sales carry the
// amount, credit stays zero.
func orderLedgerEntry(id Identity, date time.Time, amount decimal.Decimal) models.LedgerEntry {
	return models.LedgerEntry{
		TransactionDate:    date,
		RepresentativeCode: id.RepresentativeCode,
		Client:             id.ClientCode,
		OutletName:         id.ClientName,
		Debit:              amount,
		FoodMaterialSales:  amount,
	}
}

// UploadBankPayments ingests a bank deposit sheet and reconciles each row
// into ARBankPaymentDetails plus a credit ledger entry. Row-level conditions
// (unparsable date, unmatched account, duplicate natural key) are skipped
// with a warning; any store error rolls the whole batch back.
func (s *ReconcileService) UploadBankPayments(r io.Reader) (ReconcileResult, error) {
	table, err := ingest.Ingest(r, ingest.BankPaymentSheet())
	if err != nil {
		return ReconcileResult{}, err
	}

	var result ReconcileResult
	skip := func(row int, reason string) {
		log.WithFields(log.Fields{"row": row + 1, "reason": reason}).Warn("bank payment row skipped")
		result.Skipped = append(result.Skipped, SkippedRow{Row: row + 1, Reason: reason})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range table.Rows {
			date, ok := ingest.ParseDate(row.Get(ingest.ColDepositDate))
			account := ingest.CleanVirtualAccount(row.Get(ingest.ColVirtualAccount))
			if !ok || account == "" {
				skip(row.Index, "missing deposit date or virtual account")
				continue
			}
			amount := ingest.CleanDecimal(row.Get(ingest.ColDepositAmount))
			payTime := ingest.ParseTimeOfDay(row.Get(ingest.ColDepositTime))

			id, found, err := s.Master.ResolveByVirtualAccount(account)
			if err != nil {
				return err
			}
			if !found {
				skip(row.Index, fmt.Sprintf("virtual account %s not found", account))
				continue
			}

			var dup int64
			err = tx.Model(&models.BankPaymentDetail{}).
				Where("payment_date = ? AND payment_time = ? AND client_code = ? AND collector_key = ? AND virtual_account_number = ? AND payment_amount = ?",
					date, payTime, id.ClientCode, id.CollectorKey, account, amount).
				Count(&dup).Error
			if err != nil {
				return err
			}
			if dup > 0 {
				skip(row.Index, "duplicate payment")
				continue
			}

			payment := models.BankPaymentDetail{
				PaymentDate:          date,
				PaymentTime:          payTime,
				ClientCode:           id.ClientCode,
				CollectorKey:         id.CollectorKey,
				VirtualAccountNumber: account,
				PaymentAmount:        amount,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			entry := paymentLedgerEntry(id, date, amount)
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			result.Inserted++
		}
		return nil
	})
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("%w: %v", ErrBatchInsert, err)
	}

	log.WithField("inserted", result.Inserted).Info("bank payment upload reconciled")
	return result, nil
}

// UploadOrders ingests a bulk order sheet, resolves all client codes in one
// query and batch-inserts AROrderDetails plus debit ledger entries.
func (s *ReconcileService) UploadOrders(r io.Reader) (ReconcileResult, error) {
	table, err := ingest.Ingest(r, ingest.OrderSheet())
	if err != nil {
		return ReconcileResult{}, err
	}

	var result ReconcileResult
	skip := func(row int, reason string) {
		log.WithFields(log.Fields{"row": row + 1, "reason": reason}).Warn("order row skipped")
		result.Skipped = append(result.Skipped, SkippedRow{Row: row + 1, Reason: reason})
	}

	codeSet := make(map[string]struct{})
	var codes []string
	for _, row := range table.Rows {
		if code := row.Get(ingest.ColClientCode); code != "" {
			if _, seen := codeSet[code]; !seen {
				codeSet[code] = struct{}{}
				codes = append(codes, code)
			}
		}
	}
	identities, err := s.Master.ResolveMany(codes)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("%w: %v", ErrBatchInsert, err)
	}

	var orders []models.OrderDetail
	var entries []models.LedgerEntry
	for _, row := range table.Rows {
		date, ok := ingest.ParseDate(row.Get(ingest.ColOrderDate))
		code := row.Get(ingest.ColClientCode)
		collector := row.Get(ingest.ColCollectorKey)
		if !ok || code == "" || collector == "" {
			skip(row.Index, "missing order date, client code or collector key")
			continue
		}
		id, found := identities[code]
		if !found {
			skip(row.Index, fmt.Sprintf("client code %s not found", code))
			continue
		}
		amount := ingest.CleanDecimal(row.Get(ingest.ColOrderAmount))

		orders = append(orders, models.OrderDetail{
			RepresentativeCode: id.RepresentativeCode,
			ClientCode:         id.ClientCode,
			ClientName:         id.ClientName,
			CollectorKey:       collector,
			Manager:            id.Manager,
			OrderDate:          date,
			OrderAmount:        amount,
		})
		entries = append(entries, orderLedgerEntry(id, date, amount))
	}
	if len(orders) == 0 {
		return ReconcileResult{}, ErrNoValidOrders
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("%w: %v", ErrBatchInsert, err)
	}

	result.Inserted = len(orders)
	log.WithField("inserted", result.Inserted).Info("order upload reconciled")
	return result, nil
}

// AddOrder records a single order entry together with its debit ledger row.
func (s *ReconcileService) AddOrder(clientCode string, orderDate time.Time, amount decimal.Decimal) error {
	id, found, err := s.Master.ResolveByClientCode(clientCode)
	if err != nil {
		return err
	}
	if !found {
		return ErrClientNotFound
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		order := models.OrderDetail{
			RepresentativeCode: id.RepresentativeCode,
			ClientCode:         id.ClientCode,
			ClientName:         id.ClientName,
			Manager:            id.Manager,
			OrderDate:          orderDate,
			OrderAmount:        amount,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		entry := orderLedgerEntry(id, orderDate, amount)
		return tx.Create(&entry).Error
	})
}
