package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankPaymentDetail is one reconciled bank deposit. The tuple
// (payment_date, payment_time, client_code, collector_key,
// virtual_account_number, payment_amount) is the natural key: the reconciler
// checks it before insert so re-uploading the same sheet is idempotent.
// PaymentTime is a plain HH:MM:SS string; it stays empty when the source
// cell is blank, so the column must accept the empty string.
type BankPaymentDetail struct {
	ID                   int             `gorm:"primaryKey;autoIncrement" json:"id"`
	PaymentDate          time.Time       `gorm:"column:payment_date;type:date;not null;index" json:"payment_date"`
	PaymentTime          string          `gorm:"column:payment_time;size:8" json:"payment_time"`
	ClientCode           string          `gorm:"column:client_code;size:50;not null;index" json:"client_code"`
	CollectorKey         string          `gorm:"column:collector_key;size:50" json:"collector_key"`
	VirtualAccountNumber string          `gorm:"column:virtual_account_number;size:50;not null" json:"virtual_account_number"`
	PaymentAmount        decimal.Decimal `gorm:"column:payment_amount;type:decimal(15,2);not null" json:"payment_amount"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (BankPaymentDetail) TableName() string {
	return "ARBankPaymentDetails"
}
