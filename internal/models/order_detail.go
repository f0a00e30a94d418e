package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDetail is one order event. Rows are created by order entry and bulk
// upload and never updated or deleted afterwards.
type OrderDetail struct {
	ID                 int             `gorm:"primaryKey;autoIncrement" json:"id"`
	RepresentativeCode string          `gorm:"column:representative_code;size:50" json:"representative_code"`
	ClientCode         string          `gorm:"column:client_code;size:50;not null;index" json:"client_code"`
	ClientName         string          `gorm:"column:client_name;size:255" json:"client_name"`
	CollectorKey       string          `gorm:"column:collector_key;size:50" json:"collector_key"`
	Manager            string          `gorm:"column:manager;size:100" json:"manager"`
	OrderDate          time.Time       `gorm:"column:order_date;type:date;not null;index" json:"order_date"`
	OrderAmount        decimal.Decimal `gorm:"column:order_amount;type:decimal(15,2);not null" json:"order_amount"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderDetail) TableName() string {
	return "AROrderDetails"
}
