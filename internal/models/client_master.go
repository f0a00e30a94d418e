package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientMaster is static reference data for billing entities. The core never
// writes to this table.
type ClientMaster struct {
	ID                 int             `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientCode         string          `gorm:"column:client_code;size:50;not null;uniqueIndex" json:"client_code"`
	ClientName         string          `gorm:"column:client_name;size:255;not null" json:"client_name"`
	RepresentativeCode string          `gorm:"column:representative_code;size:50" json:"representative_code"`
	Manager            string          `gorm:"column:manager;size:100" json:"manager"`
	Deposit            decimal.Decimal `gorm:"column:deposit;type:decimal(15,2);default:0.00" json:"deposit"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ClientMaster) TableName() string {
	return "ARClientMaster"
}
