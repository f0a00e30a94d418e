package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemDetail is one statement line item as delivered by the ERP feed.
// Column names follow the legacy feed, rep_code/rep_name included.
type OrderItemDetail struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderDate   time.Time       `gorm:"column:order_date;type:date;not null;index" json:"order_date"`
	RepCode     string          `gorm:"column:rep_code;size:50" json:"rep_code"`
	RepName     string          `gorm:"column:rep_name;size:255" json:"rep_name"`
	ClientCode  string          `gorm:"column:client_code;size:50;not null;index" json:"client_code"`
	ClientName  string          `gorm:"column:client_name;size:255" json:"client_name"`
	ItemCode    string          `gorm:"column:item_code;size:50" json:"item_code"`
	ItemName    string          `gorm:"column:item_name;size:255" json:"item_name"`
	Cond        string          `gorm:"column:cond;size:50" json:"cond"`
	Unit        string          `gorm:"column:unit;size:50" json:"unit"`
	Qty         decimal.Decimal `gorm:"column:qty;type:decimal(15,2);default:0.00" json:"qty"`
	CalQty      decimal.Decimal `gorm:"column:cal_qty;type:decimal(15,2);default:0.00" json:"cal_qty"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(15,2);default:0.00" json:"unit_price"`
	OrderAmount decimal.Decimal `gorm:"column:order_amount;type:decimal(15,2);default:0.00" json:"order_amount"`
	Vat         decimal.Decimal `gorm:"column:vat;type:decimal(15,2);default:0.00" json:"vat"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount;type:decimal(15,2);default:0.00" json:"total_amount"`
	Tax         string          `gorm:"column:tax;size:20" json:"tax"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OrderItemDetail) TableName() string {
	return "AROrderDetailsItem"
}
