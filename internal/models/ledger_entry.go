package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one debit/credit posting with per-category subtotals.
// Orders post debit (and food_material_sales), bank deposits post credit
// (and cash_deposit); exactly one of debit/credit is nonzero per row.
// Entries are append-only and carry denormalized outlet/representative
// snapshots so history survives master-data changes.
type LedgerEntry struct {
	ID                 int             `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionDate    time.Time       `gorm:"column:transaction_date;type:date;not null;index" json:"transaction_date"`
	RepresentativeCode string          `gorm:"column:representative_code;size:50" json:"representative_code"`
	Client             string          `gorm:"column:client;size:50;not null;index" json:"client"`
	OutletName         string          `gorm:"column:outlet_name;size:255" json:"outlet_name"`
	Debit              decimal.Decimal `gorm:"column:debit;type:decimal(15,2);default:0.00" json:"debit"`
	Credit             decimal.Decimal `gorm:"column:credit;type:decimal(15,2);default:0.00" json:"credit"`
	FoodMaterialSales  decimal.Decimal `gorm:"column:food_material_sales;type:decimal(15,2);default:0.00" json:"food_material_sales"`
	RoyaltySales       decimal.Decimal `gorm:"column:royalty_sales;type:decimal(15,2);default:0.00" json:"royalty_sales"`
	AdvertisingFees    decimal.Decimal `gorm:"column:advertising_fees;type:decimal(15,2);default:0.00" json:"advertising_fees"`
	OtherSales         decimal.Decimal `gorm:"column:other_sales;type:decimal(15,2);default:0.00" json:"other_sales"`
	CashDeposit        decimal.Decimal `gorm:"column:cash_deposit;type:decimal(15,2);default:0.00" json:"cash_deposit"`
	MealVoucherDeposit decimal.Decimal `gorm:"column:meal_voucher_deposit;type:decimal(15,2);default:0.00" json:"meal_voucher_deposit"`
	DeliveryFee        decimal.Decimal `gorm:"column:delivery_fee;type:decimal(15,2);default:0.00" json:"delivery_fee"`
	CardDeposit        decimal.Decimal `gorm:"column:card_deposit;type:decimal(15,2);default:0.00" json:"card_deposit"`
	PosUsageFee        decimal.Decimal `gorm:"column:pos_usage_fee;type:decimal(15,2);default:0.00" json:"pos_usage_fee"`
	Receivables        decimal.Decimal `gorm:"column:receivables;type:decimal(15,2);default:0.00" json:"receivables"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ARTransactionsLedger"
}
