package models

import "time"

// BankAccountMaster maps a per-client virtual deposit account to its owning
// client. Lookups strip hyphens from the stored account number; the stored
// value keeps whatever formatting the master feed delivered.
type BankAccountMaster struct {
	ID                 int       `gorm:"primaryKey;autoIncrement" json:"id"`
	VirtualAccount     string    `gorm:"column:hana_bank_virtual_account;size:50;not null;index" json:"hana_bank_virtual_account"`
	ClientCode         string    `gorm:"column:client_code;size:50;not null;index" json:"client_code"`
	ClientName         string    `gorm:"column:client_name;size:255" json:"client_name"`
	Manager            string    `gorm:"column:manager;size:100" json:"manager"`
	CollectorKey       string    `gorm:"column:collector_key;size:50" json:"collector_key"`
	RepresentativeCode string    `gorm:"column:representative_code;size:50" json:"representative_code"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (BankAccountMaster) TableName() string {
	return "ARBankAccountMaster"
}
