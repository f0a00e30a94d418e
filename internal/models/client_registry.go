package models

// ClientRegistry holds the legal identity fields printed in the statement
// header block. It is the legacy chain registry and is read-only here.
type ClientRegistry struct {
	ChainNo   string `gorm:"column:chain_no;size:50;primaryKey" json:"chain_no"`
	FullName  string `gorm:"column:full_name;size:255" json:"full_name"`
	RegNo     string `gorm:"column:reg_no;size:20" json:"reg_no"`
	President string `gorm:"column:president;size:100" json:"president"`
	Address1  string `gorm:"column:address1;size:255" json:"address1"`
}

func (ClientRegistry) TableName() string {
	return "cm_chain"
}
