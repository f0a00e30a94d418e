package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"receivables-service/internal/ingest"
	"receivables-service/internal/models"
)

// Identity is the enriched master-data view of a client, resolved either
// from the client master or from a virtual bank account.
type Identity struct {
	ClientCode         string `json:"client_code"`
	ClientName         string `json:"client_name"`
	Manager            string `json:"manager"`
	CollectorKey       string `json:"collector_key"`
	RepresentativeCode string `json:"representative_code"`
}

type MasterService struct {
	DB *gorm.DB
}

func NewMasterService(db *gorm.DB) *MasterService {
	return &MasterService{DB: db}
}

// ResolveByClientCode returns the identity for a client code, or found=false
// when the code is unknown. Unknown codes are a row-level condition for the
// caller, never an error.
func (s *MasterService) ResolveByClientCode(code string) (Identity, bool, error) {
	var m models.ClientMaster
	err := s.DB.Where("client_code = ?", strings.TrimSpace(code)).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{}, false, nil
	}
	if err != nil {
		return Identity{}, false, err
	}
	return Identity{
		ClientCode:         m.ClientCode,
		ClientName:         m.ClientName,
		Manager:            m.Manager,
		RepresentativeCode: m.RepresentativeCode,
	}, true, nil
}

// ResolveByVirtualAccount looks up the owner of a virtual deposit account.
// The comparison is hyphen-insensitive on both sides.
func (s *MasterService) ResolveByVirtualAccount(number string) (Identity, bool, error) {
	cleaned := ingest.CleanVirtualAccount(number)
	if cleaned == "" {
		return Identity{}, false, nil
	}
	var m models.BankAccountMaster
	err := s.DB.Where("REPLACE(hana_bank_virtual_account, '-', '') = ?", cleaned).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Identity{}, false, nil
	}
	if err != nil {
		return Identity{}, false, err
	}
	return Identity{
		ClientCode:         m.ClientCode,
		ClientName:         m.ClientName,
		Manager:            m.Manager,
		CollectorKey:       m.CollectorKey,
		RepresentativeCode: m.RepresentativeCode,
	}, true, nil
}

// ResolveMany fetches all named client codes in one query and returns a
// lookup table. Codes absent from the result are implicitly not found.
func (s *MasterService) ResolveMany(codes []string) (map[string]Identity, error) {
	out := make(map[string]Identity, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	var rows []models.ClientMaster
	if err := s.DB.Where("client_code IN ?", codes).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, m := range rows {
		out[m.ClientCode] = Identity{
			ClientCode:         m.ClientCode,
			ClientName:         m.ClientName,
			Manager:            m.Manager,
			RepresentativeCode: m.RepresentativeCode,
		}
	}
	return out, nil
}
