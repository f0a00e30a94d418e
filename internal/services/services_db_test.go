package services

import (
	"log"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"receivables-service/internal/models"
)

// NOTE: These tests require a running MySQL instance.
// For this environment, we will write them to be ready for integration testing.

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Println("Skipping DB tests: DATABASE_URL not set")
		os.Exit(m.Run())
	}

	var err error
	testDB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	testDB.AutoMigrate(
		&models.ClientMaster{},
		&models.BankAccountMaster{},
		&models.BankPaymentDetail{},
		&models.OrderDetail{},
		&models.LedgerEntry{},
	)
	os.Exit(m.Run())
}

func cleanup() {
	if testDB != nil {
		testDB.Exec("DELETE FROM ARTransactionsLedger")
		testDB.Exec("DELETE FROM AROrderDetails")
		testDB.Exec("DELETE FROM ARBankPaymentDetails")
		testDB.Exec("DELETE FROM ARBankAccountMaster")
		testDB.Exec("DELETE FROM ARClientMaster")
	}
}

func seedMaster(t *testing.T) {
	t.Helper()
	client := models.ClientMaster{
		ClientCode: "C100",
		ClientName: "Gangnam Outlet",
		Manager:    "Kim",
		Deposit:    decimal.NewFromInt(500000),
	}
	if err := testDB.Create(&client).Error; err != nil {
		t.Fatalf("Failed to seed client master: %v", err)
	}
	account := models.BankAccountMaster{
		VirtualAccount: "123-456-789",
		ClientCode:     "C100",
		ClientName:     "Gangnam Outlet",
		Manager:        "Kim",
		CollectorKey:   "K01",
	}
	if err := testDB.Create(&account).Error; err != nil {
		t.Fatalf("Failed to seed bank account master: %v", err)
	}
}

func TestResolveByClientCode(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()
	seedMaster(t)

	svc := NewMasterService(testDB)

	id, found, err := svc.ResolveByClientCode("C100")
	if err != nil {
		t.Fatalf("ResolveByClientCode failed: %v", err)
	}
	if !found {
		t.Fatal("Expected client C100 to be found")
	}
	if id.ClientName != "Gangnam Outlet" {
		t.Errorf("Expected Gangnam Outlet, got %s", id.ClientName)
	}

	_, found, err = svc.ResolveByClientCode("NOPE")
	if err != nil {
		t.Fatalf("ResolveByClientCode failed: %v", err)
	}
	if found {
		t.Error("Expected unknown code to be not found")
	}
}

func TestResolveByVirtualAccountIgnoresHyphens(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()
	seedMaster(t)

	svc := NewMasterService(testDB)

	id, found, err := svc.ResolveByVirtualAccount("123456789")
	if err != nil {
		t.Fatalf("ResolveByVirtualAccount failed: %v", err)
	}
	if !found {
		t.Fatal("Expected account to match despite stored hyphens")
	}
	if id.CollectorKey != "K01" {
		t.Errorf("Expected collector key K01, got %s", id.CollectorKey)
	}
}

func TestAddOrderPostsLedger(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()
	seedMaster(t)

	svc := NewReconcileService(testDB, NewMasterService(testDB))

	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	if err := svc.AddOrder("C100", date, decimal.NewFromInt(120000)); err != nil {
		t.Fatalf("AddOrder failed: %v", err)
	}

	var entry models.LedgerEntry
	if err := testDB.Where("client = ?", "C100").First(&entry).Error; err != nil {
		t.Fatalf("Ledger entry not found: %v", err)
	}
	if !entry.Debit.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("Expected debit 120000, got %s", entry.Debit)
	}
	if !entry.FoodMaterialSales.Equal(decimal.NewFromInt(120000)) {
		t.Errorf("Expected food_material_sales 120000, got %s", entry.FoodMaterialSales)
	}

	var order models.OrderDetail
	if err := testDB.Where("client_code = ?", "C100").First(&order).Error; err != nil {
		t.Fatalf("Order detail not found: %v", err)
	}
}

func TestAddOrderUnknownClient(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	svc := NewReconcileService(testDB, NewMasterService(testDB))

	err := svc.AddOrder("MISSING", time.Now(), decimal.NewFromInt(100))
	if err == nil {
		t.Fatal("Expected error for unknown client")
	}
}

func TestReceivablesSummaryGroupsAndTotals(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()
	seedMaster(t)

	svc := NewReconcileService(testDB, NewMasterService(testDB))
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	if err := svc.AddOrder("C100", date, decimal.NewFromInt(100000)); err != nil {
		t.Fatalf("AddOrder failed: %v", err)
	}
	if err := svc.AddOrder("C100", date.AddDate(0, 0, 1), decimal.NewFromInt(50000)); err != nil {
		t.Fatalf("AddOrder failed: %v", err)
	}

	reporting := NewReportingService(testDB)
	report, err := reporting.ReceivablesSummary("")
	if err != nil {
		t.Fatalf("ReceivablesSummary failed: %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("Expected 1 grouped row, got %d", len(report.Rows))
	}
	row := report.Rows[0]
	if !row.Receivables.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Expected receivables 150000, got %s", row.Receivables)
	}
	if !row.Deposit.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("Expected deposit 500000, got %s", row.Deposit)
	}
	if report.SumReceivables != "150,000.00" {
		t.Errorf("Expected grand total 150,000.00, got %s", report.SumReceivables)
	}
}

func TestDailyGridBuckets(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()
	seedMaster(t)

	svc := NewReconcileService(testDB, NewMasterService(testDB))
	if err := svc.AddOrder("C100", time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(70000)); err != nil {
		t.Fatalf("AddOrder failed: %v", err)
	}

	reporting := NewReportingService(testDB)
	report, err := reporting.DailyGrid(2026, 4, "")
	if err != nil {
		t.Fatalf("DailyGrid failed: %v", err)
	}
	if len(report.Rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(report.Rows))
	}
	row := report.Rows[0]
	if row.Days[2].Debit != "70,000.00" {
		t.Errorf("Expected day 3 debit 70,000.00, got %s", row.Days[2].Debit)
	}
	if row.Days[3].Debit != "-" {
		t.Errorf("Expected empty day rendered as dash, got %s", row.Days[3].Debit)
	}
	if row.TotalDebit != "70000.00" {
		t.Errorf("Expected total debit 70000.00, got %s", row.TotalDebit)
	}
}
