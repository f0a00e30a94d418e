package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInvalidPeriod is returned for a (year, month) outside the calendar.
var ErrInvalidPeriod = errors.New("invalid report period")

type ReportingService struct {
	DB *gorm.DB
}

func NewReportingService(db *gorm.DB) *ReportingService {
	return &ReportingService{DB: db}
}

// ReceivablesRow is one (client, outlet) group of the receivables summary.
type ReceivablesRow struct {
	Client            string          `json:"client"`
	OutletName        string          `json:"outlet_name"`
	TotalDebit        decimal.Decimal `json:"total_debit"`
	TotalCredit       decimal.Decimal `json:"total_credit"`
	FoodMaterialSales decimal.Decimal `gorm:"column:total_food_material_sales" json:"total_food_material_sales"`
	RoyaltySales      decimal.Decimal `gorm:"column:total_royalty_sales" json:"total_royalty_sales"`
	PosUsageFee       decimal.Decimal `gorm:"column:total_pos_usage_fee" json:"total_pos_usage_fee"`
	CashDeposit       decimal.Decimal `gorm:"column:total_cash_deposit" json:"total_cash_deposit"`
	CardDeposit       decimal.Decimal `gorm:"column:total_card_deposit" json:"total_card_deposit"`
	Receivables       decimal.Decimal `json:"receivables"`
	Deposit           decimal.Decimal `json:"deposit"`
}

// ReceivablesReport is the grouped summary plus a grand-total row summed in
// Go from the group sums, not by a second query. Totals are rendered with
// the dash placeholder when not positive; raw zeros still participate in the
// accumulation.
type ReceivablesReport struct {
	Rows            []ReceivablesRow `json:"rows"`
	SumDebit        string           `json:"sum_total_debit"`
	SumCredit       string           `json:"sum_total_credit"`
	SumReceivables  string           `json:"sum_receivables"`
	SumCashDeposit  string           `json:"sum_cash_deposit"`
	SumCardDeposit  string           `json:"sum_card_deposit"`
	SumDeposit      string           `json:"sum_deposit"`
	SumFoodMaterial string           `json:"sum_food_material_sales"`
	SumRoyalty      string           `json:"sum_royalty_sales"`
	SumPosUsageFee  string           `json:"sum_pos_usage_fee"`
}

// ReceivablesSummary groups the ledger by trimmed, uppercased client and
// outlet. outletFilter is an optional case-insensitive substring match on
// the outlet name.
func (s *ReportingService) ReceivablesSummary(outletFilter string) (*ReceivablesReport, error) {
	query := `
		SELECT
			TRIM(UPPER(t.client)) AS client,
			TRIM(UPPER(t.outlet_name)) AS outlet_name,
			SUM(t.debit) AS total_debit,
			SUM(t.credit) AS total_credit,
			SUM(t.food_material_sales) AS total_food_material_sales,
			SUM(t.royalty_sales) AS total_royalty_sales,
			SUM(t.pos_usage_fee) AS total_pos_usage_fee,
			SUM(t.cash_deposit) AS total_cash_deposit,
			SUM(t.card_deposit) AS total_card_deposit,
			SUM(t.debit) - SUM(t.credit) AS receivables,
			IFNULL(MAX(m.deposit), 0) AS deposit
		FROM ARTransactionsLedger AS t
		LEFT JOIN ARClientMaster AS m
			ON TRIM(UPPER(t.client)) = TRIM(UPPER(m.client_code))`

	var args []interface{}
	if outlet := strings.TrimSpace(outletFilter); outlet != "" {
		query += " WHERE TRIM(UPPER(t.outlet_name)) LIKE ?"
		args = append(args, "%"+strings.ToUpper(outlet)+"%")
	}
	query += `
		GROUP BY TRIM(UPPER(t.client)), TRIM(UPPER(t.outlet_name))
		ORDER BY client, outlet_name`

	var rows []ReceivablesRow
	if err := s.DB.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	var debit, credit, recv, food, royalty, pos, cash, card, deposit decimal.Decimal
	for _, r := range rows {
		debit = debit.Add(r.TotalDebit)
		credit = credit.Add(r.TotalCredit)
		recv = recv.Add(r.Receivables)
		food = food.Add(r.FoodMaterialSales)
		royalty = royalty.Add(r.RoyaltySales)
		pos = pos.Add(r.PosUsageFee)
		cash = cash.Add(r.CashDeposit)
		card = card.Add(r.CardDeposit)
		deposit = deposit.Add(r.Deposit)
	}

	return &ReceivablesReport{
		Rows:            rows,
		SumDebit:        formatOrDash(debit),
		SumCredit:       formatOrDash(credit),
		SumReceivables:  formatOrDash(recv),
		SumCashDeposit:  formatOrDash(cash),
		SumCardDeposit:  formatOrDash(card),
		SumDeposit:      formatOrDash(deposit),
		SumFoodMaterial: formatOrDash(food),
		SumRoyalty:      formatOrDash(royalty),
		SumPosUsageFee:  formatOrDash(pos),
	}, nil
}

// DayCell is one day-of-month column of the daily grid, already rendered:
// positive values as thousands-separated two-decimal strings, everything
// else as the dash placeholder.
type DayCell struct {
	Debit  string `json:"debit"`
	Credit string `json:"credit"`
}

// DailyGridRow is one (client, outlet) row of the calendar grid. Days always
// holds 31 slots; days not present in the month sum to zero and render as
// the dash.
type DailyGridRow struct {
	Client           string    `json:"client"`
	OutletName       string    `json:"outlet_name"`
	CollectorKey     string    `json:"collector_key"`
	Manager          string    `json:"manager"`
	Days             []DayCell `json:"days"`
	TotalDebit       string    `json:"total_debit"`
	TotalCredit      string    `json:"total_credit"`
	TotalReceivables string    `json:"total_receivables"`
}

type DailyGridReport struct {
	Year           int            `json:"year"`
	Month          int            `json:"month"`
	Rows           []DailyGridRow `json:"rows"`
	SumDebit       string         `json:"sum_total_debit"`
	SumCredit      string         `json:"sum_total_credit"`
	SumReceivables string         `json:"sum_total_receivables"`
}

const maxDayOfMonth = 31

// DailyGrid builds the day-by-day debit/credit grid for one month. The 31
// per-day sum expressions are generated from the constant day range; all
// filter values stay parameterized.
func (s *ReportingService) DailyGrid(year, month int, outletFilter string) (*DailyGridReport, error) {
	if year < 1 || month < 1 || month > 12 {
		return nil, ErrInvalidPeriod
	}
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	nextMonth := firstDay.AddDate(0, 1, 0)

	selects := []string{"A.client", "A.outlet_name", "C.collector_key", "C.manager"}
	for day := 1; day <= maxDayOfMonth; day++ {
		selects = append(selects,
			fmt.Sprintf("SUM(CASE WHEN DAY(A.transaction_date) = %d THEN A.debit ELSE 0 END) AS day_%d_debit", day, day),
			fmt.Sprintf("SUM(CASE WHEN DAY(A.transaction_date) = %d THEN A.credit ELSE 0 END) AS day_%d_credit", day, day),
		)
	}
	selects = append(selects,
		"SUM(A.debit) AS total_debit",
		"SUM(A.credit) AS total_credit",
		"(SUM(A.debit) - SUM(A.credit)) AS total_receivables",
	)

	query := "SELECT " + strings.Join(selects, ", ") + `
		FROM ARTransactionsLedger A
		JOIN ARClientMaster C ON A.client = C.client_code`

	conditions := []string{"A.transaction_date >= ? AND A.transaction_date < ?"}
	args := []interface{}{firstDay, nextMonth}
	if outlet := strings.TrimSpace(outletFilter); outlet != "" {
		conditions = append(conditions, "A.outlet_name LIKE ?")
		args = append(args, "%"+outlet+"%")
	}
	query += " WHERE " + strings.Join(conditions, " AND ")
	query += `
		GROUP BY A.client, A.outlet_name, C.collector_key, C.manager
		ORDER BY total_receivables DESC`

	rows, err := s.DB.Raw(query, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := &DailyGridReport{Year: year, Month: month}
	var sumDebit, sumCredit, sumReceivables decimal.Decimal

	// 4 label columns + 31 debit/credit pairs + 3 totals.
	colCount := 4 + maxDayOfMonth*2 + 3
	for rows.Next() {
		vals := make([]sql.NullString, colCount)
		ptrs := make([]interface{}, colCount)
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := DailyGridRow{
			Client:       vals[0].String,
			OutletName:   vals[1].String,
			CollectorKey: vals[2].String,
			Manager:      vals[3].String,
			Days:         make([]DayCell, maxDayOfMonth),
		}
		for day := 0; day < maxDayOfMonth; day++ {
			debit := cleanAmount(vals[4+day*2])
			credit := cleanAmount(vals[4+day*2+1])
			row.Days[day] = DayCell{Debit: formatOrDash(debit), Credit: formatOrDash(credit)}
		}
		totalDebit := cleanAmount(vals[colCount-3])
		totalCredit := cleanAmount(vals[colCount-2])
		totalReceivables := cleanAmount(vals[colCount-1])
		row.TotalDebit = fixedOrZero(totalDebit)
		row.TotalCredit = fixedOrZero(totalCredit)
		row.TotalReceivables = fixedOrZero(totalReceivables)

		sumDebit = sumDebit.Add(totalDebit)
		sumCredit = sumCredit.Add(totalCredit)
		sumReceivables = sumReceivables.Add(totalReceivables)
		report.Rows = append(report.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	report.SumDebit = formatOrDash(sumDebit)
	report.SumCredit = formatOrDash(sumCredit)
	report.SumReceivables = formatOrDash(sumReceivables)
	return report, nil
}

func cleanAmount(v sql.NullString) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v.String))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// formatComma renders a decimal as a thousands-separated two-decimal string.
func formatComma(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// formatOrDash renders positive amounts with separators, anything else as
// the literal placeholder dash. This mirrors how the summary views display
// empty cells and must not be applied to values feeding further arithmetic.
func formatOrDash(d decimal.Decimal) string {
	if d.IsPositive() {
		return formatComma(d)
	}
	return "-"
}

// fixedOrZero renders row totals as plain fixed-point, falling back to
// "0.00" for non-positive totals.
func fixedOrZero(d decimal.Decimal) string {
	if d.IsPositive() {
		return d.StringFixed(2)
	}
	return "0.00"
}
