package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"receivables-service/internal/converter"
	"receivables-service/pkg/common"
)

// ErrNoDocumentsGenerated is returned when a statement run produces no
// merged PDF for any client in the requested range.
var ErrNoDocumentsGenerated = errors.New("no statement documents generated")

// ErrNoStatementData is returned when the range query matches no order rows.
var ErrNoStatementData = errors.New("no order data for the requested range")

// SupplierInfo is the fixed supplier block printed on every statement.
type SupplierInfo struct {
	RegNo     string
	Name      string
	President string
	Address   string
}

// SupplierFromEnv reads the supplier block from the environment with the
// company defaults.
func SupplierFromEnv() SupplierInfo {
	return SupplierInfo{
		RegNo:     getEnv("SUPPLIER_REG_NO", "112-81-22058"),
		Name:      getEnv("SUPPLIER_NAME", "(주) 놀부"),
		President: getEnv("SUPPLIER_PRESIDENT", "김용위"),
		Address:   getEnv("SUPPLIER_ADDRESS", "서울특별시 강남구 영동대로 701, W타워 14~15층"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type StatementService struct {
	DB           *gorm.DB
	Conv         converter.Converter
	Merger       converter.Merger
	TemplatePath string
	OutputDir    string
	Supplier     SupplierInfo
}

func NewStatementService(db *gorm.DB, conv converter.Converter, merger converter.Merger, templatePath, outputDir string, supplier SupplierInfo) *StatementService {
	return &StatementService{
		DB:           db,
		Conv:         conv,
		Merger:       merger,
		TemplatePath: templatePath,
		OutputDir:    outputDir,
		Supplier:     supplier,
	}
}

// StatementRow is one order line joined with the client registry.
type StatementRow struct {
	OrderDate   time.Time       `gorm:"column:order_date"`
	RepCode     string          `gorm:"column:rep_code"`
	RepName     string          `gorm:"column:rep_name"`
	ClientCode  string          `gorm:"column:client_code"`
	ClientName  string          `gorm:"column:client_name"`
	ItemCode    string          `gorm:"column:item_code"`
	ItemName    string          `gorm:"column:item_name"`
	Cond        string          `gorm:"column:cond"`
	Unit        string          `gorm:"column:unit"`
	Qty         decimal.Decimal `gorm:"column:qty"`
	CalQty      decimal.Decimal `gorm:"column:cal_qty"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price"`
	OrderAmount decimal.Decimal `gorm:"column:order_amount"`
	Vat         decimal.Decimal `gorm:"column:vat"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount"`
	Tax         string          `gorm:"column:tax"`
	FullName    string          `gorm:"column:full_name"`
	RegNo       string          `gorm:"column:reg_no"`
	President   string          `gorm:"column:president"`
	Address1    string          `gorm:"column:address1"`
}

func (s *StatementService) fetchRows(from, to time.Time, clientCode string) ([]StatementRow, error) {
	query := `
		SELECT
			a.order_date, a.rep_code, a.rep_name, a.client_code, a.client_name,
			a.item_code, a.item_name, a.cond, a.unit, a.qty, a.cal_qty,
			a.unit_price, a.order_amount, a.vat, a.total_amount, a.tax,
			c.full_name, c.reg_no, c.president, c.address1
		FROM AROrderDetailsItem a
		INNER JOIN cm_chain c ON a.client_code = c.chain_no
		WHERE a.order_date BETWEEN ? AND ?`
	args := []interface{}{from, to}
	if clientCode != "" {
		query += " AND a.client_code = ?"
		args = append(args, clientCode)
	}
	query += " ORDER BY a.order_date, a.client_code"

	var rows []StatementRow
	if err := s.DB.Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Generate renders one statement workbook per (client, order date), converts
// each to PDF, and merges a client's PDFs date-ascending into a single
// period document. It returns the merged PDF paths, one per client that
// produced at least one page.
func (s *StatementService) Generate(from, to time.Time, clientCode string) ([]string, error) {
	rows, err := s.fetchRows(from, to, clientCode)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoStatementData
	}
	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return nil, err
	}

	// Group by client, preserving query order; per-client rows stay
	// date-ascending.
	var clientOrder []string
	byClient := make(map[string][]StatementRow)
	for _, r := range rows {
		if _, ok := byClient[r.ClientCode]; !ok {
			clientOrder = append(clientOrder, r.ClientCode)
		}
		byClient[r.ClientCode] = append(byClient[r.ClientCode], r)
	}

	var merged []string
	for _, code := range clientOrder {
		group := byClient[code]
		clientName := group[0].ClientName
		if clientName == "" {
			clientName = "unknown"
		}

		var dateOrder []string
		byDate := make(map[string][]StatementRow)
		for _, r := range group {
			key := r.OrderDate.Format("2006-01-02")
			if _, ok := byDate[key]; !ok {
				dateOrder = append(dateOrder, key)
			}
			byDate[key] = append(byDate[key], r)
		}

		var pdfs []string
		for _, date := range dateOrder {
			xlsxPath, err := s.renderWorkbook(clientName, date, byDate[date])
			if err != nil {
				logrus.WithFields(logrus.Fields{"client": code, "date": date}).
					Error("statement workbook failed: ", err)
				continue
			}
			pdfPath, err := s.Conv.Convert(xlsxPath, s.OutputDir)
			if err != nil {
				logrus.WithFields(logrus.Fields{"client": code, "date": date}).
					Error("statement conversion failed: ", err)
				continue
			}
			pdfs = append(pdfs, pdfPath)
		}
		if len(pdfs) == 0 {
			logrus.WithField("client", code).Warn("no statement pages generated")
			continue
		}

		finalName := fmt.Sprintf("statement_%s_%s%s.pdf",
			common.SanitizeFilename(clientName),
			from.Format("20060102"), to.Format("20060102"))
		finalPath := filepath.Join(s.OutputDir, finalName)
		if err := s.Merger.Merge(pdfs, finalPath); err != nil {
			logrus.WithField("client", code).Error("statement merge failed: ", err)
			continue
		}
		merged = append(merged, finalPath)
	}

	if len(merged) == 0 {
		return nil, ErrNoDocumentsGenerated
	}
	return merged, nil
}

// renderWorkbook fills the statement template for one client and day and
// saves it under the output directory.
func (s *StatementService) renderWorkbook(clientName, date string, rows []StatementRow) (string, error) {
	f, err := excelize.OpenFile(s.TemplatePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	w, err := newSheetWriter(f, sheet)
	if err != nil {
		return "", err
	}

	head := rows[0]
	w.set("G3", s.Supplier.RegNo)
	w.set("G4", s.Supplier.Name)
	w.set("G5", s.Supplier.President)
	w.set("G6", s.Supplier.Address)

	// Client tax id, one digit per box cell.
	regNo := padRegNo(head.RegNo)
	regNoCells := []string{"V3", "W3", "X3", "Z3", "AA3", "AC3", "AD3", "AE3", "AF3", "AG3"}
	for i, cell := range regNoCells {
		w.set(cell, string(regNo[i]))
	}

	w.set("V4", orDash(head.FullName))
	w.set("V5", orDash(head.President))
	w.set("V6", orDash(head.Address1))
	w.set("U2", orDash(head.RepName))
	w.set("A2", date)

	var totalAmount, totalVat decimal.Decimal
	row := 8
	for _, r := range rows {
		amount, vat := r.OrderAmount, r.Vat
		// Returns carry a negative total; print the line positive.
		if r.TotalAmount.IsNegative() {
			amount = amount.Neg()
			vat = vat.Neg()
		}
		w.setCoord(row, 1, r.ItemName)
		w.setCoord(row, 14, r.Unit)
		w.setCoord(row, 17, r.Qty.InexactFloat64())
		w.setCoord(row, 21, r.UnitPrice.InexactFloat64())
		w.setCoord(row, 26, amount.InexactFloat64())
		w.setCoord(row, 30, vat.InexactFloat64())
		totalAmount = totalAmount.Add(amount)
		totalVat = totalVat.Add(vat)
		row++
	}

	w.set("Z43", totalAmount.InexactFloat64())
	w.set("AD43", totalVat.InexactFloat64())
	w.set("M44", totalAmount.Add(totalVat).InexactFloat64())
	if style, err := f.NewStyle(&excelize.Style{NumFmt: 3}); err == nil {
		for _, cell := range []string{"Z43", "AD43", "M44"} {
			f.SetCellStyle(sheet, cell, cell, style)
		}
	}
	if w.err != nil {
		return "", w.err
	}

	name := fmt.Sprintf("statement_%s_%s.xlsx",
		common.SanitizeFilename(clientName), dateCompact(date))
	outPath := filepath.Join(s.OutputDir, name)
	if err := f.SaveAs(outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// sheetWriter redirects writes landing inside a merged range to the range
// anchor, which is the only cell the sheet actually stores.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	merges []mergeRange
	err    error
}

type mergeRange struct {
	startCol, startRow int
	endCol, endRow     int
}

func newSheetWriter(f *excelize.File, sheet string) (*sheetWriter, error) {
	cells, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	w := &sheetWriter{f: f, sheet: sheet}
	for _, mc := range cells {
		sc, sr, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return nil, err
		}
		ec, er, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		w.merges = append(w.merges, mergeRange{sc, sr, ec, er})
	}
	return w, nil
}

func (w *sheetWriter) set(cell string, value interface{}) {
	if w.err != nil {
		return
	}
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		w.err = err
		return
	}
	w.setCoord(row, col, value)
}

func (w *sheetWriter) setCoord(row, col int, value interface{}) {
	if w.err != nil {
		return
	}
	for _, m := range w.merges {
		if col >= m.startCol && col <= m.endCol && row >= m.startRow && row <= m.endRow {
			col, row = m.startCol, m.startRow
			break
		}
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetCellValue(w.sheet, cell, value)
}

// padRegNo strips hyphens and pads the tax id to exactly ten box characters.
func padRegNo(regNo string) string {
	stripped := ""
	for _, ch := range regNo {
		if ch != '-' {
			stripped += string(ch)
		}
	}
	for len(stripped) < 10 {
		stripped += "-"
	}
	return stripped[:10]
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func dateCompact(date string) string {
	out := ""
	for _, ch := range date {
		if ch != '-' {
			out += string(ch)
		}
	}
	return out
}
