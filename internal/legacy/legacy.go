// Package legacy talks to the upstream ERP order store. The store predates
// this service and is reached over a plain database/sql connection; none of
// our gorm models map onto its schema.
package legacy

import (
	"database/sql"
	"errors"
	"fmt"
)

// Return codes of the pr_order_data_load procedure.
const (
	CodeSuccess          = "0"
	CodeNothingToProcess = "1"
	CodeAlreadyProcessed = "2"
)

// ErrNoProcResult is returned when the load procedure yields no result row.
var ErrNoProcResult = errors.New("order load procedure returned no result")

// LoadResult is the row returned by pr_order_data_load.
type LoadResult struct {
	Code     string
	Desc     string
	PosCount int
	WebCount int
	ArsCount int
}

// OrderRecord is one extracted order line, joined with the chain and item
// masters on the ERP side.
type OrderRecord struct {
	Date        string
	OutletName  string
	RechainNo   string
	RepName     string
	ItemNo      string
	ItemName    string
	Qty         float64
	Time        string
	Remark      string
	OutDate     string
	ItemPrice   float64
	ItemTax     float64
	TaxType     string
	TotalAmount float64
}

// Client is the ERP surface the daily load needs. Dates are in the store's
// native YYYYMMDD form.
type Client interface {
	CountStagedOrders(date string) (int, error)
	DeleteStagedOrders(date string) error
	CallOrderLoad(date, flag string) (*LoadResult, error)
	FetchOrders(date string) ([]OrderRecord, error)
}

// SQLClient implements Client over a database/sql handle.
type SQLClient struct {
	DB *sql.DB
}

func NewSQLClient(db *sql.DB) *SQLClient {
	return &SQLClient{DB: db}
}

func (c *SQLClient) CountStagedOrders(date string) (int, error) {
	var count int
	err := c.DB.QueryRow("SELECT COUNT(*) FROM t_po_order_master WHERE date = ?", date).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count staged orders: %w", err)
	}
	return count, nil
}

func (c *SQLClient) DeleteStagedOrders(date string) error {
	if _, err := c.DB.Exec("DELETE FROM t_po_order_master WHERE date = ?", date); err != nil {
		return fmt.Errorf("delete staged orders: %w", err)
	}
	return nil
}

func (c *SQLClient) CallOrderLoad(date, flag string) (*LoadResult, error) {
	rows, err := c.DB.Query("CALL pr_order_data_load(?, ?)", date, flag)
	if err != nil {
		return nil, fmt.Errorf("order load procedure: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoProcResult
	}
	var result LoadResult
	if err := rows.Scan(&result.Code, &result.Desc, &result.PosCount, &result.WebCount, &result.ArsCount); err != nil {
		return nil, fmt.Errorf("order load result: %w", err)
	}
	return &result, nil
}

const fetchOrdersQuery = `
	SELECT date, full_name, rechain_no, rep_full_name, item_no, item_full_name,
	       qty, time, remark, out_date, item_price, item_tax, tax,
	       (qty * (item_price + item_tax)) AS total
	FROM (
		SELECT a.date AS date,
		       b.full_name AS full_name,
		       b.rechain_no AS rechain_no,
		       c.full_name AS rep_full_name,
		       a.item_no AS item_no,
		       d.full_name AS item_full_name,
		       a.qty AS qty,
		       a.time AS time,
		       a.remark AS remark,
		       a.out_date AS out_date,
		       CASE WHEN b.contract_no = '2'
		            THEN CASE WHEN d.package_model_price = 0 THEN d.model_price ELSE d.package_model_price END
		            ELSE CASE WHEN d.package_chain_price = 0 THEN d.chain_price ELSE d.package_chain_price END
		       END AS item_price,
		       CASE WHEN b.contract_no = '2'
		            THEN CASE WHEN d.package_model_tax = 0 THEN d.model_tax ELSE d.package_model_tax END
		            ELSE CASE WHEN d.package_chain_tax = 0 THEN d.chain_tax ELSE d.package_chain_tax END
		       END AS item_tax,
		       CASE WHEN tax_type = '1' THEN 'Tax' ELSE 'No Tax' END AS tax
		FROM t_po_order_master AS a
		INNER JOIN cm_chain AS b ON a.chain_no = b.chain_no
		INNER JOIN cm_chain AS c ON b.rechain_no = c.chain_no
		INNER JOIN v_item_master AS d ON a.item_no = d.item_no
		WHERE a.date = ?
	) subquery`

func (c *SQLClient) FetchOrders(date string) ([]OrderRecord, error) {
	rows, err := c.DB.Query(fetchOrdersQuery, date)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	defer rows.Close()

	var records []OrderRecord
	for rows.Next() {
		var (
			r                            OrderRecord
			timeCol, remark, outDate     sql.NullString
			qty, price, taxAmt, totalAmt sql.NullFloat64
		)
		if err := rows.Scan(&r.Date, &r.OutletName, &r.RechainNo, &r.RepName,
			&r.ItemNo, &r.ItemName, &qty, &timeCol, &remark, &outDate,
			&price, &taxAmt, &r.TaxType, &totalAmt); err != nil {
			return nil, fmt.Errorf("scan order record: %w", err)
		}
		r.Qty = qty.Float64
		r.Time = timeCol.String
		r.Remark = remark.String
		r.OutDate = outDate.String
		r.ItemPrice = price.Float64
		r.ItemTax = taxAmt.Float64
		r.TotalAmount = totalAmt.Float64
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
