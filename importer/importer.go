// Package importer loads the legacy spreadsheet export (CSV) into the
// store. The old sheet was duck-typed, so parsing is deliberately
// forgiving: numeric garbage coerces to zero with a logged warning, the
// returned flag accepts TRUE/FALSE in any case, and item ids are kept as
// opaque strings so "007" stays "007". Only missing required headers are
// hard errors.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"Gin_postgres_redis_equipment_tracker/models"
)

// Item CSV columns.
const (
	colItemID        = "item_id"
	colName          = "name"
	colDetail        = "detail"
	colOriginalStock = "original_stock"
)

// CheckoutLog CSV columns.
const (
	colLogID       = "log_id"
	colQuantity    = "quantity"
	colItemName    = "item_name"
	colDestination = "destination"
	colBorrower    = "borrower"
	colStartDate   = "start_date"
	colEndDate     = "end_date"
	colReturned    = "returned"
	colReturnedQty = "returned_quantity"
)

func LoadItems(r io.Reader) ([]models.Item, error) {
	rows, idx, err := readAll(r, colItemID, colName)
	if err != nil {
		return nil, err
	}

	var items []models.Item
	for line, row := range rows {
		name := strings.TrimSpace(field(row, idx, colName))
		if name == "" {
			// 旧表里有空行，直接跳过
			continue
		}
		items = append(items, models.Item{
			ItemID:        strings.TrimSpace(field(row, idx, colItemID)),
			Name:          name,
			Detail:        strings.TrimSpace(field(row, idx, colDetail)),
			OriginalStock: coerceInt(field(row, idx, colOriginalStock), colOriginalStock, line+2),
		})
	}
	return items, nil
}

func LoadCheckoutLog(r io.Reader) ([]models.CheckoutEntry, error) {
	rows, idx, err := readAll(r, colLogID, colItemID)
	if err != nil {
		return nil, err
	}

	var entries []models.CheckoutEntry
	for line, row := range rows {
		entries = append(entries, models.CheckoutEntry{
			LogID:            int64(coerceInt(field(row, idx, colLogID), colLogID, line+2)),
			ItemID:           strings.TrimSpace(field(row, idx, colItemID)),
			ItemName:         strings.TrimSpace(field(row, idx, colItemName)),
			Quantity:         coerceInt(field(row, idx, colQuantity), colQuantity, line+2),
			Destination:      strings.TrimSpace(field(row, idx, colDestination)),
			Borrower:         strings.TrimSpace(field(row, idx, colBorrower)),
			StartDate:        coerceDate(field(row, idx, colStartDate), colStartDate, line+2),
			EndDate:          coerceDate(field(row, idx, colEndDate), colEndDate, line+2),
			Returned:         strings.EqualFold(strings.TrimSpace(field(row, idx, colReturned)), "TRUE"),
			ReturnedQuantity: coerceInt(field(row, idx, colReturnedQty), colReturnedQty, line+2),
		})
	}
	return entries, nil
}

// readAll parses the CSV and maps header names to column positions.
// Required headers missing from the file reject the whole load.
func readAll(r io.Reader, required ...string) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}

	idx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return records[1:], idx, nil
}

func field(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// coerceInt turns a numeric cell into an int, falling back to zero on
// garbage rather than failing the rest of the load.
func coerceInt(s, col string, line int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("import: line %d: %s %q is not a number, using 0", line, col, s)
		return 0
	}
	return n
}

func coerceDate(s, col string, line int) models.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}
	}
	d, err := models.ParseDate(s)
	if err != nil {
		log.Printf("import: line %d: %s %q is not YYYY-MM-DD, leaving blank", line, col, s)
		return models.Date{}
	}
	return d
}
