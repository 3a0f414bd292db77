package google

import (
	"fmt"
	"strconv"
	"strings"

	"uriage/internal/core"
)

// saleRow serializes a record in the canonical column order. Date is
// ISO-8601, numeric fields are plain integers.
func saleRow(r core.SaleRecord) []any {
	return []any{r.Date.String(), r.Event, r.Product, r.Qty, r.UnitPrice, r.Amount}
}

// parseSaleRow converts one values row (as returned by the Sheets API)
// into a record. Numeric cells may come back as strings or floats
// depending on cell formatting, so both are accepted.
func parseSaleRow(row []any) (core.SaleRecord, bool) {
	cols := toStrings(row)
	if len(cols) < 6 {
		return core.SaleRecord{}, false
	}

	date, err := core.ParseDate(cols[0])
	if err != nil {
		return core.SaleRecord{}, false
	}
	event := strings.TrimSpace(cols[1])
	product := strings.TrimSpace(cols[2])
	if event == "" || product == "" {
		return core.SaleRecord{}, false
	}

	qty, ok := parseInt(cols[3])
	if !ok {
		return core.SaleRecord{}, false
	}
	unitPrice, ok := parseInt(cols[4])
	if !ok {
		return core.SaleRecord{}, false
	}
	amount, ok := parseInt(cols[5])
	if !ok {
		// Amount is derived; recompute when the cell is unreadable.
		amount = qty * unitPrice
	}

	return core.SaleRecord{
		Date:      date,
		Event:     event,
		Product:   product,
		Qty:       qty,
		UnitPrice: unitPrice,
		Amount:    amount,
	}, true
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// parseInt accepts plain integers and number-formatted cells such as
// "1000" or "1000.0".
func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int64(f), true
	}
	return 0, false
}
