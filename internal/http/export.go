package http

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"

	"uriage/internal/core"
	"uriage/internal/sheets"
)

// utf8BOM makes the export open correctly in Excel.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// handleExportCSV streams the full detail listing as CSV, newest date
// first, in the canonical column order.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sales_export.csv"`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(utf8BOM); err != nil {
		slog.ErrorContext(r.Context(), "CSV export write error", "error", err)
		return
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(sheets.Header); err != nil {
		slog.ErrorContext(r.Context(), "CSV export write error", "error", err)
		return
	}
	for _, rec := range rep.Detail {
		if err := cw.Write(csvRow(rec)); err != nil {
			slog.ErrorContext(r.Context(), "CSV export write error", "error", err)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(r.Context(), "CSV export flush error", "error", err)
	}
}

func csvRow(rec core.SaleRecord) []string {
	return []string{
		rec.Date.String(),
		rec.Event,
		rec.Product,
		strconv.FormatInt(rec.Qty, 10),
		strconv.FormatInt(rec.UnitPrice, 10),
		strconv.FormatInt(rec.Amount, 10),
	}
}
