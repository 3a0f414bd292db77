package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"uriage/internal/core"
)

// handleIndex renders the entry form page. The dashboard section loads
// itself as an HTMX partial.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Today            string
		DefaultQty       int64
		DefaultUnitPrice int64
	}{
		Today:            time.Now().Format(core.DateLayout),
		DefaultQty:       1,
		DefaultUnitPrice: 1000,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCreateSale validates the submitted entry and appends it to the
// store. Validation failures return an inline message and never reach
// the store; the client keeps the form values.
func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">リクエストの形式が正しくありません</div>`))
		return
	}

	date := core.Date{Time: timeNow().UTC().Truncate(24 * time.Hour)}
	if v := strings.TrimSpace(r.Form.Get("date")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">日付の形式が正しくありません</div>`))
			return
		}
		date = d
	}

	event := sanitizeInput(r.Form.Get("event"))
	product := sanitizeInput(r.Form.Get("product"))

	qty, err := parseFormInt(r.Form.Get("qty"), 1)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">数量が正しくありません</div>`))
		return
	}
	unitPrice, err := parseFormInt(r.Form.Get("unit_price"), 1000)
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">単価が正しくありません</div>`))
		return
	}

	rec, err := core.NewSaleRecord(date, event, product, qty, unitPrice)
	if err != nil {
		// Recovered locally: inline message, no write, form preserved.
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">イベント名と商品名は必須です: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	if err := s.header.EnsureHeader(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Ensure header error", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">保存先に接続できません</div>`))
		return
	}

	ref, err := s.writer.Append(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Sale append error", "error", err, "event", rec.Event, "product", rec.Product, "amount", rec.Amount)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">保存に失敗しました</div>`))
		return
	}

	slog.InfoContext(r.Context(), "Sale registered", "ref", ref, "event", rec.Event, "product", rec.Product, "amount", rec.Amount)

	w.Header().Set("HX-Trigger", `{"sale:created": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">登録しました！ ` +
		template.HTMLEscapeString(rec.Event) + ` / ` +
		template.HTMLEscapeString(rec.Product) + ` — ` +
		template.HTMLEscapeString(formatYen(rec.Amount)) + `</div>`))
}

// handleDashboard renders the dashboard partial: metrics, both charts
// and the detail table. The full pipeline runs on every render; nothing
// is cached between requests.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	rep, ok := s.loadReport(w, r)
	if !ok {
		return
	}

	data := buildDashboardData(rep)
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="dashboard"><div class="placeholder">合計売上: ` + template.HTMLEscapeString(data.Total) + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err, "template", "dashboard.html")
		_, _ = w.Write([]byte(`<section id="dashboard"><div class="placeholder">ダッシュボードの表示に失敗しました</div></section>`))
	}
}

// loadReport runs header check, full read and aggregation for a render.
func (s *Server) loadReport(w http.ResponseWriter, r *http.Request) (core.Report, bool) {
	if err := s.header.EnsureHeader(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Ensure header error", "error", err)
		http.Error(w, "store unavailable", http.StatusBadGateway)
		return core.Report{}, false
	}
	records, err := s.reader.ReadAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Read all error", "error", err)
		http.Error(w, "store unavailable", http.StatusBadGateway)
		return core.Report{}, false
	}
	return core.BuildReport(records), true
}

type dashboardRow struct {
	Label  string
	Amount string
	Width  int
}

type detailRow struct {
	Date      string
	Event     string
	Product   string
	Qty       int64
	UnitPrice string
	Amount    string
}

type dashboardData struct {
	HasData      bool
	Total        string
	EventCount   int
	ProductCount int
	ByEvent      []dashboardRow
	ByDate       []dashboardRow
	Detail       []detailRow
}

func buildDashboardData(rep core.Report) dashboardData {
	data := dashboardData{
		HasData:      len(rep.Detail) > 0,
		Total:        formatYen(rep.TotalAmount),
		EventCount:   rep.EventCount,
		ProductCount: rep.ProductCount,
	}

	var maxEvent int64
	for _, e := range rep.ByEvent {
		if e.Amount > maxEvent {
			maxEvent = e.Amount
		}
	}
	for _, e := range rep.ByEvent {
		data.ByEvent = append(data.ByEvent, dashboardRow{
			Label:  e.Event,
			Amount: formatYen(e.Amount),
			Width:  barWidth(e.Amount, maxEvent),
		})
	}

	var maxDate int64
	for _, d := range rep.ByDate {
		if d.Amount > maxDate {
			maxDate = d.Amount
		}
	}
	for _, d := range rep.ByDate {
		data.ByDate = append(data.ByDate, dashboardRow{
			Label:  d.Date.String(),
			Amount: formatYen(d.Amount),
			Width:  barWidth(d.Amount, maxDate),
		})
	}

	for _, rec := range rep.Detail {
		data.Detail = append(data.Detail, detailRow{
			Date:      rec.Date.String(),
			Event:     rec.Event,
			Product:   rec.Product,
			Qty:       rec.Qty,
			UnitPrice: formatYen(rec.UnitPrice),
			Amount:    formatYen(rec.Amount),
		})
	}

	return data
}

// barWidth maps an amount to a rounded percent of the group maximum,
// keeping very small non-zero values visible.
func barWidth(amount, max int64) int {
	if max <= 0 || amount <= 0 {
		return 0
	}
	width := int((amount*100 + max/2) / max)
	if width > 0 && width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

// sanitizeInput removes control characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func parseFormInt(s string, def int64) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

// formatYen renders a whole-yen amount with thousands separators,
// e.g. 6500 -> "6,500 円".
func formatYen(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return fmt.Sprintf("%s 円", s)
}

// timeNow is swapped in tests.
var timeNow = time.Now
