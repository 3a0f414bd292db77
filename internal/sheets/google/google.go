package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"uriage/internal/core"
	ports "uriage/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	salesSheet    string
}

// Ensure interface conformance
var (
	_ ports.HeaderEnsurer = (*Client)(nil)
	_ ports.SaleWriter    = (*Client)(nil)
	_ ports.SaleReader    = (*Client)(nil)
)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials
// (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS).
// Optional: GOOGLE_SHEET_NAME (default "sales").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "sales"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return New(svc, spreadsheetID, sheetName), nil
}

// New wraps an already-built Sheets service.
func New(svc *gsheet.Service, spreadsheetID, sheetName string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID, salesSheet: sheetName}
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials with the spreadsheets edit scope.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.InfoContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return service, nil
}

// EnsureHeader makes sure row 1 of the sales sheet is the canonical
// header. A read failure on the check is treated the same as a mismatch
// and falls through to rewriting the header; the worksheet itself is
// created first when the spreadsheet does not have one.
func (c *Client) EnsureHeader(ctx context.Context) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	if err := c.ensureWorksheet(ctx); err != nil {
		return fmt.Errorf("ensure worksheet %s: %w", c.salesSheet, err)
	}

	rng := fmt.Sprintf("%s!A1:F1", c.salesSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err == nil && len(resp.Values) > 0 && headerMatches(resp.Values[0]) {
		return nil
	}
	if err != nil {
		slog.WarnContext(ctx, "Header check failed, rewriting header", "sheet", c.salesSheet, "error", err)
	}

	vr := &gsheet.ValueRange{Values: [][]any{headerRow()}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header to %s: %w", c.salesSheet, err)
	}

	slog.InfoContext(ctx, "Header row initialized", "sheet", c.salesSheet)
	return nil
}

// ensureWorksheet adds the sales worksheet when the spreadsheet lacks it.
func (c *Client) ensureWorksheet(ctx context.Context) error {
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == c.salesSheet {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{
					Title: c.salesSheet,
					GridProperties: &gsheet.GridProperties{
						RowCount:    1000,
						ColumnCount: 10,
					},
				},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add worksheet: %w", err)
	}

	slog.InfoContext(ctx, "Worksheet created", "sheet", c.salesSheet)
	return nil
}

// Append writes the record as a new row at the end of the table. Must be
// called with an already-validated record; Validate is re-run here so a
// bad record can never corrupt the sheet.
func (c *Client) Append(ctx context.Context, r core.SaleRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:F", c.salesSheet)
	vr := &gsheet.ValueRange{Values: [][]any{saleRow(r)}}

	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to %s: %w", c.salesSheet, err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	slog.InfoContext(ctx, "Sale appended to sheet",
		"sheet", c.salesSheet,
		"ref", ref,
		"event", r.Event,
		"product", r.Product,
		"amount", r.Amount)

	return ref, nil
}

// ReadAll returns every data row below the header, in sheet order.
func (c *Client) ReadAll(ctx context.Context) ([]core.SaleRecord, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A2:F", c.salesSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	out := make([]core.SaleRecord, 0, len(resp.Values))
	for i, row := range resp.Values {
		r, ok := parseSaleRow(row)
		if !ok {
			// Reading is best-effort: a hand-edited or blank row is
			// skipped rather than failing the whole dashboard.
			slog.WarnContext(ctx, "Skipping unparseable row", "sheet", c.salesSheet, "row", i+2)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func headerRow() []any {
	row := make([]any, len(ports.Header))
	for i, h := range ports.Header {
		row[i] = h
	}
	return row
}

func headerMatches(row []any) bool {
	if len(row) < len(ports.Header) {
		return false
	}
	for i, want := range ports.Header {
		if strings.TrimSpace(fmt.Sprint(row[i])) != want {
			return false
		}
	}
	return true
}
