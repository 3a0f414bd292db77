package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"uriage/internal/core"

	_ "modernc.org/sqlite"

	"database/sql"
)

// SQLiteRepository is the local append-only sales log. Rows carry a sync
// status so the worker can mirror them to the spreadsheet later.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements sheets.SaleWriter.
func (r *SQLiteRepository) Append(ctx context.Context, rec core.SaleRecord) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}

	sale, err := r.queries.CreateSale(ctx, CreateSaleParams{
		Date:      rec.Date.String(),
		Event:     rec.Event,
		Product:   rec.Product,
		Qty:       rec.Qty,
		UnitPrice: rec.UnitPrice,
		Amount:    rec.Amount,
	})
	if err != nil {
		return "", fmt.Errorf("create sale: %w", err)
	}

	slog.InfoContext(ctx, "Sale saved to SQLite",
		"id", sale.ID,
		"event", sale.Event,
		"product", sale.Product,
		"amount", sale.Amount)

	return strconv.FormatInt(sale.ID, 10), nil
}

// ReadAll implements sheets.SaleReader. Rows come back in insert order,
// which is the table's append order.
func (r *SQLiteRepository) ReadAll(ctx context.Context) ([]core.SaleRecord, error) {
	sales, err := r.queries.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	out := make([]core.SaleRecord, 0, len(sales))
	for _, s := range sales {
		rec, err := toRecord(s)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable sale row", "id", s.ID, "error", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// EnsureHeader implements sheets.HeaderEnsurer. The schema is enforced by
// migrations, so there is nothing to repair locally.
func (r *SQLiteRepository) EnsureHeader(_ context.Context) error {
	return nil
}

// GetSaleRecord loads one sale by ID as a domain record.
func (r *SQLiteRepository) GetSaleRecord(ctx context.Context, id int64) (core.SaleRecord, error) {
	s, err := r.queries.GetSale(ctx, id)
	if err != nil {
		return core.SaleRecord{}, fmt.Errorf("get sale by id: %w", err)
	}
	return toRecord(s)
}

// GetPendingSyncSales returns sales not yet mirrored to the sheet.
func (r *SQLiteRepository) GetPendingSyncSales(ctx context.Context, limit int) ([]Sale, error) {
	sales, err := r.queries.GetPendingSyncSales(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending sync sales: %w", err)
	}
	return sales, nil
}

// MarkSynced marks a sale as successfully mirrored.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if err := r.queries.MarkSaleSynced(ctx, id); err != nil {
		return fmt.Errorf("mark sale synced: %w", err)
	}
	slog.InfoContext(ctx, "Sale marked as synced", "id", id)
	return nil
}

// MarkSyncError marks a sale whose mirror attempt failed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if err := r.queries.MarkSaleSyncError(ctx, id); err != nil {
		return fmt.Errorf("mark sale sync error: %w", err)
	}
	slog.WarnContext(ctx, "Sale marked with sync error", "id", id)
	return nil
}

func toRecord(s Sale) (core.SaleRecord, error) {
	date, err := core.ParseDate(s.Date)
	if err != nil {
		return core.SaleRecord{}, fmt.Errorf("parse date %q: %w", s.Date, err)
	}
	return core.SaleRecord{
		Date:      date,
		Event:     s.Event,
		Product:   s.Product,
		Qty:       s.Qty,
		UnitPrice: s.UnitPrice,
		Amount:    s.Amount,
	}, nil
}
