package storage

import (
	"context"
	"database/sql"
	"time"
)

// Sale mirrors one row of the sales table.
type Sale struct {
	ID         int64
	Date       string
	Event      string
	Product    string
	Qty        int64
	UnitPrice  int64
	Amount     int64
	SyncStatus string
	Version    int64
	CreatedAt  time.Time
}

// Sync status values for the sync_status column.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

type CreateSaleParams struct {
	Date      string
	Event     string
	Product   string
	Qty       int64
	UnitPrice int64
	Amount    int64
}

const createSale = `
INSERT INTO sales (date, event, product, qty, unit_price, amount)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, date, event, product, qty, unit_price, amount, sync_status, version, created_at
`

func (q *Queries) CreateSale(ctx context.Context, arg CreateSaleParams) (Sale, error) {
	row := q.db.QueryRowContext(ctx, createSale,
		arg.Date, arg.Event, arg.Product, arg.Qty, arg.UnitPrice, arg.Amount)
	return scanSale(row)
}

const getSale = `
SELECT id, date, event, product, qty, unit_price, amount, sync_status, version, created_at
FROM sales WHERE id = ?
`

func (q *Queries) GetSale(ctx context.Context, id int64) (Sale, error) {
	return scanSale(q.db.QueryRowContext(ctx, getSale, id))
}

const listSales = `
SELECT id, date, event, product, qty, unit_price, amount, sync_status, version, created_at
FROM sales ORDER BY id
`

func (q *Queries) ListSales(ctx context.Context) ([]Sale, error) {
	rows, err := q.db.QueryContext(ctx, listSales)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSales(rows)
}

const getPendingSyncSales = `
SELECT id, date, event, product, qty, unit_price, amount, sync_status, version, created_at
FROM sales WHERE sync_status = 'pending' ORDER BY id LIMIT ?
`

func (q *Queries) GetPendingSyncSales(ctx context.Context, limit int64) ([]Sale, error) {
	rows, err := q.db.QueryContext(ctx, getPendingSyncSales, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSales(rows)
}

const markSaleSynced = `
UPDATE sales SET sync_status = 'synced', version = version + 1 WHERE id = ?
`

func (q *Queries) MarkSaleSynced(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markSaleSynced, id)
	return err
}

const markSaleSyncError = `
UPDATE sales SET sync_status = 'error', version = version + 1 WHERE id = ?
`

func (q *Queries) MarkSaleSyncError(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markSaleSyncError, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSale(s scanner) (Sale, error) {
	var out Sale
	err := s.Scan(&out.ID, &out.Date, &out.Event, &out.Product,
		&out.Qty, &out.UnitPrice, &out.Amount,
		&out.SyncStatus, &out.Version, &out.CreatedAt)
	return out, err
}

func scanSales(rows *sql.Rows) ([]Sale, error) {
	var out []Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
