package adapters

import (
	"context"

	"uriage/internal/core"
	"uriage/internal/services"
	"uriage/internal/storage"
)

// SQLiteAdapter bridges SQLiteRepository and SaleService onto the sheets
// ports so the HTTP handlers work unchanged on the SQLite + AMQP backend.
type SQLiteAdapter struct {
	storage *storage.SQLiteRepository
	service *services.SaleService
}

func NewSQLiteAdapter(storage *storage.SQLiteRepository, service *services.SaleService) *SQLiteAdapter {
	return &SQLiteAdapter{
		storage: storage,
		service: service,
	}
}

// EnsureHeader implements sheets.HeaderEnsurer.
func (a *SQLiteAdapter) EnsureHeader(ctx context.Context) error {
	return a.storage.EnsureHeader(ctx)
}

// Append implements sheets.SaleWriter. Writes go through the service so
// the sync message is published.
func (a *SQLiteAdapter) Append(ctx context.Context, r core.SaleRecord) (string, error) {
	return a.service.CreateSale(ctx, r)
}

// ReadAll implements sheets.SaleReader.
func (a *SQLiteAdapter) ReadAll(ctx context.Context) ([]core.SaleRecord, error) {
	return a.storage.ReadAll(ctx)
}
