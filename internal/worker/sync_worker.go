package worker

import (
	"context"
	"fmt"
	"log/slog"

	"uriage/internal/amqp"
	"uriage/internal/sheets"
	"uriage/internal/storage"
)

// SyncWorker mirrors locally stored sales to the Google sheet. Delivery
// is at-least-once: the sheet append is assumed atomic per record, and a
// row is only marked synced after the append succeeds.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	writer    sheets.SaleWriter
	header    sheets.HeaderEnsurer
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, writer sheets.SaleWriter, header sheets.HeaderEnsurer, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		writer:    writer,
		header:    header,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single sale sync message from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.SaleSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	return w.syncSale(ctx, msg.ID)
}

// StartupSyncCheck runs once at boot: repairs the sheet header and
// drains any sales left pending by a previous crash or missed message.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	if err := w.header.EnsureHeader(ctx); err != nil {
		return fmt.Errorf("ensure header: %w", err)
	}
	return w.ProcessPendingSales(ctx)
}

// ProcessPendingSales mirrors up to batchSize pending sales. A failed
// row is marked with a sync error and does not stop the batch.
func (w *SyncWorker) ProcessPendingSales(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncSales(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending sales: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending sales", "count", len(pending))

	for _, sale := range pending {
		if err := w.syncSale(ctx, sale.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to sync pending sale",
				"id", sale.ID, "error", err)
			if markErr := w.storage.MarkSyncError(ctx, sale.ID); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error",
					"id", sale.ID, "error", markErr)
			}
		}
	}

	return nil
}

func (w *SyncWorker) syncSale(ctx context.Context, id int64) error {
	rec, err := w.storage.GetSaleRecord(ctx, id)
	if err != nil {
		return fmt.Errorf("get sale from storage: %w", err)
	}

	ref, err := w.writer.Append(ctx, rec)
	if err != nil {
		return fmt.Errorf("append sale to sheet: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		return fmt.Errorf("mark sale synced: %w", err)
	}

	slog.InfoContext(ctx, "Sale synced to sheet",
		"id", id,
		"ref", ref,
		"event", rec.Event,
		"amount", rec.Amount)

	return nil
}
