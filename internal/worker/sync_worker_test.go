package worker

import (
	"context"
	"path/filepath"
	"testing"

	"uriage/internal/amqp"
	"uriage/internal/core"
	"uriage/internal/sheets/memory"
	"uriage/internal/storage"
)

func newTestWorker(t *testing.T) (*SyncWorker, *storage.SQLiteRepository, *memory.Store) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "sales.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	sheet := memory.New()
	return NewSyncWorker(repo, sheet, sheet, 10), repo, sheet
}

func appendSale(t *testing.T, repo *storage.SQLiteRepository, event string) {
	t.Helper()
	r, err := core.NewSaleRecord(core.NewDate(2024, 5, 1), event, "Gift Set A", 2, 1000)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := repo.Append(context.Background(), r); err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestHandleSyncMessage(t *testing.T) {
	w, repo, sheet := newTestWorker(t)
	ctx := context.Background()

	appendSale(t, repo, "Spring Fair")

	if err := w.HandleSyncMessage(ctx, amqp.NewSaleSyncMessage(1, 1)); err != nil {
		t.Fatalf("handle: %v", err)
	}

	rows, _ := sheet.ReadAll(ctx)
	if len(rows) != 1 || rows[0].Event != "Spring Fair" {
		t.Fatalf("sale not mirrored: %v", rows)
	}

	pending, err := repo.GetPendingSyncSales(ctx, 10)
	if err != nil || len(pending) != 0 {
		t.Fatalf("sale still pending after sync: %v err=%v", pending, err)
	}
}

func TestHandleSyncMessageUnknownID(t *testing.T) {
	w, _, _ := newTestWorker(t)
	if err := w.HandleSyncMessage(context.Background(), amqp.NewSaleSyncMessage(99, 1)); err == nil {
		t.Fatalf("expected error for unknown sale id")
	}
}

func TestStartupSyncCheckDrainsPending(t *testing.T) {
	w, repo, sheet := newTestWorker(t)
	ctx := context.Background()

	appendSale(t, repo, "Spring Fair")
	appendSale(t, repo, "Coffee Stand")

	if err := w.StartupSyncCheck(ctx); err != nil {
		t.Fatalf("startup sync: %v", err)
	}

	if !sheet.HasHeader() {
		t.Fatalf("header not ensured before syncing")
	}
	rows, _ := sheet.ReadAll(ctx)
	if len(rows) != 2 {
		t.Fatalf("expected both sales mirrored, got %v", rows)
	}

	// Second run is a no-op; nothing is double-appended.
	if err := w.ProcessPendingSales(ctx); err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	rows, _ = sheet.ReadAll(ctx)
	if len(rows) != 2 {
		t.Fatalf("pending sweep re-synced rows: %v", rows)
	}
}
