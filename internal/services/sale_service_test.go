package services

import (
	"context"
	"path/filepath"
	"testing"

	"uriage/internal/core"
	"uriage/internal/storage"
)

func TestCreateSaleWithoutAMQP(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "sales.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	svc := NewSaleService(repo, nil)
	t.Cleanup(func() { svc.Close() })

	r, err := core.NewSaleRecord(core.NewDate(2024, 5, 1), "Spring Fair", "Gift Set A", 2, 1000)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	// A missing AMQP client must not fail the write.
	ref, err := svc.CreateSale(context.Background(), r)
	if err != nil {
		t.Fatalf("create sale: %v", err)
	}
	if ref != "1" {
		t.Fatalf("ref = %q, want first row id", ref)
	}

	got, err := repo.ReadAll(context.Background())
	if err != nil || len(got) != 1 || got[0] != r {
		t.Fatalf("sale not persisted: records=%v err=%v", got, err)
	}
}

func TestCreateSaleRejectsInvalid(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "sales.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	svc := NewSaleService(repo, nil)
	t.Cleanup(func() { svc.Close() })

	if _, err := svc.CreateSale(context.Background(), core.SaleRecord{}); err == nil {
		t.Fatalf("expected invalid sale to be rejected")
	}
}
