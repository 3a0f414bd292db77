package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"uriage/internal/core"
	ports "uriage/internal/sheets"
)

// Store is an in-memory stand-in for the spreadsheet backend. It keeps
// the same header discipline as the real sheet so header self-healing
// can be exercised in tests.
type Store struct {
	mu        sync.Mutex
	hasHeader bool
	records   []core.SaleRecord
}

var (
	_ ports.HeaderEnsurer = (*Store)(nil)
	_ ports.SaleWriter    = (*Store)(nil)
	_ ports.SaleReader    = (*Store)(nil)
)

func New() *Store {
	return &Store{}
}

// NewFromFiles seeds the store from base/seed_sales.csv when present.
// The seed file uses the canonical column order with a header row.
func NewFromFiles(base string) *Store {
	s := New()
	s.records = readSeed(filepath.Join(base, "seed_sales.csv"))
	return s
}

func (s *Store) EnsureHeader(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasHeader = true
	return nil
}

// HasHeader reports whether EnsureHeader has run. Test helper.
func (s *Store) HasHeader() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasHeader
}

// Append stores the record and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, r core.SaleRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return fmt.Sprintf("mem:%d", len(s.records)), nil
}

// ReadAll returns a copy of the records in append order.
func (s *Store) ReadAll(_ context.Context) ([]core.SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.SaleRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func readSeed(path string) []core.SaleRecord {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil
	}

	var out []core.SaleRecord
	for i, row := range rows {
		if i == 0 || len(row) < 5 {
			continue
		}
		date, err := core.ParseDate(row[0])
		if err != nil {
			continue
		}
		qty, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			continue
		}
		unitPrice, err := strconv.ParseInt(row[4], 10, 64)
		if err != nil {
			continue
		}
		r, err := core.NewSaleRecord(date, row[1], row[2], qty, unitPrice)
		if err != nil {
			continue
		}
		out = append(out, r)
	}
	return out
}
