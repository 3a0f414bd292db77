package google

import "testing"

func TestParseSaleRow(t *testing.T) {
	tests := []struct {
		name string
		row  []any
		ok   bool
	}{
		{"string cells", []any{"2024-05-01", "Spring Fair", "Gift Set A", "2", "1000", "2000"}, true},
		{"numeric cells", []any{"2024-05-02", "Coffee Stand", "Gift Set A", 3, 1000, 3000}, true},
		{"float formatted", []any{"2024-05-02", "Coffee Stand", "Gift Set A", "3.0", "1000.0", "3000.0"}, true},
		{"too short", []any{"2024-05-01", "Spring Fair"}, false},
		{"bad date", []any{"May 1st", "Spring Fair", "Gift Set A", "2", "1000", "2000"}, false},
		{"blank event", []any{"2024-05-01", "", "Gift Set A", "2", "1000", "2000"}, false},
		{"blank product", []any{"2024-05-01", "Spring Fair", " ", "2", "1000", "2000"}, false},
		{"unparseable qty", []any{"2024-05-01", "Spring Fair", "Gift Set A", "two", "1000", "2000"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := parseSaleRow(tt.row)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v (record %+v)", ok, tt.ok, r)
			}
		})
	}
}

func TestParseSaleRowRecomputesMissingAmount(t *testing.T) {
	r, ok := parseSaleRow([]any{"2024-05-01", "Spring Fair", "Gift Set A", "2", "1000", ""})
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	if r.Amount != 2000 {
		t.Fatalf("amount = %d, want recomputed 2000", r.Amount)
	}
}

func TestSaleRowRoundTrip(t *testing.T) {
	row := []any{"2024-05-01", "Spring Fair", "Gift Set A", "2", "1000", "2000"}
	r, ok := parseSaleRow(row)
	if !ok {
		t.Fatalf("parse failed")
	}
	out := saleRow(r)
	got, ok := parseSaleRow(out)
	if !ok || got != r {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, r)
	}
}

func TestHeaderMatches(t *testing.T) {
	good := []any{"date", "event", "product", "qty", "unit_price", "amount"}
	if !headerMatches(good) {
		t.Fatalf("canonical header rejected")
	}
	if headerMatches([]any{"date"}) {
		t.Fatalf("short header accepted")
	}
	if headerMatches([]any{"date", "event", "product", "qty", "price", "amount"}) {
		t.Fatalf("wrong column name accepted")
	}
	// Extra trailing columns are tolerated; the first six define the schema.
	if !headerMatches(append(append([]any{}, good...), "notes")) {
		t.Fatalf("trailing extra column rejected")
	}
}
