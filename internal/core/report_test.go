package core

import "testing"

func mustRecord(t *testing.T, date string, event, product string, qty, price int64) SaleRecord {
	t.Helper()
	d, err := ParseDate(date)
	if err != nil {
		t.Fatalf("parse %q: %v", date, err)
	}
	r, err := NewSaleRecord(d, event, product, qty, price)
	if err != nil {
		t.Fatalf("record %s/%s: %v", event, product, err)
	}
	return r
}

func TestBuildReportEmpty(t *testing.T) {
	rep := BuildReport(nil)
	if rep.TotalAmount != 0 || rep.EventCount != 0 || rep.ProductCount != 0 {
		t.Fatalf("expected zero totals, got %+v", rep)
	}
	if len(rep.ByEvent) != 0 || len(rep.ByDate) != 0 || len(rep.Detail) != 0 {
		t.Fatalf("expected empty slices, got %+v", rep)
	}
}

func TestBuildReportScenario(t *testing.T) {
	records := []SaleRecord{
		mustRecord(t, "2024-05-01", "Spring Fair", "Gift Set A", 2, 1000),
		mustRecord(t, "2024-05-01", "Spring Fair", "Gift Set B", 1, 1500),
		mustRecord(t, "2024-05-02", "Coffee Stand", "Gift Set A", 3, 1000),
	}
	rep := BuildReport(records)

	if rep.TotalAmount != 6500 {
		t.Fatalf("total = %d, want 6500", rep.TotalAmount)
	}
	if rep.EventCount != 2 {
		t.Fatalf("event count = %d, want 2", rep.EventCount)
	}
	if rep.ProductCount != 2 {
		t.Fatalf("product count = %d, want 2", rep.ProductCount)
	}

	wantEvents := []EventTotal{{"Spring Fair", 3500}, {"Coffee Stand", 3000}}
	if len(rep.ByEvent) != len(wantEvents) {
		t.Fatalf("by event = %v", rep.ByEvent)
	}
	for i, want := range wantEvents {
		if rep.ByEvent[i] != want {
			t.Fatalf("by event[%d] = %+v, want %+v", i, rep.ByEvent[i], want)
		}
	}

	if len(rep.ByDate) != 2 {
		t.Fatalf("by date = %v", rep.ByDate)
	}
	if rep.ByDate[0].Date.String() != "2024-05-01" || rep.ByDate[0].Amount != 3500 {
		t.Fatalf("by date[0] = %+v", rep.ByDate[0])
	}
	if rep.ByDate[1].Date.String() != "2024-05-02" || rep.ByDate[1].Amount != 3000 {
		t.Fatalf("by date[1] = %+v", rep.ByDate[1])
	}
}

func TestBuildReportGroupSumsEqualTotal(t *testing.T) {
	records := []SaleRecord{
		mustRecord(t, "2024-01-03", "A", "p1", 1, 100),
		mustRecord(t, "2024-01-01", "B", "p2", 2, 250),
		mustRecord(t, "2024-01-03", "A", "p3", 5, 30),
		mustRecord(t, "2024-01-02", "C", "p1", 1, 999),
		mustRecord(t, "2024-01-01", "B", "p1", 4, 10),
	}
	rep := BuildReport(records)

	var byEventSum, byDateSum int64
	for _, e := range rep.ByEvent {
		byEventSum += e.Amount
	}
	for _, d := range rep.ByDate {
		byDateSum += d.Amount
	}
	if byEventSum != rep.TotalAmount || byDateSum != rep.TotalAmount {
		t.Fatalf("group sums %d/%d do not match total %d", byEventSum, byDateSum, rep.TotalAmount)
	}
}

func TestBuildReportEventTiesKeepFirstSeenOrder(t *testing.T) {
	// Both events total 200; "Second" appears first in the input.
	records := []SaleRecord{
		mustRecord(t, "2024-02-01", "Second", "p", 2, 100),
		mustRecord(t, "2024-02-02", "First", "p", 1, 200),
	}
	rep := BuildReport(records)
	if rep.ByEvent[0].Event != "Second" || rep.ByEvent[1].Event != "First" {
		t.Fatalf("tie order broken: %v", rep.ByEvent)
	}
}

func TestBuildReportDetailSortedStable(t *testing.T) {
	records := []SaleRecord{
		mustRecord(t, "2024-05-01", "E", "first of day one", 1, 1),
		mustRecord(t, "2024-05-02", "E", "day two", 1, 2),
		mustRecord(t, "2024-05-01", "E", "second of day one", 1, 3),
	}
	rep := BuildReport(records)

	if len(rep.Detail) != len(records) {
		t.Fatalf("detail is not a permutation: %d records", len(rep.Detail))
	}
	if rep.Detail[0].Product != "day two" {
		t.Fatalf("detail[0] = %+v, want newest date first", rep.Detail[0])
	}
	// Equal dates keep append order.
	if rep.Detail[1].Product != "first of day one" || rep.Detail[2].Product != "second of day one" {
		t.Fatalf("stability broken: %+v / %+v", rep.Detail[1], rep.Detail[2])
	}

	// Input must not be mutated.
	if records[0].Product != "first of day one" {
		t.Fatalf("input slice mutated: %+v", records[0])
	}
}

func TestBuildReportDistinctCountsExact(t *testing.T) {
	// Case and surrounding context are significant: "fair" != "Fair".
	records := []SaleRecord{
		mustRecord(t, "2024-03-01", "Fair", "x", 1, 1),
		mustRecord(t, "2024-03-01", "fair", "x", 1, 1),
		mustRecord(t, "2024-03-01", "Fair", "y", 1, 1),
	}
	rep := BuildReport(records)
	if rep.EventCount != 2 {
		t.Fatalf("event count = %d, want 2", rep.EventCount)
	}
	if rep.ProductCount != 2 {
		t.Fatalf("product count = %d, want 2", rep.ProductCount)
	}
}
