package core

import (
	"errors"
	"testing"
)

func TestNewSaleRecordComputesAmount(t *testing.T) {
	tests := []struct {
		name      string
		qty       int64
		unitPrice int64
		want      int64
	}{
		{"one at zero", 1, 0, 0},
		{"typical", 2, 1000, 2000},
		{"single expensive", 1, 98765, 98765},
		{"bulk", 1000, 3, 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewSaleRecord(NewDate(2024, 5, 1), "Spring Fair", "Gift Set A", tt.qty, tt.unitPrice)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Amount != tt.want {
				t.Fatalf("amount = %d, want %d", r.Amount, tt.want)
			}
			if r.Amount != r.Qty*r.UnitPrice {
				t.Fatalf("amount invariant broken: %d != %d*%d", r.Amount, r.Qty, r.UnitPrice)
			}
		})
	}
}

func TestNewSaleRecordRejects(t *testing.T) {
	date := NewDate(2024, 5, 1)
	tests := []struct {
		name    string
		date    Date
		event   string
		product string
		qty     int64
		price   int64
		wantErr error
	}{
		{"empty event", date, "", "Gift Set A", 1, 100, ErrEmptyEvent},
		{"whitespace event", date, "   \t", "Gift Set A", 1, 100, ErrEmptyEvent},
		{"empty product", date, "Spring Fair", "", 1, 100, ErrEmptyProduct},
		{"whitespace product", date, "Spring Fair", "  ", 1, 100, ErrEmptyProduct},
		{"zero qty", date, "Spring Fair", "Gift Set A", 0, 100, ErrInvalidQty},
		{"negative price", date, "Spring Fair", "Gift Set A", 1, -1, ErrInvalidUnitPrice},
		{"zero date", Date{}, "Spring Fair", "Gift Set A", 1, 100, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSaleRecord(tt.date, tt.event, tt.product, tt.qty, tt.price)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewSaleRecordTrims(t *testing.T) {
	r, err := NewSaleRecord(NewDate(2024, 5, 1), "  Spring Fair ", "\tGift Set A ", 2, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Event != "Spring Fair" || r.Product != "Gift Set A" {
		t.Fatalf("fields not trimmed: event=%q product=%q", r.Event, r.Product)
	}
}

func TestSaleRecordValidateAmountMismatch(t *testing.T) {
	r := SaleRecord{Date: NewDate(2024, 5, 1), Event: "E", Product: "P", Qty: 2, UnitPrice: 10, Amount: 21}
	if err := r.Validate(); !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("error = %v, want %v", err, ErrAmountMismatch)
	}
	r.Amount = 20
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-05-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2024-05-01" {
		t.Fatalf("round trip = %q", d.String())
	}
	if _, err := ParseDate("01/05/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
