package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the wire format for dates, both in the backing sheet
// and in the CSV export.
const DateLayout = "2006-01-02"

type (
	// Date is a calendar date at UTC midnight.
	Date struct {
		time.Time
	}

	// SaleRecord is one persisted sales transaction. Amount is always
	// derived from Qty and UnitPrice, never user supplied.
	SaleRecord struct {
		Date      Date
		Event     string
		Product   string
		Qty       int64
		UnitPrice int64
		Amount    int64
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyEvent       = errors.New("empty event name")
	ErrEmptyProduct     = errors.New("empty product name")
	ErrInvalidQty       = errors.New("quantity must be at least 1")
	ErrInvalidUnitPrice = errors.New("unit price must not be negative")
	ErrAmountMismatch   = errors.New("amount does not equal qty * unit_price")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 date string such as "2024-05-01".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// String renders the date in the wire format.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewSaleRecord validates a candidate entry and returns the fully-formed
// record ready for persistence, with Amount computed. Event and product
// are checked after trimming leading/trailing whitespace.
func NewSaleRecord(date Date, event, product string, qty, unitPrice int64) (SaleRecord, error) {
	if err := date.Validate(); err != nil {
		return SaleRecord{}, err
	}
	event = strings.TrimSpace(event)
	product = strings.TrimSpace(product)
	if event == "" {
		return SaleRecord{}, ErrEmptyEvent
	}
	if product == "" {
		return SaleRecord{}, ErrEmptyProduct
	}
	if qty < 1 {
		return SaleRecord{}, ErrInvalidQty
	}
	if unitPrice < 0 {
		return SaleRecord{}, ErrInvalidUnitPrice
	}
	return SaleRecord{
		Date:      date,
		Event:     event,
		Product:   product,
		Qty:       qty,
		UnitPrice: unitPrice,
		Amount:    qty * unitPrice,
	}, nil
}

// Validate re-checks every record invariant. Adapters call this before
// writing a row so a malformed record never reaches the store.
func (r SaleRecord) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.Event) == "" {
		return ErrEmptyEvent
	}
	if strings.TrimSpace(r.Product) == "" {
		return ErrEmptyProduct
	}
	if r.Qty < 1 {
		return ErrInvalidQty
	}
	if r.UnitPrice < 0 {
		return ErrInvalidUnitPrice
	}
	if r.Amount != r.Qty*r.UnitPrice {
		return ErrAmountMismatch
	}
	return nil
}
