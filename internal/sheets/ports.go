package sheets

import (
	"context"

	"uriage/internal/core"
)

// Header is the canonical column order of the backing table, at row 1.
var Header = []string{"date", "event", "product", "qty", "unit_price", "amount"}

// Ports for outbound adapters.
type (
	// HeaderEnsurer repairs row 1 of the backing table. A missing sheet,
	// an empty table or an unreadable first row all result in the
	// canonical header being (re)written.
	HeaderEnsurer interface {
		EnsureHeader(ctx context.Context) error
	}

	// SaleWriter appends one already-validated record to the end of the
	// table and returns an adapter-specific row reference.
	SaleWriter interface {
		Append(ctx context.Context, r core.SaleRecord) (rowRef string, err error)
	}

	// SaleReader returns every data row (header excluded) in append
	// order. An empty table yields an empty slice, not an error.
	SaleReader interface {
		ReadAll(ctx context.Context) ([]core.SaleRecord, error)
	}
)
