package reconcile

import "context"

// Condition is a set of column equality filters, ANDed together.
type Condition map[string]any

// OrderBy describes one ORDER BY term.
type OrderBy struct {
	Column string
	Desc   bool
}

// Store is the minimal storage collaborator the engine needs. The
// feature/streams package provides the GORM-backed implementation.
type Store interface {
	// SelectRows loads the requested columns of every row matching the
	// condition, in the requested order. Rows come back as raw column
	// maps; the engine normalizes values itself so driver-level type
	// differences never surface as errors.
	SelectRows(ctx context.Context, table string, columns []string, where Condition, order []OrderBy) ([]map[string]any, error)

	// UpdateRow applies the field values to every row matching the
	// condition (in practice a single row targeted by primary key) and
	// returns the number of rows affected. Each call is auto-committed.
	UpdateRow(ctx context.Context, table string, where Condition, values map[string]any) (int64, error)
}
