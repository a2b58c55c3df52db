package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// chunkedUpdate applies the scheduled updates to the field's column in
// fixed-size batches. Each row still gets its own UPDATE; batching only
// bounds the per-iteration footprint on very large catalogs and carries
// no transactional meaning. Returns the number of rows updated, which on
// failure is the count applied before the failing row.
func (e *Engine) chunkedUpdate(ctx context.Context, field Field, updates []Update) (int, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	if e.opts.DryRun {
		return len(updates), nil
	}

	column := field.Column()
	total := 0

	for start := 0; start < len(updates); start += e.opts.BatchSize {
		end := start + e.opts.BatchSize
		if end > len(updates) {
			end = len(updates)
		}

		for _, u := range updates[start:end] {
			affected, err := e.store.UpdateRow(ctx, e.opts.Table,
				Condition{"id": u.RowID},
				map[string]any{column: u.Value},
			)
			if err != nil {
				return total, fmt.Errorf("update %s for row %d: %w", column, u.RowID, err)
			}
			total += int(affected)
		}

		e.log.Debug("applied update batch",
			zap.String("field", string(field)),
			zap.Int("batch_start", start),
			zap.Int("batch_size", end-start),
		)
	}

	return total, nil
}
