package streams

import (
	"context"
	"fmt"
	"strings"

	"stream-manager/core/database"
	"stream-manager/core/reconcile"

	"gorm.io/gorm"
)

// requiredColumns are the stream table columns the passes read or write.
var requiredColumns = []string{
	"id", "user_id", "provider_id", "orig_name", "name",
	"type_id", "channel", "tvg_logo", "tvg_id", "updated_at",
}

// GormStore implements reconcile.Store on top of a gorm connection.
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a stream store backed by db.
func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// SelectRows loads the requested columns of the rows matching every
// equality condition, in the requested order.
func (s *GormStore) SelectRows(ctx context.Context, table string, columns []string, where reconcile.Condition, order []reconcile.OrderBy) ([]map[string]any, error) {
	q := s.db.WithContext(ctx).Table(table).Select(columns)
	if len(where) > 0 {
		q = q.Where(map[string]any(where))
	}
	for _, o := range order {
		direction := "ASC"
		if o.Desc {
			direction = "DESC"
		}
		q = q.Order(o.Column + " " + direction)
	}

	var rows []map[string]any
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select from %s: %w", table, err)
	}
	return rows, nil
}

// UpdateRow applies the column values to the rows matching every
// equality condition and returns the number of affected rows.
func (s *GormStore) UpdateRow(ctx context.Context, table string, where reconcile.Condition, values map[string]any) (int64, error) {
	res := s.db.WithContext(ctx).Table(table).Where(map[string]any(where)).Updates(values)
	if res.Error != nil {
		return 0, fmt.Errorf("update %s: %w", table, res.Error)
	}
	return res.RowsAffected, nil
}

// VerifySchema checks that the stream table carries every column the
// passes depend on, so a run fails fast instead of mid-pass.
func (s *GormStore) VerifySchema(ctx context.Context, table string) error {
	cols, err := database.GetTableColumns(s.db.WithContext(ctx), table)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", table, err)
	}

	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c.Field] = true
	}

	var missing []string
	for _, name := range requiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", table, strings.Join(missing, ", "))
	}
	return nil
}
