package streams

import (
	"context"
	"fmt"
	"testing"

	"stream-manager/core/reconcile"
	"stream-manager/feature/streams/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubScope struct {
	targets []models.Target
}

func (s *stubScope) Resolve(context.Context, uint64, uint64) ([]models.Target, error) {
	return s.targets, nil
}

// flakyStore serves two users' rows from memory and fails every write
// to the second user's rows (ids >= 10).
type flakyStore struct{}

func (flakyStore) VerifySchema(context.Context, string) error { return nil }

func (flakyStore) SelectRows(_ context.Context, _ string, columns []string, where reconcile.Condition, _ []reconcile.OrderBy) ([]map[string]any, error) {
	base := uint64(0)
	if where["user_id"].(uint64) == 2 {
		base = 10
	}
	// Newest first: a customized copy, then a provider default.
	return []map[string]any{
		{"id": base + 1, "orig_name": "cnn", "name": "CNN HD", "type_id": 0, "channel": "", "tvg_logo": "", "tvg_id": ""},
		{"id": base + 2, "orig_name": "cnn", "name": "cnn", "type_id": 0, "channel": "", "tvg_logo": "", "tvg_id": ""},
	}, nil
}

func (flakyStore) UpdateRow(_ context.Context, _ string, where reconcile.Condition, _ map[string]any) (int64, error) {
	if where["id"].(uint64) >= 10 {
		return 0, fmt.Errorf("lock wait timeout")
	}
	return 1, nil
}

func TestFixup_FailedTargetDoesNotStopOthers(t *testing.T) {
	svc := &Service{
		// The failing target comes first; the second must still run.
		scope:  &stubScope{targets: []models.Target{{UserID: 2}, {UserID: 1}}},
		store:  flakyStore{},
		logger: zap.NewNop(),
	}

	report, err := svc.Fixup(context.Background(), FixupParams{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Names)
}
