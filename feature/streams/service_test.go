package streams_test

import (
	"context"
	"testing"
	"time"

	"stream-manager/core/reconcile"
	"stream-manager/feature/streams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFixup_ConvergesAllUsers(t *testing.T) {
	db := setupStreamDB(t)

	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	// User 1: one customized copy, one provider default.
	seedStream(t, db, 1, 1, 7, "cnn", "CNN HD", 0, "12", &day2)
	seedStream(t, db, 2, 1, 7, "cnn", "cnn", 0, "", &day1)
	// User 2 is independent and already consistent.
	seedStream(t, db, 3, 2, 7, "espn", "espn", 0, "", nil)

	svc := streams.NewService(db, zap.NewNop(), reconcile.Options{})
	report, err := svc.Fixup(context.Background(), streams.FixupParams{})
	require.NoError(t, err)

	assert.Len(t, report.Targets, 2)
	assert.Zero(t, report.Failed)
	assert.Equal(t, 1, report.Names)
	assert.Equal(t, 1, report.Channels)
	assert.Equal(t, 2, report.Updated)
	assert.NotEmpty(t, report.RunID)
	assert.NotEmpty(t, report.ExecutionTime)

	var name, channel string
	require.NoError(t, db.Table("streams").Where("id = ?", 2).Pluck("name", &name).Error)
	require.NoError(t, db.Table("streams").Where("id = ?", 2).Pluck("channel", &channel).Error)
	assert.Equal(t, "CNN HD", name)
	assert.Equal(t, "12", channel)
}

func TestFixup_SingleUserScope(t *testing.T) {
	db := setupStreamDB(t)

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	seedStream(t, db, 1, 1, 7, "cnn", "CNN HD", 0, "", &day)
	seedStream(t, db, 2, 1, 7, "cnn", "cnn", 0, "", nil)
	seedStream(t, db, 3, 2, 7, "cnn", "cnn", 0, "", nil)

	svc := streams.NewService(db, zap.NewNop(), reconcile.Options{})
	report, err := svc.Fixup(context.Background(), streams.FixupParams{UserID: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Updated)

	// The other user's row is untouched.
	var name string
	require.NoError(t, db.Table("streams").Where("id = ?", 3).Pluck("name", &name).Error)
	assert.Equal(t, "cnn", name)
}

func TestFixup_IgnoreAndDryRun(t *testing.T) {
	db := setupStreamDB(t)

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	// Same display name group; only the channel differs.
	seedStream(t, db, 1, 1, 7, "cnn", "CNN HD", 0, "12", &day)
	seedStream(t, db, 2, 1, 7, "cnn", "cnn hd", 0, "", nil)

	svc := streams.NewService(db, zap.NewNop(), reconcile.Options{})
	report, err := svc.Fixup(context.Background(), streams.FixupParams{
		UserID: 1,
		Ignore: reconcile.ParseFields("name"),
		DryRun: true,
	})
	require.NoError(t, err)

	assert.Zero(t, report.Names)
	assert.Equal(t, 1, report.Channels)

	// Dry run leaves the rows unchanged.
	var channel string
	require.NoError(t, db.Table("streams").Where("id = ?", 2).Pluck("channel", &channel).Error)
	assert.Empty(t, channel)
}

func TestFixup_SchemaVerifiedFirst(t *testing.T) {
	db := setupStreamDB(t)

	svc := streams.NewService(db, zap.NewNop(), reconcile.Options{Table: "missing_streams"})
	_, err := svc.Fixup(context.Background(), streams.FixupParams{UserID: 1})
	assert.Error(t, err)
}

func TestFixupSerialized(t *testing.T) {
	db := setupStreamDB(t)

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	seedStream(t, db, 1, 1, 7, "cnn", "CNN HD", 0, "", &day)
	seedStream(t, db, 2, 1, 7, "cnn", "cnn", 0, "", nil)

	svc := streams.NewService(db, zap.NewNop(), reconcile.Options{})
	report, err := svc.FixupSerialized(context.Background(), streams.FixupParams{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Updated)
}
