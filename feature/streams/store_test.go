package streams_test

import (
	"context"
	"testing"
	"time"

	"stream-manager/core/database"
	"stream-manager/core/reconcile"
	"stream-manager/feature/streams"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupStreamDB creates an in-memory SQLite DB with the streams table.
func setupStreamDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   ":memory:",
	})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE streams (
		id INTEGER PRIMARY KEY,
		user_id INTEGER,
		provider_id INTEGER,
		orig_name VARCHAR(255),
		name VARCHAR(255),
		type_id INTEGER,
		channel VARCHAR(16),
		tvg_logo VARCHAR(500),
		tvg_id VARCHAR(255),
		updated_at DATETIME
	)`).Error
	require.NoError(t, err)

	return db
}

func seedStream(t *testing.T, db *gorm.DB, id, userID, providerID uint64, origName, name string, typeID int, channel string, updatedAt *time.Time) {
	t.Helper()
	err := db.Exec(
		"INSERT INTO streams (id, user_id, provider_id, orig_name, name, type_id, channel, tvg_logo, tvg_id, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, '', '', ?)",
		id, userID, providerID, origName, name, typeID, channel, updatedAt,
	).Error
	require.NoError(t, err)
}

func TestSelectRows_OrderAndScope(t *testing.T) {
	db := setupStreamDB(t)
	store := streams.NewStore(db)

	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	seedStream(t, db, 1, 1, 7, "cnn", "cnn", 0, "", &day1)
	seedStream(t, db, 2, 1, 7, "cnn", "CNN HD", 0, "", &day2)
	seedStream(t, db, 3, 1, 7, "cnn", "", 0, "", nil)
	seedStream(t, db, 4, 2, 7, "cnn", "other user", 0, "", &day2)

	rows, err := store.SelectRows(context.Background(), "streams",
		[]string{"id", "name"},
		reconcile.Condition{"user_id": uint64(1)},
		[]reconcile.OrderBy{
			{Column: "updated_at", Desc: true},
			{Column: "id", Desc: true},
		})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Newest first, the NULL updated_at row last.
	assert.EqualValues(t, 2, rows[0]["id"])
	assert.EqualValues(t, 1, rows[1]["id"])
	assert.EqualValues(t, 3, rows[2]["id"])
	assert.Equal(t, "CNN HD", rows[0]["name"])
}

func TestSelectRows_ProviderNarrowing(t *testing.T) {
	db := setupStreamDB(t)
	store := streams.NewStore(db)

	seedStream(t, db, 1, 1, 7, "cnn", "cnn", 0, "", nil)
	seedStream(t, db, 2, 1, 8, "cnn", "cnn", 0, "", nil)

	rows, err := store.SelectRows(context.Background(), "streams",
		[]string{"id"},
		reconcile.Condition{"user_id": uint64(1), "provider_id": uint64(8)},
		nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 2, rows[0]["id"])
}

func TestUpdateRow_SQL(t *testing.T) {
	// Setup sqlmock
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	store := streams.NewStore(gormDB)

	mock.ExpectExec("UPDATE `streams` SET `name`=. WHERE `id` = .").
		WithArgs("CNN HD", uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := store.UpdateRow(context.Background(), "streams",
		reconcile.Condition{"id": uint64(3)},
		map[string]any{"name": "CNN HD"})
	assert.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRow_RoundTrip(t *testing.T) {
	db := setupStreamDB(t)
	store := streams.NewStore(db)

	seedStream(t, db, 1, 1, 7, "cnn", "cnn", 0, "", nil)

	affected, err := store.UpdateRow(context.Background(), "streams",
		reconcile.Condition{"id": uint64(1)},
		map[string]any{"channel": "12"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	var channel string
	require.NoError(t, db.Table("streams").Where("id = ?", 1).Pluck("channel", &channel).Error)
	assert.Equal(t, "12", channel)
}

func TestVerifySchema(t *testing.T) {
	db := setupStreamDB(t)
	store := streams.NewStore(db)

	assert.NoError(t, store.VerifySchema(context.Background(), "streams"))
}

func TestVerifySchema_MissingColumn(t *testing.T) {
	db := setupStreamDB(t)
	store := streams.NewStore(db)

	err := db.Exec("CREATE TABLE bad_streams (id INTEGER PRIMARY KEY, name VARCHAR(255))").Error
	require.NoError(t, err)

	err = store.VerifySchema(context.Background(), "bad_streams")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tvg_logo")
}
