package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file:apartments.db?"+sqlitePragmas, sqliteDSN("apartments.db"))
	assert.Equal(t, "file:x.db?mode=rwc&"+sqlitePragmas, sqliteDSN("file:x.db?mode=rwc"))
	assert.Equal(t, "file:x.db?_pragma=journal_mode(WAL)", sqliteDSN("file:x.db?_pragma=journal_mode(WAL)"))
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost:5432/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("apartments.db"))
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	db, err := Connect(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	// idempotent
	require.NoError(t, Migrate(db))

	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("apartments"))
	assert.True(t, db.Migrator().HasColumn("apartments", "version"))
	assert.True(t, db.Migrator().HasColumn("apartments", "current_owner_id"))
}

func TestConnect_SQLiteUsesSingleConnection(t *testing.T) {
	db, err := Connect(filepath.Join(t.TempDir(), "pool.db"), zap.NewNop())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
