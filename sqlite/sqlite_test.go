package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docsearch/sqlite"
	"github.com/stretchr/testify/require"
)

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()

		var count int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM preferences").Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})

	t.Run("waits on lock contention", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(t.TempDir() + "/test.db")
		require.NoError(t, db.Open())
		defer db.Close()

		var timeout int
		err := db.QueryRowContext(context.Background(), "PRAGMA busy_timeout").Scan(&timeout)
		require.NoError(t, err)
		require.Equal(t, 5000, timeout)
	})
}

func TestDB_ReopenKeepsData(t *testing.T) {
	t.Parallel()

	dbPath := t.TempDir() + "/prefs.db"
	ctx := context.Background()

	db := sqlite.NewDB(dbPath)
	require.NoError(t, db.Open())
	_, err := db.ExecContext(ctx, "INSERT INTO preferences (key, value, updated_at) VALUES ('theme', 'light', '2026-01-01T00:00:00Z')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db = sqlite.NewDB(dbPath)
	require.NoError(t, db.Open())
	defer db.Close()

	var value string
	require.NoError(t, db.QueryRowContext(ctx, "SELECT value FROM preferences WHERE key = 'theme'").Scan(&value))
	require.Equal(t, "light", value)
}
