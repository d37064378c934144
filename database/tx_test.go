package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	migrations, err := fs.Sub(EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := New(filepath.Join(t.TempDir(), "test.db"), migrations)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countServers(t *testing.T, db *DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Conn.QueryRow("SELECT COUNT(*) FROM servers").Scan(&n))
	return n
}

func TestWithTxCommit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO servers (id, name) VALUES ('s1', 'Alpha')")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countServers(t, db))
}

func TestWithTxRollbackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO servers (id, name) VALUES ('s1', 'Alpha')"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countServers(t, db))
}

func TestWithTxRollbackOnPanic(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "INSERT INTO servers (id, name) VALUES ('s1', 'Alpha')"); err != nil {
				return err
			}
			panic("boom")
		})
	})
	assert.Equal(t, 0, countServers(t, db))
}

func TestIsBusy(t *testing.T) {
	assert.False(t, IsBusy(nil))
	assert.False(t, IsBusy(errors.New("UNIQUE constraint failed: users.email")))
	// Driver'ın lock hatası iki biçimde de yakalanır.
	assert.True(t, IsBusy(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, IsBusy(errors.New("stmt exec: SQLITE_BUSY")))
}

func TestWithSavepoint(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	// İç birim başarısız olunca sadece savepoint geri alınır,
	// dış transaction'ın yazdıkları commit edilir.
	err := WithTx(ctx, db.Conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO servers (id, name) VALUES ('outer', 'Alpha')"); err != nil {
			return err
		}

		spErr := WithSavepoint(ctx, tx, "inner", func() error {
			if _, err := tx.ExecContext(ctx, "INSERT INTO servers (id, name) VALUES ('inner', 'Beta')"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, spErr, boom)

		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countServers(t, db))

	var id string
	require.NoError(t, db.Conn.QueryRow("SELECT id FROM servers").Scan(&id))
	assert.Equal(t, "outer", id)
}
