package assert

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func seedDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);
		INSERT INTO users (name) VALUES ('Alice'), ('Bob');
	`)
	require.NoError(t, err)
	return path
}

func TestSQLiteTable(t *testing.T) {
	db := seedDB(t)

	SQLiteTable(t, db, "users")
	NoSQLiteTable(t, db, "sessions")

	t.Run("missing table lists what exists", func(t *testing.T) {
		m := record(func(mt *mockT) { SQLiteTable(mt, db, "sessions") })
		require.Len(t, m.failures, 1)
		require.Contains(t, m.failures[0], `table "sessions" does not exist (have: users)`)
	})

	t.Run("unexpected table", func(t *testing.T) {
		m := record(func(mt *mockT) { NoSQLiteTable(mt, db, "users") })
		require.Contains(t, m.failures[0], `table "users" exists`)
	})

	t.Run("missing database file", func(t *testing.T) {
		m := record(func(mt *mockT) {
			SQLiteTable(mt, filepath.Join(t.TempDir(), "nope.db"), "users")
		})
		require.Contains(t, m.failures[0], "no such file or directory")
		require.False(t, m.fatal)
	})

	t.Run("unreadable database stops the test", func(t *testing.T) {
		bad := writeFile(t, t.TempDir(), "corrupt.db", "not a database")
		m := record(func(mt *mockT) { SQLiteTable(mt, bad, "users") })
		require.True(t, m.fatal)
	})
}

func TestSQLiteColumn(t *testing.T) {
	db := seedDB(t)

	SQLiteColumn(t, db, "users", "name")

	m := record(func(mt *mockT) { SQLiteColumn(mt, db, "users", "email") })
	require.Contains(t, m.failures[0], `column "email" does not exist in table "users" (have: id, name)`)

	m = record(func(mt *mockT) { SQLiteColumn(mt, db, "sessions", "id") })
	require.Contains(t, m.failures[0], `table "sessions" does not exist`)
}

func TestSQLiteValue(t *testing.T) {
	db := seedDB(t)

	SQLiteValue(t, db, "SELECT COUNT(*) FROM users", 2)
	SQLiteValue(t, db, "SELECT name FROM users WHERE id = 1", "Alice")

	m := record(func(mt *mockT) { SQLiteValue(mt, db, "SELECT COUNT(*) FROM users", 5) })
	require.Len(t, m.failures, 1)

	t.Run("bad query stops the test", func(t *testing.T) {
		m := record(func(mt *mockT) { SQLiteValue(mt, db, "SELECT x FROM nope", 1) })
		require.True(t, m.fatal)
	})
}
