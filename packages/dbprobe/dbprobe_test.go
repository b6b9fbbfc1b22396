package dbprobe

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDB builds the kind of database a scaffolding tool would emit.
func seedDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, email TEXT);
		CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER, title TEXT);
		INSERT INTO users (name, email) VALUES ('Alice', 'alice@example.com'), ('Bob', 'bob@example.com');
	`)
	require.NoError(t, err)
	return path
}

func TestTables(t *testing.T) {
	path := seedDB(t)

	tables, err := Tables(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"posts", "users"}, tables)
}

func TestTables_MissingFile(t *testing.T) {
	_, err := Tables(filepath.Join(t.TempDir(), "absent.db"))
	assert.Error(t, err, "read-only open refuses to create the file")
}

func TestColumns(t *testing.T) {
	path := seedDB(t)

	cols, err := Columns(path, "users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "email"}, cols, "declaration order")

	cols, err = Columns(path, "nonexistent")
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestQueryValue(t *testing.T) {
	path := seedDB(t)

	count, err := QueryValue(path, "SELECT COUNT(*) FROM users")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	name, err := QueryValue(path, "SELECT name FROM users WHERE id = 1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
}

func TestQueryValue_Errors(t *testing.T) {
	path := seedDB(t)

	_, err := QueryValue(path, "SELECT name FROM nonexistent")
	assert.Error(t, err)

	_, err = QueryValue(path, "SELECT name FROM users WHERE id = 999")
	assert.Error(t, err, "no rows is an error for a scalar probe")
}

func TestProbesDoNotMutate(t *testing.T) {
	path := seedDB(t)

	_, err := QueryValue(path, "SELECT COUNT(*) FROM users")
	require.NoError(t, err)

	// The read-only DSN must reject writes outright.
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec("INSERT INTO users (name) VALUES ('Mallory')")
	assert.Error(t, err)
}
