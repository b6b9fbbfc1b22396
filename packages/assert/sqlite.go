package assert

import (
	"slices"
	"strings"

	"github.com/yeoman/yeoman-assert/packages/dbprobe"
	"github.com/yeoman/yeoman-assert/packages/probe"
)

// SQLiteTable asserts that the SQLite database file at dbPath contains
// table. A database that cannot be opened stops the test.
func SQLiteTable(t TestingT, dbPath, table string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	tables, ok := sqliteTables(t, dbPath)
	if !ok {
		return false
	}
	if slices.Contains(tables, table) {
		return true
	}
	if len(tables) == 0 {
		return failf(t, "%s: table %q does not exist", dbPath, table)
	}
	return failf(t, "%s: table %q does not exist (have: %s)", dbPath, table, strings.Join(tables, ", "))
}

// NoSQLiteTable asserts that the database file at dbPath does not contain
// table.
func NoSQLiteTable(t TestingT, dbPath, table string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	tables, ok := sqliteTables(t, dbPath)
	if !ok {
		return false
	}
	if !slices.Contains(tables, table) {
		return true
	}
	return failf(t, "%s: table %q exists", dbPath, table)
}

// SQLiteColumn asserts that table exists in the database file at dbPath and
// declares column.
func SQLiteColumn(t TestingT, dbPath, table, column string) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !probe.Exists(dbPath) {
		return failf(t, "%s, no such file or directory", dbPath)
	}
	cols, err := dbprobe.Columns(dbPath, table)
	if err != nil {
		return fatalf(t, "%s: %v", dbPath, err)
	}
	if len(cols) == 0 {
		return failf(t, "%s: table %q does not exist", dbPath, table)
	}
	if slices.Contains(cols, column) {
		return true
	}
	return failf(t, "%s: column %q does not exist in table %q (have: %s)", dbPath, column, table, strings.Join(cols, ", "))
}

// SQLiteValue asserts that query against the database file at dbPath selects
// a scalar equal to want, compared after JSON normalization so an int64
// count meets an untyped literal.
func SQLiteValue(t TestingT, dbPath, query string, want any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !probe.Exists(dbPath) {
		return failf(t, "%s, no such file or directory", dbPath)
	}
	got, err := dbprobe.QueryValue(dbPath, query)
	if err != nil {
		return fatalf(t, "%s: %v", dbPath, err)
	}
	equal, err := jsonEqual(got, want)
	if err != nil {
		return fatalf(t, "%s: %v", dbPath, err)
	}
	if !equal {
		return failf(t, "%s: %s = %v, want %v", dbPath, query, got, want)
	}
	return true
}

func sqliteTables(t TestingT, dbPath string) ([]string, bool) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !probe.Exists(dbPath) {
		failf(t, "%s, no such file or directory", dbPath)
		return nil, false
	}
	tables, err := dbprobe.Tables(dbPath)
	if err != nil {
		fatalf(t, "%s: %v", dbPath, err)
		return nil, false
	}
	return tables, true
}
