// Package dbprobe inspects SQLite database files produced by code-generation
// tools. Every probe opens the file read-only, answers one question, and
// closes it again, so a generated artifact is never mutated by its own test
// suite.
package dbprobe

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

const (
	openTimeout  = 5 * time.Second
	queryTimeout = 30 * time.Second
)

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return db, nil
}

// Tables returns the names of the user tables in the database at path,
// sorted. Internal sqlite_* bookkeeping tables are skipped.
func Tables(path string) ([]string, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return names, nil
}

// Columns returns the column names of table in declaration order. A table
// unknown to the database yields no columns and no error, mirroring
// PRAGMA table_info.
func Columns(path, table string) ([]string, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return names, nil
}

// QueryValue runs a query expected to select a single scalar and returns it.
// Byte slices are converted to strings for easier comparison.
func QueryValue(path, query string) (any, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var v any
	if err := db.QueryRowContext(ctx, query).Scan(&v); err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	if b, ok := v.([]byte); ok {
		return string(b), nil
	}
	return v, nil
}
