// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/activity-star/loader"
)

// Supported database types. Each is also the registered driver name.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// sourceTables maps loader table names to SQL tables. Only these tables
// are ever queried.
var sourceTables = map[string]string{
	"students":   "students",
	"activities": "activities",
	"signups":    "signups",
}

// Open connects to a database of the given type and verifies the connection
func Open(databaseType, url string) (*sql.DB, error) {
	if databaseType != TypeSQLite && databaseType != TypePostgres {
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}

	conn, err := sql.Open(databaseType, url)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", databaseType, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s database: %w", databaseType, err)
	}
	return conn, nil
}

// Source reads the students, activities and signups tables of a database
// as a loader.Source
type Source struct {
	db           *sql.DB
	databaseType string
}

func NewSource(db *sql.DB, databaseType string) *Source {
	return &Source{db: db, databaseType: databaseType}
}

// Name reports the database type only, keeping credentials in the
// connection URL out of reports and logs
func (s *Source) Name() string {
	return s.databaseType + " database"
}

func (s *Source) Table(ctx context.Context, name string) (loader.Table, error) {
	table, ok := sourceTables[strings.ToLower(name)]
	if !ok {
		return loader.Table{}, fmt.Errorf("table %s: %w", name, loader.ErrTableNotFound)
	}

	exists, err := s.tableExists(ctx, table)
	if err != nil {
		return loader.Table{}, err
	}
	if !exists {
		return loader.Table{}, fmt.Errorf("table %s: %w", table, loader.ErrTableNotFound)
	}

	query := "SELECT * FROM " + table
	if s.databaseType == TypeSQLite {
		query += " ORDER BY rowid"
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return loader.Table{}, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return loader.Table{}, fmt.Errorf("columns of %s: %w", table, err)
	}

	records := [][]string{cols}
	for rows.Next() {
		values := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return loader.Table{}, fmt.Errorf("scan %s: %w", table, err)
		}

		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = v.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return loader.Table{}, fmt.Errorf("iterate %s: %w", table, err)
	}

	return loader.NewTable(name, records), nil
}

func (s *Source) tableExists(ctx context.Context, table string) (bool, error) {
	var query string
	switch s.databaseType {
	case TypePostgres:
		query = `SELECT COUNT(*) FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = '` + table + `'`
	default:
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = '` + table + `'`
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return n > 0, nil
}
