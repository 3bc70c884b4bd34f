// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTableNotFound is returned by a Source that has no table of the
// requested name
var ErrTableNotFound = errors.New("table not found")

// SourceFormatError means the source as a whole is unusable. A load that
// returns it has not touched the model.
type SourceFormatError struct {
	Table string
}

func (e *SourceFormatError) Error() string {
	return fmt.Sprintf("source format: missing table %s", e.Table)
}

func (e *SourceFormatError) Unwrap() error {
	return ErrTableNotFound
}

// Source provides named tables to the loader
type Source interface {
	// Name identifies the source in load reports and logs
	Name() string
	// Table returns the named table, or an error wrapping
	// ErrTableNotFound. Names are matched case-insensitively.
	Table(ctx context.Context, name string) (Table, error)
}

// Row is one data row keyed by normalized column name. Line is the
// 1-based line or sheet row it came from, header included.
type Row struct {
	Line   int
	Values map[string]string
}

// Get returns the trimmed value of a column, or "" when absent
func (r Row) Get(column string) string {
	return strings.TrimSpace(r.Values[column])
}

type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// NewTable builds a table from records whose first record is the header.
// Header names are trimmed and lower-cased; blank records are dropped and
// short records leave trailing columns empty. Row.Line is the 1-based
// record number, so the first data row is line 2.
func NewTable(name string, records [][]string) Table {
	return newTable(name, records, nil)
}

// newTable is NewTable with the source line of each record; a nil lines
// falls back to the record number.
func newTable(name string, records [][]string, lines []int) Table {
	t := Table{Name: name}
	if len(records) == 0 {
		return t
	}

	t.Columns = make([]string, len(records[0]))
	for i, col := range records[0] {
		t.Columns[i] = normalizeColumn(col)
	}

	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		values := make(map[string]string, len(t.Columns))
		for j, col := range t.Columns {
			if col == "" || j >= len(record) {
				continue
			}
			values[col] = record[j]
		}
		line := i + 2
		if lines != nil {
			line = lines[i+1]
		}
		t.Rows = append(t.Rows, Row{Line: line, Values: values})
	}
	return t
}

func normalizeColumn(col string) string {
	col = strings.TrimPrefix(col, "\ufeff")
	return strings.ToLower(strings.TrimSpace(col))
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
