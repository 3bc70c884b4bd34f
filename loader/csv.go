// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// CSVDir is a directory holding students.csv, activities.csv and
// signups.csv
type CSVDir struct {
	dir string
}

func NewCSVDir(dir string) CSVDir {
	return CSVDir{dir: dir}
}

func (c CSVDir) Name() string {
	return c.dir
}

func (c CSVDir) Table(ctx context.Context, name string) (Table, error) {
	path := filepath.Join(c.dir, strings.ToLower(name)+".csv")

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, fmt.Errorf("%s: %w", path, ErrTableNotFound)
	}
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	// The reader skips empty lines, so each record keeps its own line number
	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("parse %s: %w", path, err)
		}
		line, _ := r.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}
	return newTable(name, records, lines), nil
}
