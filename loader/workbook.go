// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/activity-star/models"
)

// Largest serial Excel can display, 9999-12-31
const maxDateSerial = 2958465

// Workbook is an XLSX file with one sheet per table
type Workbook struct {
	name string
	file *excelize.File
}

// OpenWorkbook opens an .xlsx file from disk
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{name: path, file: f}, nil
}

// ReadWorkbook reads an .xlsx file from r, e.g. an uploaded file
func ReadWorkbook(name string, r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return &Workbook{name: name, file: f}, nil
}

func (w *Workbook) Name() string {
	return w.name
}

// Table returns the sheet whose name matches case-insensitively. Cells
// are read raw, so date cells arrive as serials; numeric signup_date
// cells are rewritten as text dates before the table is returned.
func (w *Workbook) Table(ctx context.Context, name string) (Table, error) {
	sheet := ""
	for _, s := range w.file.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			sheet = s
			break
		}
	}
	if sheet == "" {
		return Table{}, fmt.Errorf("sheet %s: %w", name, ErrTableNotFound)
	}

	records, err := w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if err := w.convertDateSerials(sheet, records); err != nil {
		return Table{}, err
	}
	return NewTable(name, records), nil
}

// convertDateSerials rewrites numeric signup_date cells in place. Text
// cells are left for ParseSignupDate, so "2024" typed as text stays a
// rejected value rather than a serial.
func (w *Workbook) convertDateSerials(sheet string, records [][]string) error {
	if len(records) == 0 {
		return nil
	}
	col := -1
	for i, name := range records[0] {
		if normalizeColumn(name) == "signup_date" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil
	}

	for i := 1; i < len(records); i++ {
		if col >= len(records[i]) || strings.TrimSpace(records[i][col]) == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, i+1)
		if err != nil {
			return err
		}
		typ, err := w.file.GetCellType(sheet, cell)
		if err != nil {
			return fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		if typ == excelize.CellTypeSharedString || typ == excelize.CellTypeInlineString {
			continue
		}
		records[i][col] = serialDate(records[i][col])
	}
	return nil
}

// serialDate renders a 1900-system date serial as YYYY-MM-DD, or as a
// timestamp when it has a fractional day. Other values pass through.
func serialDate(v string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || serial <= 0 || serial > maxDateSerial {
		return v
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return v
	}
	if serial == math.Trunc(serial) {
		return t.Format(models.DateLayout)
	}
	return t.Format("2006-01-02 15:04:05")
}

func (w *Workbook) Close() error {
	return w.file.Close()
}
