// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/activity-star/cliparse"
	"github.com/danielhkuo/activity-star/db"
	"github.com/danielhkuo/activity-star/loader"
	"github.com/danielhkuo/activity-star/models"
	"github.com/danielhkuo/activity-star/star"
)

// TestAdminSalt is the admin key salt of GetTestConfig
const TestAdminSalt = "test-admin-salt"

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		AdminKeySalt: TestAdminSalt,
		MaxUploadMB:  1,
	}
}

// Fixture is the school data set used across handler and router tests,
// one [][]any per table with the header row first
func Fixture() map[string][][]any {
	return map[string][][]any{
		models.TableStudents: {
			{"email", "name", "grade_level"},
			{"michael@mergington.edu", "Michael Johnson", 10},
			{"emma@mergington.edu", "Emma Davis", 11},
			{"sophia@mergington.edu", "Sophia Wilson", 9},
		},
		models.TableActivities: {
			{"activity_name", "description", "schedule", "max_participants"},
			{"Chess Club", "Learn strategies and compete in chess tournaments", "Fridays, 3:30 PM - 5:00 PM", 12},
			{"Programming Class", "Learn programming fundamentals", "Tuesdays and Thursdays, 3:30 PM - 4:30 PM", 20},
			{"Gym Class", "Physical education and sports activities", "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM", 30},
		},
		models.TableSignups: {
			{"student_email", "activity_name", "signup_date"},
			{"michael@mergington.edu", "Chess Club", "2024-01-15"},
			{"emma@mergington.edu", "Chess Club", "2024-01-16"},
			{"emma@mergington.edu", "Programming Class", "2024-01-16"},
			{"sophia@mergington.edu", "Gym Class", "2024-01-17"},
		},
	}
}

// NewTestModel returns an empty model
func NewTestModel(t *testing.T) *star.Model {
	t.Helper()
	return star.New()
}

// LoadFixture returns a model loaded from Fixture
func LoadFixture(t *testing.T) *star.Model {
	t.Helper()

	m := star.New()
	wb, err := loader.ReadWorkbook("fixture.xlsx", BuildWorkbook(t, Fixture()))
	if err != nil {
		t.Fatalf("Failed to read fixture workbook: %v", err)
	}
	defer wb.Close()

	report, err := loader.Load(context.Background(), m, wb, loader.Options{})
	if err != nil {
		t.Fatalf("Failed to load fixture: %v", err)
	}
	if len(report.Errors) > 0 {
		t.Fatalf("Fixture produced row errors: %+v", report.Errors)
	}
	return m
}

// BuildWorkbook writes one sheet per table into an in-memory .xlsx file
func BuildWorkbook(t *testing.T, sheets map[string][][]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("Failed to create sheet %s: %v", name, err)
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("Failed to write row %d of %s: %v", i+1, name, err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		t.Fatalf("Failed to delete default sheet: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return buf
}

// WriteWorkbook saves a workbook built from sheets into a temp dir and
// returns its path
func WriteWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "school_activities.xlsx")
	if err := os.WriteFile(path, BuildWorkbook(t, sheets).Bytes(), 0o644); err != nil {
		t.Fatalf("Failed to save workbook: %v", err)
	}
	return path
}

// SetupSourceDB creates a SQLite source database file holding Fixture and
// returns its path
func SetupSourceDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "school.db")
	conn, err := db.Open(db.TypeSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open source database: %v", err)
	}
	defer conn.Close()

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	fixture := Fixture()
	insert := map[string]string{
		models.TableStudents:   `INSERT INTO students (email, name, grade_level) VALUES (?, ?, ?)`,
		models.TableActivities: `INSERT INTO activities (activity_name, description, schedule, max_participants) VALUES (?, ?, ?, ?)`,
		models.TableSignups:    `INSERT INTO signups (student_email, activity_name, signup_date) VALUES (?, ?, ?)`,
	}
	for _, table := range []string{models.TableStudents, models.TableActivities, models.TableSignups} {
		for _, row := range fixture[table][1:] {
			if err := execRow(conn, insert[table], row); err != nil {
				t.Fatalf("Failed to seed %s: %v", table, err)
			}
		}
	}
	return path
}

func execRow(conn *sql.DB, query string, row []any) error {
	_, err := conn.Exec(query, row...)
	return err
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeUploadRequest creates a multipart request carrying content in the
// "file" field
func MakeUploadRequest(t *testing.T, path, filename string, content []byte, headers map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
