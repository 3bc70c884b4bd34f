// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/activity-star/star"
)

// memSource serves tables built from literal records
type memSource map[string][][]string

func (s memSource) Name() string { return "memory" }

func (s memSource) Table(ctx context.Context, name string) (Table, error) {
	records, ok := s[name]
	if !ok {
		return Table{}, fmt.Errorf("%s: %w", name, ErrTableNotFound)
	}
	return NewTable(name, records), nil
}

func wellFormedSource() memSource {
	return memSource{
		"Students": {
			{"email", "name", "grade_level"},
			{"a@x.edu", "A", "9"},
			{"b@x.edu", "B", "10"},
			{"c@x.edu", "C", "12"},
		},
		"Activities": {
			{"activity_name", "description", "schedule", "max_participants"},
			{"Chess Club", "d", "s", "2"},
			{"Drama Club", "d", "s", "10"},
		},
		"Signups": {
			{"student_email", "activity_name", "signup_date"},
			{"a@x.edu", "Chess Club", "2024-01-15"},
			{"b@x.edu", "Chess Club", "2024-01-16"},
			{"c@x.edu", "Drama Club", "2024-01-16"},
			{"a@x.edu", "Drama Club", "2024-01-17"},
		},
	}
}

func TestLoad_WellFormed(t *testing.T) {
	m := star.New()

	report, err := Load(context.Background(), m, wellFormedSource(), Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if report.StudentsLoaded != 3 || report.ActivitiesLoaded != 2 || report.SignupsLoaded != 4 {
		t.Errorf("Unexpected counts: %+v", report)
	}
	if len(report.Errors) != 0 {
		t.Errorf("Expected no errors, got %+v", report.Errors)
	}
	if report.LoadID == "" {
		t.Error("Expected load_id to be set")
	}
	if report.Source != "memory" {
		t.Errorf("Expected source 'memory', got '%s'", report.Source)
	}

	counts := m.Counts()
	if counts.Dates != 3 {
		t.Errorf("Expected 3 distinct dates, got %d", counts.Dates)
	}
}

func TestLoad_EndToEndExample(t *testing.T) {
	src := memSource{
		"Students":   {{"email", "name", "grade_level"}, {"a@x.edu", "A", "9"}},
		"Activities": {{"activity_name", "description", "schedule", "max_participants"}, {"Chess Club", "d", "s", "2"}},
		"Signups":    {{"student_email", "activity_name", "signup_date"}, {"a@x.edu", "Chess Club", "2024-01-15"}},
	}
	m := star.New()

	if _, err := Load(context.Background(), m, src, Options{}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rows := m.ActivityAnalytics()
	if len(rows) != 1 {
		t.Fatalf("Expected 1 analytics row, got %d", len(rows))
	}
	r := rows[0]
	if r.ActivityName != "Chess Club" || r.MaxParticipants != 2 || r.CurrentSignups != 1 || r.SpotsLeft != 1 {
		t.Errorf("Unexpected analytics row: %+v", r)
	}

	signups, err := m.SignupsByStudent("a@x.edu")
	if err != nil {
		t.Fatalf("SignupsByStudent() error = %v", err)
	}
	if len(signups) != 1 || signups[0].ActivityName != "Chess Club" || signups[0].SignupDate != "2024-01-15" {
		t.Errorf("Unexpected signups: %+v", signups)
	}

	var nf *star.NotFoundError
	if _, err := m.SignupsByStudent("unknown@x.edu"); !errors.As(err, &nf) {
		t.Errorf("Expected NotFoundError for unknown student, got %v", err)
	}
}

func TestLoad_UnknownActivityIsolated(t *testing.T) {
	src := wellFormedSource()
	src["Signups"] = append(src["Signups"], []string{"b@x.edu", "Underwater Basket Weaving", "2024-01-18"})
	src["Signups"] = append(src["Signups"], []string{"c@x.edu", "Chess Club", "2024-01-19"})

	m := star.New()
	report, err := Load(context.Background(), m, src, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// 6 signup rows, one bad
	if report.SignupsLoaded != 5 {
		t.Errorf("Expected 5 signups loaded, got %d", report.SignupsLoaded)
	}
	if len(report.Errors) != 1 {
		t.Fatalf("Expected exactly 1 error, got %+v", report.Errors)
	}
	e := report.Errors[0]
	if e.Table != "Signups" || e.Row != 6 {
		t.Errorf("Expected error at Signups row 6, got %s row %d", e.Table, e.Row)
	}
	if !strings.Contains(e.Message, "activity_name") || strings.Contains(e.Message, "student_email") {
		t.Errorf("Expected message naming only the activity reference, got %q", e.Message)
	}
}

func TestLoad_RowErrors(t *testing.T) {
	tests := []struct {
		name        string
		table       string
		record      []string
		wantMessage string
	}{
		{"student missing email", "Students", []string{"", "Z", "9"}, "email is required"},
		{"student non-numeric grade", "Students", []string{"z@x.edu", "Z", "ninth"}, "grade_level must be a number"},
		{"student fractional grade", "Students", []string{"z@x.edu", "Z", "9.5"}, "not an integer"},
		{"student grade beyond int", "Students", []string{"z@x.edu", "Z", "99999999999999999999"}, "out of range"},
		{"activity missing schedule", "Activities", []string{"Art", "d", "", "5"}, "schedule is required"},
		{"activity negative capacity", "Activities", []string{"Art", "d", "s", "-1"}, "max_participants"},
		{"signup bad date", "Signups", []string{"a@x.edu", "Chess Club", "someday"}, "signup_date"},
		{"signup bare year", "Signups", []string{"a@x.edu", "Chess Club", "2024"}, "\"2024\" is not a YYYY-MM-DD date"},
		{"signup missing date", "Signups", []string{"a@x.edu", "Chess Club", ""}, "signup_date is required"},
		{"signup unknown both", "Signups", []string{"z@x.edu", "Art", "2024-01-15"}, "unknown student_email \"z@x.edu\"; unknown activity_name \"Art\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := wellFormedSource()
			src[tt.table] = append(src[tt.table], tt.record)

			m := star.New()
			report, err := Load(context.Background(), m, src, Options{})
			if err != nil {
				t.Fatalf("Row errors must not fail the load, got %v", err)
			}
			if len(report.Errors) != 1 {
				t.Fatalf("Expected 1 row error, got %+v", report.Errors)
			}
			if report.Errors[0].Table != tt.table {
				t.Errorf("Expected error in %s, got %s", tt.table, report.Errors[0].Table)
			}
			if !strings.Contains(report.Errors[0].Message, tt.wantMessage) {
				t.Errorf("Expected message containing %q, got %q", tt.wantMessage, report.Errors[0].Message)
			}

			// The rest of the source still loads
			if report.StudentsLoaded != 3 || report.ActivitiesLoaded != 2 || report.SignupsLoaded != 4 {
				t.Errorf("Expected other rows to load, got %+v", report)
			}
		})
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	src := wellFormedSource()
	src["Students"] = [][]string{
		{"email", "name"},
		{"a@x.edu", "A"},
	}

	m := star.New()
	report, err := Load(context.Background(), m, src, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if report.StudentsLoaded != 0 {
		t.Errorf("Expected no students loaded, got %d", report.StudentsLoaded)
	}
	if len(report.Errors) == 0 || !strings.Contains(report.Errors[0].Message, "grade_level is required") {
		t.Errorf("Expected grade_level row error first, got %+v", report.Errors)
	}
}

func TestLoad_MissingTable(t *testing.T) {
	for _, missing := range []string{"Students", "Activities", "Signups"} {
		t.Run(missing, func(t *testing.T) {
			src := wellFormedSource()
			delete(src, missing)

			m := star.New()
			_, err := Load(context.Background(), m, src, Options{})

			var sfe *SourceFormatError
			if !errors.As(err, &sfe) {
				t.Fatalf("Expected SourceFormatError, got %v", err)
			}
			if sfe.Table != missing {
				t.Errorf("Expected missing table %s, got %s", missing, sfe.Table)
			}
			if !errors.Is(err, ErrTableNotFound) {
				t.Error("Expected SourceFormatError to wrap ErrTableNotFound")
			}

			counts := m.Counts()
			if counts.Students != 0 || counts.Activities != 0 || counts.Signups != 0 {
				t.Errorf("Expected untouched model, got %+v", counts)
			}
		})
	}
}

func TestLoad_MergeAndReplace(t *testing.T) {
	m := star.New()
	ctx := context.Background()

	if _, err := Load(ctx, m, wellFormedSource(), Options{}); err != nil {
		t.Fatalf("first Load() error = %v", err)
	}

	// Merging the same source again dedups dimensions but appends facts
	if _, err := Load(ctx, m, wellFormedSource(), Options{}); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	counts := m.Counts()
	if counts.Students != 3 || counts.Activities != 2 {
		t.Errorf("Expected deduped dimensions, got %+v", counts)
	}
	if counts.Signups != 8 {
		t.Errorf("Expected 8 appended facts, got %d", counts.Signups)
	}

	report, err := Load(ctx, m, wellFormedSource(), Options{Replace: true})
	if err != nil {
		t.Fatalf("replacing Load() error = %v", err)
	}
	if !report.Replaced {
		t.Error("Expected report to mark replace")
	}
	if got := m.Counts().Signups; got != 4 {
		t.Errorf("Expected 4 facts after replace, got %d", got)
	}
}

func TestLoad_SignupOrderIndependent(t *testing.T) {
	src := wellFormedSource()
	// Signups listed before any reference would be valid in a single pass
	src["Signups"] = [][]string{
		{"signup_date", "activity_name", "student_email"},
		{"2024-01-15", "Drama Club", "c@x.edu"},
		{"2024-01-15", "Chess Club", "a@x.edu"},
	}

	m := star.New()
	report, err := Load(context.Background(), m, src, Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if report.SignupsLoaded != 2 || len(report.Errors) != 0 {
		t.Errorf("Expected 2 signups and no errors, got %+v", report)
	}
}

func TestParseSignupDate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantDate string
		wantTS   time.Time
		wantErr  bool
	}{
		{"calendar date", "2024-01-15", "2024-01-15", time.Time{}, false},
		{"rfc3339", "2024-01-15T09:30:00Z", "2024-01-15", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), false},
		{"space separated", "2024-01-15 09:30:00", "2024-01-15", time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), false},
		{"compact date", "20240115", "2024-01-15", time.Time{}, false},
		{"garbage", "next tuesday", "", time.Time{}, true},
		{"bare year", "2024", "", time.Time{}, true},
		{"small number", "1", "", time.Time{}, true},
		{"spreadsheet serial", "45306", "", time.Time{}, true},
		{"negative number", "-5", "", time.Time{}, true},
		{"impossible compact date", "20241340", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, ts, err := ParseSignupDate(tt.in)
			if tt.wantErr {
				var verr *star.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("Expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSignupDate() error = %v", err)
			}
			if date != tt.wantDate {
				t.Errorf("Expected date %s, got %s", tt.wantDate, date)
			}
			if !ts.Equal(tt.wantTS) {
				t.Errorf("Expected timestamp %v, got %v", tt.wantTS, ts)
			}
		})
	}
}

func TestNewTable(t *testing.T) {
	table := NewTable("Students", [][]string{
		{"\ufeffEmail ", " NAME", "grade_level"},
		{"a@x.edu", "A", "9"},
		{"", "  ", ""},
		{"b@x.edu"},
	})

	if table.Columns[0] != "email" || table.Columns[1] != "name" {
		t.Errorf("Expected normalized header, got %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Expected blank row dropped, got %d rows", len(table.Rows))
	}
	if table.Rows[1].Line != 4 {
		t.Errorf("Expected line 4 for last row, got %d", table.Rows[1].Line)
	}
	if table.Rows[1].Get("name") != "" {
		t.Errorf("Expected empty value for short record, got %q", table.Rows[1].Get("name"))
	}
}
