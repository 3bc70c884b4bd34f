// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/activity-star/models"
	"github.com/danielhkuo/activity-star/star"
)

// Target is the model a load writes into. *star.Model implements it.
type Target interface {
	Batch(fn func(w star.Writer))
}

type Options struct {
	// Replace empties the model before ingesting, so the loaded source
	// becomes the whole model. Otherwise rows merge by natural key.
	Replace bool
}

type tables struct {
	students   Table
	activities Table
	signups    Table
}

// Load reads the Students, Activities and Signups tables from src and
// ingests them into target, dimensions first. All tables are read before
// any write; a missing table fails the load with *SourceFormatError.
// Row-level problems are collected in the report and never fail the load,
// and rows already ingested are never rolled back.
func Load(ctx context.Context, target Target, src Source, opts Options) (models.LoadReport, error) {
	t, err := readTables(ctx, src)
	if err != nil {
		return models.LoadReport{}, err
	}

	report := models.LoadReport{
		LoadID:   uuid.NewString(),
		Source:   src.Name(),
		Replaced: opts.Replace,
		Errors:   []models.RowError{},
	}

	target.Batch(func(w star.Writer) {
		if opts.Replace {
			w.Reset()
		}
		loadStudents(w, t.students, &report)
		loadActivities(w, t.activities, &report)
		loadSignups(w, t.signups, &report)
	})

	slog.Info("load completed",
		"load_id", report.LoadID,
		"source", report.Source,
		"students", report.StudentsLoaded,
		"activities", report.ActivitiesLoaded,
		"signups", report.SignupsLoaded,
		"row_errors", len(report.Errors),
	)

	return report, nil
}

func readTables(ctx context.Context, src Source) (tables, error) {
	var t tables
	for _, want := range []struct {
		name string
		dst  *Table
	}{
		{models.TableStudents, &t.students},
		{models.TableActivities, &t.activities},
		{models.TableSignups, &t.signups},
	} {
		table, err := src.Table(ctx, want.name)
		if errors.Is(err, ErrTableNotFound) {
			return tables{}, &SourceFormatError{Table: want.name}
		}
		if err != nil {
			return tables{}, fmt.Errorf("read %s: %w", want.name, err)
		}
		*want.dst = table
	}
	return t, nil
}

func rowError(report *models.LoadReport, table string, row Row, err error) {
	report.Errors = append(report.Errors, models.RowError{
		Table:   table,
		Row:     row.Line,
		Message: err.Error(),
	})
}

func loadStudents(w star.Writer, t Table, report *models.LoadReport) {
	for _, row := range t.Rows {
		sr := studentRowFrom(row)
		if err := validateRow(sr); err != nil {
			rowError(report, models.TableStudents, row, err)
			continue
		}
		grade, err := parseInt("grade_level", sr.GradeLevel)
		if err != nil {
			rowError(report, models.TableStudents, row, err)
			continue
		}
		if _, err := w.UpsertStudent(sr.Email, sr.Name, grade); err != nil {
			rowError(report, models.TableStudents, row, err)
			continue
		}
		report.StudentsLoaded++
	}
}

func loadActivities(w star.Writer, t Table, report *models.LoadReport) {
	for _, row := range t.Rows {
		ar := activityRowFrom(row)
		if err := validateRow(ar); err != nil {
			rowError(report, models.TableActivities, row, err)
			continue
		}
		maxParticipants, err := parseInt("max_participants", ar.MaxParticipants)
		if err != nil {
			rowError(report, models.TableActivities, row, err)
			continue
		}
		if _, err := w.UpsertActivity(ar.ActivityName, ar.Description, ar.Schedule, maxParticipants); err != nil {
			rowError(report, models.TableActivities, row, err)
			continue
		}
		report.ActivitiesLoaded++
	}
}

// loadSignups resolves natural keys against the already loaded dimensions,
// so the order of rows within the table does not matter
func loadSignups(w star.Writer, t Table, report *models.LoadReport) {
	for _, row := range t.Rows {
		sr := signupRowFrom(row)
		if err := validateRow(sr); err != nil {
			rowError(report, models.TableSignups, row, err)
			continue
		}

		studentID, studentOK := w.StudentID(sr.StudentEmail)
		activityID, activityOK := w.ActivityID(sr.ActivityName)
		if !studentOK || !activityOK {
			var missing []string
			if !studentOK {
				missing = append(missing, fmt.Sprintf("unknown student_email %q", sr.StudentEmail))
			}
			if !activityOK {
				missing = append(missing, fmt.Sprintf("unknown activity_name %q", sr.ActivityName))
			}
			rowError(report, models.TableSignups, row, errors.New(strings.Join(missing, "; ")))
			continue
		}

		date, ts, err := ParseSignupDate(sr.SignupDate)
		if err != nil {
			rowError(report, models.TableSignups, row, err)
			continue
		}
		dateID, err := w.UpsertDate(date)
		if err != nil {
			rowError(report, models.TableSignups, row, err)
			continue
		}
		if _, err := w.RecordSignup(studentID, activityID, dateID, ts); err != nil {
			rowError(report, models.TableSignups, row, err)
			continue
		}
		report.SignupsLoaded++
	}
}
