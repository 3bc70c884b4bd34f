// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package loader ingests tabular sources into the star schema.

# Sources

A Source provides three named tables:

	Students:   email, name, grade_level
	Activities: activity_name, description, schedule, max_participants
	Signups:    student_email, activity_name, signup_date

Implementations in this package:

  - Workbook: an .xlsx file with one sheet per table
  - CSVDir: a directory with students.csv, activities.csv, signups.csv

The db package provides a SQL database source.

# Loading

	wb, err := loader.OpenWorkbook("data/school_activities.xlsx")
	...
	report, err := loader.Load(ctx, model, wb, loader.Options{})

Students and activities load before signups, so signup rows resolve by
natural key against complete dimensions. Each row is checked against its
row schema (StudentRow, ActivityRow, SignupRow) before any upsert.

# Errors

A missing table fails the whole load with *SourceFormatError before the
model is touched. Bad rows are recorded in report.Errors and skipped.
*/
package loader
