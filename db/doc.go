// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db reads signup source tables from a SQL database.

The star schema itself lives only in memory; a database here is one more
tabular source for the loader, next to workbooks and CSV files.

# Connecting

Open supports SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq):

	conn, err := db.Open(db.TypeSQLite, "file:school.db")
	src := db.NewSource(conn, db.TypeSQLite)
	report, err := loader.Load(ctx, model, src, loader.Options{})

# Schema Creation

CreateSchema creates the source tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - students: email (PK), name, grade_level
  - activities: activity_name (PK), description, schedule, max_participants
  - signups: student_email, activity_name, signup_date (YYYY-MM-DD)

A missing table is reported as loader.ErrTableNotFound, which fails the
load before any row is ingested.
*/
package db
