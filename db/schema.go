// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the source tables a Source reads from.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Natural keys only; surrogate keys are assigned by the star schema on load.
// Signups carry no foreign keys: unresolved references are reported per row
// by the loader.
const schema = `
-- Students
CREATE TABLE IF NOT EXISTS students (
    email TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    grade_level INTEGER NOT NULL
);

-- Activities
CREATE TABLE IF NOT EXISTS activities (
    activity_name TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    schedule TEXT NOT NULL,
    max_participants INTEGER NOT NULL CHECK (max_participants >= 0)
);

-- Signups
CREATE TABLE IF NOT EXISTS signups (
    student_email TEXT NOT NULL,
    activity_name TEXT NOT NULL,
    signup_date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_signups_student_email ON signups(student_email);
CREATE INDEX IF NOT EXISTS idx_signups_activity_name ON signups(activity_name);
`
