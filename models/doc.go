// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the dimension, fact, analytics, and response types
shared by the star schema, the loader, and the HTTP handlers.

# Dimension Types

Descriptive entities, each with a surrogate ID and a natural key:

  - DimStudent: student_id, email (natural key), name, grade_level
  - DimActivity: activity_id, activity_name (natural key), description,
    schedule, max_participants
  - DimDate: date_id, date (natural key, YYYY-MM-DD), day, month, year, weekday

# Fact Types

  - FactSignup: fact_signup_id, student_id, activity_id, date_id, signup_timestamp

# Analytics Types

Query results computed from the fact log at read time:

  - ActivityAnalytics: activity fields plus current_signups, spots_left
  - StudentAnalytics: student fields plus the activities signed up for
  - GradeParticipation: per-grade participation summary
  - StudentSignup / ActivitySignup: joined signup detail rows

# Load Types

  - LoadReport: per-table loaded counts and row errors
  - RowError: table, row, message

# Request and Response Types

  - SignupRequest: POST /star-schema/signups body
  - ActivityListing, SignupResponse, StudentDetailResponse,
    ActivityDetailResponse, LoadResponse, HealthResponse
  - ErrorResponse: error body written by middleware.ErrorResponse

# Constants

Source table names:

	TableStudents   = "Students"
	TableActivities = "Activities"
	TableSignups    = "Signups"

Date format:

	DateLayout = "2006-01-02"
*/
package models
