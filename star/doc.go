// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package star implements the in-memory star schema for activity signups.

# Tables

Three dimension tables and one fact table:

	dim_students    (student_id, email*, name, grade_level)
	dim_activities  (activity_id, activity_name*, description, schedule, max_participants)
	dim_dates       (date_id, date*, day, month, year, weekday)
	fact_signups    (fact_signup_id, student_id, activity_id, date_id, signup_timestamp)

Columns marked * are natural keys. Each table has its own surrogate key
space, starting at 1 and growing by one per insert.

# Writes

Upserts dedup by natural key and return the existing key on repeat:

	m := star.New()
	sid, _ := m.UpsertStudent("a@x.edu", "A", 9)
	aid, _ := m.UpsertActivity("Chess Club", "d", "s", 2)
	did, _ := m.UpsertDate("2024-01-15")
	fid, err := m.RecordSignup(sid, aid, did, time.Time{})

RecordSignup fails with *NotFoundError when a key does not exist. Use
Batch to apply many writes under one lock.

# Reads

ActivityAnalytics, StudentAnalytics and GradeParticipation aggregate the
fact log on every call; nothing derived is cached. SignupsByStudent and
SignupsByActivity join facts back to their dimensions.

All methods are safe for concurrent use.
*/
package star
