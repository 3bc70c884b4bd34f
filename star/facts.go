// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package star

import (
	"strconv"
	"time"

	"github.com/danielhkuo/activity-star/models"
)

// RecordSignup appends a fact row. All three keys must reference existing
// dimension rows. A zero ts defaults to midnight UTC of the signup date.
// Repeated signups for the same student and activity are kept.
func (s *state) RecordSignup(studentID, activityID, dateID int, ts time.Time) (int, error) {
	if _, ok := s.students.get(studentID); !ok {
		return 0, &NotFoundError{Dimension: DimensionStudent, Key: strconv.Itoa(studentID)}
	}
	if _, ok := s.activities.get(activityID); !ok {
		return 0, &NotFoundError{Dimension: DimensionActivity, Key: strconv.Itoa(activityID)}
	}
	date, ok := s.dates.get(dateID)
	if !ok {
		return 0, &NotFoundError{Dimension: DimensionDate, Key: strconv.Itoa(dateID)}
	}

	if ts.IsZero() {
		ts = time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, time.UTC)
	}

	id := len(s.signups) + 1
	s.signups = append(s.signups, models.FactSignup{
		FactSignupID:    id,
		StudentID:       studentID,
		ActivityID:      activityID,
		DateID:          dateID,
		SignupTimestamp: ts,
	})
	return id, nil
}

// Signups returns a copy of the fact log in key order
func (m *Model) Signups() []models.FactSignup {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.FactSignup, len(m.st.signups))
	copy(out, m.st.signups)
	return out
}
