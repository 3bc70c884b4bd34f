// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package star

import (
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/activity-star/models"
)

// UpsertStudent returns the key of the student with this email, adding
// the row first if needed. The first write wins: attributes of an
// existing row are left untouched.
func (s *state) UpsertStudent(email, name string, gradeLevel int) (int, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, &ValidationError{Field: "email", Message: "must not be empty"}
	}

	if id, ok := s.students.lookup(email); ok {
		return id, nil
	}

	return s.students.insert(email, func(id int) models.DimStudent {
		return models.DimStudent{
			StudentID:  id,
			Email:      email,
			Name:       name,
			GradeLevel: gradeLevel,
		}
	}), nil
}

// UpsertActivity follows the same first-write-wins contract as UpsertStudent
func (s *state) UpsertActivity(activityName, description, schedule string, maxParticipants int) (int, error) {
	activityName = strings.TrimSpace(activityName)
	if activityName == "" {
		return 0, &ValidationError{Field: "activity_name", Message: "must not be empty"}
	}
	if maxParticipants < 0 {
		return 0, &ValidationError{
			Field:   "max_participants",
			Message: fmt.Sprintf("must be a non-negative integer, got %d", maxParticipants),
		}
	}

	if id, ok := s.activities.lookup(activityName); ok {
		return id, nil
	}

	return s.activities.insert(activityName, func(id int) models.DimActivity {
		return models.DimActivity{
			ActivityID:      id,
			ActivityName:    activityName,
			Description:     description,
			Schedule:        schedule,
			MaxParticipants: maxParticipants,
		}
	}), nil
}

// UpsertDate parses a YYYY-MM-DD date and returns its key. Day, month,
// year and weekday are derived from the date once, on insert.
func (s *state) UpsertDate(date string) (int, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return 0, &ValidationError{Field: "date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", date)}
	}
	key := t.Format(models.DateLayout)

	if id, ok := s.dates.lookup(key); ok {
		return id, nil
	}

	return s.dates.insert(key, func(id int) models.DimDate {
		return models.DimDate{
			DateID:  id,
			Date:    key,
			Day:     t.Day(),
			Month:   int(t.Month()),
			Year:    t.Year(),
			Weekday: t.Weekday().String(),
		}
	}), nil
}

func (s *state) StudentID(email string) (int, bool) {
	return s.students.lookup(strings.TrimSpace(email))
}

func (s *state) ActivityID(activityName string) (int, bool) {
	return s.activities.lookup(strings.TrimSpace(activityName))
}

// StudentByEmail looks a student up by natural key
func (m *Model) StudentByEmail(email string) (models.DimStudent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.st.StudentID(email)
	if !ok {
		return models.DimStudent{}, false
	}
	return m.st.students.get(id)
}

// ActivityByName looks an activity up by natural key
func (m *Model) ActivityByName(activityName string) (models.DimActivity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.st.ActivityID(activityName)
	if !ok {
		return models.DimActivity{}, false
	}
	return m.st.activities.get(id)
}

// Students returns a copy of the student dimension in key order
func (m *Model) Students() []models.DimStudent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.students.snapshot()
}

// Activities returns a copy of the activity dimension in key order
func (m *Model) Activities() []models.DimActivity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.activities.snapshot()
}

// Dates returns a copy of the date dimension in key order
func (m *Model) Dates() []models.DimDate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.dates.snapshot()
}
