// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package star

import (
	"sync"
	"time"

	"github.com/danielhkuo/activity-star/models"
)

// Writer is the set of mutating and natural-key lookup operations a load
// drives. Both *Model and the handle passed to Batch implement it.
type Writer interface {
	UpsertStudent(email, name string, gradeLevel int) (int, error)
	UpsertActivity(activityName, description, schedule string, maxParticipants int) (int, error)
	UpsertDate(date string) (int, error)
	RecordSignup(studentID, activityID, dateID int, ts time.Time) (int, error)
	StudentID(email string) (int, bool)
	ActivityID(activityName string) (int, bool)
	Reset()
}

// Model is the in-memory star schema: three dimension stores and the
// signup fact log. It is safe for concurrent use.
type Model struct {
	mu sync.RWMutex
	st state
}

// state holds the tables. Its methods assume the caller holds the lock.
type state struct {
	students   dimension[models.DimStudent]
	activities dimension[models.DimActivity]
	dates      dimension[models.DimDate]
	signups    []models.FactSignup
}

func newState() state {
	return state{
		students:   newDimension[models.DimStudent](),
		activities: newDimension[models.DimActivity](),
		dates:      newDimension[models.DimDate](),
	}
}

// New returns an empty model
func New() *Model {
	return &Model{st: newState()}
}

// Batch runs fn with the write lock held, so readers observe either none
// or all of its writes
func (m *Model) Batch(fn func(w Writer)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.st)
}

// Reset empties every table and restarts every key space at 1
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st.Reset()
}

func (s *state) Reset() {
	*s = newState()
}

func (m *Model) UpsertStudent(email, name string, gradeLevel int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.UpsertStudent(email, name, gradeLevel)
}

func (m *Model) UpsertActivity(activityName, description, schedule string, maxParticipants int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.UpsertActivity(activityName, description, schedule, maxParticipants)
}

func (m *Model) UpsertDate(date string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.UpsertDate(date)
}

func (m *Model) RecordSignup(studentID, activityID, dateID int, ts time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st.RecordSignup(studentID, activityID, dateID, ts)
}

// Signup resolves a student email and activity name, adds the date of ts
// to the date dimension and records the signup. A zero ts means now.
func (m *Model) Signup(email, activityName string, ts time.Time) (int, error) {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	studentID, ok := m.st.StudentID(email)
	if !ok {
		return 0, &NotFoundError{Dimension: DimensionStudent, Key: email}
	}
	activityID, ok := m.st.ActivityID(activityName)
	if !ok {
		return 0, &NotFoundError{Dimension: DimensionActivity, Key: activityName}
	}
	dateID, err := m.st.UpsertDate(ts.Format(models.DateLayout))
	if err != nil {
		return 0, err
	}
	return m.st.RecordSignup(studentID, activityID, dateID, ts)
}

func (m *Model) StudentID(email string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.StudentID(email)
}

func (m *Model) ActivityID(activityName string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.ActivityID(activityName)
}

// Counts returns the row count of every table
func (m *Model) Counts() models.ModelCounts {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.ModelCounts{
		Students:   m.st.students.len(),
		Activities: m.st.activities.len(),
		Dates:      m.st.dates.len(),
		Signups:    len(m.st.signups),
	}
}
