// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package star

import (
	"sort"

	"github.com/danielhkuo/activity-star/models"
)

// ActivityAnalytics returns one row per activity in key order. Signup
// counts come from a single scan of the fact log grouped by activity_id.
func (m *Model) ActivityAnalytics() []models.ActivityAnalytics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[int]int)
	for _, f := range m.st.signups {
		counts[f.ActivityID]++
	}

	out := make([]models.ActivityAnalytics, 0, m.st.activities.len())
	for _, a := range m.st.activities.rows {
		current := counts[a.ActivityID]
		out = append(out, models.ActivityAnalytics{
			ActivityID:      a.ActivityID,
			ActivityName:    a.ActivityName,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			CurrentSignups:  current,
			SpotsLeft:       a.MaxParticipants - current,
		})
	}
	return out
}

// StudentAnalytics returns one row per student in key order, listing the
// activities signed up for in fact order
func (m *Model) StudentAnalytics() []models.StudentAnalytics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make(map[int][]string)
	for _, f := range m.st.signups {
		if a, ok := m.st.activities.get(f.ActivityID); ok {
			names[f.StudentID] = append(names[f.StudentID], a.ActivityName)
		}
	}

	out := make([]models.StudentAnalytics, 0, m.st.students.len())
	for _, s := range m.st.students.rows {
		activities := names[s.StudentID]
		if activities == nil {
			activities = []string{}
		}
		out = append(out, models.StudentAnalytics{
			StudentID:       s.StudentID,
			StudentName:     s.Name,
			Email:           s.Email,
			GradeLevel:      s.GradeLevel,
			ActivitiesCount: len(activities),
			Activities:      activities,
		})
	}
	return out
}

// GradeParticipation summarizes signups per grade level, counting only
// students with at least one signup. Rows are sorted by grade.
func (m *Model) GradeParticipation() []models.GradeParticipation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type tally struct {
		students map[int]struct{}
		signups  int
	}
	byGrade := make(map[int]*tally)
	for _, f := range m.st.signups {
		s, ok := m.st.students.get(f.StudentID)
		if !ok {
			continue
		}
		t := byGrade[s.GradeLevel]
		if t == nil {
			t = &tally{students: make(map[int]struct{})}
			byGrade[s.GradeLevel] = t
		}
		t.students[s.StudentID] = struct{}{}
		t.signups++
	}

	out := make([]models.GradeParticipation, 0, len(byGrade))
	for grade, t := range byGrade {
		out = append(out, models.GradeParticipation{
			GradeLevel:           grade,
			UniqueStudents:       len(t.students),
			TotalSignups:         t.signups,
			AvgSignupsPerStudent: float64(t.signups) / float64(len(t.students)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GradeLevel < out[j].GradeLevel
	})
	return out
}

// SignupsByStudent lists a student's signups in fact order. It fails with
// *NotFoundError only when the email is unknown; a student without
// signups yields an empty slice.
func (m *Model) SignupsByStudent(email string) ([]models.StudentSignup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	studentID, ok := m.st.StudentID(email)
	if !ok {
		return nil, &NotFoundError{Dimension: DimensionStudent, Key: email}
	}

	out := []models.StudentSignup{}
	for _, f := range m.st.signups {
		if f.StudentID != studentID {
			continue
		}
		a, _ := m.st.activities.get(f.ActivityID)
		d, _ := m.st.dates.get(f.DateID)
		out = append(out, models.StudentSignup{
			FactSignupID:    f.FactSignupID,
			ActivityName:    a.ActivityName,
			SignupDate:      d.Date,
			SignupTimestamp: f.SignupTimestamp,
		})
	}
	return out, nil
}

// SignupsByActivity is the activity-side counterpart of SignupsByStudent
func (m *Model) SignupsByActivity(activityName string) ([]models.ActivitySignup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	activityID, ok := m.st.ActivityID(activityName)
	if !ok {
		return nil, &NotFoundError{Dimension: DimensionActivity, Key: activityName}
	}

	out := []models.ActivitySignup{}
	for _, f := range m.st.signups {
		if f.ActivityID != activityID {
			continue
		}
		s, _ := m.st.students.get(f.StudentID)
		d, _ := m.st.dates.get(f.DateID)
		out = append(out, models.ActivitySignup{
			FactSignupID:    f.FactSignupID,
			StudentName:     s.Name,
			StudentEmail:    s.Email,
			GradeLevel:      s.GradeLevel,
			SignupDate:      d.Date,
			SignupTimestamp: f.SignupTimestamp,
		})
	}
	return out, nil
}
