// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/activity-star/models"
	"github.com/danielhkuo/activity-star/testutil"
)

func TestActivityAnalyticsHandler(t *testing.T) {
	handler := NewStarHandler(testutil.LoadFixture(t))

	w := httptest.NewRecorder()
	handler.ActivityAnalytics(w, httptest.NewRequest("GET", "/star-schema/analytics/activities", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.ActivityAnalytics
	testutil.AssertJSON(t, w, &resp)

	expected := []struct {
		name      string
		signups   int
		spotsLeft int
	}{
		{"Chess Club", 2, 10},
		{"Programming Class", 1, 19},
		{"Gym Class", 1, 29},
	}
	if len(resp) != len(expected) {
		t.Fatalf("Expected %d rows, got %d", len(expected), len(resp))
	}
	for i, e := range expected {
		if resp[i].ActivityName != e.name || resp[i].CurrentSignups != e.signups || resp[i].SpotsLeft != e.spotsLeft {
			t.Errorf("Row %d: expected %+v, got %+v", i, e, resp[i])
		}
	}
}

func TestStudentAnalyticsHandler(t *testing.T) {
	handler := NewStarHandler(testutil.LoadFixture(t))

	w := httptest.NewRecorder()
	handler.StudentAnalytics(w, httptest.NewRequest("GET", "/star-schema/analytics/students", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.StudentAnalytics
	testutil.AssertJSON(t, w, &resp)

	if len(resp) != 3 {
		t.Fatalf("Expected 3 students, got %d", len(resp))
	}
	emma := resp[1]
	if emma.Email != "emma@mergington.edu" || emma.ActivitiesCount != 2 {
		t.Errorf("Unexpected row for Emma: %+v", emma)
	}
	if len(emma.Activities) != 2 || emma.Activities[0] != "Chess Club" || emma.Activities[1] != "Programming Class" {
		t.Errorf("Expected Emma's activities in signup order, got %v", emma.Activities)
	}
}

func TestGradeParticipationHandler(t *testing.T) {
	handler := NewStarHandler(testutil.LoadFixture(t))

	w := httptest.NewRecorder()
	handler.GradeParticipation(w, httptest.NewRequest("GET", "/star-schema/analytics/grades", nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.GradeParticipation
	testutil.AssertJSON(t, w, &resp)

	if len(resp) != 3 {
		t.Fatalf("Expected 3 grades, got %d", len(resp))
	}
	if resp[0].GradeLevel != 9 || resp[2].GradeLevel != 11 {
		t.Errorf("Expected grades sorted ascending, got %+v", resp)
	}
	if resp[2].TotalSignups != 2 || resp[2].AvgSignupsPerStudent != 2 {
		t.Errorf("Unexpected grade 11 row: %+v", resp[2])
	}
}

func TestDimensionHandlers(t *testing.T) {
	handler := NewStarHandler(testutil.LoadFixture(t))

	t.Run("students", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Students(w, httptest.NewRequest("GET", "/star-schema/dimensions/students", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp []models.DimStudent
		testutil.AssertJSON(t, w, &resp)
		if len(resp) != 3 || resp[0].StudentID != 1 || resp[2].StudentID != 3 {
			t.Errorf("Expected students keyed 1..3 in order, got %+v", resp)
		}
	})

	t.Run("activities", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Activities(w, httptest.NewRequest("GET", "/star-schema/dimensions/activities", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp []models.DimActivity
		testutil.AssertJSON(t, w, &resp)
		if len(resp) != 3 || resp[0].ActivityName != "Chess Club" {
			t.Errorf("Unexpected activities: %+v", resp)
		}
	})

	t.Run("dates", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Dates(w, httptest.NewRequest("GET", "/star-schema/dimensions/dates", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp []models.DimDate
		testutil.AssertJSON(t, w, &resp)
		if len(resp) != 3 {
			t.Fatalf("Expected 3 distinct dates, got %d", len(resp))
		}
		if resp[0].Date != "2024-01-15" || resp[0].Weekday != "Monday" || resp[0].Day != 15 {
			t.Errorf("Unexpected first date: %+v", resp[0])
		}
	})

	t.Run("signups", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Signups(w, httptest.NewRequest("GET", "/star-schema/facts/signups", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp []models.FactSignup
		testutil.AssertJSON(t, w, &resp)
		if len(resp) != 4 {
			t.Fatalf("Expected 4 signups, got %d", len(resp))
		}
		want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		if !resp[0].SignupTimestamp.Equal(want) {
			t.Errorf("Expected midnight timestamp %v, got %v", want, resp[0].SignupTimestamp)
		}
	})
}

func TestStudentDetail(t *testing.T) {
	handler := NewStarHandler(testutil.LoadFixture(t))

	t.Run("known student", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/star-schema/student/emma@mergington.edu", nil)
		req.SetPathValue("email", "emma@mergington.edu")
		w := httptest.NewRecorder()
		handler.StudentDetail(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.StudentDetailResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Student.Name != "Emma Davis" {
			t.Errorf("Expected Emma Davis, got %s", resp.Student.Name)
		}
		if len(resp.Signups) != 2 || resp.Signups[1].ActivityName != "Programming Class" {
			t.Errorf("Unexpected signups: %+v", resp.Signups)
		}
		if resp.Signups[0].SignupDate != "2024-01-16" {
			t.Errorf("Expected signup_date 2024-01-16, got %s", resp.Signups[0].SignupDate)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/star-schema/student/ghost@mergington.edu", nil)
		req.SetPathValue("email", "ghost@mergington.edu")
		w := httptest.NewRecorder()
		handler.StudentDetail(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestActivityDetail(t *testing.T) {
	model := testutil.LoadFixture(t)
	if _, err := model.UpsertActivity("Drama Club", "Stage plays", "Thursdays", 15); err != nil {
		t.Fatal(err)
	}
	handler := NewStarHandler(model)

	tests := []struct {
		name      string
		activity  string
		expected  int
		total     int
		spotsLeft int
	}{
		{"with signups", "Chess Club", http.StatusOK, 2, 10},
		{"without signups", "Drama Club", http.StatusOK, 0, 15},
		{"unknown activity", "Robotics", http.StatusNotFound, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/star-schema/activity/x", nil)
			req.SetPathValue("name", tt.activity)
			w := httptest.NewRecorder()
			handler.ActivityDetail(w, req)

			testutil.AssertStatus(t, w, tt.expected)
			if tt.expected != http.StatusOK {
				return
			}

			var resp models.ActivityDetailResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.TotalSignups != tt.total || resp.SpotsLeft != tt.spotsLeft {
				t.Errorf("Expected total %d / spots %d, got %d / %d", tt.total, tt.spotsLeft, resp.TotalSignups, resp.SpotsLeft)
			}
			if resp.Signups == nil {
				t.Error("Expected an empty signups list, got null")
			}
		})
	}
}

func TestRecordSignupHandler(t *testing.T) {
	tests := []struct {
		name     string
		body     interface{}
		expected int
		date     string
	}{
		{
			name:     "with date",
			body:     models.SignupRequest{StudentEmail: "sophia@mergington.edu", ActivityName: "Chess Club", SignupDate: "2024-02-01"},
			expected: http.StatusCreated,
			date:     "2024-02-01",
		},
		{
			name:     "with timestamp",
			body:     models.SignupRequest{StudentEmail: "sophia@mergington.edu", ActivityName: "Chess Club", SignupDate: "2024-02-01T09:30:00Z"},
			expected: http.StatusCreated,
			date:     "2024-02-01",
		},
		{
			name:     "bad date",
			body:     models.SignupRequest{StudentEmail: "sophia@mergington.edu", ActivityName: "Chess Club", SignupDate: "yesterday"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "bare year is not a date",
			body:     models.SignupRequest{StudentEmail: "sophia@mergington.edu", ActivityName: "Chess Club", SignupDate: "2024"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "small number is not a date",
			body:     models.SignupRequest{StudentEmail: "sophia@mergington.edu", ActivityName: "Chess Club", SignupDate: "1"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "missing email",
			body:     models.SignupRequest{ActivityName: "Chess Club"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "missing activity",
			body:     models.SignupRequest{StudentEmail: "sophia@mergington.edu"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "unknown activity",
			body:     models.SignupRequest{StudentEmail: "sophia@mergington.edu", ActivityName: "Robotics"},
			expected: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := testutil.LoadFixture(t)
			handler := NewStarHandler(model)

			req := testutil.MakeRequest("POST", "/star-schema/signups", tt.body, nil)
			w := httptest.NewRecorder()
			handler.RecordSignup(w, req)

			testutil.AssertStatus(t, w, tt.expected)
			if tt.expected != http.StatusCreated {
				if n := model.Counts().Signups; n != 4 {
					t.Errorf("Expected rejected signup to leave 4 facts, got %d", n)
				}
				return
			}

			signups, err := model.SignupsByStudent("sophia@mergington.edu")
			if err != nil {
				t.Fatal(err)
			}
			last := signups[len(signups)-1]
			if last.ActivityName != "Chess Club" || last.SignupDate != tt.date {
				t.Errorf("Unexpected recorded signup: %+v", last)
			}
		})
	}

	t.Run("invalid JSON", func(t *testing.T) {
		handler := NewStarHandler(testutil.NewTestModel(t))
		req := httptest.NewRequest("POST", "/star-schema/signups", nil)
		w := httptest.NewRecorder()
		handler.RecordSignup(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
