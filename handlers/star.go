// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/activity-star/loader"
	"github.com/danielhkuo/activity-star/middleware"
	"github.com/danielhkuo/activity-star/models"
	"github.com/danielhkuo/activity-star/star"
)

// StarHandler exposes the star schema: analytics, raw dimension and fact
// tables, and per-student / per-activity details
type StarHandler struct {
	model *star.Model
}

func NewStarHandler(model *star.Model) *StarHandler {
	return &StarHandler{model: model}
}

// ActivityAnalytics handles GET /star-schema/analytics/activities
func (h *StarHandler) ActivityAnalytics(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.model.ActivityAnalytics())
}

// StudentAnalytics handles GET /star-schema/analytics/students
func (h *StarHandler) StudentAnalytics(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.model.StudentAnalytics())
}

// GradeParticipation handles GET /star-schema/analytics/grades
func (h *StarHandler) GradeParticipation(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.model.GradeParticipation())
}

// Students handles GET /star-schema/dimensions/students
func (h *StarHandler) Students(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.model.Students())
}

// Activities handles GET /star-schema/dimensions/activities
func (h *StarHandler) Activities(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.model.Activities())
}

// Dates handles GET /star-schema/dimensions/dates
func (h *StarHandler) Dates(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.model.Dates())
}

// Signups handles GET /star-schema/facts/signups
func (h *StarHandler) Signups(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.model.Signups())
}

// StudentDetail handles GET /star-schema/student/{email}
func (h *StarHandler) StudentDetail(w http.ResponseWriter, r *http.Request) {
	email := r.PathValue("email")

	student, ok := h.model.StudentByEmail(email)
	if !ok {
		writeModelError(w, &star.NotFoundError{Dimension: star.DimensionStudent, Key: email})
		return
	}

	signups, err := h.model.SignupsByStudent(email)
	if err != nil {
		writeModelError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.StudentDetailResponse{
		Student: student,
		Signups: signups,
	})
}

// ActivityDetail handles GET /star-schema/activity/{name}
func (h *StarHandler) ActivityDetail(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	activity, ok := h.model.ActivityByName(name)
	if !ok {
		writeModelError(w, &star.NotFoundError{Dimension: star.DimensionActivity, Key: name})
		return
	}

	signups, err := h.model.SignupsByActivity(name)
	if err != nil {
		writeModelError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ActivityDetailResponse{
		Activity:     activity,
		Signups:      signups,
		TotalSignups: len(signups),
		SpotsLeft:    activity.MaxParticipants - len(signups),
	})
}

// RecordSignup handles POST /star-schema/signups
// Records a signup by natural keys, optionally on a given date
func (h *StarHandler) RecordSignup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StudentEmail == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "student_email is required")
		return
	}
	if req.ActivityName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "activity_name is required")
		return
	}

	var ts time.Time
	if req.SignupDate != "" {
		date, parsed, err := loader.ParseSignupDate(req.SignupDate)
		if err != nil {
			writeModelError(w, err)
			return
		}
		ts = parsed
		if ts.IsZero() {
			// Date only: midnight UTC
			ts, _ = time.Parse(models.DateLayout, date)
		}
	}

	factID, err := h.model.Signup(req.StudentEmail, req.ActivityName, ts)
	if err != nil {
		writeModelError(w, err)
		return
	}

	slog.Info("signup recorded", "fact_signup_id", factID, "activity", req.ActivityName)

	middleware.JSONResponse(w, http.StatusCreated, models.SignupResponse{
		Message:      fmt.Sprintf("Signed up %s for %s", req.StudentEmail, req.ActivityName),
		FactSignupID: factID,
	})
}
