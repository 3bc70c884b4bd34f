// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/activity-star/middleware"
	"github.com/danielhkuo/activity-star/models"
	"github.com/danielhkuo/activity-star/star"
)

// ActivitiesHandler serves the activity listing and signup endpoints
// used by the school's front page
type ActivitiesHandler struct {
	model *star.Model
}

func NewActivitiesHandler(model *star.Model) *ActivitiesHandler {
	return &ActivitiesHandler{model: model}
}

// ListActivities handles GET /activities
// Returns activities keyed by name with the emails of signed-up students
func (h *ActivitiesHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	listing := make(map[string]models.ActivityListing)

	for _, a := range h.model.Activities() {
		signups, err := h.model.SignupsByActivity(a.ActivityName)
		if err != nil {
			// Activity removed by a concurrent reset
			continue
		}

		participants := make([]string, 0, len(signups))
		for _, s := range signups {
			participants = append(participants, s.StudentEmail)
		}

		listing[a.ActivityName] = models.ActivityListing{
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    participants,
		}
	}

	middleware.JSONResponse(w, http.StatusOK, listing)
}

// Signup handles POST /activities/{name}/signup?email=
func (h *ActivitiesHandler) Signup(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("name")
	email := r.URL.Query().Get("email")
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}

	factID, err := h.model.Signup(email, activityName, time.Time{})
	if err != nil {
		writeModelError(w, err)
		return
	}

	slog.Info("signup recorded", "fact_signup_id", factID, "activity", activityName)

	middleware.JSONResponse(w, http.StatusOK, models.SignupResponse{
		Message:      fmt.Sprintf("Signed up %s for %s", email, activityName),
		FactSignupID: factID,
	})
}
