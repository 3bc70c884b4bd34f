// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/activity-star/cliparse"
	"github.com/danielhkuo/activity-star/handlers"
	"github.com/danielhkuo/activity-star/middleware"
	"github.com/danielhkuo/activity-star/models"
	"github.com/danielhkuo/activity-star/star"
)

func NewRouter(model *star.Model, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	activitiesHandler := handlers.NewActivitiesHandler(model)
	starHandler := handlers.NewStarHandler(model)
	loadHandler := handlers.NewLoadHandler(model)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{
			Status: "ok",
			Counts: model.Counts(),
		})
	})

	// Activity listing and signup
	mux.HandleFunc("GET /activities", middleware.WithLogging(activitiesHandler.ListActivities))
	mux.HandleFunc("POST /activities/{name}/signup", middleware.WithLogging(activitiesHandler.Signup))

	// Analytics
	mux.HandleFunc("GET /star-schema/analytics/activities", middleware.WithLogging(starHandler.ActivityAnalytics))
	mux.HandleFunc("GET /star-schema/analytics/students", middleware.WithLogging(starHandler.StudentAnalytics))
	mux.HandleFunc("GET /star-schema/analytics/grades", middleware.WithLogging(starHandler.GradeParticipation))

	// Raw tables
	mux.HandleFunc("GET /star-schema/dimensions/students", middleware.WithLogging(starHandler.Students))
	mux.HandleFunc("GET /star-schema/dimensions/activities", middleware.WithLogging(starHandler.Activities))
	mux.HandleFunc("GET /star-schema/dimensions/dates", middleware.WithLogging(starHandler.Dates))
	mux.HandleFunc("GET /star-schema/facts/signups", middleware.WithLogging(starHandler.Signups))
	mux.HandleFunc("POST /star-schema/signups", middleware.WithLogging(starHandler.RecordSignup))

	// Details
	mux.HandleFunc("GET /star-schema/student/{email}", middleware.WithLogging(starHandler.StudentDetail))
	mux.HandleFunc("GET /star-schema/activity/{name}", middleware.WithLogging(starHandler.ActivityDetail))

	// Admin operations (X-Admin-Key when a salt is configured)
	mux.HandleFunc("POST /star-schema/load-excel",
		middleware.LimitBody(cfg.MaxUploadBytes(),
			middleware.WithLogging(middleware.RequireAdminKey(cfg.AdminKeySalt, loadHandler.LoadExcel))))
	mux.HandleFunc("POST /star-schema/reset",
		middleware.WithLogging(middleware.RequireAdminKey(cfg.AdminKeySalt, loadHandler.Reset)))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("activity-star API v1"))
	})

	return mux
}
