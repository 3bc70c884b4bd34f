// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the activity star schema API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(model, cfg)

# Endpoints

Health:

	GET /health - Status and row counts

Activities:

	GET  /activities                      - Activities with participant emails
	POST /activities/{name}/signup?email= - Sign a student up now

Analytics:

	GET /star-schema/analytics/activities - Signups and spots left per activity
	GET /star-schema/analytics/students   - Activities per student
	GET /star-schema/analytics/grades     - Participation per grade level

Tables:

	GET  /star-schema/dimensions/students
	GET  /star-schema/dimensions/activities
	GET  /star-schema/dimensions/dates
	GET  /star-schema/facts/signups
	POST /star-schema/signups - Record a signup from JSON

Details:

	GET /star-schema/student/{email}
	GET /star-schema/activity/{name}

Admin (X-Admin-Key when ADMIN_KEY_SALT is set):

	POST /star-schema/load-excel - Upload a workbook
	POST /star-schema/reset      - Empty the model

# Handler Initialization

All handlers share one *star.Model:

	activitiesHandler := handlers.NewActivitiesHandler(model)
	starHandler := handlers.NewStarHandler(model)
	loadHandler := handlers.NewLoadHandler(model)
*/
package router
