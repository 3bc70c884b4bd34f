// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the activity star schema.

# Handler Types

Each handler is a struct holding the shared *star.Model:

  - ActivitiesHandler: Activity listing and signup by email
  - StarHandler: Analytics, raw tables, details and JSON signups
  - LoadHandler: Workbook upload and reset (admin)

	starHandler := handlers.NewStarHandler(model)
	loadHandler := handlers.NewLoadHandler(model)

# Loading Data

	POST /star-schema/load-excel            → merge a workbook into the model
	POST /star-schema/load-excel?replace=true → rebuild the model from it
	POST /star-schema/reset                 → empty the model

The upload is a multipart form with the workbook in the "file" field.
Row-level problems come back in results.errors; a missing sheet fails
the whole load with 422 and leaves the model untouched.

# Error Mapping

	*star.ValidationError     → 400
	*star.NotFoundError       → 404
	*loader.SourceFormatError → 422
	anything else             → 500
*/
package handlers
