// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the activity star schema server.

The server keeps student activity signups in an in-memory star schema
(students, activities and dates around a signup fact log) and answers
analytics queries over HTTP.

# Starting the Server

With no source configured the model starts empty and is filled by
uploading a workbook:

	go run .

Load a workbook, a CSV directory or a source database at startup:

	go run . -f data/school_activities.xlsx
	go run . -f data/csv
	go run . -d file:school.db -t sqlite
	DATABASE_URL=postgres://... DATABASE_TYPE=postgres go run .

# Configuration

Settings come from a .env file, the environment, then CLI flags:

  - PORT (-p): Server port (default: 3318)
  - DATA_FILE (-f): Workbook or CSV directory loaded at startup
  - DATABASE_URL (-d), DATABASE_TYPE (-t): Source database loaded at startup
  - ADMIN_KEY_SALT (-admin-salt): Secret guarding load and reset
  - MAX_UPLOAD_MB (-max-upload-mb): Upload size limit (default: 10)

Print the admin key for the configured salt:

	go run . -print-admin-key

# Architecture

  - star: The in-memory star schema and its analytics
  - loader: Tabular sources (workbook, CSV) and the load procedure
  - db: SQL source tables (SQLite, PostgreSQL)
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin key guard, JSON helpers
  - models: Dimension, fact, analytics and response types
  - auth: Admin key generation and validation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
