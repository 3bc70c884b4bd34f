// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/activity-star/loader"
	"github.com/danielhkuo/activity-star/middleware"
	"github.com/danielhkuo/activity-star/star"
)

// writeModelError maps model and loader errors onto HTTP status codes
func writeModelError(w http.ResponseWriter, err error) {
	var validationErr *star.ValidationError
	var notFoundErr *star.NotFoundError
	var formatErr *loader.SourceFormatError

	switch {
	case errors.As(err, &validationErr):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFoundErr):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.As(err, &formatErr):
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("unexpected error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
