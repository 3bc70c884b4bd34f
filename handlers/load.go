// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/activity-star/loader"
	"github.com/danielhkuo/activity-star/middleware"
	"github.com/danielhkuo/activity-star/models"
	"github.com/danielhkuo/activity-star/star"
)

// Multipart parts beyond this stay on disk while parsing
const multipartMemory = 8 << 20

// LoadHandler serves the admin operations that rebuild the model
type LoadHandler struct {
	model *star.Model
}

func NewLoadHandler(model *star.Model) *LoadHandler {
	return &LoadHandler{model: model}
}

// LoadExcel handles POST /star-schema/load-excel
// Accepts a multipart "file" field holding an .xlsx workbook. With
// ?replace=true the model is rebuilt from the workbook alone.
func (h *LoadHandler) LoadExcel(w http.ResponseWriter, r *http.Request) {
	replace := false
	if v := r.URL.Query().Get("replace"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "replace must be true or false")
			return
		}
		replace = parsed
	}

	// The body limit itself is installed by middleware.LimitBody
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
				"Upload exceeds "+humanize.IBytes(uint64(tooLarge.Limit)))
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xlsm" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please upload an Excel file (.xlsx)")
		return
	}

	slog.Info("workbook upload received",
		"filename", header.Filename,
		"size", humanize.Bytes(uint64(header.Size)),
		"replace", replace,
	)

	wb, err := loader.ReadWorkbook(header.Filename, file)
	if err != nil {
		slog.Warn("failed to read workbook", "filename", header.Filename, "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid Excel workbook")
		return
	}
	defer wb.Close()

	report, err := loader.Load(r.Context(), h.model, wb, loader.Options{Replace: replace})
	if err != nil {
		writeModelError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoadResponse{
		Message: "Data loaded successfully",
		Results: report,
	})
}

// Reset handles POST /star-schema/reset
func (h *LoadHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.model.Reset()

	slog.Info("star schema reset")

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Star schema reset",
	})
}
