package api

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"arkfleet/opsboard/internal/common"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps one upload body. The largest real export seen so far
// is under 8 MB.
const maxUploadBytes = 32 << 20

// IngestHandler handles POST /api/v1/ingest. The file arrives either as a
// multipart form field named "file" or as the raw body with an X-Filename
// header; format detection runs on the filename in both cases.
func (h *Handlers) IngestHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		var filename string
		var body []byte

		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			filename = header.Filename
			body, err = io.ReadAll(file)
			if err != nil {
				common.RespondError(w, initTime, err, "Failed to read upload", http.StatusBadRequest)
				return
			}
		} else {
			filename = r.Header.Get("X-Filename")
			var readErr error
			body, readErr = io.ReadAll(r.Body)
			if readErr != nil {
				common.RespondError(w, initTime, readErr, "Failed to read upload", http.StatusBadRequest)
				return
			}
		}

		if filename == "" {
			common.RespondError(w, initTime, nil, "Filename is required for format detection", http.StatusBadRequest)
			return
		}

		result, err := h.deps.Services.Ingest.Ingest(r.Context(), filename, body)
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Upload ingested", result)
	}
}

// UploadsHandler handles GET /api/v1/ingest/uploads
func (h *Handlers) UploadsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		uploads, err := h.deps.Services.Ingest.RecentUploads(r.Context(), limit)
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Recent uploads", uploads)
	}
}

// ReplaceScheduleHandler handles PUT /api/v1/schedule/{date}. The body is a
// JSON array of schedule records; every existing row for the date is replaced.
func (h *Handlers) ReplaceScheduleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		date := chi.URLParam(r, "date")
		if len(date) != 10 {
			common.RespondError(w, initTime, nil, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to read body", http.StatusBadRequest)
			return
		}

		result, err := h.deps.Services.Ingest.ReplaceSchedule(r.Context(), date, body)
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}

		common.RespondSuccess(w, initTime, "Schedule replaced", result)
	}
}
