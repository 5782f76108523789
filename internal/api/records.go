package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"arkfleet/opsboard/internal/common"
	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/models/entities"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Raw record admin surface. These endpoints expose the blob store directly
// for operator fixes; they bypass normalization on purpose.

type recordView struct {
	ID        string          `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

func viewOf(row entities.Row) recordView {
	return recordView{ID: row.ID, Payload: json.RawMessage(row.Payload), CreatedAt: row.CreatedAt}
}

// ListRecordsHandler handles GET /api/v1/records/{table}
func (h *Handlers) ListRecordsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		table := chi.URLParam(r, "table")

		rows, err := h.deps.Repo.Blob.ScanTable(r.Context(), table)
		if err != nil {
			respondStorageError(w, initTime, err)
			return
		}

		views := make([]recordView, 0, len(rows))
		for _, row := range rows {
			views = append(views, viewOf(row))
		}
		common.RespondSuccess(w, initTime, "Records fetched", views)
	}
}

// GetRecordHandler handles GET /api/v1/records/{table}/{id}
func (h *Handlers) GetRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		table := chi.URLParam(r, "table")
		id := chi.URLParam(r, "id")

		row, err := h.deps.Repo.Blob.GetByID(r.Context(), table, id)
		if err != nil {
			respondStorageError(w, initTime, err)
			return
		}
		if row == nil {
			common.RespondError(w, initTime, nil, constants.GetErrorMessage(constants.ErrCodeRecordNotFound), http.StatusNotFound)
			return
		}
		common.RespondSuccess(w, initTime, "Record fetched", viewOf(*row))
	}
}

// CreateRecordHandler handles POST /api/v1/records/{table}
func (h *Handlers) CreateRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		table := chi.URLParam(r, "table")

		payload, ok := readJSONPayload(w, r, initTime)
		if !ok {
			return
		}

		id := r.URL.Query().Get("id")
		if id == "" {
			id = uuid.NewString()
		}

		if err := h.deps.Repo.Blob.Insert(r.Context(), table, id, payload); err != nil {
			respondStorageError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Record created", map[string]string{"id": id}, http.StatusCreated)
	}
}

// UpdateRecordHandler handles PUT /api/v1/records/{table}/{id}
func (h *Handlers) UpdateRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		table := chi.URLParam(r, "table")
		id := chi.URLParam(r, "id")

		payload, ok := readJSONPayload(w, r, initTime)
		if !ok {
			return
		}

		if err := h.deps.Repo.Blob.Update(r.Context(), table, id, payload); err != nil {
			respondStorageError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Record updated", map[string]string{"id": id})
	}
}

// DeleteRecordHandler handles DELETE /api/v1/records/{table}/{id}
func (h *Handlers) DeleteRecordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		table := chi.URLParam(r, "table")
		id := chi.URLParam(r, "id")

		if err := h.deps.Repo.Blob.Delete(r.Context(), table, id); err != nil {
			respondStorageError(w, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Record deleted", nil)
	}
}

// readJSONPayload reads and validates the request body as a JSON object.
func readJSONPayload(w http.ResponseWriter, r *http.Request, initTime time.Time) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		common.RespondError(w, initTime, err, "Failed to read body", http.StatusBadRequest)
		return nil, false
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err != nil {
		common.RespondError(w, initTime, nil, "Payload must be a JSON object", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}
