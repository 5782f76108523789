package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"arkfleet/opsboard/internal/common"
)

// shareableReports names the endpoints a share token may unlock.
var shareableReports = map[string]bool{
	"summary":           true,
	"full":              true,
	"working-times":     true,
	"van-checks":        true,
	"roster-advisories": true,
}

const shareTokenTTL = 15 * time.Minute

// ShareReportHandler handles POST /api/v1/reports/share. Admins mint a
// single-use link a contractor can open without credentials.
func (h *Handlers) ShareReportHandler() http.HandlerFunc {
	type shareRequest struct {
		Report string `json:"report"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req shareRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !shareableReports[req.Report] {
			common.RespondError(w, initTime, nil, "Unknown or missing report name", http.StatusBadRequest)
			return
		}

		token, err := h.deps.Services.LinkSigner.GenerateShareToken(req.Report, shareTokenTTL)
		if err != nil {
			common.RespondError(w, initTime, err, "Failed to generate token", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, initTime, "Share link generated", map[string]any{
			"url":        "/api/v1/reports/shared?token=" + url.QueryEscape(token),
			"expires_in": int(shareTokenTTL.Seconds()),
		})
	}
}

// SharedReportHandler handles GET /api/v1/reports/shared. The token is
// validated, burned, and the named report is served as if freshly requested.
func (h *Handlers) SharedReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		link, err := h.deps.Services.LinkSigner.ValidateShareToken(r.Context(), r.URL.Query().Get("token"))
		if err != nil {
			common.RespondError(w, initTime, nil, "Invalid or expired share link", http.StatusUnauthorized)
			return
		}
		h.deps.Services.LinkSigner.MarkTokenAsUsed(link.TokenID)

		switch link.Report {
		case "summary":
			h.SummaryReportHandler()(w, r)
		case "full":
			h.FullReportHandler()(w, r)
		case "working-times":
			h.WorkingTimesHandler()(w, r)
		case "van-checks":
			h.VanChecksHandler()(w, r)
		case "roster-advisories":
			h.RosterAdvisoriesHandler()(w, r)
		default:
			common.RespondError(w, initTime, nil, "Unknown report", http.StatusNotFound)
		}
	}
}
