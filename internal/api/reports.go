package api

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"arkfleet/opsboard/internal/common"
	"arkfleet/opsboard/internal/models/dtos"
)

// snapshotKey builds the cache key for a report endpoint: path plus the
// normalized query string, parameters sorted so equivalent requests share a
// snapshot.
func snapshotKey(r *http.Request) string {
	query := r.URL.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(r.URL.Path)
	for _, k := range keys {
		b.WriteByte('&')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(strings.Join(query[k], ",")))
	}
	return b.String()
}

// serveSnapshot answers from the snapshot cache when possible, otherwise
// computes the report, caches it, and serves the fresh snapshot.
func (h *Handlers) serveSnapshot(w http.ResponseWriter, r *http.Request, report string, compute func() (any, error)) {
	initTime := time.Now()
	key := snapshotKey(r)

	if entry, ok := h.deps.Services.Snapshots.Get(key); ok {
		h.deps.Metrics.ReportsServedTotal.WithLabelValues(report, "hit").Inc()
		common.RespondSnapshot(w, r, entry)
		return
	}

	payload, err := compute()
	if err != nil {
		h.deps.Metrics.ReportsServedTotal.WithLabelValues(report, "error").Inc()
		handleServiceError(w, initTime, err)
		return
	}

	entry, err := h.deps.Services.Snapshots.Put(key, payload)
	if err != nil {
		handleServiceError(w, initTime, err)
		return
	}
	h.deps.Metrics.ReportsServedTotal.WithLabelValues(report, "miss").Inc()
	common.RespondSnapshot(w, r, entry)
}

// SummaryReportHandler handles GET /api/v1/reports/summary
func (h *Handlers) SummaryReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := r.URL.Query().Get("start")
		end := r.URL.Query().Get("end")
		contractor := r.URL.Query().Get("contractor")

		h.serveSnapshot(w, r, "summary", func() (any, error) {
			return h.deps.Services.Reports.GetSummary(r.Context(), start, end, contractor)
		})
	}
}

// FullReportHandler handles GET /api/v1/reports/full
func (h *Handlers) FullReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		r1 := dtos.DateRange{Start: q.Get("start1"), End: q.Get("end1")}
		r2 := dtos.DateRange{Start: q.Get("start2"), End: q.Get("end2")}

		h.serveSnapshot(w, r, "full", func() (any, error) {
			return h.deps.Services.Reports.GetFullReport(r.Context(), r1, r2)
		})
	}
}

// DriverRoutesHandler handles GET /api/v1/reports/driver-routes
func (h *Handlers) DriverRoutesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		driver := r.URL.Query().Get("driver")

		h.serveSnapshot(w, r, "driver-routes", func() (any, error) {
			return h.deps.Services.Routes.GetDriverRoutes(r.Context(), date, driver)
		})
	}
}

// StartTimesHandler handles GET /api/v1/reports/start-times
func (h *Handlers) StartTimesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")

		h.serveSnapshot(w, r, "start-times", func() (any, error) {
			return h.deps.Services.Routes.GetStartTimes(r.Context(), date)
		})
	}
}

// OrderArrivalHandler handles GET /api/v1/reports/order-arrival
func (h *Handlers) OrderArrivalHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		order := r.URL.Query().Get("order")
		date := r.URL.Query().Get("date")
		if order == "" {
			common.RespondError(w, initTime, nil, "order parameter is required", http.StatusBadRequest)
			return
		}

		// Arrival lookups are per-order point queries; caching them would
		// crowd the trips and history snapshots out of the FIFO window.
		arrival, err := h.deps.Services.Routes.GetOrderArrival(r.Context(), order, date)
		if err != nil {
			handleServiceError(w, initTime, err)
			return
		}
		h.deps.Metrics.ArrivalMatchesTotal.WithLabelValues(passLabel(arrival.Pass)).Inc()

		common.RespondSuccess(w, initTime, "Arrival matched", arrival)
	}
}

func passLabel(pass int) string {
	if pass == 1 {
		return "driver_constrained"
	}
	return "widened"
}

// WorkingTimesHandler handles GET /api/v1/reports/working-times
func (h *Handlers) WorkingTimesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := r.URL.Query().Get("start")
		end := r.URL.Query().Get("end")

		h.serveSnapshot(w, r, "working-times", func() (any, error) {
			return h.deps.Services.WorkingTimes.GetWorkingTimes(r.Context(), start, end)
		})
	}
}

// VanChecksHandler handles GET /api/v1/reports/van-checks
func (h *Handlers) VanChecksHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")

		h.serveSnapshot(w, r, "van-checks", func() (any, error) {
			return h.deps.Services.VanChecks.GetVanChecks(r.Context(), date)
		})
	}
}

// RosterAdvisoriesHandler handles GET /api/v1/reports/roster-advisories
func (h *Handlers) RosterAdvisoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveSnapshot(w, r, "roster-advisories", func() (any, error) {
			return h.deps.Services.Reports.GetRosterAdvisories(r.Context())
		})
	}
}
