package services

import (
	"strings"

	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/etl"
	"arkfleet/opsboard/internal/models/entities"
)

// Trip is the normalized view of one trip blob. Alias resolution happens
// exactly once, here; downstream aggregation never touches raw records.
// Optional fields stay as pointers so "absent" and "zero" don't blur.
type Trip struct {
	OrderNumber  string
	Driver       string
	Contractor   string
	Date         string // canonical YYYY-MM-DD, empty when unparseable
	StartTime    string
	EndTime      string
	Arrival      string
	Completion   string
	Status       string
	Postcode     string
	Auction      string
	Price        *float64
	Notes        string
	Lat          *float64
	Lon          *float64
	Route        string
	Sequence     int
	WorkingHours string
}

// TripFromRecord resolves a raw record into a Trip. Fields that fail to
// resolve stay zero-valued; the record is still usable for any aggregate
// whose inputs did resolve.
func TripFromRecord(rec etl.Record) Trip {
	var t Trip

	t.OrderNumber, _ = etl.ResolveString(rec, constants.AliasOrderNo...)
	t.Driver, _ = etl.ResolveString(rec, constants.AliasDriver...)
	t.StartTime, _ = etl.ResolveString(rec, constants.AliasStartTime...)
	t.EndTime, _ = etl.ResolveString(rec, constants.AliasEndTime...)
	t.Arrival, _ = etl.ResolveString(rec, constants.AliasArrival...)
	t.Completion, _ = etl.ResolveString(rec, constants.AliasCompletion...)
	t.Status, _ = etl.ResolveString(rec, constants.AliasStatus...)
	t.Postcode, _ = etl.ResolveString(rec, constants.AliasPostcode...)
	t.Auction, _ = etl.ResolveString(rec, constants.AliasAuction...)
	t.Notes, _ = etl.ResolveString(rec, constants.AliasNotes...)
	t.Route, _ = etl.ResolveString(rec, constants.AliasRoute...)
	t.WorkingHours, _ = etl.ResolveString(rec, constants.AliasWorkHours...)

	if raw, ok := etl.ResolveString(rec, constants.AliasDate...); ok {
		if date, ok := etl.NormalizeDate(raw); ok {
			t.Date = date
		}
	}

	if price, ok := etl.ResolveFloat(rec, constants.AliasPrice...); ok {
		t.Price = &price
	}
	if lat, ok := etl.ResolveFloat(rec, constants.AliasLat...); ok {
		t.Lat = &lat
	}
	if lon, ok := etl.ResolveFloat(rec, constants.AliasLon...); ok {
		t.Lon = &lon
	}
	if seq, ok := etl.ResolveFloat(rec, constants.AliasSequence...); ok {
		t.Sequence = int(seq)
	}

	return t
}

// TripsFromRows decodes and normalizes a scanned table. Malformed payloads
// are skipped, never fatal; skipped counts feed a metric at the caller.
func TripsFromRows(rows []entities.Row) (trips []Trip, skipped int) {
	for i := range rows {
		rec, err := rows[i].Decode()
		if err != nil {
			skipped++
			continue
		}
		trips = append(trips, TripFromRecord(rec))
	}
	return trips, skipped
}

// IsComplete reports whether the trip's status reads complete. Only an exact
// case-insensitive match counts; "Completed" or "done" fall into neither
// bucket and contribute to the total only.
func (t Trip) IsComplete() bool {
	return strings.EqualFold(strings.TrimSpace(t.Status), "complete")
}

// IsFailed mirrors IsComplete for the failed bucket.
func (t Trip) IsFailed() bool {
	return strings.EqualFold(strings.TrimSpace(t.Status), "failed")
}

// InDateRange reports whether the trip's canonical date falls inside the
// inclusive range. Empty bounds are open; a trip with no parsed date never
// matches a bounded range.
func (t Trip) InDateRange(start, end string) bool {
	if t.Date == "" {
		return start == "" && end == ""
	}
	if start != "" && t.Date < start {
		return false
	}
	if end != "" && t.Date > end {
		return false
	}
	return true
}

// IsTwoDayRoute reports whether the trip's route belongs to one of the
// overnight calendar categories.
func (t Trip) IsTwoDayRoute() bool {
	for _, name := range constants.TwoDayRoutes {
		if strings.Contains(t.Route, name) {
			return true
		}
	}
	return false
}
