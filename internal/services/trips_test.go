package services

import (
	"testing"

	"arkfleet/opsboard/internal/etl"
)

func TestTripFromRecord_AliasResolution(t *testing.T) {
	rec := etl.Record{
		"Driver_Name":    "Amy Poole",
		"Trip_Date":      "03/06/2025",
		"Predicted_Time": "08:15",
		"Status":         "Complete",
		"Price":          "£1,200",
		"Dest_Lat":       52.4,
		"Dest_Lon":       -1.9,
		"Task_Sequence":  3.0,
	}

	trip := TripFromRecord(rec)
	if trip.Driver != "Amy Poole" {
		t.Errorf("Expected driver from alias, got %q", trip.Driver)
	}
	if trip.Date != "2025-06-03" {
		t.Errorf("Expected canonical date, got %q", trip.Date)
	}
	if trip.StartTime != "08:15" {
		t.Errorf("Expected start time from fallback alias, got %q", trip.StartTime)
	}
	if trip.Price == nil || *trip.Price != 1200 {
		t.Errorf("Expected parsed price 1200, got %v", trip.Price)
	}
	if trip.Lat == nil || trip.Lon == nil {
		t.Fatal("Expected coordinates to resolve")
	}
	if trip.Sequence != 3 {
		t.Errorf("Expected sequence 3, got %d", trip.Sequence)
	}
}

func TestTrip_StatusBuckets(t *testing.T) {
	cases := []struct {
		status   string
		complete bool
		failed   bool
	}{
		{"Complete", true, false},
		{"complete", true, false},
		{" COMPLETE ", true, false},
		{"Completed", false, false},
		{"done", false, false},
		{"Failed", false, true},
		{"failure", false, false},
		{"", false, false},
	}

	for _, c := range cases {
		trip := Trip{Status: c.status}
		if trip.IsComplete() != c.complete {
			t.Errorf("IsComplete(%q) = %v, want %v", c.status, trip.IsComplete(), c.complete)
		}
		if trip.IsFailed() != c.failed {
			t.Errorf("IsFailed(%q) = %v, want %v", c.status, trip.IsFailed(), c.failed)
		}
	}
}

func TestTrip_InDateRange(t *testing.T) {
	trip := Trip{Date: "2025-06-03"}

	if !trip.InDateRange("2025-06-01", "2025-06-30") {
		t.Error("Expected date inside range")
	}
	if !trip.InDateRange("", "") {
		t.Error("Expected fully open range to match")
	}
	if !trip.InDateRange("2025-06-03", "2025-06-03") {
		t.Error("Expected inclusive bounds")
	}
	if trip.InDateRange("2025-06-04", "") {
		t.Error("Expected date before open-ended start to miss")
	}

	undated := Trip{}
	if undated.InDateRange("2025-06-01", "2025-06-30") {
		t.Error("Expected a dateless trip to miss a bounded range")
	}
	if !undated.InDateRange("", "") {
		t.Error("Expected a dateless trip to match the fully open range")
	}
}

func TestTrip_IsTwoDayRoute(t *testing.T) {
	if !(Trip{Route: "Glasgow North Loop"}).IsTwoDayRoute() {
		t.Error("Expected Glasgow route to be two-day")
	}
	if !(Trip{Route: "LA+CA Weekly"}).IsTwoDayRoute() {
		t.Error("Expected LA+CA route to be two-day")
	}
	if (Trip{Route: "Birmingham Local"}).IsTwoDayRoute() {
		t.Error("Expected local route to be single-day")
	}
}
