package etl

import (
	"testing"
)

func TestResolve_ExactMatchBeatsCaseInsensitive(t *testing.T) {
	// "driver" only matches the first candidate case-insensitively, but
	// "Driver_Name" matches the second candidate exactly. The whole list
	// is tried exactly before any case folding happens.
	rec := Record{
		"driver":      "case-insensitive hit",
		"Driver_Name": "exact hit",
	}

	val, ok := Resolve(rec, "Driver", "Driver_Name")
	if !ok {
		t.Fatal("Expected a match")
	}
	if val != "exact hit" {
		t.Errorf("Expected exact pass to win, got %v", val)
	}
}

func TestResolve_CandidateOrderWins(t *testing.T) {
	rec := Record{
		"Start_Time":     "08:00",
		"Predicted_Time": "09:00",
	}

	val, ok := Resolve(rec, "Start_Time", "Trip.Start_Time", "Predicted_Time")
	if !ok || val != "08:00" {
		t.Errorf("Expected first candidate to win, got %v (ok=%v)", val, ok)
	}
}

func TestResolve_CaseInsensitiveFallback(t *testing.T) {
	rec := Record{"STATUS": "Complete"}

	val, ok := Resolve(rec, "Status")
	if !ok || val != "Complete" {
		t.Errorf("Expected case-insensitive fallback, got %v (ok=%v)", val, ok)
	}
}

func TestResolve_Missing(t *testing.T) {
	rec := Record{"Other": 1.0}
	if _, ok := Resolve(rec, "Status"); ok {
		t.Error("Expected no match")
	}
	if _, ok := Resolve(nil, "Status"); ok {
		t.Error("Expected no match on nil record")
	}
}

func TestResolveString_Formats(t *testing.T) {
	rec := Record{
		"Name":   "  Amy Poole  ",
		"Count":  3.0,
		"Flag":   true,
		"Absent": nil,
	}

	if got, ok := ResolveString(rec, "Name"); !ok || got != "Amy Poole" {
		t.Errorf("Expected trimmed string, got %q (ok=%v)", got, ok)
	}
	if got, ok := ResolveString(rec, "Count"); !ok || got != "3" {
		t.Errorf("Expected formatted number, got %q (ok=%v)", got, ok)
	}
	if got, ok := ResolveString(rec, "Flag"); !ok || got != "true" {
		t.Errorf("Expected formatted bool, got %q (ok=%v)", got, ok)
	}
	if _, ok := ResolveString(rec, "Absent"); ok {
		t.Error("Expected nil value to resolve as missing")
	}
}

func TestResolveFloat_Currency(t *testing.T) {
	rec := Record{
		"Price":   "£1,250.50",
		"Value":   "$99",
		"Garbage": "N/A",
	}

	if got, ok := ResolveFloat(rec, "Price"); !ok || got != 1250.50 {
		t.Errorf("Expected 1250.50, got %v (ok=%v)", got, ok)
	}
	if got, ok := ResolveFloat(rec, "Value"); !ok || got != 99 {
		t.Errorf("Expected 99, got %v (ok=%v)", got, ok)
	}
	if _, ok := ResolveFloat(rec, "Garbage"); ok {
		t.Error("Expected unparseable price to report not-ok")
	}
}
