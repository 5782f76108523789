package services

import (
	"encoding/json"
	"testing"

	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/etl"
	"arkfleet/opsboard/internal/models/entities"
)

func historyRow(van, startLoc, endLoc, start, end string) HistoryRow {
	h := HistoryRow{
		Van:           van,
		StartLocation: startLoc,
		EndLocation:   endLoc,
		StartRaw:      start,
		EndRaw:        end,
	}
	h.StartMinutes, h.HasStart = etl.TimeToMinutes(start)
	h.EndMinutes, h.HasEnd = etl.TimeToMinutes(end)
	return h
}

func TestVansByDriver_CollapsesNames(t *testing.T) {
	assignments := map[string]string{
		"BD71XYZ": "Amy Poole",
		"BD72ABC": "amy  poole",
		"BD73DEF": "Raj Patel",
	}

	byDriver := VansByDriver(assignments)
	if len(byDriver["amypoole"]) != 2 {
		t.Errorf("Expected both vans under the collapsed name, got %v", byDriver["amypoole"])
	}
	if len(byDriver["rajpatel"]) != 1 {
		t.Errorf("Expected one van for Raj Patel, got %v", byDriver["rajpatel"])
	}
}

func TestDepotVisits_MorningWindowOnly(t *testing.T) {
	depot := constants.DefaultDepotAddress
	history := []HistoryRow{
		// In window: depot as start location at 05:00
		historyRow("BD71XYZ", depot, "Customer A", "05:00", "06:30"),
		// In window: depot as end location at 07:45
		historyRow("BD71XYZ", "Customer A", depot, "07:00", "07:45"),
		// Afternoon return to depot: outside the window, ignored
		historyRow("BD71XYZ", "Customer B", depot, "14:00", "15:30"),
		// Different van, never at depot
		historyRow("BD72ABC", "Customer C", "Customer D", "05:00", "06:00"),
	}

	visits := DepotVisits(history, depot)

	visit, ok := visits["BD71XYZ"]
	if !ok || !visit.Found {
		t.Fatal("Expected a depot visit for BD71XYZ")
	}
	if visit.First() != "05:00" {
		t.Errorf("Expected first mention 05:00, got %q", visit.First())
	}
	if visit.Last() != "07:45" {
		t.Errorf("Expected last mention 07:45, got %q", visit.Last())
	}
	if visit.Duration() != "02:45" {
		t.Errorf("Expected duration 02:45, got %q", visit.Duration())
	}

	if _, ok := visits["BD72ABC"]; ok {
		t.Error("Expected no visit for a van that never touched the depot")
	}
}

func TestDepotVisit_Fallbacks(t *testing.T) {
	var missing DepotVisit
	if missing.First() != "N/A" || missing.Last() != "N/A" {
		t.Errorf("Expected N/A fallbacks, got %q / %q", missing.First(), missing.Last())
	}
	if missing.Duration() != "00:00" {
		t.Errorf("Expected 00:00 duration fallback, got %q", missing.Duration())
	}
}

func TestMatchArrival_ToleranceWidening(t *testing.T) {
	assignments := map[string]string{
		"BD71XYZ": "Amy Poole",
		"BD72ABC": "Raj Patel",
	}
	history := []HistoryRow{
		// Amy's van, 50 minutes off: outside the first-pass window
		historyRow("BD71XYZ", "Depot", "Customer A", "09:00", "10:50"),
		// Raj's van, 10 minutes off: would win a free-for-all
		historyRow("BD72ABC", "Depot", "Customer B", "09:00", "10:10"),
	}
	completion := 10 * 60.0 // 10:00

	// First pass honors the driver hint even though another van is closer.
	match := MatchArrival(history, completion, "Amy Poole", assignments)
	if match == nil {
		t.Fatal("Expected a match")
	}
	if match.Pass != 2 {
		t.Errorf("Expected widened pass 2 (Amy outside 20min), got pass %d", match.Pass)
	}
	if match.Row.Van != "BD72ABC" {
		t.Errorf("Expected the closest row once widened, got %q", match.Row.Van)
	}

	// With Amy's van inside the tight window, pass 1 wins despite Raj being closer.
	history[0] = historyRow("BD71XYZ", "Depot", "Customer A", "09:00", "10:15")
	match = MatchArrival(history, completion, "Amy Poole", assignments)
	if match == nil || match.Pass != 1 {
		t.Fatalf("Expected pass 1 match, got %+v", match)
	}
	if match.Row.Van != "BD71XYZ" {
		t.Errorf("Expected the hinted driver's van, got %q", match.Row.Van)
	}

	// Nothing within even the widened window: no match, never a guess.
	match = MatchArrival(history, 20*60.0, "Amy Poole", assignments)
	if match != nil {
		t.Errorf("Expected no match outside both tolerances, got %+v", match)
	}
}

func eventRow(t *testing.T, payload map[string]interface{}) entities.Row {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return entities.Row{Payload: body}
}

func TestFoldAssignments_GapFillAndOverwrite(t *testing.T) {
	rows := []entities.Row{
		// Nameless event opens the day for the van.
		eventRow(t, map[string]interface{}{"Vans": "ARK-BD71XYZ", "Date": "2025-06-03"}),
		// A later event supplies the real name.
		eventRow(t, map[string]interface{}{"Vans": "ARK-BD71XYZ", "Driver": "Amy Poole", "Date": "2025-06-03"}),
		// A nameless event after that never overwrites it.
		eventRow(t, map[string]interface{}{"Vans": "ARK-BD71XYZ", "Date": "2025-06-03"}),
		// A later named event does.
		eventRow(t, map[string]interface{}{"Vans": "ARK-BD72ABC", "Driver": "Raj Patel", "Date": "2025-06-03"}),
		eventRow(t, map[string]interface{}{"Vans": "ARK-BD72ABC", "Driver": "Dana Hughes", "Date": "2025-06-03"}),
		// Never named at all.
		eventRow(t, map[string]interface{}{"Vans": "ARK-BD73DEF", "Date": "2025-06-03"}),
		// Wrong day, filtered out entirely.
		eventRow(t, map[string]interface{}{"Vans": "ARK-BD74GHI", "Driver": "Lee Fox", "Date": "04/06/2025"}),
	}

	assignments := FoldAssignments(rows, "2025-06-03")

	if got := assignments["BD71XYZ"]; got != "Amy Poole" {
		t.Errorf("Expected the later named event to fill the gap, got %q", got)
	}
	if got := assignments["BD72ABC"]; got != "Dana Hughes" {
		t.Errorf("Expected the last named event to win, got %q", got)
	}
	if got := assignments["BD73DEF"]; got != "Unknown" {
		t.Errorf("Expected Unknown for a never-named van, got %q", got)
	}
	if _, ok := assignments["BD74GHI"]; ok {
		t.Error("Expected the other day's event to be filtered out")
	}
	if len(assignments) != 3 {
		t.Errorf("Expected 3 vans, got %d", len(assignments))
	}
}

func TestAssignmentsFromCache_BothBackendShapes(t *testing.T) {
	direct, ok := assignmentsFromCache(map[string]string{"BD71XYZ": "Amy Poole"})
	if !ok || direct["BD71XYZ"] != "Amy Poole" {
		t.Errorf("Expected the in-memory shape to pass through, got %v (ok=%v)", direct, ok)
	}

	// The Redis backend hands back the JSON round-trip shape.
	decoded, ok := assignmentsFromCache(map[string]interface{}{"BD71XYZ": "Amy Poole"})
	if !ok || decoded["BD71XYZ"] != "Amy Poole" {
		t.Errorf("Expected the JSON shape to convert, got %v (ok=%v)", decoded, ok)
	}

	if _, ok := assignmentsFromCache(map[string]interface{}{"BD71XYZ": 12}); ok {
		t.Error("Expected a non-string value to miss")
	}
	if _, ok := assignmentsFromCache("garbage"); ok {
		t.Error("Expected a foreign type to miss")
	}
}
