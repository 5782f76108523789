package services

import (
	"encoding/json"
	"testing"

	"arkfleet/opsboard/internal/models/entities"
)

func rosterRow(t *testing.T, payload map[string]interface{}) entities.Row {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return entities.Row{Payload: body}
}

func TestBuildDirectory_LastWriteWins(t *testing.T) {
	rows := []entities.Row{
		rosterRow(t, map[string]interface{}{"Full_Name": "Amy Poole", "Contractor": "Midland Couriers"}),
		rosterRow(t, map[string]interface{}{"Full_Name": " Amy Poole ", "Contractor": "Foundry Logistics"}),
		rosterRow(t, map[string]interface{}{"Full_Name": "Raj Patel"}),
		rosterRow(t, map[string]interface{}{"Contractor": "No Name Ltd"}),
	}

	directory := BuildDirectory(rows)

	if got := directory["Amy Poole"]; got != "Foundry Logistics" {
		t.Errorf("Expected the later roster row to win, got %q", got)
	}
	if got := directory["Raj Patel"]; got != "Unknown" {
		t.Errorf("Expected Unknown for a missing contractor, got %q", got)
	}
	if len(directory) != 2 {
		t.Errorf("Expected nameless rows to be dropped, directory has %d entries", len(directory))
	}
}

func TestBuildDirectory_SkipsMalformedRows(t *testing.T) {
	rows := []entities.Row{
		{Payload: []byte("not json")},
		rosterRow(t, map[string]interface{}{"Full_Name": "Amy Poole", "Contractor": "Midland Couriers"}),
	}

	directory := BuildDirectory(rows)
	if len(directory) != 1 {
		t.Errorf("Expected malformed row to be skipped, got %d entries", len(directory))
	}
}

func TestRosterAdvisories_FlagsReversedPairs(t *testing.T) {
	directory := map[string]string{
		"Amy Poole": "Midland Couriers",
		"Poole Amy": "Midland Couriers",
		"Raj Patel": "Foundry Logistics",
		"Lone Name": "Foundry Logistics",
	}

	advisories := RosterAdvisories(directory)
	if len(advisories) != 1 {
		t.Fatalf("Expected exactly one advisory (pair reported once), got %d", len(advisories))
	}

	a := advisories[0]
	pair := map[string]bool{a.NameA: true, a.NameB: true}
	if !pair["Amy Poole"] || !pair["Poole Amy"] {
		t.Errorf("Expected the reversed pair, got %+v", a)
	}
}

func TestRosterAdvisories_NoFalsePositives(t *testing.T) {
	directory := map[string]string{
		"Amy Poole": "Midland Couriers",
		"Raj Patel": "Foundry Logistics",
	}
	if advisories := RosterAdvisories(directory); len(advisories) != 0 {
		t.Errorf("Expected no advisories, got %+v", advisories)
	}
}
