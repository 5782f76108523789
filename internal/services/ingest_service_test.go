package services

import (
	"testing"

	"arkfleet/opsboard/internal/constants"
	"arkfleet/opsboard/internal/etl"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		filename string
		want     UploadFormat
		ok       bool
	}{
		{"drivers_report_june.json", FormatRoster, true},
		{"Weekly Roster v2.json", FormatRoster, true},
		{"trip_history_2025-06-03.csv", FormatTripHistory, true},
		{"schedule_trips_export.json", FormatSchedule, true},
		{"event_stream_dump.json", FormatEventStream, true},
		{"van_checks_monday.json", FormatVanChecks, true},
		{"copy_of_tomorrow_trips.json", FormatTodayLive, true},
		{"live_feed.json", FormatTodayLive, true},
		{"quarterly_accounts.xlsx", "", false},
	}

	for _, c := range cases {
		got, ok := DetectFormat(c.filename)
		if ok != c.ok || got != c.want {
			t.Errorf("DetectFormat(%q) = (%q, %v), want (%q, %v)", c.filename, got, ok, c.want, c.ok)
		}
	}
}

func TestParseJSON_ArrayAndObject(t *testing.T) {
	records, skipped, err := parseJSON([]byte(`[{"Driver": "Amy"}, 42, {"Driver": "Raj"}]`))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 2 || skipped != 1 {
		t.Errorf("Expected 2 records and 1 skipped, got %d/%d", len(records), skipped)
	}

	records, skipped, err = parseJSON([]byte(`{"Driver": "Amy"}`))
	if err != nil || len(records) != 1 || skipped != 0 {
		t.Errorf("Expected single object to parse, got %d/%d (err=%v)", len(records), skipped, err)
	}

	if _, _, err := parseJSON([]byte(`[not json`)); err == nil {
		t.Error("Expected error for malformed body")
	}

	records, _, err = parseJSON(nil)
	if err != nil || records != nil {
		t.Errorf("Expected empty body to yield nothing, got %v (err=%v)", records, err)
	}
}

func TestParseCSV_PadsShortRows(t *testing.T) {
	body := []byte("Vans, Trip Start Time ,Trip End Time\nARK-BD71XYZ,05:00,07:45\nARK-BD72ABC,06:00\n")

	records, skipped, err := parseCSV(body)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("Expected no skipped rows, got %d", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	// Headers come through trimmed
	if got, _ := etl.ResolveString(records[0], "Trip Start Time"); got != "05:00" {
		t.Errorf("Expected trimmed header to resolve, got %q", got)
	}
	// Short row padded with empty string
	if val, ok := records[1]["Trip End Time"]; !ok || val != "" {
		t.Errorf("Expected padded empty value, got %v (ok=%v)", val, ok)
	}
}

func TestRowID_NaturalKeyOrUUID(t *testing.T) {
	rec := etl.Record{"Order_Number": "ORD-1001"}
	if got := rowID(FormatSchedule, rec); got != "ORD-1001" {
		t.Errorf("Expected natural key, got %q", got)
	}

	// No natural key configured for trip history: always a fresh UUID.
	a := rowID(FormatTripHistory, rec)
	b := rowID(FormatTripHistory, rec)
	if a == b || len(a) != 36 {
		t.Errorf("Expected distinct UUIDs, got %q and %q", a, b)
	}

	// Natural key missing from the record: fall back to UUID.
	if got := rowID(FormatSchedule, etl.Record{}); len(got) != 36 {
		t.Errorf("Expected UUID fallback, got %q", got)
	}
}

func TestStampCanonicalDate(t *testing.T) {
	rec := etl.Record{"Trip_Date": "03/06/2025"}
	stampCanonicalDate(rec)
	if rec["Date"] != "2025-06-03" {
		t.Errorf("Expected canonical Date stamp, got %v", rec["Date"])
	}

	rec = etl.Record{"Date": "2025-06-03"}
	stampCanonicalDate(rec)
	if rec["Date"] != "2025-06-03" {
		t.Errorf("Expected already-canonical date to stay, got %v", rec["Date"])
	}

	// No resolvable date: nothing is invented.
	rec = etl.Record{"Order_Number": "ORD-1001"}
	stampCanonicalDate(rec)
	if _, ok := rec["Date"]; ok {
		t.Errorf("Expected no Date stamp, got %v", rec["Date"])
	}
}

func TestFormatTables_CoverKnownTables(t *testing.T) {
	for format, table := range formatTables {
		if _, ok := constants.KnownTables[table]; !ok {
			t.Errorf("Format %q targets unknown table %q", format, table)
		}
	}
}
