package etl

import (
	"testing"
)

func TestTimeToMinutes_Fragments(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"08:15", 495, true},
		{"08:15:30", 495.5, true},
		{"2025-06-03 08:15", 495, true},
		{"on or around 9:05", 545, true},
		{"no clock here", 0, false},
		{"", 0, false},
	}

	for _, c := range cases {
		got, ok := TimeToMinutes(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("TimeToMinutes(%q) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestClockFragments_WorkingHoursWindow(t *testing.T) {
	got := ClockFragments("08:00 - 17:30")
	if len(got) != 2 || got[0] != 480 || got[1] != 1050 {
		t.Errorf("Expected [480 1050], got %v", got)
	}

	if got := ClockFragments("closed"); got != nil {
		t.Errorf("Expected nil for no fragments, got %v", got)
	}
}

func TestCircularDiffMinutes_FoldsAtMidnight(t *testing.T) {
	// Shift scheduled 23:30, actually started 00:15 next day: 45 late,
	// not 23h15m early.
	got, ok := CircularDiffMinutes("23:30", "00:15")
	if !ok || got != 45 {
		t.Errorf("Expected 45, got %v (ok=%v)", got, ok)
	}

	got, ok = CircularDiffMinutes("00:15", "23:30")
	if !ok || got != -45 {
		t.Errorf("Expected -45, got %v (ok=%v)", got, ok)
	}

	got, ok = CircularDiffMinutes("08:00", "09:30")
	if !ok || got != 90 {
		t.Errorf("Expected 90, got %v (ok=%v)", got, ok)
	}

	if _, ok := CircularDiffMinutes("garbage", "08:00"); ok {
		t.Error("Expected not-ok for unparseable input")
	}
}

func TestFormatClockDuration_SignOnHours(t *testing.T) {
	if got := FormatClockDuration(95); got != "01:35" {
		t.Errorf("Expected 01:35, got %q", got)
	}
	if got := FormatClockDuration(-90); got != "-1:30" {
		t.Errorf("Expected -1:30, got %q", got)
	}
	// Sub-hour negatives keep the sign; -30 must not read as +30.
	if got := FormatClockDuration(-30); got != "-0:30" {
		t.Errorf("Expected -0:30, got %q", got)
	}
	if got := FormatClockDuration(0); got != "00:00" {
		t.Errorf("Expected 00:00, got %q", got)
	}
}

func TestFormatMinutesOfDay_Wraps(t *testing.T) {
	if got := FormatMinutesOfDay(495); got != "08:15" {
		t.Errorf("Expected 08:15, got %q", got)
	}
	if got := FormatMinutesOfDay(1500); got != "01:00" {
		t.Errorf("Expected 01:00, got %q", got)
	}
	if got := FormatMinutesOfDay(-30); got != "23:30" {
		t.Errorf("Expected 23:30, got %q", got)
	}
}

func TestExtractVanID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ARK-FLT-BD71XYZ", "BD71XYZ"},
		{"BD71XYZ", "BD71XYZ"},
		{" ARK-BD71XYZ ", "BD71XYZ"},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExtractVanID(c.in); got != c.want {
			t.Errorf("ExtractVanID(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	// Idempotent: extracting an already-extracted id is a no-op.
	if got := ExtractVanID(ExtractVanID("ARK-FLT-BD71XYZ")); got != "BD71XYZ" {
		t.Errorf("Expected idempotent extraction, got %q", got)
	}
}
