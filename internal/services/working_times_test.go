package services

import (
	"testing"
)

func TestAdjustedWorkingMinutes_PunctualityRule(t *testing.T) {
	// Early finish deducted in full
	if got := AdjustedWorkingMinutes(480, -30); got != 450 {
		t.Errorf("Expected 450 for 30min early, got %v", got)
	}
	// Lateness half-credited
	if got := AdjustedWorkingMinutes(480, 60); got != 510 {
		t.Errorf("Expected 510 for 60min late, got %v", got)
	}
	// On time
	if got := AdjustedWorkingMinutes(480, 0); got != 480 {
		t.Errorf("Expected 480 for on-time, got %v", got)
	}
	// Never below zero
	if got := AdjustedWorkingMinutes(60, -120); got != 0 {
		t.Errorf("Expected clamp to zero, got %v", got)
	}
}

func TestFormatDotHours(t *testing.T) {
	cases := []struct {
		minutes float64
		want    string
	}{
		{510, "08.30"},
		{480, "08.00"},
		{59, "00.59"},
		{0, "00.00"},
		{-15, "00.00"},
		{605.9, "10.05"},
	}
	for _, c := range cases {
		if got := FormatDotHours(c.minutes); got != c.want {
			t.Errorf("FormatDotHours(%v) = %q, want %q", c.minutes, got, c.want)
		}
	}
}

func TestWorkingMinutes_EndToEnd(t *testing.T) {
	got, ok := WorkingMinutes("2025-06-03 08:00:00", "2025-06-03 17:00:00", 30)
	if !ok {
		t.Fatal("Expected timestamps to parse")
	}
	// 540 raw + half of 30 late
	if got != 555 {
		t.Errorf("Expected 555, got %v", got)
	}

	if _, ok := WorkingMinutes("garbage", "2025-06-03 17:00:00", 0); ok {
		t.Error("Expected not-ok for an unparseable start")
	}
}

func TestLastCompletedTaskEnd_PicksHighestSequence(t *testing.T) {
	trips := []Trip{
		{Driver: "Amy Poole", Date: "2025-06-03", Status: "Complete", Sequence: 2, Completion: "2025-06-03 14:00:00"},
		{Driver: "Amy Poole", Date: "2025-06-03", Status: "Complete", Sequence: 7, Completion: "2025-06-03 19:30:00"},
		{Driver: "Amy Poole", Date: "2025-06-03", Status: "Failed", Sequence: 9, Completion: "2025-06-03 20:00:00"},
		{Driver: "Amy Poole", Date: "2025-06-04", Status: "Complete", Sequence: 11, Completion: "2025-06-04 09:00:00"},
		{Driver: "Raj Patel", Date: "2025-06-03", Status: "Complete", Sequence: 12, Completion: "2025-06-03 21:00:00"},
	}

	end, ok := LastCompletedTaskEnd(trips, "Amy Poole", "2025-06-03")
	if !ok {
		t.Fatal("Expected a completed task")
	}
	if end != "2025-06-03 19:30:00" {
		t.Errorf("Expected the highest completed sequence, got %q", end)
	}

	if _, ok := LastCompletedTaskEnd(trips, "Amy Poole", "2025-06-05"); ok {
		t.Error("Expected no result for a day with no completed trips")
	}
}

func TestPunctuality_MidnightFold(t *testing.T) {
	got, ok := Punctuality("23:45", "00:10")
	if !ok || got != 25 {
		t.Errorf("Expected 25 minutes late across midnight, got %v (ok=%v)", got, ok)
	}
}
