package etl

import (
	"testing"
)

func TestNormalizeDate_Formats(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2025-06-03", "2025-06-03", true},
		{"2025/6/3", "2025-06-03", true},
		{"2025-06-03 08:15:00", "2025-06-03", true},
		{"03/06/2025", "2025-06-03", true},
		{"3-6-2025", "2025-06-03", true},
		{"3 Jun 2025", "2025-06-03", true},
		{"3-jun-2025", "2025-06-03", true},
		{"3 June 2025", "2025-06-03", true},
		{"June 3, 2025", "2025-06-03", true},
		{"2 January 2006", "2006-01-02", true},
		{"", "", false},
		{"not a date", "", false},
		{"2025-13-03", "", false},
		{"32/06/2025", "", false},
	}

	for _, c := range cases {
		got, ok := NormalizeDate(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("NormalizeDate(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeDate_DayFirstForAmbiguous(t *testing.T) {
	// 04/05/2025 reads as 4 May, never 5 April.
	got, ok := NormalizeDate("04/05/2025")
	if !ok || got != "2025-05-04" {
		t.Errorf("Expected day-first interpretation 2025-05-04, got %q (ok=%v)", got, ok)
	}
}

func TestNormalizeDate_Idempotent(t *testing.T) {
	first, ok := NormalizeDate("3 Jun 2025")
	if !ok {
		t.Fatal("Expected parse to succeed")
	}
	second, ok := NormalizeDate(first)
	if !ok || second != first {
		t.Errorf("Expected canonical form to round-trip, got %q -> %q", first, second)
	}
}
