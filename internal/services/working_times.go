package services

import (
	"fmt"
	"sort"
	"time"

	"arkfleet/opsboard/internal/etl"
)

// timestampLayouts cover the scheduled start/end exports. These carry a full
// date+time, so working-time arithmetic is plain wall-clock subtraction with
// no day-boundary folding.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// ParseTimestamp parses a full date+time string from any known export layout.
func ParseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AdjustedWorkingMinutes applies the punctuality rule to a raw shift length:
// an early finish (negative punctuality) is deducted in full, lateness is
// half-credited, and the result never goes below zero.
func AdjustedWorkingMinutes(rawMinutes, punctuality float64) float64 {
	adjusted := rawMinutes
	if punctuality < 0 {
		adjusted -= -punctuality
	} else {
		adjusted += punctuality / 2
	}
	if adjusted < 0 {
		adjusted = 0
	}
	return adjusted
}

// FormatDotHours renders minutes as the legacy "HH.MM" display format —
// hours and zero-padded minutes joined by a dot, not a colon. The payroll
// importer splits this on the dot, so it must not change.
func FormatDotHours(minutes float64) string {
	total := int(minutes)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d.%02d", total/60, total%60)
}

// WorkingMinutes computes the adjusted shift length between two scheduled
// timestamps. Returns (0, false) if either timestamp fails to parse.
func WorkingMinutes(startRaw, endRaw string, punctuality float64) (float64, bool) {
	start, ok := ParseTimestamp(startRaw)
	if !ok {
		return 0, false
	}
	end, ok := ParseTimestamp(endRaw)
	if !ok {
		return 0, false
	}

	raw := end.Sub(start).Minutes()
	return AdjustedWorkingMinutes(raw, punctuality), true
}

// LastCompletedTaskEnd finds the effective end-of-day for an overnight-route
// driver: that driver's completed trips for the date, sorted by descending
// task sequence, first one's completion timestamp. Returns ("", false) when
// the driver has no completed trip that day.
func LastCompletedTaskEnd(trips []Trip, driver, date string) (string, bool) {
	var candidates []Trip
	for _, t := range trips {
		if t.Driver == driver && t.Date == date && t.IsComplete() && t.Completion != "" {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Sequence > candidates[j].Sequence
	})
	return candidates[0].Completion, true
}

// Punctuality measures how early (negative) or late (positive) an actual
// clock time was against a scheduled one, on the circular 24h clock.
func Punctuality(scheduled, actual string) (float64, bool) {
	return etl.CircularDiffMinutes(scheduled, actual)
}
