package etl

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var clockFragment = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)

// TimeToMinutes extracts the first HH:MM or HH:MM:SS fragment from the input
// and returns it as fractional minutes since midnight. A leading date token
// ("2025-06-03 08:15") is tolerated and discarded. Returns (0, false) when no
// clock fragment is present.
func TimeToMinutes(raw string) (float64, bool) {
	m := clockFragment.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds := 0
	if m[3] != "" {
		seconds, _ = strconv.Atoi(m[3])
	}

	total := float64(hours)*60 + float64(minutes) + float64(seconds)/60
	if math.IsInf(total, 0) || math.IsNaN(total) {
		return 0, false
	}
	return total, true
}

// ClockFragments returns every HH:MM[:SS] fragment in the input as minutes
// since midnight, in order of appearance. Working-hours strings like
// "08:00 - 17:30" yield two entries; the second is the end-of-day boundary.
func ClockFragments(raw string) []float64 {
	matches := clockFragment.FindAllStringSubmatch(raw, -1)
	if matches == nil {
		return nil
	}

	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		seconds := 0
		if m[3] != "" {
			seconds, _ = strconv.Atoi(m[3])
		}
		out = append(out, float64(hours)*60+float64(minutes)+float64(seconds)/60)
	}
	return out
}

// CircularDiffMinutes computes b-a on the 24h clock, folded into (-720, 720].
// A shift ending after midnight reads as a small positive difference rather
// than a huge negative one.
func CircularDiffMinutes(a, b string) (float64, bool) {
	am, ok := TimeToMinutes(a)
	if !ok {
		return 0, false
	}
	bm, ok := TimeToMinutes(b)
	if !ok {
		return 0, false
	}

	diff := bm - am
	if diff > 720 {
		diff -= 1440
	} else if diff < -720 {
		diff += 1440
	}
	return diff, true
}

// FormatClockDuration renders a signed minute count as HH:MM. The sign lives
// on the hour part only; minutes are always rendered absolute. A negative
// duration (last depot mention before the first) therefore reads "-1:30".
func FormatClockDuration(minutes int) string {
	if minutes < 0 {
		return fmt.Sprintf("-%d:%02d", -minutes/60, -minutes%60)
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatMinutesOfDay renders minutes-since-midnight as a wall-clock HH:MM,
// wrapping at the day boundary so 1500 renders as 01:00.
func FormatMinutesOfDay(minutes float64) string {
	total := int(math.Round(minutes))
	total = ((total % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// ExtractVanID returns the registration fragment after the last dash of an
// asset code, or the whole code when there is no dash. Idempotent.
func ExtractVanID(assetCode string) string {
	code := strings.TrimSpace(assetCode)
	if idx := strings.LastIndex(code, "-"); idx >= 0 {
		return code[idx+1:]
	}
	return code
}
