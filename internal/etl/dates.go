package etl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePrefix  = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)
	dayFirstPrefix = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{4})`)
	monthAbbrevIdx = map[string]int{}
	genericLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"January 2, 2006",
		"2 January 2006",
		"Mon, 02 Jan 2006",
	}
)

func init() {
	for i, m := range []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"} {
		monthAbbrevIdx[m] = i + 1
	}
}

// NormalizeDate reduces a loosely formatted date string to canonical
// YYYY-MM-DD. Strategies are tried in order: ISO prefix, day-first prefix
// (day assumed first for ambiguous separators), generic layout parse, then
// "3 Jun 2025" style token split. Returns ("", false) when nothing matches;
// it never panics on garbage input.
func NormalizeDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	if m := isoDatePrefix.FindStringSubmatch(s); m != nil {
		return buildDate(m[1], m[2], m[3])
	}

	if m := dayFirstPrefix.FindStringSubmatch(s); m != nil {
		return buildDate(m[3], m[2], m[1])
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return parseDayMonthTokens(s)
}

// buildDate validates calendar ranges and zero-pads.
func buildDate(year, month, day string) (string, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if y < 1000 || m < 1 || m > 12 || d < 1 || d > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}

// parseDayMonthTokens handles "3 Jun 2025" and "3-Jun-2025" style inputs,
// matching the three-letter month abbreviation case-insensitively.
func parseDayMonthTokens(s string) (string, bool) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '/' || r == ','
	})
	if len(tokens) < 3 {
		return "", false
	}

	day, err := strconv.Atoi(tokens[0])
	if err != nil {
		return "", false
	}

	monthToken := strings.ToLower(tokens[1])
	if len(monthToken) > 3 {
		monthToken = monthToken[:3]
	}
	month, ok := monthAbbrevIdx[monthToken]
	if !ok {
		return "", false
	}

	year, err := strconv.Atoi(tokens[2])
	if err != nil {
		return "", false
	}

	return buildDate(strconv.Itoa(year), strconv.Itoa(month), strconv.Itoa(day))
}
