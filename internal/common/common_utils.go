package common

import (
	"fmt"
	"strings"
	"time"
)

func GetResponseTime(init time.Time) string {
	timeDiff := time.Since(init).Milliseconds()
	return fmt.Sprintf("%dms", timeDiff)
}

// CollapseName normalizes a person name for correlation: trim, lowercase,
// strip all whitespace. Exact equality after this is the only name matching
// performed anywhere — no edit-distance fuzziness.
func CollapseName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(lowered), "")
}

// ReverseNameTokens swaps the first and last token of a full name, used by
// the roster advisory check ("First Last" vs "Last First").
func ReverseNameTokens(name string) string {
	tokens := strings.Fields(strings.TrimSpace(name))
	if len(tokens) < 2 {
		return strings.TrimSpace(name)
	}
	tokens[0], tokens[len(tokens)-1] = tokens[len(tokens)-1], tokens[0]
	return strings.Join(tokens, " ")
}
