package etl

import (
	"strconv"
	"strings"
)

// Record is one decoded blob payload. Upstream exports never agree on key
// spelling, so nothing outside this package should index a Record directly --
// go through Resolve with an alias list instead.
type Record map[string]interface{}

// Resolve returns the first value present under any of the candidate keys.
// Exact-case matches are tried for the whole candidate list first; only when
// none hit does it retry the list case-insensitively against the keys that are
// actually in the record. Candidate order is authoritative either way.
func Resolve(rec Record, candidates ...string) (interface{}, bool) {
	if rec == nil {
		return nil, false
	}

	for _, key := range candidates {
		if val, ok := rec[key]; ok {
			return val, true
		}
	}

	// Fallback: case-insensitive pass over the record's own keys
	for _, key := range candidates {
		for recKey, val := range rec {
			if strings.EqualFold(recKey, key) {
				return val, true
			}
		}
	}

	return nil, false
}

// ResolveString resolves a field and renders it as a trimmed string.
// Numbers are formatted, nil and missing fields yield ("", false).
func ResolveString(rec Record, candidates ...string) (string, bool) {
	val, ok := Resolve(rec, candidates...)
	if !ok || val == nil {
		return "", false
	}

	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// ResolveFloat resolves a field as a number. String values are parsed after
// stripping currency symbols and thousands separators; anything unparseable
// yields (0, false) so callers can exclude the record from numeric aggregates.
func ResolveFloat(rec Record, candidates ...string) (float64, bool) {
	val, ok := Resolve(rec, candidates...)
	if !ok || val == nil {
		return 0, false
	}

	switch v := val.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		cleaned := strings.TrimSpace(v)
		cleaned = strings.TrimPrefix(cleaned, "£")
		cleaned = strings.TrimPrefix(cleaned, "$")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
