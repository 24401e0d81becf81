package model

import (
	"fmt"
	"strconv"
	"strings"
)

// NotSpecified is rendered for questions without an answer
const NotSpecified = "Not specified"

// LookupResponse finds an answer whose key may be written as "7" or "q7".
// Keys are tried in the order "<n>", "q<n>" and then the key as given. Nil, empty string and
// empty sequence values count as absent.
func LookupResponse(rs ResponseSet, key string) (any, bool) {
	var candidates []string
	if n, err := strconv.Atoi(strings.TrimPrefix(key, "q")); err == nil {
		candidates = append(candidates, strconv.Itoa(n), "q"+strconv.Itoa(n))
	}
	candidates = append(candidates, key)

	for _, k := range candidates {
		v, ok := rs[k]
		if ok && !isEmptyAnswer(v) {
			return v, true
		}
	}
	return nil, false
}

func isEmptyAnswer(v any) bool {
	switch s := v.(type) {
	case nil:
		return true
	case string:
		return s == ""
	case []string:
		return len(s) == 0
	case []any:
		return len(s) == 0
	default:
		return false
	}
}

// FormatAnswer renders an answer for display. Sequences are joined with ", ".
func FormatAnswer(v any) string {
	if isEmptyAnswer(v) {
		return NotSpecified
	}

	switch s := v.(type) {
	case string:
		return s
	case []string:
		return strings.Join(s, ", ")
	case []any:
		parts := make([]string, 0, len(s))
		for _, elem := range s {
			parts = append(parts, FormatAnswer(elem))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}
