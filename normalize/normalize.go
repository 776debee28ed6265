// Package normalize turns loosely shaped API values into display-ready
// values. Everything here is pure and deterministic.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Dash stands in for a missing scalar such as an IP or a timestamp.
	Dash = "-"
	// Unknown stands in for a missing numeric score or distance.
	Unknown = "?"
	// NoRuleText is shown when a rule document carries no text at all.
	NoRuleText = "No YAML content available"
	// MaxCandidates is how many ranked candidates a detail block shows.
	MaxCandidates = 3
)

// ToSequence returns v unchanged when it is already a slice, an empty slice
// when v is nil, and a one-element slice otherwise.
func ToSequence(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	default:
		return []any{t}
	}
}

// Strings is ToSequence followed by rendering every element as text.
// Null elements are dropped.
func Strings(v any) []string {
	seq := ToSequence(v)
	out := make([]string, 0, len(seq))
	for _, item := range seq {
		if item == nil {
			continue
		}
		out = append(out, scalarString(item))
	}
	return out
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// FormatTimestamp reduces an ISO-8601 timestamp to its time of day, without
// fraction or zone. Values without a 'T' separator are returned as is.
func FormatTimestamp(ts string) string {
	if ts == "" {
		return Dash
	}
	_, clock, found := strings.Cut(ts, "T")
	if !found {
		return ts
	}
	clock = strings.TrimSuffix(clock, "Z")
	if i := strings.IndexAny(clock, "+-"); i >= 0 {
		clock = clock[:i]
	}
	if i := strings.IndexByte(clock, '.'); i >= 0 {
		clock = clock[:i]
	}
	if clock == "" {
		return ts
	}
	return clock
}

// FormatDistance renders a similarity distance with three decimals.
func FormatDistance(d *float64) string {
	if d == nil {
		return Unknown
	}
	return strconv.FormatFloat(*d, 'f', 3, 64)
}

// FormatNumber renders a score in its shortest form, or placeholder when absent.
func FormatNumber(v *float64, placeholder string) string {
	if v == nil {
		return placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// OrPlaceholder returns placeholder when s is blank.
func OrPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

// ResolveRuleText returns the first non-empty of yaml, yamlRaw and document,
// in that order, falling back to NoRuleText.
func ResolveRuleText(yaml, yamlRaw, document *string) string {
	for _, candidate := range []*string{yaml, yamlRaw, document} {
		if candidate != nil && *candidate != "" {
			return *candidate
		}
	}
	return NoRuleText
}

// TopN reports how many of total ranked entries to show and the note that
// goes with a truncated list. The note is empty when nothing is cut.
func TopN(total int) (shown int, note string) {
	if total <= MaxCandidates {
		return total, ""
	}
	return MaxCandidates, fmt.Sprintf("Showing top %d of %d results.", MaxCandidates, total)
}
