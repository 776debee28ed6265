package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yeehaw32/tpot-analysis/normalize"
)

// MitreCandidate is a ranked ATT&CK technique match. Lower Distance means a
// closer match; lists arrive already ranked and are never re-sorted.
type MitreCandidate struct {
	TID       string     `json:"tid"`
	Name      string     `json:"name"`
	MitreURL  string     `json:"mitre_url"`
	Tactics   StringList `json:"tactics"`
	Platforms StringList `json:"platforms"`
	Distance  *float64   `json:"distance"`
}

// SigmaCandidate is a ranked Sigma rule match, same ordering rules as
// MitreCandidate.
type SigmaCandidate struct {
	SID              string   `json:"sid"`
	Title            string   `json:"title"`
	Level            string   `json:"level"`
	LogsourceProduct string   `json:"logsource_product"`
	LogsourceService string   `json:"logsource_service"`
	MitreTechniques  string   `json:"mitre_techniques"`
	Distance         *float64 `json:"distance"`
}

// Techniques splits the comma separated technique ids linked to the rule.
func (s SigmaCandidate) Techniques() []string {
	var out []string
	for _, t := range strings.Split(s.MitreTechniques, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Alert is a Suricata rule match attached to some session variants.
type Alert struct {
	SID      string
	Message  string
	Category string
	Priority *int // nil when the alert carries neither priority nor severity
	Distance *float64
}

// UnmarshalJSON accepts both the alert-log field names (message, category,
// priority) and the rule-index names (msg, classtype, severity).
func (a *Alert) UnmarshalJSON(data []byte) error {
	var raw struct {
		SID       any      `json:"sid"`
		Message   string   `json:"message"`
		Msg       string   `json:"msg"`
		Category  string   `json:"category"`
		Classtype string   `json:"classtype"`
		Priority  any      `json:"priority"`
		Severity  any      `json:"severity"`
		Distance  *float64 `json:"distance"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Alert{
		SID:      scalar(raw.SID),
		Message:  firstNonEmpty(raw.Message, raw.Msg),
		Category: firstNonEmpty(raw.Category, raw.Classtype),
		Distance: raw.Distance,
	}
	prio := scalar(raw.Priority)
	if prio == "" {
		prio = scalar(raw.Severity)
	}
	if f, err := strconv.ParseFloat(prio, 64); err == nil {
		n := int(f)
		a.Priority = &n
	}
	return nil
}

func scalar(v any) string {
	if vals := normalize.Strings(v); len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
