package model

import "encoding/json"

// DefaultIntent is shown when a session carries no attack intent.
const DefaultIntent = "unknown"

// SessionSummary is one row of the per-date session list.
type SessionSummary struct {
	SessionID    string `json:"session_id"`
	Sensor       string `json:"sensor"`
	AttackIntent string `json:"attack_intent"`
	RiskScore    Score  `json:"risk_score"`
	Confidence   Score  `json:"confidence"`
	ShortSummary string `json:"short_summary"`
	SrcIP        string `json:"src_ip"`
	DestIP       string `json:"dest_ip"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// SessionList is the body of GET /api/sessions.
type SessionList struct {
	Date     string           `json:"date"`
	Sessions []SessionSummary `json:"sessions"`
}

type TimestampRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// KeyIndicators holds the observables extracted from a session's events.
// Every multi-valued field decodes to a list regardless of wire shape.
type KeyIndicators struct {
	SrcIP      string     `json:"src_ip"`
	DestIP     string     `json:"dest_ip"`
	SrcPorts   StringList `json:"src_ports"`
	DestPorts  StringList `json:"dest_ports"`
	Protocols  StringList `json:"protocols"`
	Commands   StringList `json:"commands"`
	URLs       StringList `json:"urls"`
	Files      StringList `json:"files"`
	Signatures StringList `json:"signatures"`
}

// SessionDetail is the enriched record behind GET /api/session/<id>.
type SessionDetail struct {
	SessionID       string           `json:"session_id"`
	Sensor          string           `json:"sensor"`
	AttackIntent    string           `json:"attack_intent"`
	RiskScore       Score            `json:"risk_score"`
	Confidence      Score            `json:"confidence"`
	Summary         string           `json:"summary"`
	TimestampRange  TimestampRange   `json:"timestamp_range"`
	KeyIndicators   *KeyIndicators   `json:"key_indicators"`
	MitreCandidates []MitreCandidate `json:"mitre_candidates"`
	SigmaCandidates []SigmaCandidate `json:"sigma_candidates"`
	SuricataAlerts  []Alert          `json:"suricata_alerts"`

	// Raw is the response body exactly as received.
	Raw json.RawMessage `json:"-"`
}
