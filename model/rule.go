package model

import "github.com/yeehaw32/tpot-analysis/normalize"

// RuleMetadata mirrors the attributes stored alongside an indexed Sigma rule.
type RuleMetadata struct {
	YAMLRaw          *string `json:"yaml_raw"`
	Title            string  `json:"title"`
	SID              string  `json:"sid"`
	Level            string  `json:"level"`
	LogsourceProduct string  `json:"logsource_product"`
	LogsourceService string  `json:"logsource_service"`
	MitreTechniques  string  `json:"mitre_techniques"`
}

// RuleDocument is the body of GET /api/sigma/<sid>.
type RuleDocument struct {
	ID       string       `json:"id"`
	SID      string       `json:"sid"`
	Document *string      `json:"document"`
	YAML     *string      `json:"yaml"`
	Metadata RuleMetadata `json:"metadata"`
}

// ResolveText picks the rule text to display: yaml, then metadata.yaml_raw,
// then document, then a fixed placeholder.
func (d RuleDocument) ResolveText() string {
	return normalize.ResolveRuleText(d.YAML, d.Metadata.YAMLRaw, d.Document)
}
