package view

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yeehaw32/tpot-analysis/model"
	"github.com/yeehaw32/tpot-analysis/normalize"
)

const (
	NoneText          = "None"
	NoIndicatorsText  = "No key indicators."
	NoMitreText       = "No MITRE candidates."
	NoSigmaText       = "No Sigma candidates."
	NoAlertsText      = "No Suricata alerts."
	DistanceHelpText  = "Distance is a similarity score from the RAG matching. Lower = closer match, higher = weaker match."
	detailErrorPrefix = "Error loading session detail: "
)

// Field is a label/value pair in a key-value block.
type Field struct {
	Label string
	Value string
}

// ListField is a multi-valued observable. Empty lists carry a single
// NoneText item and Empty set.
type ListField struct {
	Label string
	Items []string
	Empty bool
}

type Observables struct {
	Missing bool
	Fields  []Field
	Lists   []ListField
}

type MitreEntry struct {
	TID      string
	Name     string
	Distance string
	URL      string
	Tactics  string
}

type SigmaEntry struct {
	SID        string
	Title      string
	Source     string
	Level      string
	Distance   string
	Techniques string
}

type AlertEntry struct {
	SID      string
	Message  string
	Category string
	Priority string
}

// CandidateBlock is a ranked, truncated list. Note is set when entries were
// cut; Empty is the text shown when there are none.
type CandidateBlock[T any] struct {
	Entries []T
	Total   int
	Note    string
	Empty   string
}

// DetailPanel is the detail pane as it should be displayed. When
// Placeholder is set the pane shows only that text.
type DetailPanel struct {
	Placeholder string
	IsError     bool

	Overview    []Field
	Summary     string
	Observables Observables
	Mitre       CandidateBlock[MitreEntry]
	Sigma       CandidateBlock[SigmaEntry]
	Alerts      []AlertEntry
	AlertsEmpty string
	Raw         string
}

// DetailFor projects the detail part of s, including its placeholder states.
func DetailFor(s State) DetailPanel {
	switch {
	case s.DetailErr != nil:
		return DetailPanel{Placeholder: detailErrorPrefix + s.DetailErr.Error(), IsError: true}
	case s.DetailLoading:
		return DetailPanel{Placeholder: LoadingText}
	case s.Detail == nil:
		return DetailPanel{Placeholder: SelectPromptText}
	}
	return BuildDetail(*s.Detail)
}

// BuildDetail projects a session detail into display blocks. Every absent
// value is replaced by an explicit placeholder.
func BuildDetail(d model.SessionDetail) DetailPanel {
	p := DetailPanel{
		Overview: []Field{
			{"Session ID", normalize.OrPlaceholder(d.SessionID, normalize.Dash)},
			{"Sensor", normalize.OrPlaceholder(d.Sensor, normalize.Dash)},
			{"Intent", normalize.OrPlaceholder(d.AttackIntent, normalize.Dash)},
			{"Risk score", normalize.FormatNumber(d.RiskScore.Ptr(), normalize.Dash)},
			{"Confidence", normalize.FormatNumber(d.Confidence.Ptr(), normalize.Dash)},
			{"Time range", normalize.OrPlaceholder(d.TimestampRange.Start, normalize.Dash) +
				" → " + normalize.OrPlaceholder(d.TimestampRange.End, normalize.Dash)},
		},
		Summary:     normalize.OrPlaceholder(d.Summary, normalize.Dash),
		Observables: buildObservables(d.KeyIndicators),
		Mitre:       buildMitre(d.MitreCandidates),
		Sigma:       buildSigma(d.SigmaCandidates),
		AlertsEmpty: NoAlertsText,
		Raw:         rawPayload(d),
	}
	for _, a := range d.SuricataAlerts {
		p.Alerts = append(p.Alerts, AlertEntry{
			SID:      normalize.OrPlaceholder(a.SID, normalize.Dash),
			Message:  normalize.OrPlaceholder(a.Message, normalize.Dash),
			Category: normalize.OrPlaceholder(a.Category, normalize.Dash),
			Priority: priority(a.Priority),
		})
	}
	return p
}

func priority(p *int) string {
	if p == nil {
		return normalize.Dash
	}
	return strconv.Itoa(*p)
}

func buildObservables(k *model.KeyIndicators) Observables {
	if k == nil {
		return Observables{Missing: true}
	}
	joined := func(l model.StringList) string {
		return normalize.OrPlaceholder(strings.Join(l, ", "), normalize.Dash)
	}
	return Observables{
		Fields: []Field{
			{"Source IP", normalize.OrPlaceholder(k.SrcIP, normalize.Dash)},
			{"Destination IP", normalize.OrPlaceholder(k.DestIP, normalize.Dash)},
			{"Source ports", joined(k.SrcPorts)},
			{"Destination ports", joined(k.DestPorts)},
			{"Protocols", joined(k.Protocols)},
		},
		Lists: []ListField{
			listField("Commands", k.Commands),
			listField("URLs", k.URLs),
			listField("Files", k.Files),
			listField("Signatures", k.Signatures),
		},
	}
}

func listField(label string, items model.StringList) ListField {
	if len(items) == 0 {
		return ListField{Label: label, Items: []string{NoneText}, Empty: true}
	}
	return ListField{Label: label, Items: append([]string(nil), items...)}
}

func buildMitre(list []model.MitreCandidate) CandidateBlock[MitreEntry] {
	shown, note := normalize.TopN(len(list))
	b := CandidateBlock[MitreEntry]{Total: len(list), Note: note, Empty: NoMitreText}
	for _, m := range list[:shown] {
		b.Entries = append(b.Entries, MitreEntry{
			TID:      normalize.OrPlaceholder(m.TID, normalize.Unknown),
			Name:     normalize.OrPlaceholder(m.Name, normalize.Dash),
			Distance: normalize.FormatDistance(m.Distance),
			URL:      m.MitreURL,
			Tactics:  strings.Join(m.Tactics, ", "),
		})
	}
	return b
}

func buildSigma(list []model.SigmaCandidate) CandidateBlock[SigmaEntry] {
	shown, note := normalize.TopN(len(list))
	b := CandidateBlock[SigmaEntry]{Total: len(list), Note: note, Empty: NoSigmaText}
	for _, s := range list[:shown] {
		source := strings.ToLower(s.LogsourceProduct)
		if s.LogsourceService != "" {
			if source != "" {
				source += " · "
			}
			source += s.LogsourceService
		}
		b.Entries = append(b.Entries, SigmaEntry{
			SID:        s.SID,
			Title:      normalize.OrPlaceholder(s.Title, normalize.OrPlaceholder(s.SID, normalize.Unknown)),
			Source:     normalize.OrPlaceholder(source, normalize.Dash),
			Level:      normalize.OrPlaceholder(s.Level, normalize.Dash),
			Distance:   normalize.FormatDistance(s.Distance),
			Techniques: strings.Join(s.Techniques(), ", "),
		})
	}
	return b
}

// rawPayload is the detail exactly as served, indented for reading.
func rawPayload(d model.SessionDetail) string {
	if len(d.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, d.Raw, "", "  "); err == nil {
			return buf.String()
		}
		return string(d.Raw)
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
