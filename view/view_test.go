package view

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yeehaw32/tpot-analysis/model"
)

func f64(v float64) *float64 { return &v }

func sampleSessions() []model.SessionSummary {
	return []model.SessionSummary{
		{SessionID: "c1", Sensor: "Cowrie", AttackIntent: "recon", RiskScore: model.NewScore(7), SrcIP: "1.2.3.4", DestIP: "10.0.0.5", StartTime: "2024-01-01T10:11:12.345Z", ShortSummary: "ssh brute force"},
		{SessionID: "d1", Sensor: "Dionaea"},
		{SessionID: "c2", Sensor: "Cowrie", AttackIntent: "malware_drop"},
		{SessionID: "s1", Sensor: "Suricata"},
	}
}

func ids(list []model.SessionSummary) []string {
	var out []string
	for _, s := range list {
		out = append(out, s.SessionID)
	}
	return out
}

func TestFilterSessions(t *testing.T) {
	all := sampleSessions()
	if got := FilterSessions(all, FilterAll); !reflect.DeepEqual(ids(got), ids(all)) {
		t.Fatalf("filter all changed the list: %v", ids(got))
	}
	if got := FilterSessions(all, "Cowrie"); !reflect.DeepEqual(ids(got), []string{"c1", "c2"}) {
		t.Fatalf("filter Cowrie=%v", ids(got))
	}
	if got := FilterSessions(all, "cowrie"); len(got) != 0 {
		t.Fatalf("filter must be an exact match, got %v", ids(got))
	}
	if got := FilterSessions(all, "Wordpot"); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}

func TestBuildListEntries(t *testing.T) {
	s := NewState("2024-01-01", "")
	s.Sessions = sampleSessions()
	s.SelectedID = "c1"

	panel := BuildList(s)
	if panel.Message != "" {
		t.Fatalf("unexpected message %q", panel.Message)
	}
	if len(panel.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(panel.Entries))
	}
	first := panel.Entries[0]
	want := ListEntry{
		Sensor: "COWRIE", SessionID: "c1", Intent: "recon", Risk: "7",
		SrcIP: "1.2.3.4", DestIP: "10.0.0.5", Start: "10:11:12",
		Tooltip: "ssh brute force", Selected: true,
	}
	if first != want {
		t.Fatalf("first entry=%+v, want %+v", first, want)
	}
	second := panel.Entries[1]
	if second.Intent != "unknown" || second.Risk != "?" || second.SrcIP != "-" || second.DestIP != "-" || second.Start != "-" {
		t.Fatalf("placeholders missing: %+v", second)
	}
	for _, e := range panel.Entries[1:] {
		if e.Selected {
			t.Fatalf("only one entry may be selected, %s is too", e.SessionID)
		}
	}
}

func TestBuildListEmptyAndError(t *testing.T) {
	s := NewState("2024-01-01", "Wordpot")
	s.Sessions = sampleSessions()
	if got := BuildList(s); got.Message != NoSessionsText || len(got.Entries) != 0 {
		t.Fatalf("expected no-sessions state, got %+v", got)
	}

	s.ListErr = errors.New("HTTP 500: Internal Server Error")
	got := BuildList(s)
	if !got.IsError || got.Message != "Error loading sessions: HTTP 500: Internal Server Error" {
		t.Fatalf("unexpected error panel %+v", got)
	}
}

func mitreList(n int) []model.MitreCandidate {
	var out []model.MitreCandidate
	for i := 0; i < n; i++ {
		out = append(out, model.MitreCandidate{TID: "T10" + string(rune('0'+i)), Name: "tech", Distance: f64(0.1 * float64(i+1))})
	}
	return out
}

func TestBuildDetailTruncatesCandidates(t *testing.T) {
	p := BuildDetail(model.SessionDetail{MitreCandidates: mitreList(5)})
	if len(p.Mitre.Entries) != 3 || p.Mitre.Total != 5 {
		t.Fatalf("expected 3 of 5, got %d of %d", len(p.Mitre.Entries), p.Mitre.Total)
	}
	if !strings.Contains(p.Mitre.Note, "3 of 5") {
		t.Fatalf("note %q does not report the total", p.Mitre.Note)
	}
	if p.Mitre.Entries[0].TID != "T100" || p.Mitre.Entries[2].TID != "T102" {
		t.Fatalf("ranking order not preserved: %+v", p.Mitre.Entries)
	}

	p = BuildDetail(model.SessionDetail{MitreCandidates: mitreList(2)})
	if len(p.Mitre.Entries) != 2 || p.Mitre.Note != "" {
		t.Fatalf("expected 2 with no note, got %d %q", len(p.Mitre.Entries), p.Mitre.Note)
	}
}

func TestBuildDetailSigmaEntries(t *testing.T) {
	var sigma []model.SigmaCandidate
	for _, sid := range []string{"S1", "S2", "S3", "S4"} {
		sigma = append(sigma, model.SigmaCandidate{SID: sid, Title: "Rule " + sid, LogsourceProduct: "Linux", LogsourceService: "auditd", MitreTechniques: "T1105,T1059.004"})
	}
	sigma[1].Distance = f64(0.4567)
	p := BuildDetail(model.SessionDetail{SigmaCandidates: sigma})

	if len(p.Sigma.Entries) != 3 || p.Sigma.Note != "Showing top 3 of 4 results." {
		t.Fatalf("unexpected sigma block %+v", p.Sigma)
	}
	e := p.Sigma.Entries[1]
	if e.SID != "S2" || e.Title != "Rule S2" {
		t.Fatalf("entry must carry sid and title: %+v", e)
	}
	if e.Source != "linux · auditd" || e.Level != "-" || e.Distance != "0.457" || e.Techniques != "T1105, T1059.004" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if p.Sigma.Entries[0].Distance != "?" {
		t.Fatalf("missing distance must render as ?, got %q", p.Sigma.Entries[0].Distance)
	}
}

func TestBuildDetailPlaceholders(t *testing.T) {
	p := BuildDetail(model.SessionDetail{SessionID: "x"})
	for _, f := range p.Overview {
		if f.Value == "" {
			t.Fatalf("overview field %q is blank", f.Label)
		}
	}
	if p.Summary != "-" {
		t.Fatalf("summary=%q", p.Summary)
	}
	if !p.Observables.Missing {
		t.Fatalf("expected missing observables")
	}
	if len(p.Mitre.Entries) != 0 || p.Mitre.Empty != NoMitreText {
		t.Fatalf("unexpected mitre block %+v", p.Mitre)
	}
	if len(p.Alerts) != 0 || p.AlertsEmpty != NoAlertsText {
		t.Fatalf("unexpected alerts %+v", p.Alerts)
	}
}

func TestBuildDetailObservables(t *testing.T) {
	var d model.SessionDetail
	raw := `{"session_id":"c1","key_indicators":{"src_ip":"1.2.3.4","src_ports":44444,"commands":["uname -a","wget x"]},
		"suricata_alerts":[{"sid":2100498,"msg":"GPL ATTACK_RESPONSE","classtype":"bad-unknown","severity":2}]}`
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	d.Raw = json.RawMessage(raw)
	p := BuildDetail(d)

	obs := p.Observables
	if obs.Missing {
		t.Fatalf("observables unexpectedly missing")
	}
	if obs.Fields[1].Value != "-" || obs.Fields[2].Value != "44444" || obs.Fields[4].Value != "-" {
		t.Fatalf("unexpected fields %+v", obs.Fields)
	}
	if !reflect.DeepEqual(obs.Lists[0].Items, []string{"uname -a", "wget x"}) || obs.Lists[0].Empty {
		t.Fatalf("unexpected commands %+v", obs.Lists[0])
	}
	if !obs.Lists[1].Empty || !reflect.DeepEqual(obs.Lists[1].Items, []string{NoneText}) {
		t.Fatalf("empty urls must show None: %+v", obs.Lists[1])
	}
	if len(p.Alerts) != 1 || p.Alerts[0].SID != "2100498" || p.Alerts[0].Priority != "2" {
		t.Fatalf("unexpected alerts %+v", p.Alerts)
	}
	if !strings.Contains(p.Raw, "\n  \"session_id\": \"c1\"") {
		t.Fatalf("raw payload not indented: %q", p.Raw)
	}
}

func TestBuildDetailMissingPriorityAndScores(t *testing.T) {
	var d model.SessionDetail
	raw := `{"session_id":"s1","risk_score":"very high","confidence":"0.9","suricata_alerts":[{"sid":1,"msg":"x"}]}`
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := BuildDetail(d)
	if len(p.Alerts) != 1 || p.Alerts[0].Priority != "-" || p.Alerts[0].Category != "-" {
		t.Fatalf("absent alert fields must render as -, got %+v", p.Alerts)
	}
	if p.Overview[3].Value != "-" || p.Overview[4].Value != "0.9" {
		t.Fatalf("unexpected scores risk=%q confidence=%q", p.Overview[3].Value, p.Overview[4].Value)
	}
}

func TestBuildDetailSigmaWithoutSID(t *testing.T) {
	p := BuildDetail(model.SessionDetail{SigmaCandidates: []model.SigmaCandidate{{}, {SID: "S9"}}})
	if got := p.Sigma.Entries[0].Title; got != "?" {
		t.Fatalf("title=%q, want ?", got)
	}
	if p.Sigma.Entries[0].SID != "" {
		t.Fatalf("sid must stay empty, got %q", p.Sigma.Entries[0].SID)
	}
	if got := p.Sigma.Entries[1].Title; got != "S9" {
		t.Fatalf("title=%q, want S9", got)
	}
}

func TestDetailForPlaceholders(t *testing.T) {
	s := NewState("2024-01-01", FilterAll)
	if got := DetailFor(s).Placeholder; got != SelectPromptText {
		t.Fatalf("placeholder=%q", got)
	}
	s.DetailLoading = true
	if got := DetailFor(s).Placeholder; got != LoadingText {
		t.Fatalf("placeholder=%q", got)
	}
	s.DetailErr = errors.New("HTTP 404: Not Found")
	got := DetailFor(s)
	if !got.IsError || got.Placeholder != "Error loading session detail: HTTP 404: Not Found" {
		t.Fatalf("unexpected error panel %+v", got)
	}
}

func TestLoadStateString(t *testing.T) {
	if LoadLoading.String() != "loading" || LoadIdle.String() != "idle" || LoadError.String() != "error" || LoadLoaded.String() != "loaded" {
		t.Fatalf("unexpected LoadState names")
	}
}
