package view

import (
	"strings"

	"github.com/yeehaw32/tpot-analysis/model"
	"github.com/yeehaw32/tpot-analysis/normalize"
)

// ListEntry is one rendered row of the session list.
type ListEntry struct {
	Sensor    string
	SessionID string
	Intent    string
	Risk      string
	SrcIP     string
	DestIP    string
	Start     string
	Tooltip   string
	Selected  bool
}

// ListPanel is the session list as it should be displayed. When Message is
// set the panel shows it instead of entries.
type ListPanel struct {
	Entries []ListEntry
	Message string
	IsError bool
}

// FilterSessions keeps the sessions whose sensor equals filter, in their
// original order. FilterAll keeps everything.
func FilterSessions(list []model.SessionSummary, filter string) []model.SessionSummary {
	if filter == "" || filter == FilterAll {
		return list
	}
	out := make([]model.SessionSummary, 0, len(list))
	for _, s := range list {
		if s.Sensor == filter {
			out = append(out, s)
		}
	}
	return out
}

func BuildList(s State) ListPanel {
	if s.ListLoading {
		return ListPanel{Message: LoadingListText}
	}
	if s.ListErr != nil {
		return ListPanel{Message: "Error loading sessions: " + s.ListErr.Error(), IsError: true}
	}
	visible := s.Visible()
	if len(visible) == 0 {
		return ListPanel{Message: NoSessionsText}
	}
	entries := make([]ListEntry, 0, len(visible))
	for _, sess := range visible {
		entries = append(entries, BuildEntry(sess, sess.SessionID == s.SelectedID))
	}
	return ListPanel{Entries: entries}
}

func BuildEntry(s model.SessionSummary, selected bool) ListEntry {
	return ListEntry{
		Sensor:    strings.ToUpper(normalize.OrPlaceholder(s.Sensor, normalize.Unknown)),
		SessionID: s.SessionID,
		Intent:    normalize.OrPlaceholder(s.AttackIntent, model.DefaultIntent),
		Risk:      normalize.FormatNumber(s.RiskScore.Ptr(), normalize.Unknown),
		SrcIP:     normalize.OrPlaceholder(s.SrcIP, normalize.Dash),
		DestIP:    normalize.OrPlaceholder(s.DestIP, normalize.Dash),
		Start:     normalize.FormatTimestamp(s.StartTime),
		Tooltip:   s.ShortSummary,
		Selected:  selected,
	}
}
