package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yeehaw32/tpot-analysis/view"
)

// candidate addresses one selectable MITRE or Sigma entry in the detail pane.
type candidate struct {
	sigma bool
	idx   int
}

func (m Model) candidates() []candidate {
	var out []candidate
	for i := range m.detailPanel.Mitre.Entries {
		out = append(out, candidate{idx: i})
	}
	for i := range m.detailPanel.Sigma.Entries {
		out = append(out, candidate{sigma: true, idx: i})
	}
	return out
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cands := m.candidates()
	switch {
	case key.Matches(msg, keys.PrevCandidate):
		if m.candIdx > 0 {
			m.candIdx--
			m.syncDetail()
		}
		return m, nil
	case key.Matches(msg, keys.NextCandidate):
		if m.candIdx < len(cands)-1 {
			m.candIdx++
			m.syncDetail()
		}
		return m, nil
	case key.Matches(msg, keys.Raw):
		if m.detailPanel.Placeholder == "" {
			m.showRaw = !m.showRaw
			m.syncDetail()
		}
		return m, nil
	case key.Matches(msg, keys.Select):
		if m.candIdx >= len(cands) {
			return m, nil
		}
		c := cands[m.candIdx]
		if c.sigma {
			e := m.detailPanel.Sigma.Entries[c.idx]
			if e.SID == "" {
				m.status = "Rule has no sid to look up"
				return m, nil
			}
			return m.openRule(e.SID, e.Title)
		}
		return m, m.openMitre(c.idx)
	case key.Matches(msg, keys.OpenLink):
		if m.candIdx < len(cands) && !cands[m.candIdx].sigma {
			return m, m.openMitre(cands[m.candIdx].idx)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

func (m Model) openMitre(idx int) tea.Cmd {
	url := m.detailPanel.Mitre.Entries[idx].URL
	if url == "" {
		return nil
	}
	m.logger.Debug("opening technique link", "url", url)
	return openLink(m.openURL, url)
}

// syncDetail rebuilds the detail panel from state and re-renders the viewport
// content, keeping the scroll position.
func (m *Model) syncDetail() {
	m.detailPanel = view.DetailFor(m.state)
	if n := len(m.candidates()); m.candIdx >= n {
		m.candIdx = max(0, n-1)
	}
	m.detailView.SetContent(m.renderDetail())
}

func (m Model) renderDetail() string {
	p := m.detailPanel
	w := m.detailWidth() - 2
	if w < 10 {
		w = 10
	}

	if p.Placeholder != "" {
		st := m.st.dim
		if p.IsError {
			st = m.st.errText
		}
		var lines []string
		for _, l := range wrapText(p.Placeholder, w) {
			lines = append(lines, " "+st.Render(l))
		}
		return "\n" + strings.Join(lines, "\n")
	}

	var b strings.Builder
	block := func(title string) {
		b.WriteString("\n")
		b.WriteString(" " + m.st.blockTitle.Render(title) + "\n")
	}
	text := func(s string, indent int) {
		prefix := strings.Repeat(" ", indent)
		for _, l := range wrapText(s, w-indent) {
			b.WriteString(prefix + l + "\n")
		}
	}
	field := func(label, value string) {
		lines := wrapText(value, w-19)
		for i, l := range lines {
			if i == 0 {
				b.WriteString(" " + m.st.label.Render(label) + l + "\n")
				continue
			}
			b.WriteString(strings.Repeat(" ", 19) + l + "\n")
		}
	}

	block("Overview")
	b.WriteString(" " + m.st.chip.Render("AI Layer 1") + "\n")
	for _, f := range p.Overview {
		field(f.Label, f.Value)
	}

	block("Summary")
	b.WriteString(" " + m.st.chip.Render("AI Layer 1") + "\n")
	text(p.Summary, 1)

	block("Key Observables")
	if p.Observables.Missing {
		b.WriteString(" " + m.st.dim.Render(view.NoIndicatorsText) + "\n")
	} else {
		for _, f := range p.Observables.Fields {
			field(f.Label, f.Value)
		}
		for _, l := range p.Observables.Lists {
			b.WriteString(" " + m.st.label.Render(l.Label) + "\n")
			for _, item := range l.Items {
				if l.Empty {
					b.WriteString("   " + m.st.dim.Render(item) + "\n")
					continue
				}
				text("• "+item, 3)
			}
		}
	}

	cands := m.candidates()
	active := func(c candidate) bool {
		return m.focus == paneDetail && m.candIdx < len(cands) && cands[m.candIdx] == c
	}
	mark := func(on bool) string {
		if on {
			return m.st.cursor.Render("›") + " "
		}
		return "  "
	}

	block("MITRE Candidates")
	b.WriteString(" " + m.st.chip.Render("AI Layer 2") + "\n")
	if len(p.Mitre.Entries) == 0 {
		b.WriteString(" " + m.st.dim.Render(p.Mitre.Empty) + "\n")
	}
	for i, e := range p.Mitre.Entries {
		b.WriteString(" " + mark(active(candidate{idx: i})) + m.st.badge.Render(e.TID) + " " + truncate(e.Name, w-len(e.TID)-4) + "\n")
		meta := "distance " + e.Distance
		if e.Tactics != "" {
			meta += "  tactics: " + e.Tactics
		}
		for _, l := range wrapText(meta, w-3) {
			b.WriteString("   " + m.st.dim.Render(l) + "\n")
		}
		if e.URL != "" {
			b.WriteString("   " + m.st.link.Render(truncate(e.URL, w-3)) + "\n")
		}
	}
	if p.Mitre.Note != "" {
		b.WriteString(" " + m.st.dim.Render(p.Mitre.Note) + "\n")
	}

	block("Sigma Candidates")
	b.WriteString(" " + m.st.chip.Render("AI Layer 2") + "\n")
	if len(p.Sigma.Entries) == 0 {
		b.WriteString(" " + m.st.dim.Render(p.Sigma.Empty) + "\n")
	}
	for i, e := range p.Sigma.Entries {
		b.WriteString(" " + mark(active(candidate{sigma: true, idx: i})) + m.st.normal.Bold(true).Render(truncate(e.Title, w-3)) + "\n")
		meta := fmt.Sprintf("%s  level %s  distance %s", e.Source, e.Level, e.Distance)
		b.WriteString("   " + m.st.dim.Render(truncate(meta, w-3)) + "\n")
		if e.Techniques != "" {
			b.WriteString("   " + m.st.dim.Render(truncate("mitre: "+e.Techniques, w-3)) + "\n")
		}
	}
	if p.Sigma.Note != "" {
		b.WriteString(" " + m.st.dim.Render(p.Sigma.Note) + "\n")
	}
	for _, l := range wrapText(view.DistanceHelpText, w-1) {
		b.WriteString(" " + m.st.dim.Render(l) + "\n")
	}

	block("Suricata Alerts")
	if len(p.Alerts) == 0 {
		b.WriteString(" " + m.st.dim.Render(p.AlertsEmpty) + "\n")
	}
	for _, a := range p.Alerts {
		b.WriteString(" " + m.st.badge.Render("["+a.SID+"]") + " " + truncate(a.Message, w-len(a.SID)-4) + "\n")
		b.WriteString("   " + m.st.dim.Render(truncate(a.Category+" · priority "+a.Priority, w-3)) + "\n")
	}

	block("Raw JSON (Audit)")
	if !m.showRaw {
		b.WriteString(" " + m.st.dim.Render("press v to expand") + "\n")
	} else {
		text(p.Raw, 1)
	}
	return b.String()
}

// wrapText splits text into lines that fit within maxWidth.
func wrapText(text string, maxWidth int) []string {
	if maxWidth < 1 {
		maxWidth = 1
	}
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			result = append(result, "")
			continue
		}
		runes := []rune(line)
		for len(runes) > maxWidth {
			result = append(result, string(runes[:maxWidth]))
			runes = runes[maxWidth:]
		}
		result = append(result, string(runes))
	}
	return result
}
