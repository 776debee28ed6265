package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yeehaw32/tpot-analysis/view"
)

// entryHeight is the number of rows one session occupies in the list.
const entryHeight = 3

// listTop is the screen row of the first entry (title bar, list header).
const listTop = 2

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.state.Visible()
	switch {
	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, keys.PgUp):
		m.moveCursor(-m.visibleEntries())
	case key.Matches(msg, keys.PgDown):
		m.moveCursor(m.visibleEntries())
	case key.Matches(msg, keys.Top):
		m.moveCursor(-len(visible))
	case key.Matches(msg, keys.Bottom):
		m.moveCursor(len(visible))
	case key.Matches(msg, keys.Select):
		if m.cursor < len(visible) {
			return m.selectSession(visible[m.cursor].SessionID)
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	n := len(m.state.Visible())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	m.clampOffset()
}

// clampOffset keeps the cursor inside the scrolled window.
func (m *Model) clampOffset() {
	rows := m.visibleEntries()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m Model) visibleEntries() int {
	rows := (m.bodyHeight() - 1) / entryHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

// entryAt maps a screen row to an index into the visible sessions.
func (m Model) entryAt(y int) (int, bool) {
	rel := y - listTop
	if rel < 0 {
		return 0, false
	}
	idx := m.offset + rel/entryHeight
	if idx >= len(m.state.Visible()) || rel/entryHeight >= m.visibleEntries() {
		return 0, false
	}
	return idx, true
}

func (m Model) renderList() string {
	w := m.listWidth()
	h := m.bodyHeight()
	panel := view.BuildList(m.state)

	lines := []string{m.st.header.Render(pad("Sessions · "+m.state.SensorFilter, w-2))}
	if panel.Message != "" {
		st := m.st.dim
		if panel.IsError {
			st = m.st.errText
		}
		lines = append(lines, "")
		for _, l := range wrapText(panel.Message, w-2) {
			lines = append(lines, st.Render("  "+l))
		}
	} else {
		end := min(m.offset+m.visibleEntries(), len(panel.Entries))
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderEntry(panel.Entries[i], i == m.cursor && m.focus == paneList, w)...)
		}
	}

	for len(lines) < h {
		lines = append(lines, "")
	}
	lines = lines[:h]
	for i, l := range lines {
		if gap := w - lipgloss.Width(l); gap > 0 {
			lines[i] = l + strings.Repeat(" ", gap)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEntry(e view.ListEntry, cursor bool, w int) []string {
	mark := " "
	if cursor {
		mark = "›"
	}
	risk := "risk " + e.Risk
	intentWidth := w - 1 - 10 - len(risk) - 2
	if intentWidth < 4 {
		intentWidth = 4
	}

	sensor := pad(truncate(e.Sensor, 9), 9)
	intent := pad(truncate(e.Intent, intentWidth), intentWidth)
	id := pad(" "+truncate(e.SessionID, w-2), w-1)
	start := e.Start
	ips := pad(" "+truncate(e.SrcIP+" → "+e.DestIP, w-len(start)-4), w-len(start)-2)

	if e.Selected {
		return []string{
			m.st.selected.Render(pad(mark+sensor+" "+intent+" "+risk, w)),
			m.st.selected.Render(pad(" "+id, w)),
			m.st.selected.Render(pad(" "+ips+" "+start, w)),
		}
	}
	return []string{
		m.markStyle(cursor).Render(mark) + m.st.sensorTag.Render(sensor) + " " + m.st.normal.Render(intent) + " " + m.st.risk.Render(risk),
		" " + m.st.normal.Render(id),
		" " + m.st.dim.Render(ips+" "+start),
	}
}

func (m Model) markStyle(cursor bool) lipgloss.Style {
	if cursor {
		return m.st.cursor
	}
	return m.st.normal
}

// pad right-pads s with spaces to display width w.
func pad(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// truncate shortens s to at most w display cells, marking the cut with "…".
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
