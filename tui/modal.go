package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yeehaw32/tpot-analysis/view"
)

const (
	copyDefaultLabel = "Copy to clipboard"
	copyDoneLabel    = "Copied!"
	copyFailedLabel  = "Copy failed"
	modalLoadingText = "Loading..."
)

// openRule shows the rule modal for sid and fetches its document. Any
// earlier fetch becomes stale.
func (m Model) openRule(sid, title string) (Model, tea.Cmd) {
	if title == "" {
		title = sid
	}
	m.state.Modal = view.ModalState{
		Open:      true,
		TargetSID: sid,
		Title:     "Sigma rule: " + title,
		Load:      view.LoadLoading,
		Seq:       m.state.Modal.Seq + 1,
	}
	m.copySeq++
	m.copyLabel = copyDefaultLabel
	m.modalBody.SetContent(modalLoadingText)
	m.modalBody.GotoTop()
	m.logger.Debug("opening rule", "sid", sid, "seq", m.state.Modal.Seq)
	return m, fetchRule(m.ctx, m.fetcher, m.state.Modal.Seq, sid)
}

func (m Model) ruleLoaded(msg ruleLoadedMsg) Model {
	md := &m.state.Modal
	if !md.Open || msg.seq != md.Seq {
		m.logger.Debug("discarding stale rule", "sid", msg.sid, "seq", msg.seq)
		return m
	}
	if msg.err != nil {
		m.logger.Warn("load rule failed", "sid", msg.sid, "err", msg.err)
		md.Load = view.LoadError
		md.Err = msg.err
		m.modalBody.SetContent(m.st.errText.Render("Error loading Sigma rule: " + msg.err.Error()))
		return m
	}
	md.Load = view.LoadLoaded
	md.Text = msg.doc.ResolveText()
	m.modalBody.SetContent(m.highlightRule(md.Text))
	m.modalBody.GotoTop()
	return m
}

func (m Model) highlightRule(text string) string {
	if m.highlighter == nil {
		return text
	}
	out, err := m.highlighter.Highlight(text)
	if err != nil {
		m.logger.Debug("highlight failed", "err", err)
		return text
	}
	return out
}

// closeModal returns the modal to its closed state. Seq is kept so a fetch
// still in flight stays stale.
func (m Model) closeModal() Model {
	m.state.Modal = view.ModalState{Seq: m.state.Modal.Seq}
	m.copySeq++
	m.copyLabel = copyDefaultLabel
	m.modalBody.SetContent("")
	return m
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.CloseModal):
		return m.closeModal(), nil
	case key.Matches(msg, keys.Copy):
		return m.copyRule()
	}
	var cmd tea.Cmd
	m.modalBody, cmd = m.modalBody.Update(msg)
	return m, cmd
}

func (m Model) copyRule() (Model, tea.Cmd) {
	if m.state.Modal.Load != view.LoadLoaded {
		return m, nil
	}
	m.copySeq++
	return m, writeClipboard(m.clipboard, m.copySeq, m.state.Modal.Text)
}

func (m Model) copyResult(msg copyResultMsg) (Model, tea.Cmd) {
	if msg.seq != m.copySeq {
		return m, nil
	}
	if msg.err != nil {
		m.logger.Warn("clipboard write failed", "err", msg.err)
		m.copyLabel = copyFailedLabel
	} else {
		m.copyLabel = copyDoneLabel
	}
	return m, resetCopyLabel(m.copyFeedback, m.copySeq)
}

func (m Model) modalWidth() int {
	w := m.width - 4
	if w > 100 {
		w = 100
	}
	if w < 30 {
		w = 30
	}
	return w
}

func (m Model) modalBodyHeight() int {
	// border, padding, title, footer and the blank lines between them
	h := m.height - 12
	if h > 30 {
		h = 30
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) modalBox() string {
	w := m.modalWidth()
	title := m.st.modalTitle.Render(truncate(m.state.Modal.Title, w-6))
	footer := m.st.button.Render("c: "+m.copyLabel) + "  " +
		m.st.help.Render(helpLine(keys.CloseModal)+"  j/k: scroll")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.modalBody.View(), "", footer)
	return m.st.modalBox.Width(w - 2).Render(content)
}

// insideModal reports whether screen cell (x, y) falls on the modal box as
// placed by View.
func (m Model) insideModal(x, y int) bool {
	box := m.modalBox()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	x0 := max(0, (m.width-w)/2)
	y0 := max(0, (m.height-h)/2)
	return x >= x0 && x < x0+w && y >= y0 && y < y0+h
}
