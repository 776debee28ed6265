package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yeehaw32/tpot-analysis/api"
	"github.com/yeehaw32/tpot-analysis/launcher"
	"github.com/yeehaw32/tpot-analysis/prefs"
	"github.com/yeehaw32/tpot-analysis/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeQuery
)

type pane int

const (
	paneList pane = iota
	paneDetail
)

// Clipboard receives the plain text of the rule shown in the modal.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Highlighter decorates rule text for display without changing its content.
type Highlighter interface {
	Highlight(text string) (string, error)
}

// PrefsSaver persists the theme choice.
type PrefsSaver interface {
	Save(p prefs.Prefs) error
}

type Options struct {
	Context      context.Context
	Fetcher      api.Fetcher
	Clipboard    Clipboard
	Highlighter  Highlighter
	Prefs        PrefsSaver
	OpenURL      func(url string) error
	Logger       *slog.Logger
	Date         string
	SensorFilter string
	Sensors      []string
	Theme        prefs.Theme
	CopyFeedback time.Duration
}

type Model struct {
	ctx          context.Context
	fetcher      api.Fetcher
	clipboard    Clipboard
	highlighter  Highlighter
	prefs        PrefsSaver
	openURL      func(string) error
	logger       *slog.Logger
	sensors      []string
	copyFeedback time.Duration

	state     view.State
	listSeq   uint64
	detailSeq uint64
	initCmd   tea.Cmd

	cursor int
	offset int // scroll offset in entries
	focus  pane
	mode   mode
	form   *queryForm

	detailPanel view.DetailPanel
	detailView  viewport.Model
	candIdx     int
	showRaw     bool

	modalBody viewport.Model
	copyLabel string
	copySeq   uint64

	theme    prefs.Theme
	st       styles
	status   string
	width    int
	height   int
	quitting bool
}

func NewModel(opts Options) Model {
	m := Model{
		ctx:          opts.Context,
		fetcher:      opts.Fetcher,
		clipboard:    opts.Clipboard,
		highlighter:  opts.Highlighter,
		prefs:        opts.Prefs,
		openURL:      opts.OpenURL,
		logger:       opts.Logger,
		sensors:      opts.Sensors,
		copyFeedback: opts.CopyFeedback,
		state:        view.NewState(opts.Date, opts.SensorFilter),
		theme:        opts.Theme,
		copyLabel:    copyDefaultLabel,
		width:        120,
		height:       30,
		detailView:   viewport.New(0, 0),
		modalBody:    viewport.New(0, 0),
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.clipboard == nil {
		m.clipboard = systemClipboard{}
	}
	if m.openURL == nil {
		m.openURL = launcher.Open
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.copyFeedback <= 0 {
		m.copyFeedback = 1200 * time.Millisecond
	}
	if m.theme != prefs.ThemeLight {
		m.theme = prefs.ThemeDark
	}
	m.st = newStyles(m.theme)
	m.layout()

	m, cmd := m.loadSessions()
	m.initCmd = cmd
	return m
}

func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// State exposes the current view state.
func (m Model) State() view.State { return m.state }

func (m Model) Theme() prefs.Theme { return m.theme }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.clampOffset()
		m.syncDetail()
		return m, nil

	case sessionsLoadedMsg:
		return m.sessionsLoaded(msg)

	case detailLoadedMsg:
		return m.detailLoaded(msg), nil

	case ruleLoadedMsg:
		return m.ruleLoaded(msg), nil

	case copyResultMsg:
		return m.copyResult(msg)

	case copyResetMsg:
		if msg.seq == m.copySeq {
			m.copyLabel = copyDefaultLabel
		}
		return m, nil

	case linkOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("open link failed", "url", msg.url, "err", msg.err)
			m.status = "Could not open link: " + msg.err.Error()
		}
		return m, nil

	case prefsSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save prefs failed", "err", msg.err)
			m.status = "Could not save theme: " + msg.err.Error()
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		m.status = ""
		if m.state.Modal.Open {
			return m.updateModal(msg)
		}
		if m.mode == modeQuery {
			return m.updateQueryForm(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// loadSessions is the shared path for start-up, date change, sensor filter
// change and reload: the list is refetched and any shown detail is dropped
// before the request goes out.
func (m Model) loadSessions() (Model, tea.Cmd) {
	m.listSeq++
	m.detailSeq++ // results for the old selection are stale from here on
	m.state.Sessions = nil
	m.state.ListErr = nil
	m.state.ListLoading = true
	m.state.SelectedID = ""
	m.state.Detail = nil
	m.state.DetailErr = nil
	m.state.DetailLoading = false
	m.cursor, m.offset = 0, 0
	m.candIdx = 0
	m.showRaw = false
	m.syncDetail()
	m.logger.Debug("loading sessions", "date", m.state.Date, "sensor", m.state.SensorFilter, "seq", m.listSeq)
	return m, fetchSessions(m.ctx, m.fetcher, m.listSeq, m.state.Date)
}

func (m Model) sessionsLoaded(msg sessionsLoadedMsg) (Model, tea.Cmd) {
	if msg.seq != m.listSeq {
		m.logger.Debug("discarding stale session list", "date", msg.date, "seq", msg.seq)
		return m, nil
	}
	m.state.ListLoading = false
	if msg.err != nil {
		m.logger.Warn("load sessions failed", "date", msg.date, "err", msg.err)
		m.state.ListErr = msg.err
		m.syncDetail()
		return m, nil
	}
	m.state.Sessions = msg.list.Sessions
	visible := m.state.Visible()
	m.logger.Info("sessions loaded", "date", msg.date, "total", len(msg.list.Sessions), "visible", len(visible))
	if len(visible) == 0 {
		m.syncDetail()
		return m, nil
	}
	return m.selectSession(visible[0].SessionID)
}

// selectSession marks id as the only selected session and requests its
// detail in the same step.
func (m Model) selectSession(id string) (Model, tea.Cmd) {
	m.detailSeq++
	m.state.SelectedID = id
	m.state.Detail = nil
	m.state.DetailErr = nil
	m.state.DetailLoading = true
	m.candIdx = 0
	m.showRaw = false
	for i, s := range m.state.Visible() {
		if s.SessionID == id {
			m.cursor = i
			break
		}
	}
	m.clampOffset()
	m.syncDetail()
	m.detailView.GotoTop()
	return m, fetchDetail(m.ctx, m.fetcher, m.detailSeq, m.state.Date, id)
}

func (m Model) detailLoaded(msg detailLoadedMsg) Model {
	if msg.seq != m.detailSeq || msg.sessionID != m.state.SelectedID {
		m.logger.Debug("discarding stale session detail", "session", msg.sessionID, "seq", msg.seq)
		return m
	}
	m.state.DetailLoading = false
	if msg.err != nil {
		m.logger.Warn("load session detail failed", "session", msg.sessionID, "err", msg.err)
		m.state.DetailErr = msg.err
	} else {
		d := msg.detail
		m.state.Detail = &d
	}
	m.syncDetail()
	m.detailView.GotoTop()
	return m
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.SwitchPane):
		if m.focus == paneList {
			m.focus = paneDetail
		} else {
			m.focus = paneList
		}
		m.syncDetail()
		return m, nil
	case key.Matches(msg, keys.Reload):
		return m.loadSessions()
	case key.Matches(msg, keys.Sensor):
		m.state.SensorFilter = m.nextSensor()
		return m.loadSessions()
	case key.Matches(msg, keys.Query):
		return m.enterQueryForm()
	case key.Matches(msg, keys.Theme):
		return m.toggleTheme()
	}

	if m.focus == paneList {
		return m.updateList(msg)
	}
	return m.updateDetail(msg)
}

func (m Model) nextSensor() string {
	options := append([]string{view.FilterAll}, m.sensors...)
	for i, s := range options {
		if s == m.state.SensorFilter {
			return options[(i+1)%len(options)]
		}
	}
	return view.FilterAll
}

func (m Model) toggleTheme() (Model, tea.Cmd) {
	m.theme = m.theme.Toggle()
	m.st = newStyles(m.theme)
	m.syncDetail()
	if m.prefs == nil {
		return m, nil
	}
	store, theme := m.prefs, m.theme
	return m, func() tea.Msg {
		return prefsSavedMsg{err: store.Save(prefs.Prefs{Theme: theme})}
	}
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state.Modal.Open {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.modalBody.LineUp(3)
		case tea.MouseButtonWheelDown:
			m.modalBody.LineDown(3)
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress && !m.insideModal(msg.X, msg.Y) {
				return m.closeModal(), nil
			}
		}
		return m, nil
	}
	if m.mode != modeBrowse {
		return m, nil
	}

	inList := msg.X < m.listWidth()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if inList {
			m.moveCursor(-1)
		} else {
			m.detailView.LineUp(3)
		}
	case tea.MouseButtonWheelDown:
		if inList {
			m.moveCursor(1)
		} else {
			m.detailView.LineDown(3)
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		if !inList {
			m.focus = paneDetail
			m.syncDetail()
			return m, nil
		}
		m.focus = paneList
		if idx, ok := m.entryAt(msg.Y); ok {
			return m.selectSession(m.state.Visible()[idx].SessionID)
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state.Modal.Open {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalBox())
	}
	if m.mode == modeQuery {
		return m.viewQueryForm()
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	sep := strings.TrimSuffix(strings.Repeat(m.st.separator.Render("│")+"\n", m.bodyHeight()), "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), sep, m.detailView.View()))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) renderTitle() string {
	count := len(m.state.Visible())
	info := fmt.Sprintf("  date %s  sensor %s  %d sessions", m.state.Date, m.state.SensorFilter, count)
	return m.st.title.Render("T-Pot Sessions") + m.st.dim.Render(info)
}

func (m Model) renderStatus() string {
	if m.status != "" {
		return m.st.errText.Render("  " + m.status)
	}
	var help string
	if m.focus == paneList {
		help = helpLine(keys.Select, keys.SwitchPane, keys.Reload, keys.Sensor, keys.Query, keys.Theme, keys.Quit)
		if visible := m.state.Visible(); m.cursor < len(visible) && visible[m.cursor].ShortSummary != "" {
			tip := truncate(visible[m.cursor].ShortSummary, max(10, m.width-len(help)-8))
			return m.st.help.Render("  "+help) + m.st.dim.Render("  │ "+tip)
		}
	} else {
		help = helpLine(keys.PrevCandidate, keys.Select, keys.OpenLink, keys.Raw, keys.SwitchPane, keys.Quit)
	}
	return m.st.help.Render("  " + help)
}

// layout sizes the viewports to the current terminal.
func (m *Model) layout() {
	m.detailView.Width = m.detailWidth()
	m.detailView.Height = m.bodyHeight()
	m.modalBody.Width = m.modalWidth() - 6
	m.modalBody.Height = m.modalBodyHeight()
}

func (m Model) bodyHeight() int {
	// title bar + status bar
	h := m.height - 2
	if h < 4 {
		h = 4
	}
	return h
}

func (m Model) listWidth() int {
	w := m.width * 2 / 5
	if w < 36 {
		w = 36
	}
	if w > 64 {
		w = 64
	}
	return w
}

func (m Model) detailWidth() int {
	w := m.width - m.listWidth() - 1
	if w < 30 {
		w = 30
	}
	return w
}

