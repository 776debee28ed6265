package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yeehaw32/tpot-analysis/view"
)

const dateLayout = "2006-01-02"

// query form field indices
const (
	fieldDate = iota
	fieldSensor
	fieldCount
)

type queryForm struct {
	dateInput textinput.Model
	sensors   []string // "all" first
	sensor    int
	focus     int
	err       string
}

func newQueryForm(date, filter string, sensors []string) queryForm {
	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD"
	di.CharLimit = len(dateLayout)
	di.SetValue(date)
	di.CursorEnd()
	di.Focus()

	options := append([]string{view.FilterAll}, sensors...)
	sel := 0
	for i, s := range options {
		if s == filter {
			sel = i
		}
	}
	return queryForm{
		dateInput: di,
		sensors:   options,
		sensor:    sel,
		focus:     fieldDate,
	}
}

func (m Model) enterQueryForm() (Model, tea.Cmd) {
	f := newQueryForm(m.state.Date, m.state.SensorFilter, m.sensors)
	m.form = &f
	m.mode = modeQuery
	return m, textinput.Blink
}

func (m Model) updateQueryForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = modeBrowse
		return m, nil

	case "tab", "down":
		f.blurCurrent()
		f.focus = (f.focus + 1) % fieldCount
		f.focusCurrent()
		return m, nil

	case "shift+tab", "up":
		f.blurCurrent()
		f.focus = (f.focus - 1 + fieldCount) % fieldCount
		f.focusCurrent()
		return m, nil

	case "enter":
		date := strings.TrimSpace(f.dateInput.Value())
		if _, err := time.Parse(dateLayout, date); err != nil {
			f.err = "date must be YYYY-MM-DD"
			return m, nil
		}
		sensor := f.sensors[f.sensor]
		m.form = nil
		m.mode = modeBrowse
		if date == m.state.Date && sensor == m.state.SensorFilter {
			return m, nil
		}
		m.state.Date = date
		m.state.SensorFilter = sensor
		return m.loadSessions()
	}

	switch f.focus {
	case fieldDate:
		f.err = ""
		var cmd tea.Cmd
		f.dateInput, cmd = f.dateInput.Update(msg)
		return m, cmd
	case fieldSensor:
		switch msg.String() {
		case "left", "h":
			f.sensor = (f.sensor - 1 + len(f.sensors)) % len(f.sensors)
		case "right", "l":
			f.sensor = (f.sensor + 1) % len(f.sensors)
		}
	}
	return m, nil
}

func (f *queryForm) blurCurrent() {
	if f.focus == fieldDate {
		f.dateInput.Blur()
	}
}

func (f *queryForm) focusCurrent() {
	if f.focus == fieldDate {
		f.dateInput.Focus()
		f.dateInput.CursorEnd()
	}
}

func (m Model) viewQueryForm() string {
	f := m.form

	dateLabel := m.fieldLabel("Date:", f.focus == fieldDate)
	sensorLabel := m.fieldLabel("Sensor:", f.focus == fieldSensor)
	sensorValue := m.renderRadio(f.sensors, f.sensor, f.focus == fieldSensor)

	errLine := ""
	if f.err != "" {
		errLine = "\n" + m.st.errText.Render(f.err)
	}

	content := fmt.Sprintf(
		"%s\n\n%s  %s\n\n%s  %s%s\n\n%s",
		m.st.modalTitle.Render("Query Sessions"),
		dateLabel, f.dateInput.View(),
		sensorLabel, sensorValue,
		errLine,
		m.st.dim.Render("Enter: load  Esc: cancel  Tab: next  ←→: sensor"),
	)

	box := m.st.modalBox.Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) fieldLabel(label string, focused bool) string {
	style := lipgloss.NewStyle().Width(8)
	if focused {
		style = style.Inherit(m.st.modalTitle)
	} else {
		style = style.Inherit(m.st.normal)
	}
	return style.Render(label)
}

func (m Model) renderRadio(options []string, selected int, focused bool) string {
	var parts []string
	for i, opt := range options {
		if i == selected {
			style := lipgloss.NewStyle().Bold(true)
			if focused {
				style = style.Inherit(m.st.badge)
			}
			parts = append(parts, style.Render("● "+opt))
		} else {
			parts = append(parts, m.st.dim.Render("○ "+opt))
		}
	}
	return strings.Join(parts, "  ")
}
