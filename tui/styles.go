package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yeehaw32/tpot-analysis/prefs"
)

type palette struct {
	accent     lipgloss.Color
	text       lipgloss.Color
	muted      lipgloss.Color
	bar        lipgloss.Color
	barText    lipgloss.Color
	selectedBg lipgloss.Color
	selectedFg lipgloss.Color
	chip       lipgloss.Color
	risk       lipgloss.Color
	errText    lipgloss.Color
	link       lipgloss.Color
	highlight  lipgloss.Color
}

var darkPalette = palette{
	accent:     lipgloss.Color("39"),
	text:       lipgloss.Color("252"),
	muted:      lipgloss.Color("242"),
	bar:        lipgloss.Color("236"),
	barText:    lipgloss.Color("252"),
	selectedBg: lipgloss.Color("25"),
	selectedFg: lipgloss.Color("255"),
	chip:       lipgloss.Color("214"),
	risk:       lipgloss.Color("203"),
	errText:    lipgloss.Color("196"),
	link:       lipgloss.Color("81"),
	highlight:  lipgloss.Color("226"),
}

var lightPalette = palette{
	accent:     lipgloss.Color("25"),
	text:       lipgloss.Color("235"),
	muted:      lipgloss.Color("245"),
	bar:        lipgloss.Color("254"),
	barText:    lipgloss.Color("236"),
	selectedBg: lipgloss.Color("153"),
	selectedFg: lipgloss.Color("16"),
	chip:       lipgloss.Color("130"),
	risk:       lipgloss.Color("160"),
	errText:    lipgloss.Color("124"),
	link:       lipgloss.Color("26"),
	highlight:  lipgloss.Color("220"),
}

type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	selected  lipgloss.Style
	normal    lipgloss.Style
	sensorTag lipgloss.Style
	risk      lipgloss.Style
	dim       lipgloss.Style
	statusBar lipgloss.Style
	help      lipgloss.Style
	errText   lipgloss.Style
	separator lipgloss.Style

	blockTitle lipgloss.Style
	chip       lipgloss.Style
	label      lipgloss.Style
	badge      lipgloss.Style
	link       lipgloss.Style
	cursor     lipgloss.Style

	modalBox   lipgloss.Style
	modalTitle lipgloss.Style
	button     lipgloss.Style
}

func newStyles(theme prefs.Theme) styles {
	p := darkPalette
	if theme == prefs.ThemeLight {
		p = lightPalette
	}
	return styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			Padding(0, 1),
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.barText).
			Background(p.bar).
			Padding(0, 1),
		selected: lipgloss.NewStyle().
			Background(p.selectedBg).
			Foreground(p.selectedFg),
		normal: lipgloss.NewStyle().
			Foreground(p.text),
		sensorTag: lipgloss.NewStyle().
			Foreground(p.chip).
			Bold(true),
		risk: lipgloss.NewStyle().
			Foreground(p.risk).
			Bold(true),
		dim: lipgloss.NewStyle().
			Foreground(p.muted),
		statusBar: lipgloss.NewStyle().
			Background(p.bar).
			Foreground(p.barText).
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Foreground(p.muted),
		errText: lipgloss.NewStyle().
			Foreground(p.errText),
		separator: lipgloss.NewStyle().
			Foreground(p.bar),

		blockTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text).
			Background(p.bar).
			Padding(0, 1),
		chip: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true),
		label: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(18),
		badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),
		link: lipgloss.NewStyle().
			Foreground(p.link).
			Underline(true),
		cursor: lipgloss.NewStyle().
			Background(p.highlight).
			Foreground(lipgloss.Color("0")),

		modalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent).
			Padding(1, 2),
		modalTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),
		button: lipgloss.NewStyle().
			Foreground(p.barText).
			Background(p.bar).
			Padding(0, 1),
	}
}
