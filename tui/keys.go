package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	SwitchPane key.Binding
	Reload     key.Binding
	Sensor     key.Binding
	Query      key.Binding
	Theme      key.Binding

	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	Select key.Binding

	PrevCandidate key.Binding
	NextCandidate key.Binding
	OpenLink      key.Binding
	Raw           key.Binding

	CloseModal key.Binding
	Copy       key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	SwitchPane: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pane")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Sensor:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sensor")),
	Query:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "date")),
	Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),

	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Top:    key.NewBinding(key.WithKeys("home", "g")),
	Bottom: key.NewBinding(key.WithKeys("end", "G")),
	PgUp:   key.NewBinding(key.WithKeys("pgup")),
	PgDown: key.NewBinding(key.WithKeys("pgdown")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),

	PrevCandidate: key.NewBinding(key.WithKeys("[", "left"), key.WithHelp("[/]", "candidate")),
	NextCandidate: key.NewBinding(key.WithKeys("]", "right")),
	OpenLink:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open link")),
	Raw:           key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "raw json")),

	CloseModal: key.NewBinding(key.WithKeys("esc", "q", "x"), key.WithHelp("esc", "close")),
	Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
}

func helpLine(bindings ...key.Binding) string {
	var out string
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if out != "" {
			out += "  "
		}
		out += h.Key + ": " + h.Desc
	}
	return out
}
