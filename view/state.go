// Package view holds the dashboard's UI state and the pure projections of
// that state into display models. Nothing here performs I/O.
package view

import "github.com/yeehaw32/tpot-analysis/model"

// FilterAll is the sensor filter value that passes every session.
const FilterAll = "all"

const (
	NoSessionsText   = "No sessions for this date."
	SelectPromptText = "Select a session to view details."
	LoadingListText  = "Loading sessions..."
	LoadingText      = "Loading session detail..."
)

// LoadState tracks the rule modal's fetch lifecycle.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadLoading
	LoadLoaded
	LoadError
)

func (s LoadState) String() string {
	switch s {
	case LoadLoading:
		return "loading"
	case LoadLoaded:
		return "loaded"
	case LoadError:
		return "error"
	default:
		return "idle"
	}
}

// ModalState is the rule viewer. Seq identifies the fetch the modal is
// currently waiting for; results carrying another Seq are stale.
type ModalState struct {
	Open      bool
	TargetSID string
	Title     string
	Load      LoadState
	Text      string
	Err       error
	Seq       uint64
}

// State is the single mutable view state of the dashboard.
type State struct {
	Date         string
	SensorFilter string

	Sessions    []model.SessionSummary
	ListLoading bool
	ListErr     error

	SelectedID    string
	Detail        *model.SessionDetail
	DetailLoading bool
	DetailErr     error

	Modal ModalState
}

func NewState(date, sensorFilter string) State {
	if sensorFilter == "" {
		sensorFilter = FilterAll
	}
	return State{Date: date, SensorFilter: sensorFilter}
}

// Visible returns the sessions that pass the active sensor filter.
func (s State) Visible() []model.SessionSummary {
	return FilterSessions(s.Sessions, s.SensorFilter)
}
