package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yeehaw32/tpot-analysis/api"
	"github.com/yeehaw32/tpot-analysis/model"
)

// Every async result carries the sequence number of the request that
// produced it, so Update can drop results that are no longer wanted.

type sessionsLoadedMsg struct {
	seq  uint64
	date string
	list model.SessionList
	err  error
}

type detailLoadedMsg struct {
	seq       uint64
	sessionID string
	detail    model.SessionDetail
	err       error
}

type ruleLoadedMsg struct {
	seq uint64
	sid string
	doc model.RuleDocument
	err error
}

type copyResultMsg struct {
	seq uint64
	err error
}

type copyResetMsg struct {
	seq uint64
}

type linkOpenedMsg struct {
	url string
	err error
}

type prefsSavedMsg struct {
	err error
}

func fetchSessions(ctx context.Context, f api.Fetcher, seq uint64, date string) tea.Cmd {
	return func() tea.Msg {
		list, err := f.FetchSessionList(ctx, date)
		return sessionsLoadedMsg{seq: seq, date: date, list: list, err: err}
	}
}

func fetchDetail(ctx context.Context, f api.Fetcher, seq uint64, date, sessionID string) tea.Cmd {
	return func() tea.Msg {
		d, err := f.FetchSessionDetail(ctx, date, sessionID)
		return detailLoadedMsg{seq: seq, sessionID: sessionID, detail: d, err: err}
	}
}

func fetchRule(ctx context.Context, f api.Fetcher, seq uint64, sid string) tea.Cmd {
	return func() tea.Msg {
		doc, err := f.FetchRuleDocument(ctx, sid)
		return ruleLoadedMsg{seq: seq, sid: sid, doc: doc, err: err}
	}
}

func writeClipboard(c Clipboard, seq uint64, text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{seq: seq, err: c.WriteAll(text)}
	}
}

func resetCopyLabel(after time.Duration, seq uint64) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return copyResetMsg{seq: seq}
	})
}

func openLink(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenedMsg{url: url, err: open(url)}
	}
}
