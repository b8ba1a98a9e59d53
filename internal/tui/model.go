// Package tui implements the interactive ledger browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/pocket/internal/app"
	"github.com/Veraticus/pocket/internal/ledger"
	"github.com/Veraticus/pocket/internal/tui/components"
	"github.com/Veraticus/pocket/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	dashboardWidth = 44
	wideLayout     = 100
	statusTimeout  = 4 * time.Second
)

// changeTracker records controller events between renders. It lives on the
// heap so the copies bubbletea makes of Model share it.
type changeTracker struct {
	kind app.EventKind
}

func (c *changeTracker) take() app.EventKind {
	k := c.kind
	c.kind = 0
	return k
}

// Model is the bubbletea model of the browser. Every controller call happens
// inside Update so the controller is only touched from one goroutine.
type Model struct {
	ctx           context.Context
	ctrl          *app.Controller
	changes       *changeTracker
	unsubscribe   func()
	theme         themes.Theme
	keys          KeyMap
	help          help.Model
	input         textinput.Model
	list          components.RecordListModel
	dashboard     components.DashboardModel
	pendingID     string
	pendingDesc   string
	status        string
	sortKey       ledger.SortKey
	width         int
	height        int
	statusSeq     int
	statusErr     bool
	searching     bool
	caseSensitive bool
}

func newModel(ctx context.Context, ctrl *app.Controller, cfg Config) Model {
	input := textinput.New()
	input.Placeholder = "search descriptions and categories"
	input.Prompt = "/ "
	input.CharLimit = 120

	changes := &changeTracker{}
	m := Model{
		ctx:       ctx,
		ctrl:      ctrl,
		changes:   changes,
		theme:     cfg.Theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		list:      components.NewRecordList(cfg.Theme, cfg.Width, cfg.Height),
		dashboard: components.NewDashboard(cfg.Theme, dashboardWidth),
		sortKey:   ledger.SortDate,
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.unsubscribe = ctrl.Subscribe(func(e app.Event) {
		changes.kind |= e.Kind
	})
	m.resize()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
	case tea.KeyMsg:
		switch {
		case m.pendingID != "":
			cmd = m.handleConfirmKeys(msg)
		case m.searching:
			cmd = m.handleSearchKeys(msg)
		default:
			cmd = m.handleListKeys(msg)
		}
	}

	if m.changes.take() != 0 {
		m.refresh()
	}
	return m, cmd
}

func (m *Model) handleListKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Up):
		m.list.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.list.Move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.list.Page(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.list.Page(1)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.input.Focus()
	case key.Matches(msg, m.keys.ToggleCase):
		m.toggleCase()
	case key.Matches(msg, m.keys.ClearSearch):
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.refresh()
		}
	case key.Matches(msg, m.keys.SortDate):
		return m.sort(ledger.SortDate)
	case key.Matches(msg, m.keys.SortDescription):
		return m.sort(ledger.SortDescription)
	case key.Matches(msg, m.keys.SortAmount):
		return m.sort(ledger.SortAmount)
	case key.Matches(msg, m.keys.Delete):
		if rec, ok := m.list.Selected(); ok {
			m.pendingID = rec.ID
			m.pendingDesc = rec.Description
		}
	}
	return nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, m.keys.Accept):
		m.searching = false
		m.input.Blur()
		return nil
	case key.Matches(msg, m.keys.ClearSearch):
		m.searching = false
		m.input.Blur()
		m.input.SetValue("")
		m.refresh()
		return nil
	case key.Matches(msg, m.keys.ToggleCase):
		m.toggleCase()
		return nil
	case msg.Type == tea.KeyUp:
		m.list.Move(-1)
		return nil
	case msg.Type == tea.KeyDown:
		m.list.Move(1)
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id, desc := m.pendingID, m.pendingDesc
		m.pendingID, m.pendingDesc = "", ""
		err := m.ctrl.DeleteRecord(m.ctx, id)
		if cmd, failed := m.reportError(err); failed {
			return cmd
		}
		return m.setStatus(fmt.Sprintf("Deleted %q", desc), false)
	case key.Matches(msg, m.keys.Cancel):
		m.pendingID, m.pendingDesc = "", ""
	}
	return nil
}

func (m *Model) toggleCase() {
	m.caseSensitive = !m.caseSensitive
	m.refresh()
}

func (m *Model) sort(k ledger.SortKey) tea.Cmd {
	m.sortKey = k
	err := m.ctrl.Sort(m.ctx, k)
	m.refresh()
	m.list.Move(-m.list.Len())
	if cmd, failed := m.reportError(err); failed {
		return cmd
	}
	return m.setStatus("Sorted by "+string(k), false)
}

// reportError shows err on the status line. A persistence failure is only a
// warning because the change has already been applied in memory.
func (m *Model) reportError(err error) (tea.Cmd, bool) {
	if err == nil {
		return nil, false
	}
	var persistErr *app.PersistError
	if errors.As(err, &persistErr) {
		return m.setStatus("Changes not saved: "+persistErr.Err.Error(), true), true
	}
	return m.setStatus(err.Error(), true), true
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// refresh rebuilds the list and the dashboard from the controller.
func (m *Model) refresh() {
	settings := m.ctrl.Settings()
	m.list.SetMatches(m.ctrl.Search(m.input.Value(), m.caseSensitive), settings)
	m.dashboard.SetSummary(m.ctrl.Summary(), settings)
}

// Close detaches the model from the controller.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}
