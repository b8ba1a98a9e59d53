package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pocket/internal/cli"
	"github.com/charmbracelet/lipgloss"
)

// chromeLines counts the header, search and status lines around the list.
const chromeLines = 4

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{m.renderHeader(), m.renderSearch()}
	if m.width >= wideLayout {
		list := lipgloss.NewStyle().Width(m.listWidth()).Render(m.list.View())
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.dashboard.View()))
	} else {
		sections = append(sections, m.list.View(), m.dashboard.View())
	}
	sections = append(sections, m.renderStatus(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	caseMode := "case-insensitive"
	if m.caseSensitive {
		caseMode = "case-sensitive"
	}
	info := fmt.Sprintf("%d of %d records · sort: %s · %s %s",
		m.list.Len(), m.ctrl.Len(), m.sortKey, m.ctrl.SearchMode(), caseMode)
	return m.theme.Title.Render(cli.WalletIcon+" Pocket") + "  " + m.theme.Subtitle.Render(info)
}

func (m Model) renderSearch() string {
	if !m.searching && m.input.Value() == "" {
		return m.theme.Subtitle.Render("Press / to search")
	}
	return m.input.View()
}

func (m Model) renderStatus() string {
	if m.pendingID != "" {
		return m.theme.StatusWarning.Render(fmt.Sprintf("Delete %q? (y/n)", m.pendingDesc))
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.status)
	}
	return m.theme.StatusSuccess.Render(cli.SuccessIcon + " " + m.status)
}

func (m Model) listWidth() int {
	if m.width >= wideLayout {
		return m.width - dashboardWidth - 4
	}
	return m.width
}

// resize recomputes the list area from the terminal size.
func (m *Model) resize() {
	m.dashboard.SetWidth(dashboardWidth)
	helpLines := strings.Count(m.help.View(m.keys), "\n") + 1
	height := m.height - chromeLines - helpLines
	if m.width < wideLayout {
		height -= lipgloss.Height(m.dashboard.View())
	}
	m.list.SetSize(m.listWidth(), max(height, 3))
}
