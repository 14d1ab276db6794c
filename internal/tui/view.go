package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/tui/components/card"
)

const footerText = "Données stockées localement sur votre appareil."

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateConfirmation:
		content = m.viewConfirmation()
	default:
		content = m.viewDashboard()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Center,
		headerStyle.Render("✚ MÉDITRACKER"),
		content,
		footerStyle.Render(footerText),
		m.help.View(m.keys),
	)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, ui)
	}
	return docStyle.Render(ui)
}

func (m Model) viewDashboard() string {
	cards := make([]string, 0, len(m.entries)+1)
	for i, e := range m.entries {
		cards = append(cards, card.Render(e, i == m.selected, m.cardWidth()))
	}
	if m.notice != "" {
		cards = append(cards, noticeStyle.Render(m.notice))
	}
	return lipgloss.JoinVertical(lipgloss.Center, cards...)
}

func (m Model) viewConfirmation() string {
	if m.form == nil {
		return ""
	}
	return dialogStyle.Render(m.form.View())
}

func (m Model) cardWidth() int {
	// cards stay in a narrow column on wide terminals
	const maxWidth = 48
	if m.width <= 0 || m.width-8 > maxWidth {
		return maxWidth
	}
	return m.width - 8
}
