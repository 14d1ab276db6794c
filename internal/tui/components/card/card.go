package card

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/meditracker/internal/availability"
)

const defaultWidth = 40

var (
	green = lipgloss.Color("34")
	red   = lipgloss.Color("160")

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	takeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(green).
			Padding(0, 2)

	waitStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(red).
			Padding(0, 2)

	countdownStyle = lipgloss.NewStyle().
			Foreground(red).
			Bold(true)
)

// Render draws one medication card. Available cards get a green border and a
// take button; waiting cards a red border and the countdown.
func Render(e availability.Entry, selected bool, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	color := green
	if !e.Availability.IsAvailable() {
		color = red
	}

	border := lipgloss.RoundedBorder()
	if selected {
		border = lipgloss.ThickBorder()
	}

	var body string
	if e.Availability.IsAvailable() {
		body = takeStyle.Render("✔ PRENDRE")
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center,
			waitStyle.Render("⏱ ATTENDRE"),
			countdownStyle.Render(e.Text),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		nameStyle.Render(e.Medication.DisplayName()),
		"",
		body,
	)

	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Width(width).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}
