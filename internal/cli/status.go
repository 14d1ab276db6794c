package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/meditracker/internal/availability"
	"github.com/julianstephens/meditracker/internal/confirm"
	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/models"
)

var (
	availableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	waitingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type StatusCmd struct {
	JSON bool `help:"Print the status as JSON."`
}

type statusEntry struct {
	Medication  models.Medication `json:"medication"`
	Status      models.Status     `json:"status"`
	RemainingMs int64             `json:"remaining_ms"`
	Remaining   string            `json:"remaining"`
	LastDose    *int64            `json:"last_dose"`
}

func (c *StatusCmd) Run(ctx *Context) error {
	ctrl := ctx.NewController(confirm.Never)
	now := ctx.Clock.Now()
	entries := ctrl.SnapshotAt(now)

	if c.JSON {
		ledger := ctrl.Ledger()
		out := make([]statusEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, statusEntry{
				Medication:  e.Medication,
				Status:      e.Availability.Status,
				RemainingMs: e.Availability.Remaining.Milliseconds(),
				Remaining:   e.Text,
				LastDose:    ledger[e.Medication],
			})
		}
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(ctx.Out, statusLines(entries, true))
	return nil
}

// statusLines renders one line per medication, colored when styled is set
func statusLines(entries []availability.Entry, styled bool) string {
	width := 0
	for _, e := range entries {
		if w := lipgloss.Width(e.Medication.DisplayName()); w > width {
			width = w
		}
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		name := lipgloss.NewStyle().Width(width).Render(e.Medication.DisplayName())
		lines = append(lines, name+"  "+statusWord(e, styled))
	}
	return strings.Join(lines, "\n")
}

func statusWord(e availability.Entry, styled bool) string {
	if e.Availability.IsAvailable() {
		if styled {
			return availableStyle.Render("AVAILABLE")
		}
		return "AVAILABLE"
	}
	word := "WAIT " + e.Text
	if styled {
		return waitingStyle.Render(word)
	}
	return word
}

func formatDoseTime(t time.Time) string {
	return t.Local().Format(constants.TimestampLayout)
}
