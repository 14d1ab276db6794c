package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/meditracker/internal/confirm"
	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/logger"
	"github.com/julianstephens/meditracker/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.refresh(time.Time(msg))
		m.ageNotice()
		return m, waitForTick(m.driver.C())

	case actionResultMsg:
		m.applyResult(msg)
		return m, nil

	case constants.ConfirmationMsg:
		m.confirmationForm = &ConfirmationFormModel{Message: msg.Message}
		m.pendingAction = msg.Action
		m.form = newConfirmationForm(m.confirmationForm)
		m.state = constants.StateConfirmation
		return m, m.form.Init()
	}

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.state {
	case constants.StateConfirmation:
		return m.updateConfirmation(msg)
	default:
		return m.updateDashboard(msg)
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.driver.Stop()
	return m, tea.Quit
}

func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.clearNotice()

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, m.keys.Take):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		if !entry.Availability.IsAvailable() {
			m.setNotice(fmt.Sprintf("%s : encore %s", entry.Medication.DisplayName(), entry.Text))
			return m, nil
		}
		return m, m.requestConfirmation(confirm.TakeMessage(entry.Medication), m.takeAction(entry.Medication))
	case key.Matches(keyMsg, m.keys.Reset):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		return m, m.requestConfirmation(confirm.ResetMessage(entry.Medication), m.resetAction(entry.Medication))
	}
	return m, nil
}

func (m Model) requestConfirmation(message string, action func() tea.Cmd) tea.Cmd {
	return func() tea.Msg {
		return constants.ConfirmationMsg{Message: message, Action: action}
	}
}

// actionResultMsg reports the outcome of a confirmed take or reset
type actionResultMsg struct {
	medication models.Medication
	applied    bool
	err        error
	format     string
}

// takeAction records the dose when the dialog is accepted. The mutation and
// its persistence happen inside the handler that accepted the dialog.
func (m Model) takeAction(med models.Medication) func() tea.Cmd {
	ctrl, latch := m.ctrl, m.latch
	return func() tea.Cmd {
		latch.Arm()
		applied, err := ctrl.Take(med)
		return actionResult(med, applied, err, "Prise de %s enregistrée")
	}
}

func (m Model) resetAction(med models.Medication) func() tea.Cmd {
	ctrl, latch := m.ctrl, m.latch
	return func() tea.Cmd {
		latch.Arm()
		applied, err := ctrl.Reset(med)
		return actionResult(med, applied, err, "Minuteur de %s réinitialisé")
	}
}

func actionResult(med models.Medication, applied bool, err error, format string) tea.Cmd {
	return func() tea.Msg {
		return actionResultMsg{medication: med, applied: applied, err: err, format: format}
	}
}

func (m *Model) applyResult(msg actionResultMsg) {
	switch {
	case msg.err != nil:
		logger.Error("Dose action failed", "medication", msg.medication, "error", msg.err)
		m.setNotice(msg.err.Error())
	case msg.applied:
		m.setNotice(fmt.Sprintf(msg.format, msg.medication.DisplayName()))
	}
	m.refresh(m.ctrl.Clock().Now())
}

func newConfirmationForm(fm *ConfirmationFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fm.Message).
				Affirmative("Oui").
				Negative("Non").
				Value(&fm.Confirmed),
		),
	).WithShowHelp(false)
}

func (m Model) updateConfirmation(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.closeConfirmation()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	actionCmd := m.resolveConfirmation()
	return m, tea.Batch(cmd, actionCmd)
}

// resolveConfirmation runs the pending action once the dialog was accepted
// and closes the dialog when it is finished either way.
func (m *Model) resolveConfirmation() tea.Cmd {
	var cmd tea.Cmd
	switch m.form.State {
	case huh.StateCompleted:
		if m.confirmationForm.Confirmed && m.pendingAction != nil {
			cmd = m.pendingAction()
			m.refresh(m.ctrl.Clock().Now())
		}
		m.closeConfirmation()
	case huh.StateAborted:
		m.closeConfirmation()
	}
	return cmd
}

func (m *Model) closeConfirmation() {
	m.pendingAction = nil
	m.confirmationForm = nil
	m.form = nil
	m.state = constants.StateDashboard
}
