package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/meditracker/internal/availability"
	"github.com/julianstephens/meditracker/internal/clock"
	"github.com/julianstephens/meditracker/internal/confirm"
	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/controller"
)

// TickMsg carries a clock driver sample
type TickMsg time.Time

// ConfirmationFormModel backs the confirmation dialog
type ConfirmationFormModel struct {
	Message   string
	Confirmed bool
}

type Model struct {
	ctrl             *controller.Controller
	driver           *clock.Driver
	latch            *confirm.Latch
	state            constants.SessionState
	keys             KeyMap
	help             help.Model
	entries          []availability.Entry
	selected         int
	form             *huh.Form
	confirmationForm *ConfirmationFormModel
	pendingAction    func() tea.Cmd
	notice           string
	noticeTicks      int
	quitting         bool
	width            int
	height           int
}

// NewModel builds the dashboard. The controller must confirm through latch;
// the model arms it once the user accepts a confirmation dialog. The driver
// is started by Init and stopped when the user quits.
func NewModel(ctrl *controller.Controller, driver *clock.Driver, latch *confirm.Latch) Model {
	return Model{
		ctrl:    ctrl,
		driver:  driver,
		latch:   latch,
		state:   constants.StateDashboard,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		entries: ctrl.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	m.driver.Start()
	return waitForTick(m.driver.C())
}

// waitForTick blocks on the next driver sample. A closed channel ends the loop.
func waitForTick(c <-chan time.Time) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-c
		if !ok {
			return nil
		}
		return TickMsg(t)
	}
}

// noticeLifetime is how many ticks a notice stays under the cards
const noticeLifetime = 5

func (m *Model) setNotice(text string) {
	m.notice = text
	m.noticeTicks = noticeLifetime
}

func (m *Model) clearNotice() {
	m.notice = ""
	m.noticeTicks = 0
}

// ageNotice counts one tick against the current notice
func (m *Model) ageNotice() {
	if m.noticeTicks == 0 {
		return
	}
	m.noticeTicks--
	if m.noticeTicks == 0 {
		m.notice = ""
	}
}

func (m *Model) refresh(now time.Time) {
	m.entries = m.ctrl.SnapshotAt(now)
}

func (m Model) selectedEntry() (availability.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return availability.Entry{}, false
	}
	return m.entries[m.selected], true
}
