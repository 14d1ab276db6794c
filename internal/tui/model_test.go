package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/meditracker/internal/clock"
	"github.com/julianstephens/meditracker/internal/confirm"
	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/controller"
	"github.com/julianstephens/meditracker/internal/ledger"
	"github.com/julianstephens/meditracker/internal/models"
	"github.com/julianstephens/meditracker/internal/storage"
)

var t0 = time.UnixMilli(1718000000000)

func newTestModel(t *testing.T) (Model, *controller.Controller, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	latch := &confirm.Latch{}
	ctrl := controller.New(ledger.NewRepository(kv), clock.Fixed{T: t0}, latch, constants.Cooldown)
	driver := clock.NewDriver(clock.Fixed{T: t0}, time.Hour)
	t.Cleanup(driver.Stop)
	return NewModel(ctrl, driver, latch), ctrl, kv
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and feeds a resulting confirmation request back into the model
func press(t *testing.T, m Model, s string) Model {
	t.Helper()
	next, cmd := m.Update(keyMsg(s))
	m = next.(Model)
	if cmd == nil {
		return m
	}
	if msg, ok := cmd().(constants.ConfirmationMsg); ok {
		next, _ = m.Update(msg)
		m = next.(Model)
	}
	return m
}

// answer completes the open confirmation dialog
func answer(t *testing.T, m Model, yes bool) Model {
	t.Helper()
	if m.state != constants.StateConfirmation {
		t.Fatalf("no confirmation dialog open (state %v)", m.state)
	}
	m.confirmationForm.Confirmed = yes
	m.form.State = huh.StateCompleted
	cmd := m.resolveConfirmation()
	if cmd != nil {
		if res, ok := cmd().(actionResultMsg); ok {
			next, _ := m.Update(res)
			m = next.(Model)
		}
	}
	return m
}

func TestNewModelShowsAllMedications(t *testing.T) {
	m, _, _ := newTestModel(t)

	if len(m.entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(m.entries))
	}
	view := m.View()
	for _, want := range []string{"Doliprane", "Ibuprofène", "PRENDRE"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() is missing %q", want)
		}
	}
}

func TestTakeRequiresConfirmation(t *testing.T) {
	m, ctrl, kv := newTestModel(t)

	m = press(t, m, "t")
	if m.state != constants.StateConfirmation {
		t.Fatalf("state = %v, want confirmation", m.state)
	}
	if !ctrl.Ledger().Equal(models.NewLedger()) {
		t.Fatal("ledger changed before the dialog was answered")
	}

	m = answer(t, m, true)
	if m.state != constants.StateDashboard {
		t.Errorf("state = %v, want dashboard", m.state)
	}
	if _, ok := ctrl.Ledger().LastDose(models.Doliprane); !ok {
		t.Fatal("dose not recorded after confirming")
	}
	if raw, ok, _ := kv.Get(constants.LedgerKey); !ok || !strings.Contains(raw, "1718000000000") {
		t.Errorf("dose not persisted: %q", raw)
	}
	if m.entries[0].Availability.IsAvailable() {
		t.Error("dashboard not refreshed after taking a dose")
	}
	if !strings.Contains(m.View(), "ATTENDRE") {
		t.Error("View() does not show the waiting state")
	}
}

func TestDeclinedConfirmationLeavesLedger(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	m = press(t, m, "down")
	m = press(t, m, "t")
	m = answer(t, m, false)

	if !ctrl.Ledger().Equal(models.NewLedger()) {
		t.Errorf("ledger = %v after declining", ctrl.Ledger())
	}

	// a declined dialog must not leave approval behind
	if applied, _ := ctrl.Take(models.Ibuprofene); applied {
		t.Error("latch stayed armed after a declined dialog")
	}
}

func TestEscCancelsConfirmation(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	m = press(t, m, "r")
	next, _ := m.Update(keyMsg("esc"))
	m = next.(Model)

	if m.state != constants.StateDashboard || m.pendingAction != nil {
		t.Errorf("esc did not close the dialog: state %v", m.state)
	}
	if !ctrl.Ledger().Equal(models.NewLedger()) {
		t.Error("ledger changed after esc")
	}
}

func TestTakeWhileWaitingIsRefused(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "t")
	m = answer(t, m, true)

	m = press(t, m, "t")
	if m.state != constants.StateDashboard {
		t.Fatal("a waiting medication opened a take dialog")
	}
	if !strings.Contains(m.notice, "6h 00m 00s") {
		t.Errorf("notice = %q, want the remaining time", m.notice)
	}
}

func TestResetAfterTake(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m = press(t, m, "t")
	m = answer(t, m, true)

	m = press(t, m, "r")
	m = answer(t, m, true)

	if _, ok := ctrl.Ledger().LastDose(models.Doliprane); ok {
		t.Error("reset did not clear the dose")
	}
	if !m.entries[0].Availability.IsAvailable() {
		t.Error("doliprane not available after reset")
	}
}

func TestTickRefreshesCountdown(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "t")
	m = answer(t, m, true)

	next, cmd := m.Update(TickMsg(t0.Add(time.Hour + 30*time.Second)))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick did not schedule the next tick")
	}
	if got := m.entries[0].Text; got != "4h 59m 30s" {
		t.Errorf("countdown = %q, want 4h 59m 30s", got)
	}
}

func TestQuitStopsDriver(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Init()
	if !m.driver.Running() {
		t.Fatal("Init() did not start the driver")
	}

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if m.driver.Running() {
		t.Error("driver still running after quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit did not return tea.Quit")
	}
	if m.View() != "" {
		t.Error("View() should be empty once quitting")
	}
}

func TestNoticeClearsOnNextKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "t")
	m = answer(t, m, true)
	if !strings.Contains(m.notice, "enregistrée") {
		t.Fatalf("notice = %q, want the confirmation", m.notice)
	}

	m = press(t, m, "down")
	if m.notice != "" {
		t.Errorf("notice = %q after the next key, want it cleared", m.notice)
	}
	if strings.Contains(m.View(), "enregistrée") {
		t.Error("View() still shows the old notice")
	}
}

func TestNoticeExpiresAfterTicks(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "t")
	m = answer(t, m, true)
	m = press(t, m, "t")
	if m.notice == "" {
		t.Fatal("expected a waiting notice")
	}

	for i := 1; i <= noticeLifetime; i++ {
		next, _ := m.Update(TickMsg(t0.Add(time.Duration(i) * time.Second)))
		m = next.(Model)
		if i < noticeLifetime && m.notice == "" {
			t.Fatalf("notice cleared after %d ticks, want %d", i, noticeLifetime)
		}
	}
	if m.notice != "" {
		t.Errorf("notice = %q after %d ticks, want it cleared", m.notice, noticeLifetime)
	}
}
