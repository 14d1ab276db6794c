// Package confirm provides the confirmation strategies a dose mutation must
// pass before it is applied.
package confirm

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/meditracker/internal/logger"
	"github.com/julianstephens/meditracker/internal/models"
)

// Confirmer approves or rejects an action described by message
type Confirmer interface {
	Confirm(message string) bool
}

// Func adapts a function to the Confirmer interface
type Func func(message string) bool

func (f Func) Confirm(message string) bool { return f(message) }

var (
	// Always approves every action
	Always Confirmer = Func(func(string) bool { return true })
	// Never rejects every action
	Never Confirmer = Func(func(string) bool { return false })
)

// TakeMessage is the prompt shown before recording a dose
func TakeMessage(m models.Medication) string {
	return fmt.Sprintf("Confirmer la prise de %s ?", m.DisplayName())
}

// ResetMessage is the prompt shown before clearing a dose
func ResetMessage(m models.Medication) string {
	return fmt.Sprintf("Réinitialiser le minuteur pour %s ?", m.DisplayName())
}

// Prompt asks on the terminal. Any prompt error counts as a refusal.
type Prompt struct{}

func (Prompt) Confirm(message string) bool {
	var ok bool
	err := huh.NewConfirm().
		Title(message).
		Affirmative("Oui").
		Negative("Non").
		Value(&ok).
		Run()
	if err != nil {
		logger.Debug("Confirmation prompt aborted", "message", message, "error", err)
		return false
	}
	return ok
}

// Latch approves exactly one action per Arm. It lets a caller that collected
// confirmation through its own UI hand that approval to a Confirmer consumer.
type Latch struct {
	mu    sync.Mutex
	armed bool
}

// Arm grants approval to the next Confirm call
func (l *Latch) Arm() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.armed = true
}

// Disarm drops a pending approval without using it
func (l *Latch) Disarm() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.armed = false
}

// Confirm consumes a pending approval
func (l *Latch) Confirm(string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	ok := l.armed
	l.armed = false
	return ok
}
