// Package controller owns the dose ledger. It is the only place the ledger is
// mutated, and every applied mutation is persisted before the call returns.
package controller

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/meditracker/internal/availability"
	"github.com/julianstephens/meditracker/internal/clock"
	"github.com/julianstephens/meditracker/internal/confirm"
	"github.com/julianstephens/meditracker/internal/logger"
	"github.com/julianstephens/meditracker/internal/models"
)

// Repository loads and saves the dose ledger
type Repository interface {
	Load() models.Ledger
	Save(models.Ledger)
}

type Controller struct {
	mu        sync.Mutex
	repo      Repository
	clock     clock.Clock
	confirmer confirm.Confirmer
	cooldown  time.Duration
	ledger    models.Ledger
}

// New loads the ledger from repo once and returns a controller over it
func New(repo Repository, c clock.Clock, confirmer confirm.Confirmer, cooldown time.Duration) *Controller {
	return &Controller{
		repo:      repo,
		clock:     c,
		confirmer: confirmer,
		cooldown:  cooldown,
		ledger:    repo.Load(),
	}
}

// Take records a dose of m taken now, after confirmation. It reports whether
// the dose was recorded.
func (c *Controller) Take(m models.Medication) (bool, error) {
	if !m.IsKnown() {
		return false, c.refuse(m)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.confirmer.Confirm(confirm.TakeMessage(m)) {
		logger.Debug("Dose not confirmed", "medication", m)
		return false, nil
	}

	now := c.clock.Now()
	c.ledger = models.RecordDose(c.ledger, m, now)
	c.repo.Save(c.ledger)
	logger.Info("Dose recorded", "medication", m, "at", now)
	return true, nil
}

// Reset clears the last dose of m, after confirmation. It reports whether the
// ledger was changed.
func (c *Controller) Reset(m models.Medication) (bool, error) {
	if !m.IsKnown() {
		return false, c.refuse(m)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.confirmer.Confirm(confirm.ResetMessage(m)) {
		logger.Debug("Reset not confirmed", "medication", m)
		return false, nil
	}

	c.ledger = models.ResetDose(c.ledger, m)
	c.repo.Save(c.ledger)
	logger.Info("Dose timer reset", "medication", m)
	return true, nil
}

// refuse rejects an action on an unknown medication. Any approval granted
// for it ahead of time is dropped so it cannot apply to a later action.
func (c *Controller) refuse(m models.Medication) error {
	if d, ok := c.confirmer.(interface{ Disarm() }); ok {
		d.Disarm()
	}
	return fmt.Errorf("%w: %q", models.ErrUnknownMedication, string(m))
}

// Snapshot evaluates every medication at the current time
func (c *Controller) Snapshot() []availability.Entry {
	return c.SnapshotAt(c.clock.Now())
}

// SnapshotAt evaluates every medication at now
func (c *Controller) SnapshotAt(now time.Time) []availability.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return availability.Evaluate(c.ledger, now, c.cooldown)
}

// Ledger returns a copy of the current ledger
func (c *Controller) Ledger() models.Ledger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.Clone()
}

// Clock returns the time source the controller stamps doses with
func (c *Controller) Clock() clock.Clock {
	return c.clock
}
