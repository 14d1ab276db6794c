package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/models"
)

var errDoctorFailed = errors.New("one or more checks failed")

type DoctorCmd struct{}

type check struct {
	name     string
	warnOnly bool
	needsDB  bool
	gatesDB  bool
	run      func(*Context) error
}

var doctorChecks = []check{
	{name: "Storage reachable", gatesDB: true, run: checkStorageReachable},
	{name: "Ledger payload", needsDB: true, run: checkLedgerPayload},
	{name: "Dose timestamps", needsDB: true, run: checkDoseTimestamps},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	hasError := false
	dbReachable := true
	for _, c := range doctorChecks {
		if c.needsDB && !dbReachable {
			fmt.Fprintf(ctx.Out, "⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
			if c.gatesDB {
				dbReachable = false
			}
		}
	}

	fmt.Fprintln(ctx.Out)
	if hasError {
		return errDoctorFailed
	}
	fmt.Fprintln(ctx.Out, "All checks passed.")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if _, _, err := ctx.Store.Get(constants.LedgerKey); err != nil {
		return fmt.Errorf("%s: %w", ctx.Store.Path(), err)
	}
	return nil
}

// checkLedgerPayload surfaces corruption that loading silently replaces with an empty ledger
func checkLedgerPayload(ctx *Context) error {
	raw, ok, err := ctx.Store.Get(constants.LedgerKey)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if _, err := models.UnmarshalLedger([]byte(raw)); err != nil {
		return fmt.Errorf("stored ledger is unreadable and will be reset on next save: %w", err)
	}
	return nil
}

func checkDoseTimestamps(ctx *Context) error {
	raw, ok, err := ctx.Store.Get(constants.LedgerKey)
	if err != nil || !ok {
		return err
	}
	l, err := models.UnmarshalLedger([]byte(raw))
	if err != nil {
		return nil
	}

	now := ctx.Clock.Now()
	for _, m := range models.Medications() {
		if at, taken := l.LastDose(m); taken && at.After(now) {
			return fmt.Errorf("%s was recorded in the future (%s); check the system clock", m.DisplayName(), formatDoseTime(at))
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.Dir())
	}
	return nil
}
