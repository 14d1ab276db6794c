package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/julianstephens/meditracker/internal/availability"
	"github.com/julianstephens/meditracker/internal/clock"
	"github.com/julianstephens/meditracker/internal/confirm"
)

// WatchCmd prints the status on every clock tick
type WatchCmd struct {
	For time.Duration `help:"Stop after this duration (0 watches until interrupted)." default:"0s"`
}

func (c *WatchCmd) Run(ctx *Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(runCtx, ctx)
}

func (c *WatchCmd) watch(runCtx context.Context, ctx *Context) error {
	if c.For < 0 {
		return fmt.Errorf("invalid duration: %s", c.For)
	}
	if c.For > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, c.For)
		defer cancel()
	}

	ctrl := ctx.NewController(confirm.Never)
	driver := clock.NewDriver(ctx.Clock, ctx.TickInterval)
	driver.Start()
	defer driver.Stop()

	now := ctx.Clock.Now()
	fmt.Fprintln(ctx.Out, watchLine(now, ctrl.SnapshotAt(now)))
	for {
		select {
		case <-runCtx.Done():
			return nil
		case now, ok := <-driver.C():
			if !ok {
				return nil
			}
			fmt.Fprintln(ctx.Out, watchLine(now, ctrl.SnapshotAt(now)))
		}
	}
}

func watchLine(now time.Time, entries []availability.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Medication.DisplayName()+" "+statusWord(e, false))
	}
	return now.Local().Format("15:04:05") + "  " + strings.Join(parts, " | ")
}
