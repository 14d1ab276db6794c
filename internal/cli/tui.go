package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/meditracker/internal/clock"
	"github.com/julianstephens/meditracker/internal/confirm"
	"github.com/julianstephens/meditracker/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	ctx.PerformAutomaticBackup()

	latch := &confirm.Latch{}
	ctrl := ctx.NewController(latch)
	driver := clock.NewDriver(ctx.Clock, ctx.TickInterval)
	defer driver.Stop()

	p := tea.NewProgram(tui.NewModel(ctrl, driver, latch), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
