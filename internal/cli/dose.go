package cli

import (
	"fmt"

	"github.com/julianstephens/meditracker/internal/confirm"
)

// TakeCmd records a dose taken now
type TakeCmd struct {
	Medication string `arg:"" help:"Medication to record (doliprane or ibuprofene)."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *TakeCmd) Run(ctx *Context) error {
	m, err := parseMedication(c.Medication)
	if err != nil {
		return err
	}

	ctrl := ctx.NewController(ctx.confirmer(c.Yes))
	for _, e := range ctrl.Snapshot() {
		if e.Medication == m && !e.Availability.IsAvailable() {
			fmt.Fprintf(ctx.Out, "⚠ %s was taken less than %s ago (%s remaining).\n",
				m.DisplayName(), ctx.Cooldown, e.Text)
		}
	}

	applied, err := ctrl.Take(m)
	if err != nil {
		return err
	}
	if !applied {
		fmt.Fprintln(ctx.Out, "Cancelled.")
		return nil
	}

	at, _ := ctrl.Ledger().LastDose(m)
	fmt.Fprintf(ctx.Out, "✓ %s recorded at %s\n", m.DisplayName(), formatDoseTime(at))
	fmt.Fprintf(ctx.Out, "  Next dose available at %s\n", formatDoseTime(at.Add(ctx.Cooldown)))
	return nil
}

// ResetCmd clears the last recorded dose
type ResetCmd struct {
	Medication string `arg:"" help:"Medication to reset (doliprane or ibuprofene)."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	m, err := parseMedication(c.Medication)
	if err != nil {
		return err
	}

	applied, err := ctx.NewController(ctx.confirmer(c.Yes)).Reset(m)
	if err != nil {
		return err
	}
	if !applied {
		fmt.Fprintln(ctx.Out, "Cancelled.")
		return nil
	}

	fmt.Fprintf(ctx.Out, "✓ %s timer reset\n", m.DisplayName())
	return nil
}

func (ctx *Context) confirmer(yes bool) confirm.Confirmer {
	switch {
	case yes:
		return confirm.Always
	case ctx.Confirmer != nil:
		return ctx.Confirmer
	default:
		return confirm.Prompt{}
	}
}
