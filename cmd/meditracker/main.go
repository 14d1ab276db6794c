package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/meditracker/internal/cli"
	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/errors"
	"github.com/julianstephens/meditracker/internal/logger"
	"github.com/julianstephens/meditracker/internal/storage"
	"github.com/julianstephens/meditracker/internal/storage/postgres"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Database file path (.db for SQLite, .json for a JSON file), a PostgreSQL URL without password, or 'keyring'." env:"MEDITRACKER_CONFIG" default:"~/.config/meditracker/meditracker.db"`
	Debug     bool   `help:"Enable debug logging to stderr." env:"MEDITRACKER_DEBUG"`
	Ephemeral bool   `help:"Keep the ledger in memory only for this run."`

	Tui     cli.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status  cli.StatusCmd  `cmd:"" help:"Show whether each medication can be taken."`
	Take    cli.TakeCmd    `cmd:"" help:"Record a dose taken now."`
	Reset   cli.ResetCmd   `cmd:"" help:"Clear the last recorded dose."`
	Watch   cli.WatchCmd   `cmd:"" help:"Print the status every second."`
	Backup  cli.BackupCmd  `cmd:"" help:"Manage database backups."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Keyring cli.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Medication timing reminder for doliprane and ibuprofene"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := cli.NewContext(storage.NewMemoryStore())

	// keyring commands manage the connection string and never open a store
	if !strings.HasPrefix(ctx.Command(), "keyring") {
		store, err := cli.ResolveStore(CLI.Config, CLI.Ephemeral)
		if err != nil {
			errors.Fatal(err)
		}
		appCtx.Store = cli.InitStore(store, os.Stderr)
		defer appCtx.Store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Store.Close()
		errors.Fatal(err)
	}
}

// configDir is where logs live: next to a local database, otherwise the
// default configuration directory.
func configDir(config string) string {
	path := config
	if config == cli.KeyringConfig || postgres.IsConnectionString(config) || config == storage.MemoryPath {
		path = constants.DefaultConfigPath
	}
	expanded, err := storage.ExpandPath(path)
	if err != nil {
		return "."
	}
	return filepath.Dir(expanded)
}
