package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/keyring"
	"github.com/julianstephens/meditracker/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Show whether a connection string is stored."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
}

// KeyringSetCmd stores the database connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

func (cmd *KeyringSetCmd) Run(ctx *Context) error {
	if !postgres.IsConnectionString(cmd.ConnectionString) {
		return errors.New("connection string must be a postgres:// or postgresql:// URL")
	}
	if _, err := url.Parse(cmd.ConnectionString); err != nil {
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Fprintln(ctx.Out, "✓ Connection string stored in OS keyring")
	fmt.Fprintf(ctx.Out, "  Run with --config=%s to use it\n", KeyringConfig)
	return nil
}

// KeyringStatusCmd reports whether a connection string is stored
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *Context) error {
	connStr, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		fmt.Fprintf(ctx.Out, "✓ Connection string stored: %s\n", postgres.New(connStr).Path())
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Fprintf(ctx.Out, "ℹ No connection string stored. Use '%s keyring set' to store one.\n", constants.AppName)
	default:
		return fmt.Errorf("failed to read keyring: %w", err)
	}
	return nil
}

// KeyringDeleteCmd removes the connection string from the OS keyring
type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}

	fmt.Fprintln(ctx.Out, "✓ Connection string deleted from OS keyring")
	return nil
}
