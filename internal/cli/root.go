package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/meditracker/internal/backup"
	"github.com/julianstephens/meditracker/internal/clock"
	"github.com/julianstephens/meditracker/internal/confirm"
	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/controller"
	"github.com/julianstephens/meditracker/internal/keyring"
	"github.com/julianstephens/meditracker/internal/ledger"
	"github.com/julianstephens/meditracker/internal/logger"
	"github.com/julianstephens/meditracker/internal/models"
	"github.com/julianstephens/meditracker/internal/storage"
	"github.com/julianstephens/meditracker/internal/storage/postgres"
	"github.com/julianstephens/meditracker/internal/storage/sqlite"
)

// KeyringConfig makes the store read its connection string from the OS keyring
const KeyringConfig = "keyring"

type Context struct {
	Store        storage.KV
	Clock        clock.Clock
	Cooldown     time.Duration
	TickInterval time.Duration
	Out          io.Writer

	// Confirmer answers prompts when --yes is not given. Nil means an
	// interactive terminal prompt.
	Confirmer confirm.Confirmer
}

// NewContext returns a context over store using the real clock
func NewContext(store storage.KV) *Context {
	return &Context{
		Store:        store,
		Clock:        clock.Real{},
		Cooldown:     constants.Cooldown,
		TickInterval: constants.TickInterval,
		Out:          os.Stdout,
	}
}

// NewController loads the ledger and returns a controller confirming through c
func (ctx *Context) NewController(c confirm.Confirmer) *controller.Controller {
	return controller.New(ledger.NewRepository(ctx.Store), ctx.Clock, c, ctx.Cooldown)
}

// ResolveStore picks the storage backend for config. MEDITRACKER_DB_CONNECTION
// overrides config; "keyring" reads the connection string from the OS keyring.
// PostgreSQL URLs given on the command line must not embed a password.
func ResolveStore(config string, ephemeral bool) (storage.KV, error) {
	if ephemeral {
		return storage.NewMemoryStore(), nil
	}

	if conn := os.Getenv(constants.EnvDBConnection); conn != "" {
		logger.Debug("Using connection string from environment", "var", constants.EnvDBConnection)
		return storage.Open(conn)
	}

	if config == KeyringConfig {
		conn, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, fmt.Errorf("no connection string stored, run '%s keyring set' first", constants.AppName)
			}
			return nil, err
		}
		return storage.Open(conn)
	}

	if postgres.IsConnectionString(config) && postgres.HasEmbeddedCredentials(config) {
		return nil, fmt.Errorf("%w; store it with '%s keyring set' and run with --config=%s, export %s, or use a .pgpass file",
			postgres.ErrEmbeddedCredentials, constants.AppName, KeyringConfig, constants.EnvDBConnection)
	}
	return storage.Open(config)
}

// InitStore prepares store. When the backend cannot be prepared the ledger is
// kept in memory for this run and a warning is printed.
func InitStore(store storage.KV, errOut io.Writer) storage.KV {
	if err := store.Init(); err != nil {
		logger.Warn("Storage unavailable, changes will not be saved", "path", store.Path(), "error", err)
		fmt.Fprintf(errOut, "Warning: storage unavailable (%v); changes will not be saved.\n", err)
		return storage.NewMemoryStore()
	}
	return store
}

// BackupManager returns a backup manager for the sqlite store. Other backends
// have no single database file to snapshot.
func (ctx *Context) BackupManager() (*backup.Manager, error) {
	store, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, fmt.Errorf("backups are only supported for the sqlite backend (current: %s)", ctx.Store.Path())
	}
	return backup.NewManager(store.Path(), ctx.Clock), nil
}

// PerformAutomaticBackup creates a backup when possible and only logs failures
func (ctx *Context) PerformAutomaticBackup() {
	mgr, err := ctx.BackupManager()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

func parseMedication(name string) (models.Medication, error) {
	m, err := models.ParseMedication(name)
	if err != nil {
		names := make([]string, 0, len(models.Medications()))
		for _, known := range models.Medications() {
			names = append(names, string(known))
		}
		return "", fmt.Errorf("%w (expected one of %s)", err, strings.Join(names, ", "))
	}
	return m, nil
}
