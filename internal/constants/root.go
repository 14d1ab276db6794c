package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "meditracker"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/meditracker/meditracker.db"
	Version            = "v0.3.0"

	// LedgerKey is the single key the dose ledger is persisted under
	LedgerKey = "medi_tracker_log"

	// Cooldown is the minimum wait between two doses of the same medication
	Cooldown = 6 * time.Hour

	// TickInterval is the cadence of the countdown clock driver
	TickInterval = time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "meditracker-"
	BackupFileSuffix = ".db"

	// Environment variables
	EnvConfig           = "MEDITRACKER_CONFIG"
	EnvDebug            = "MEDITRACKER_DEBUG"
	EnvDBConnection     = "MEDITRACKER_DB_CONNECTION"
	PostgresSchema      = AppName
	KVTableName         = "kv"
	TimestampLayout     = time.RFC3339
	RemainingZeroFormat = "0h 00m 00s"

	// Session States
	StateDashboard SessionState = iota
	StateConfirmation
)
