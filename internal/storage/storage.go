package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/meditracker/internal/storage/postgres"
	"github.com/julianstephens/meditracker/internal/storage/sqlite"
)

// MemoryPath selects the in-memory backend
const MemoryPath = ":memory:"

// Open returns the backend named by config without initializing it:
// a PostgreSQL URL, a ".json" file, ":memory:", or otherwise a SQLite file.
func Open(config string) (KV, error) {
	switch {
	case config == MemoryPath:
		return NewMemoryStore(), nil
	case postgres.IsConnectionString(config):
		return postgres.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ExpandPath resolves a leading "~" to the user's home directory
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty storage path")
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
