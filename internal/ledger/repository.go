// Package ledger persists the dose ledger in a key-value store. Loading never
// fails: anything that cannot be read back yields the empty ledger.
package ledger

import (
	"encoding/json"

	"github.com/julianstephens/meditracker/internal/constants"
	"github.com/julianstephens/meditracker/internal/logger"
	"github.com/julianstephens/meditracker/internal/models"
	"github.com/julianstephens/meditracker/internal/storage"
)

type Repository struct {
	kv  storage.KV
	key string
}

func NewRepository(kv storage.KV) *Repository {
	return &Repository{kv: kv, key: constants.LedgerKey}
}

// Load returns the persisted ledger, or the empty ledger when nothing valid
// is stored.
func (r *Repository) Load() models.Ledger {
	raw, ok, err := r.kv.Get(r.key)
	if err != nil {
		logger.Warn("Failed to read dose ledger, starting empty", "key", r.key, "error", err)
		return models.NewLedger()
	}
	if !ok {
		logger.Debug("No dose ledger stored yet", "key", r.key)
		return models.NewLedger()
	}

	l, err := models.UnmarshalLedger([]byte(raw))
	if err != nil {
		logger.Warn("Failed to parse dose ledger, starting empty", "key", r.key, "error", err)
		return models.NewLedger()
	}
	return l
}

// Save writes the full ledger. Write failures are logged and dropped.
func (r *Repository) Save(l models.Ledger) {
	data, err := json.Marshal(l)
	if err != nil {
		logger.Error("Failed to serialize dose ledger", "error", err)
		return
	}
	if err := r.kv.Set(r.key, string(data)); err != nil {
		logger.Error("Failed to persist dose ledger", "key", r.key, "error", err)
		return
	}
	logger.Debug("Dose ledger saved", "key", r.key, "ledger", string(data))
}
