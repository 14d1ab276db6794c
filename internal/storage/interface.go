package storage

// KV is a local key-value store holding string values
type KV interface {
	// Lifecycle
	Init() error
	Close() error

	// Get returns the value stored under key. ok is false when the key has
	// never been written.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error

	// Utils
	Path() string
}
