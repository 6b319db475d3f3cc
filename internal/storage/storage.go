// Package storage provides durable key-value slots, the terminal
// counterpart of browser localStorage. Values are opaque strings.
package storage

// KeyValueStore is a flat string key-value store.
// GetItem returns domain.ErrNotFound for keys that were never set.
type KeyValueStore interface {
	GetItem(key string) (string, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// CorruptSuffix is appended to a storage file that could not be parsed
const CorruptSuffix = ".corrupt"

// Recoverer is implemented by stores that can discard unreadable data when
// opened instead of failing
type Recoverer interface {
	Recovered() bool
}

// Compile-time interface checks.
var (
	_ KeyValueStore = (*FileStore)(nil)
	_ KeyValueStore = (*MemoryStore)(nil)
	_ Recoverer     = (*FileStore)(nil)
)
