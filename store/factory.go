package store

import (
	"fmt"

	"github.com/pthm-cable/dodge/components"
)

// NewStore creates a backend by name: "json" (default), "memory" or "sqlite".
func NewStore(kind, path string, defaults components.Genome) (Store, error) {
	switch kind {
	case "", "json":
		return NewJSONFileStore(path, defaults), nil
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
