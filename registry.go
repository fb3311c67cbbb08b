package mailseed

import (
	"sort"
	"sync"

	"github.com/infodancer/mailseed/errors"
)

// DirectoryFactory creates a Directory from configuration.
type DirectoryFactory func(config DirectoryConfig) (Directory, error)

// DirectoryConfig contains settings for opening a user directory.
type DirectoryConfig struct {
	// Type is the directory type name (e.g., "passwd").
	Type string

	// Path is the location of file-based directories.
	Path string

	// Options contains implementation-specific settings.
	Options map[string]string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]DirectoryFactory)
)

// RegisterDirectory adds a directory factory to the registry.
// It panics if called with an empty name or nil factory,
// or if the name is already registered.
func RegisterDirectory(name string, factory DirectoryFactory) {
	if name == "" {
		panic("mailseed: RegisterDirectory called with empty name")
	}
	if factory == nil {
		panic("mailseed: RegisterDirectory called with nil factory")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		panic("mailseed: RegisterDirectory called twice for " + name)
	}
	registry[name] = factory
}

// OpenDirectory creates a Directory using the registered factory for the config type.
func OpenDirectory(config DirectoryConfig) (Directory, error) {
	registryMu.RLock()
	factory, ok := registry[config.Type]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.ErrDirectoryNotRegistered
	}
	return factory(config)
}

// RegisteredDirectories returns a sorted list of registered directory type names.
func RegisteredDirectories() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(registry))
	for name := range registry {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
