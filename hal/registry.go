package hal

import (
	"fmt"
	"sort"
	"sync"
)

// Opener creates a window for a backend.
type Opener func(cfg WindowConfig) (Window, error)

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Opener)
)

// Register makes a backend available to Open under name. It is called from
// init functions; a later registration replaces an earlier one.
func Register(name string, open Opener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = open
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return availableLocked()
}

// Lookup returns the opener registered under name.
func Lookup(name string) (Opener, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	open, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, availableLocked())
	}
	return open, nil
}

// Open opens a window on the named backend.
func Open(name string, cfg WindowConfig) (Window, error) {
	open, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return open(cfg)
}

func availableLocked() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
