package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/plotgpu/batch"
)

// Factory creates a backend for cfg.
type Factory func(cfg Config) (batch.Backend, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendWGPU, BackendSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the sorted names of registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// New creates the backend registered under name.
func New(name string, cfg Config) (batch.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	return factory(cfg)
}

// Default creates the best available backend based on priority.
// Priority order: wgpu > software, then any other registered backend.
// Backends that fail with ErrBackendNotAvailable are skipped.
func Default(cfg Config) (batch.Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	registryMu.RLock()
	names := make([]string, 0, len(backends))
	for _, name := range backendPriority {
		if _, ok := backends[name]; ok {
			names = append(names, name)
		}
	}
	var rest []string
	for name := range backends {
		if !slices.Contains(backendPriority, name) {
			rest = append(rest, name)
		}
	}
	registryMu.RUnlock()

	slices.Sort(rest)
	names = append(names, rest...)

	for _, name := range names {
		b, err := New(name, cfg)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrBackendNotAvailable) {
			return nil, err
		}
		if cfg.Logger != nil {
			cfg.Logger.Debug("backend: skipped", "name", name, "error", err)
		}
	}
	return nil, ErrBackendNotAvailable
}

// MustDefault returns the default backend or panics.
func MustDefault(cfg Config) batch.Backend {
	b, err := Default(cfg)
	if err != nil {
		panic(fmt.Sprintf("backend: no backend available: %v", err))
	}
	return b
}
