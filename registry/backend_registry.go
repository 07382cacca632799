/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/handlestore/config"
	"github.com/suparena/handlestore/errors"
	"github.com/suparena/handlestore/handlemodels"
	"github.com/suparena/handlestore/handler"
)

// Factory builds a handler for cfg, bound to obj when obj is non-nil.
type Factory func(cfg *config.Config, obj handlemodels.Object, opts ...handler.Option) (handler.Handler, error)

var (
	backends   = make(map[string]Factory)
	backendsMu sync.RWMutex
)

// RegisterBackend registers a factory under name.
// If a backend is already registered for the given name, it panics to prevent accidental overrides.
func RegisterBackend(name string, fn Factory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	if fn == nil {
		panic(fmt.Sprintf("backend registry: nil factory for %q", name))
	}
	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("backend registry: backend %q already registered", name))
	}
	backends[name] = fn
}

// GetFactory returns the factory registered under name.
func GetFactory(name string) (Factory, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", errors.ErrUnknownBackend, name, namesLocked())
	}
	return fn, nil
}

// Backends lists the registered backend names in sorted order.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
