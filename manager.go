/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handlestore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/handlestore/handler"
)

// Manager keeps named handlers, e.g. one per object being processed. A handler
// binds its target URL to the first object it resolves and rejects creates
// for any other object.
type Manager interface {
	// Register stores h under name. Names are unique.
	Register(name string, h handler.Handler) error
	// Get returns the handler registered under name.
	Get(name string) (handler.Handler, error)
	// Remove drops the handler registered under name.
	Remove(name string) error
	// List returns the registered names in sorted order.
	List() []string
}

// handlerManager is a thread-safe implementation of the Manager interface.
type handlerManager struct {
	mu       sync.RWMutex
	handlers map[string]handler.Handler
}

// NewManager creates and returns a new Manager.
func NewManager() Manager {
	return &handlerManager{
		handlers: make(map[string]handler.Handler),
	}
}

func (m *handlerManager) Register(name string, h handler.Handler) error {
	if h == nil {
		return fmt.Errorf("handler %q is nil", name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.handlers[name]; exists {
		return fmt.Errorf("handler with name %q already registered", name)
	}
	m.handlers[name] = h
	return nil
}

func (m *handlerManager) Get(name string) (handler.Handler, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h, exists := m.handlers[name]
	if !exists {
		return nil, fmt.Errorf("handler with name %q not found", name)
	}
	return h, nil
}

func (m *handlerManager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.handlers[name]; !exists {
		return fmt.Errorf("handler with name %q not found", name)
	}
	delete(m.handlers, name)
	return nil
}

func (m *handlerManager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.handlers))
	for name := range m.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
