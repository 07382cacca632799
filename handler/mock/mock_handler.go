/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides in-memory implementations of handler.Handler and
// handlemodels.Object for testing
package mock

import (
	"context"
	"sync"

	"github.com/suparena/handlestore/config"
	"github.com/suparena/handlestore/errors"
	"github.com/suparena/handlestore/handlemodels"
	"github.com/suparena/handlestore/handler"
	"github.com/suparena/handlestore/registry"
)

// BackendName is the registry key of the in-memory backend.
const BackendName = "mock"

func init() {
	registry.RegisterBackend(BackendName, func(cfg *config.Config, obj handlemodels.Object, opts ...handler.Option) (handler.Handler, error) {
		return New(cfg, obj, opts...), nil
	})
}

// Handler is an in-memory handle backend
type Handler struct {
	*handler.Base

	mu          sync.RWMutex
	data        map[string]string
	calls       map[string]int
	createError error
	readError   error
	updateError error
	deleteError error
}

// New creates a new mock Handler bound to obj (which may be nil)
func New(cfg *config.Config, obj handlemodels.Object, opts ...handler.Option) *Handler {
	return &Handler{
		Base:  handler.NewBase(cfg, obj, opts...),
		data:  make(map[string]string),
		calls: make(map[string]int),
	}
}

// WithCreateError makes CreateHandle return err
func (m *Handler) WithCreateError(err error) *Handler {
	m.createError = err
	return m
}

// WithReadError makes ReadHandle return err
func (m *Handler) WithReadError(err error) *Handler {
	m.readError = err
	return m
}

// WithUpdateError makes UpdateHandle return err
func (m *Handler) WithUpdateError(err error) *Handler {
	m.updateError = err
	return m
}

// WithDeleteError makes DeleteHandle return err
func (m *Handler) WithDeleteError(err error) *Handler {
	m.deleteError = err
	return m
}

// CreateHandle registers the object's handle
func (m *Handler) CreateHandle(ctx context.Context, obj handlemodels.Object) error {
	m.record("create")
	if m.createError != nil {
		return m.createError
	}

	h, err := m.ResolveHandle(handlemodels.FromObject(obj))
	if err != nil {
		return err
	}

	target, err := m.TargetFor(obj)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[h]; exists {
		return errors.NewAlreadyExistsError(h)
	}
	m.data[h] = target
	return nil
}

// ReadHandle returns the registered target
func (m *Handler) ReadHandle(ctx context.Context, ref handlemodels.HandleRef) (string, error) {
	m.record("read")
	if m.readError != nil {
		return "", m.readError
	}

	h, err := m.ResolveHandle(ref)
	if err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	target, exists := m.data[h]
	if !exists {
		return "", errors.NewNotFoundError(h)
	}
	return target, nil
}

// UpdateHandle repoints an existing handle
func (m *Handler) UpdateHandle(ctx context.Context, ref handlemodels.HandleRef, target string) error {
	m.record("update")
	if m.updateError != nil {
		return m.updateError
	}

	h, err := m.ResolveHandle(ref)
	if err != nil {
		return err
	}
	if err := handler.ValidateTarget(target); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[h]; !exists {
		return errors.NewNotFoundError(h)
	}
	m.data[h] = target
	return nil
}

// DeleteHandle removes a handle
func (m *Handler) DeleteHandle(ctx context.Context, ref handlemodels.HandleRef) error {
	m.record("delete")
	if m.deleteError != nil {
		return m.deleteError
	}

	h, err := m.ResolveHandle(ref)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[h]; !exists {
		return errors.NewNotFoundError(h)
	}
	delete(m.data, h)
	return nil
}

// Helper methods for testing

// SetData directly sets the handle -> target map
func (m *Handler) SetData(data map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

// GetData returns a copy of the handle -> target map
func (m *Handler) GetData() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.data))
	for k, v := range m.data {
		result[k] = v
	}
	return result
}

// Count returns the number of registered handles
func (m *Handler) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Calls returns how often an operation ("create", "read", "update", "delete") ran
func (m *Handler) Calls(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls[op]
}

// Clear removes all handles
func (m *Handler) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
}

func (m *Handler) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
}
