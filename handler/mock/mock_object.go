/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"sync"

	"github.com/suparena/handlestore/handlemodels"
)

// Object is an in-memory repository object that counts datastream writes
type Object struct {
	id          string
	datastreams map[string]*Datastream
}

// NewObject creates an Object with the given datastream contents
func NewObject(id string, datastreams map[string]string) *Object {
	o := &Object{id: id, datastreams: make(map[string]*Datastream, len(datastreams))}
	for name, content := range datastreams {
		o.datastreams[name] = &Datastream{content: content}
	}
	return o
}

// ID implements handlemodels.Object
func (o *Object) ID() string { return o.id }

// Datastream implements handlemodels.Object
func (o *Object) Datastream(name string) (handlemodels.Datastream, bool) {
	ds, ok := o.datastreams[name]
	if !ok {
		return nil, false
	}
	return ds, true
}

// DS returns the concrete datastream for assertions, or nil
func (o *Object) DS(name string) *Datastream {
	return o.datastreams[name]
}

// Datastream is an in-memory datastream
type Datastream struct {
	mu       sync.Mutex
	content  string
	writes   int
	readErr  error
	writeErr error
}

// Content implements handlemodels.Datastream
func (d *Datastream) Content() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.readErr != nil {
		return "", d.readErr
	}
	return d.content, nil
}

// SetContent implements handlemodels.Datastream
func (d *Datastream) SetContent(content string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.writeErr != nil {
		return d.writeErr
	}
	d.content = content
	d.writes++
	return nil
}

// Writes returns the number of successful SetContent calls
func (d *Datastream) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// WithReadError makes Content return err
func (d *Datastream) WithReadError(err error) *Datastream {
	d.readErr = err
	return d
}

// WithWriteError makes SetContent return err
func (d *Datastream) WithWriteError(err error) *Datastream {
	d.writeErr = err
	return d
}
