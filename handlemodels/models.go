/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handlemodels

import (
	"github.com/go-openapi/strfmt"
)

// Object is a repository object a handle is minted for.
type Object interface {
	// ID is the repository identifier, e.g. "abc:123".
	ID() string
	// Datastream returns the named datastream, or false if the object has none by that name.
	Datastream(name string) (Datastream, bool)
}

// Datastream is a named content stream attached to an Object.
type Datastream interface {
	Content() (string, error)
	SetContent(content string) error
}

// HandleRef identifies a handle either by its full string or by the object it was minted for.
type HandleRef interface {
	isHandleRef()
}

// RawHandle is a handle already in "prefix/suffix" form.
type RawHandle string

func (RawHandle) isHandleRef() {}

// ObjectRef refers to the handle derived from an object.
type ObjectRef struct {
	Object Object
}

func (ObjectRef) isHandleRef() {}

// FromObject wraps an Object as a HandleRef.
func FromObject(obj Object) HandleRef {
	return ObjectRef{Object: obj}
}

// HandleRecord is the registration a backend keeps for one handle.
type HandleRecord struct {
	// Handle in "prefix/suffix" form.
	Handle string `json:"handle"`
	// Target is the URL the handle resolves to.
	Target string `json:"target"`
	// PID of the object the handle was minted for, when known.
	PID string `json:"pid,omitempty"`

	CreatedAt strfmt.DateTime `json:"createdAt"`
	UpdatedAt strfmt.DateTime `json:"updatedAt"`
}
