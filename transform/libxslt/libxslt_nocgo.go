//go:build !cgo

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package libxslt runs stylesheets in-process through libxslt.
package libxslt

import (
	"context"
	"errors"
)

// Available reports whether this build links libxslt.
const Available = false

// ErrUnavailable is returned on builds without cgo.
var ErrUnavailable = errors.New("libxslt: built without cgo")

// Transformer is unusable on this build.
type Transformer struct{}

// New always fails without cgo.
func New() (*Transformer, error) {
	return nil, ErrUnavailable
}

// Transform always fails without cgo.
func (t *Transformer) Transform(context.Context, []byte, []byte, map[string]string) ([]byte, error) {
	return nil, ErrUnavailable
}
