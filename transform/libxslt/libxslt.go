//go:build cgo

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package libxslt runs stylesheets in-process through libxslt.
package libxslt

import (
	"context"
	"fmt"

	xslt "github.com/wamuir/go-xslt"

	"github.com/suparena/handlestore/transform"
)

// Available reports whether this build links libxslt.
const Available = true

// Transformer applies stylesheets with libxslt. Parameters are bound by
// rewriting the stylesheet's top-level xsl:param declarations.
type Transformer struct{}

// New returns a libxslt Transformer.
func New() (*Transformer, error) {
	return &Transformer{}, nil
}

// Transform applies stylesheet to document.
func (t *Transformer) Transform(ctx context.Context, stylesheet, document []byte, params map[string]string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sheet, err := transform.InjectParams(stylesheet, params)
	if err != nil {
		return nil, err
	}

	xs, err := xslt.NewStylesheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to compile stylesheet: %w", err)
	}
	defer xs.Close()

	out, err := xs.Transform(document)
	if err != nil {
		return nil, fmt.Errorf("transform failed: %w", err)
	}
	return out, nil
}
