/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handler

import (
	"context"

	"github.com/suparena/handlestore/handlemodels"
)

// Handler mints and maintains handles at one backend.
//
// A nil error means the backend accepted the operation. ReadHandle reports a
// missing handle with an error matching errors.ErrNotFound.
type Handler interface {
	// CreateHandle mints FullHandle(obj) pointing at the object's target URL.
	// A handler already bound to a different object returns a ValidationError.
	CreateHandle(ctx context.Context, obj handlemodels.Object) error

	// ReadHandle returns the target URL currently registered for ref.
	ReadHandle(ctx context.Context, ref handlemodels.HandleRef) (string, error)

	// UpdateHandle repoints an existing handle at target.
	UpdateHandle(ctx context.Context, ref handlemodels.HandleRef, target string) error

	// DeleteHandle removes the handle registration.
	DeleteHandle(ctx context.Context, ref handlemodels.HandleRef) error

	// AppendHandleToMetadata stamps the handle URL into a datastream via XSLT.
	AppendHandleToMetadata(ctx context.Context, obj handlemodels.Object, dsid, xslLocation string) handlemodels.Outcome
}
