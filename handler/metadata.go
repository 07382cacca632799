/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handler

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
	"github.com/sergi/go-diff/diffmatchpatch"
	log "github.com/sirupsen/logrus"

	"github.com/suparena/handlestore/handlemodels"
)

// HandleValueParam is the stylesheet parameter bound to the handle URL.
const HandleValueParam = "handle_value"

// Transformer runs an XSLT stylesheet over a document with string parameters.
type Transformer interface {
	Transform(ctx context.Context, stylesheet, document []byte, params map[string]string) ([]byte, error)
}

// TransformFunc adapts a function to Transformer.
type TransformFunc func(ctx context.Context, stylesheet, document []byte, params map[string]string) ([]byte, error)

// Transform calls f.
func (f TransformFunc) Transform(ctx context.Context, stylesheet, document []byte, params map[string]string) ([]byte, error) {
	return f(ctx, stylesheet, document, params)
}

// Outcome messages. Placeholders are filled from Message.Substitutions.
const (
	msgMissingObject     = "No object was given to append the Handle to the @ds datastream!"
	msgMissingDatastream = "The @ds datastream does not exist on @pid!"
	msgUnreadable        = "Unable to read the @ds datastream for @pid!"
	msgUnparsable        = "Unable to load content for the @ds datastream for @pid!"
	msgNoStylesheet      = "Unable to load the stylesheet @xsl for @pid!"
	msgNoTransformer     = "No stylesheet processor is available to append the Handle for @pid!"
	msgTransformFailed   = "Appending the Handle value for @pid on the @ds datastream failed!"
	msgWriteFailed       = "Unable to save the @ds datastream for @pid!"
	msgAppended          = "Appended Handle to @ds datastream for @pid!"
)

// AppendHandleToMetadata runs the stylesheet at xslLocation over the dsid
// datastream of obj with handle_value bound to HandleMetadataValue(obj).
// The datastream is written only when the output differs from the original.
// Failures are reported in the Outcome, never as panics.
func (b *Base) AppendHandleToMetadata(ctx context.Context, obj handlemodels.Object, dsid, xslLocation string) handlemodels.Outcome {
	if obj == nil {
		subs := map[string]string{"@ds": dsid, "@xsl": xslLocation}
		return failure(b.logger.WithField("dsid", dsid), msgMissingObject, subs, nil)
	}
	subs := map[string]string{"@pid": obj.ID(), "@ds": dsid, "@xsl": xslLocation}
	logger := b.logger.WithFields(log.Fields{"pid": obj.ID(), "dsid": dsid})

	ds, ok := obj.Datastream(dsid)
	if !ok {
		return failure(logger, msgMissingDatastream, subs, nil)
	}

	original, err := ds.Content()
	if err != nil {
		return failure(logger, msgUnreadable, subs, err)
	}

	if err := checkWellFormed(original); err != nil {
		return failure(logger, msgUnparsable, subs, err)
	}

	stylesheet, err := b.loader.Load(ctx, xslLocation)
	if err != nil {
		return failure(logger, msgNoStylesheet, subs, err)
	}

	if b.transformer == nil {
		return failure(logger, msgNoTransformer, subs, nil)
	}

	params := map[string]string{HandleValueParam: b.HandleMetadataValue(obj)}
	output, err := b.transformer.Transform(ctx, stylesheet, []byte(original), params)
	if err == nil && len(output) == 0 {
		err = fmt.Errorf("stylesheet produced no output")
	}
	if err != nil {
		return failure(logger, msgTransformFailed, subs, err)
	}

	updated := string(output)
	if updated == original {
		logger.Debug("metadata already carries the handle, skipping write")
		return handlemodels.Outcome{Success: true}
	}

	if logger.Logger.IsLevelEnabled(log.DebugLevel) {
		dmp := diffmatchpatch.New()
		patches := dmp.PatchMake(original, dmp.DiffMain(original, updated, false))
		logger.WithField("patch", dmp.PatchToText(patches)).Debug("rewriting metadata")
	}

	if err := ds.SetContent(updated); err != nil {
		return failure(logger, msgWriteFailed, subs, err)
	}

	logger.WithField("handle_value", params[HandleValueParam]).Info("appended handle to metadata")
	return handlemodels.Outcome{
		Success: true,
		Message: &handlemodels.Message{
			Text:          msgAppended,
			Substitutions: subs,
			Severity:      handlemodels.SeverityStatus,
		},
	}
}

func failure(logger *log.Entry, text string, subs map[string]string, cause error) handlemodels.Outcome {
	msg := &handlemodels.Message{Text: text, Substitutions: subs, Severity: handlemodels.SeverityError}
	entry := logger
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Error(msg.String())
	return handlemodels.Outcome{Success: false, Message: msg}
}

// checkWellFormed parses content as an XML document with a single root element.
func checkWellFormed(content string) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return err
	}
	if n := len(doc.ChildElements()); n != 1 {
		return fmt.Errorf("expected one root element, found %d", n)
	}
	return nil
}
