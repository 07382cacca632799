/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package transform holds the XSLT processors used to append handle values
// to metadata datastreams.
//
// Processors implement handler.Transformer:
//
//	libxslt   in-process libxslt via cgo (github.com/wamuir/go-xslt)
//	xsltproc  the xsltproc command line tool
//
// InjectParams lets processors without a parameter API bind stylesheet
// parameters by rewriting the stylesheet itself.
package transform
