/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package xsltproc runs stylesheets through the xsltproc command.
package xsltproc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Command is the executable looked up on PATH by New.
const Command = "xsltproc"

// Transformer shells out to xsltproc. The stylesheet is written to a
// temporary file and the document is piped through stdin.
type Transformer struct {
	path string
}

// New locates xsltproc on PATH.
func New() (*Transformer, error) {
	path, err := exec.LookPath(Command)
	if err != nil {
		return nil, fmt.Errorf("xsltproc not available: %w", err)
	}
	return &Transformer{path: path}, nil
}

// NewWithPath uses the executable at path.
func NewWithPath(path string) *Transformer {
	return &Transformer{path: path}
}

// Transform applies stylesheet to document. Params are passed with
// --stringparam so no quoting is needed.
func (t *Transformer) Transform(ctx context.Context, stylesheet, document []byte, params map[string]string) ([]byte, error) {
	sheet, err := os.CreateTemp("", "handlestore-*.xsl")
	if err != nil {
		return nil, fmt.Errorf("failed to create stylesheet file: %w", err)
	}
	defer os.Remove(sheet.Name())

	if _, err := sheet.Write(stylesheet); err != nil {
		sheet.Close()
		return nil, fmt.Errorf("failed to write stylesheet file: %w", err)
	}
	if err := sheet.Close(); err != nil {
		return nil, fmt.Errorf("failed to write stylesheet file: %w", err)
	}

	cmd := exec.CommandContext(ctx, t.path, Args(sheet.Name(), params)...)
	cmd.Stdin = bytes.NewReader(document)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("xsltproc failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// Args builds the xsltproc argument list, params in name order.
func Args(stylesheetPath string, params map[string]string) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]string, 0, 3*len(names)+3)
	args = append(args, "--nonet")
	for _, name := range names {
		args = append(args, "--stringparam", name, params[name])
	}
	return append(args, stylesheetPath, "-")
}
