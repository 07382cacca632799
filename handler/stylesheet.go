/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// StylesheetLoader fetches a stylesheet by location.
type StylesheetLoader interface {
	Load(ctx context.Context, location string) ([]byte, error)
}

// FileLoader loads stylesheets from local paths, file:// URIs and http(s) URLs.
type FileLoader struct {
	// Client is used for http(s) locations; http.DefaultClient when nil.
	Client *http.Client
}

// Load implements StylesheetLoader.
func (l *FileLoader) Load(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, fmt.Errorf("empty stylesheet location")
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		// Plain path (a one-letter scheme is a Windows drive).
		return readFile(location)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return readFile(u.Path)
	case "http", "https":
		return l.fetch(ctx, location)
	default:
		return nil, fmt.Errorf("unsupported stylesheet scheme %q", u.Scheme)
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 - stylesheet locations are operator supplied
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet: %w", err)
	}
	return data, nil
}

func (l *FileLoader) fetch(ctx context.Context, location string) ([]byte, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build stylesheet request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stylesheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch stylesheet: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stylesheet body: %w", err)
	}
	return data, nil
}
