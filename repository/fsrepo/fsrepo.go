/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fsrepo

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/suparena/handlestore/errors"
	"github.com/suparena/handlestore/handlemodels"
)

// Extension is appended to datastream IDs to form file names.
const Extension = ".xml"

// Repository is a directory of exported objects.
type Repository struct {
	root string
}

// Open returns the repository rooted at root, which must be a directory.
func Open(root string) (*Repository, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("repository", fmt.Sprintf("%s is not a directory", root))
	}
	return &Repository{root: root}, nil
}

// Root returns the repository directory.
func (r *Repository) Root() string { return r.root }

func (r *Repository) dir(pid string) string {
	return filepath.Join(r.root, url.QueryEscape(pid))
}

// Object returns the object stored for pid.
func (r *Repository) Object(pid string) (*Object, error) {
	if pid == "" {
		return nil, errors.NewValidationError("pid", "must not be empty")
	}
	dir := r.dir(pid)
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("object %s: %w", pid, errors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat object %s: %w", pid, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("pid", fmt.Sprintf("%s is not an object directory", dir))
	}
	return &Object{id: pid, dir: dir}, nil
}

// CreateObject makes an empty object directory for pid. Existing objects
// are returned as is.
func (r *Repository) CreateObject(pid string) (*Object, error) {
	if pid == "" {
		return nil, errors.NewValidationError("pid", "must not be empty")
	}
	dir := r.dir(pid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create object %s: %w", pid, err)
	}
	return &Object{id: pid, dir: dir}, nil
}

// PIDs lists the identifiers of all stored objects in sorted order.
func (r *Repository) PIDs() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list repository: %w", err)
	}
	pids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		pid, err := url.QueryUnescape(e.Name())
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	sort.Strings(pids)
	return pids, nil
}

// Object is a repository object backed by a directory of datastream files.
type Object struct {
	id  string
	dir string
}

var _ handlemodels.Object = (*Object)(nil)

// ID returns the object's PID.
func (o *Object) ID() string { return o.id }

// Datastream returns the datastream stored in <dsid>.xml.
func (o *Object) Datastream(dsid string) (handlemodels.Datastream, bool) {
	path, err := o.path(dsid)
	if err != nil {
		return nil, false
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return nil, false
	}
	return &Datastream{path: path}, true
}

// AddDatastream creates or replaces a datastream.
func (o *Object) AddDatastream(dsid, content string) (*Datastream, error) {
	path, err := o.path(dsid)
	if err != nil {
		return nil, err
	}
	ds := &Datastream{path: path}
	if err := ds.SetContent(content); err != nil {
		return nil, err
	}
	return ds, nil
}

// DatastreamIDs lists the object's datastreams in sorted order.
func (o *Object) DatastreamIDs() ([]string, error) {
	entries, err := os.ReadDir(o.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list datastreams of %s: %w", o.id, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), Extension))
	}
	sort.Strings(ids)
	return ids, nil
}

func (o *Object) path(dsid string) (string, error) {
	if dsid == "" || strings.ContainsAny(dsid, `/\`) || dsid == "." || dsid == ".." {
		return "", errors.NewValidationError("dsid", fmt.Sprintf("%q is not a valid datastream ID", dsid))
	}
	return filepath.Join(o.dir, dsid+Extension), nil
}

// Datastream is a single datastream file.
type Datastream struct {
	path string
}

// Content reads the file.
func (d *Datastream) Content() (string, error) {
	b, err := os.ReadFile(d.path)
	if err != nil {
		return "", fmt.Errorf("failed to read datastream: %w", err)
	}
	return string(b), nil
}

// SetContent replaces the file atomically. An existing file keeps its
// permissions; new files are created 0644.
func (d *Datastream) SetContent(content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".ds-*")
	if err != nil {
		return fmt.Errorf("failed to write datastream: %w", err)
	}
	defer os.Remove(tmp.Name())

	mode := os.FileMode(0o644)
	if fi, err := os.Stat(d.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write datastream: %w", err)
	}

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write datastream: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write datastream: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("failed to replace datastream: %w", err)
	}
	return nil
}
