/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package hdltest provides an in-memory Handle.net REST server for tests.
package hdltest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/suparena/handlestore/handler/hdlrest"
)

// Server is a fake handle server speaking the /api/handles protocol.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	handles  map[string][]hdlrest.Value
	username string
	password string
	requests []string
	failWith int
}

// Option configures a Server.
type Option func(*Server)

// WithBasicAuth makes the server require the given credentials.
func WithBasicAuth(username, password string) Option {
	return func(s *Server) {
		s.username = username
		s.password = password
	}
}

// NewServer starts a fake handle server. Close it when done.
func NewServer(opts ...Option) *Server {
	s := &Server{handles: make(map[string][]hdlrest.Value)}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.record, s.authenticate, s.injectFailure)
	r.Route("/api/handles", func(r chi.Router) {
		r.Get("/*", s.get)
		r.Put("/*", s.put)
		r.Delete("/*", s.delete)
	})
	s.Server = httptest.NewServer(r)
	return s
}

// FailWith makes every following request answer with status (0 disables).
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// SetValues replaces the values stored for handle.
func (s *Server) SetValues(handle string, values []hdlrest.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles[handle] = values
}

// Values returns the values stored for handle.
func (s *Server) Values(handle string) ([]hdlrest.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.handles[handle]
	return append([]hdlrest.Value(nil), v...), ok
}

// Requests returns "METHOD /path?query" for every request received.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.username != "" {
			user, pass, ok := r.BasicAuth()
			if ok {
				user, _ = url.QueryUnescape(user)
			}
			if !ok || user != s.username || pass != s.password {
				writeJSON(w, http.StatusUnauthorized, hdlrest.Response{ResponseCode: hdlrest.ResponseAuthenticationNeeded})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := s.failWith
		s.mu.Unlock()
		if status != 0 {
			writeJSON(w, status, hdlrest.Response{ResponseCode: hdlrest.ResponseError, Message: "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleParam(r *http.Request) string {
	h := chi.URLParam(r, "*")
	if unescaped, err := url.PathUnescape(h); err == nil {
		return unescaped
	}
	return h
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	h := handleParam(r)
	s.mu.Lock()
	values, ok := s.handles[h]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, hdlrest.Response{ResponseCode: hdlrest.ResponseHandleNotFound, Handle: h})
		return
	}
	writeJSON(w, http.StatusOK, hdlrest.Response{ResponseCode: hdlrest.ResponseSuccess, Handle: h, Values: values})
}

func (s *Server) put(w http.ResponseWriter, r *http.Request) {
	h := handleParam(r)
	var req hdlrest.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, hdlrest.Response{ResponseCode: hdlrest.ResponseError, Message: err.Error()})
		return
	}

	query := r.URL.Query()
	overwrite := query.Get("overwrite") != "false"
	now := time.Now().UTC().Format(time.RFC3339)
	for i := range req.Values {
		req.Values[i].Timestamp = now
		if req.Values[i].TTL == 0 {
			req.Values[i].TTL = 86400
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.handles[h]
	if exists && !overwrite {
		writeJSON(w, http.StatusConflict, hdlrest.Response{ResponseCode: hdlrest.ResponseHandleAlreadyExists, Handle: h})
		return
	}

	indexes := query["index"]
	if exists && len(indexes) > 0 {
		s.handles[h] = mergeValues(existing, req.Values, indexes)
		writeJSON(w, http.StatusOK, hdlrest.Response{ResponseCode: hdlrest.ResponseSuccess, Handle: h})
		return
	}

	s.handles[h] = req.Values
	status := http.StatusCreated
	if exists {
		status = http.StatusOK
	}
	writeJSON(w, status, hdlrest.Response{ResponseCode: hdlrest.ResponseSuccess, Handle: h})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	h := handleParam(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handles[h]; !ok {
		writeJSON(w, http.StatusNotFound, hdlrest.Response{ResponseCode: hdlrest.ResponseHandleNotFound, Handle: h})
		return
	}
	delete(s.handles, h)
	writeJSON(w, http.StatusOK, hdlrest.Response{ResponseCode: hdlrest.ResponseSuccess, Handle: h})
}

// mergeValues replaces the existing values at the listed indexes.
func mergeValues(existing, updates []hdlrest.Value, indexes []string) []hdlrest.Value {
	allowed := make(map[int]bool, len(indexes))
	for _, s := range indexes {
		if i, err := strconv.Atoi(s); err == nil {
			allowed[i] = true
		}
	}
	byIndex := make(map[int]hdlrest.Value, len(existing))
	for _, v := range existing {
		byIndex[v.Index] = v
	}
	for _, v := range updates {
		if allowed[v.Index] {
			byIndex[v.Index] = v
		}
	}
	merged := make([]hdlrest.Value, 0, len(byIndex))
	for _, v := range byIndex {
		merged = append(merged, v)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Index < merged[j].Index })
	return merged
}

func writeJSON(w http.ResponseWriter, status int, body hdlrest.Response) {
	w.Header().Set("Content-Type", "application/json;charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
