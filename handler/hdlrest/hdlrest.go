/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package hdlrest

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/suparena/handlestore/config"
	"github.com/suparena/handlestore/errors"
	"github.com/suparena/handlestore/handlemodels"
	"github.com/suparena/handlestore/handler"
	"github.com/suparena/handlestore/registry"
)

// BackendName is the registry key of this backend.
const BackendName = "rest"

const tracerName = "github.com/suparena/handlestore/handler/hdlrest"

func init() {
	registry.RegisterBackend(BackendName, func(cfg *config.Config, obj handlemodels.Object, opts ...handler.Option) (handler.Handler, error) {
		return New(cfg, obj, opts...)
	})
}

// Handler implements handler.Handler against the Handle.net REST API.
type Handler struct {
	*handler.Base

	client   *http.Client
	endpoint string
	tracer   trace.Tracer
	logger   *log.Entry
}

// New builds a REST handler for cfg.HandleService.URL.
func New(cfg *config.Config, obj handlemodels.Object, opts ...handler.Option) (*Handler, error) {
	if cfg.HandleService.URL == "" {
		return nil, errors.NewValidationError("handle_service.url", "must not be empty")
	}
	endpoint, err := url.Parse(cfg.HandleService.URL)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, errors.NewValidationError("handle_service.url", fmt.Sprintf("%q is not an absolute URL", cfg.HandleService.URL))
	}
	timeout, err := cfg.HandleService.TimeoutDuration()
	if err != nil {
		return nil, errors.NewValidationError("handle_service.timeout", err.Error())
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.HandleService.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 - opt-in for self-signed handle servers
	}

	base := handler.NewBase(cfg, obj, opts...)
	return &Handler{
		Base:     base,
		client:   &http.Client{Timeout: timeout, Transport: transport},
		endpoint: strings.TrimRight(cfg.HandleService.URL, "/"),
		tracer:   otel.Tracer(tracerName),
		logger:   base.Logger().WithField("backend", BackendName),
	}, nil
}

// WithHTTPClient replaces the HTTP client, e.g. with an httptest client
func (h *Handler) WithHTTPClient(c *http.Client) *Handler {
	h.client = c
	return h
}

// WithTracerProvider replaces the global tracer provider
func (h *Handler) WithTracerProvider(tp trace.TracerProvider) *Handler {
	h.tracer = tp.Tracer(tracerName)
	return h
}

// CreateHandle mints the object's handle without overwriting an existing one.
func (h *Handler) CreateHandle(ctx context.Context, obj handlemodels.Object) error {
	hdl, err := h.ResolveHandle(handlemodels.FromObject(obj))
	if err != nil {
		return err
	}
	target, err := h.TargetFor(obj)
	if err != nil {
		return err
	}

	query := url.Values{"overwrite": {"false"}}
	body := Request{Values: []Value{NewURLValue(urlIndex, target)}}
	resp, status, err := h.do(ctx, "create", http.MethodPut, hdl, query, body)
	if err != nil {
		return err
	}

	switch {
	case (status == http.StatusCreated || status == http.StatusOK) && resp.ResponseCode == ResponseSuccess:
		h.logger.WithFields(log.Fields{"handle": hdl, "target": target}).Info("minted handle")
		return nil
	case status == http.StatusConflict || resp.ResponseCode == ResponseHandleAlreadyExists:
		return errors.NewAlreadyExistsError(hdl)
	default:
		return errors.NewServiceError("create", hdl, status, resp.ResponseCode, resp.Message)
	}
}

// ReadHandle returns the URL value registered for ref.
func (h *Handler) ReadHandle(ctx context.Context, ref handlemodels.HandleRef) (string, error) {
	hdl, err := h.ResolveHandle(ref)
	if err != nil {
		return "", err
	}
	resp, err := h.lookup(ctx, hdl)
	if err != nil {
		return "", err
	}
	v, ok := resp.URLValue()
	if !ok {
		return "", errors.NewNotFoundError(hdl)
	}
	target, ok := v.StringValue()
	if !ok {
		return "", errors.NewServiceError("read", hdl, http.StatusOK, resp.ResponseCode, "URL value is not a string")
	}
	return target, nil
}

// UpdateHandle rewrites the URL value of an existing handle, leaving its
// other values (HS_ADMIN etc.) untouched.
func (h *Handler) UpdateHandle(ctx context.Context, ref handlemodels.HandleRef, target string) error {
	hdl, err := h.ResolveHandle(ref)
	if err != nil {
		return err
	}
	if err := handler.ValidateTarget(target); err != nil {
		return err
	}

	current, err := h.lookup(ctx, hdl)
	if err != nil {
		return err
	}
	index := urlIndex
	if v, ok := current.URLValue(); ok {
		index = v.Index
	}

	query := url.Values{"overwrite": {"true"}, "index": {strconv.Itoa(index)}}
	body := Request{Values: []Value{NewURLValue(index, target)}}
	resp, status, err := h.do(ctx, "update", http.MethodPut, hdl, query, body)
	if err != nil {
		return err
	}
	if (status == http.StatusOK || status == http.StatusCreated) && resp.ResponseCode == ResponseSuccess {
		h.logger.WithFields(log.Fields{"handle": hdl, "target": target}).Info("updated handle")
		return nil
	}
	if status == http.StatusNotFound || resp.ResponseCode == ResponseHandleNotFound {
		return errors.NewNotFoundError(hdl)
	}
	return errors.NewServiceError("update", hdl, status, resp.ResponseCode, resp.Message)
}

// DeleteHandle removes the handle from the server.
func (h *Handler) DeleteHandle(ctx context.Context, ref handlemodels.HandleRef) error {
	hdl, err := h.ResolveHandle(ref)
	if err != nil {
		return err
	}
	resp, status, err := h.do(ctx, "delete", http.MethodDelete, hdl, nil, nil)
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusOK && resp.ResponseCode == ResponseSuccess:
		h.logger.WithField("handle", hdl).Info("deleted handle")
		return nil
	case status == http.StatusNotFound || resp.ResponseCode == ResponseHandleNotFound:
		return errors.NewNotFoundError(hdl)
	default:
		return errors.NewServiceError("delete", hdl, status, resp.ResponseCode, resp.Message)
	}
}

func (h *Handler) lookup(ctx context.Context, hdl string) (*Response, error) {
	resp, status, err := h.do(ctx, "read", http.MethodGet, hdl, nil, nil)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusOK && resp.ResponseCode == ResponseSuccess:
		return resp, nil
	case status == http.StatusNotFound || resp.ResponseCode == ResponseHandleNotFound:
		return nil, errors.NewNotFoundError(hdl)
	default:
		return nil, errors.NewServiceError("read", hdl, status, resp.ResponseCode, resp.Message)
	}
}

// handleURL escapes each path segment of hdl under /api/handles.
func (h *Handler) handleURL(hdl string, query url.Values) string {
	segments := strings.Split(hdl, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	u := h.endpoint + "/api/handles/" + strings.Join(segments, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do performs one request. A decoded body is always returned when err is nil,
// even for error statuses; an unparsable body leaves it zero.
func (h *Handler) do(ctx context.Context, op, method, hdl string, query url.Values, body any) (resp *Response, status int, err error) {
	ctx, span := h.tracer.Start(ctx, "hdlrest."+op, trace.WithAttributes(
		attribute.String("handle.id", hdl),
		attribute.String("http.request.method", method),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.handleURL(hdl, query), reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", h.AuthorizationHeader())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	}

	res, err := h.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s request for %s failed: %w", op, hdl, err)
	}
	defer res.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, res.StatusCode, fmt.Errorf("failed to read %s response: %w", op, err)
	}

	resp = &Response{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if jerr := json.Unmarshal(raw, resp); jerr != nil {
			h.logger.WithError(jerr).WithField("status", res.StatusCode).Warn("unparsable handle service response")
			resp = &Response{}
		}
	}
	if res.StatusCode >= 300 {
		span.SetStatus(codes.Error, http.StatusText(res.StatusCode))
	}
	h.logger.WithFields(log.Fields{
		"op":           op,
		"handle":       hdl,
		"status":       res.StatusCode,
		"responseCode": resp.ResponseCode,
	}).Debug("handle service call")
	return resp, res.StatusCode, nil
}
