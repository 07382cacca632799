/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handlestore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/handlestore"
	"github.com/suparena/handlestore/config"
	"github.com/suparena/handlestore/errors"
	"github.com/suparena/handlestore/handlemodels"
	"github.com/suparena/handlestore/handler"
	"github.com/suparena/handlestore/handler/hdlrest"
	"github.com/suparena/handlestore/handler/mock"
	"github.com/suparena/handlestore/logging"
	"github.com/suparena/handlestore/registry"
)

func baseConfig() config.Config {
	cfg := config.Defaults()
	cfg.Prefix = "1234567"
	cfg.BaseURL = "https://repo.example.org"
	return cfg
}

func TestNewBuildsConfiguredBackend(t *testing.T) {
	cfg := baseConfig()
	cfg.Backend = mock.BackendName
	obj := mock.NewObject("abc:123", nil)

	h, err := handlestore.New(&cfg, obj, handler.WithLogger(logging.Discard()))
	require.NoError(t, err)
	require.IsType(t, &mock.Handler{}, h)

	ctx := context.Background()
	require.NoError(t, h.CreateHandle(ctx, obj))
	target, err := h.ReadHandle(ctx, handlemodels.FromObject(obj))
	require.NoError(t, err)
	assert.Equal(t, "https://repo.example.org/islandora/object/abc:123", target)
}

func TestReusedHandlerRejectsOtherObject(t *testing.T) {
	cfg := baseConfig()
	cfg.Backend = mock.BackendName

	h, err := handlestore.New(&cfg, nil, handler.WithLogger(logging.Discard()))
	require.NoError(t, err)

	m := handlestore.NewManager()
	require.NoError(t, m.Register("repo", h))
	reused, err := m.Get("repo")
	require.NoError(t, err)

	ctx := context.Background()
	a := mock.NewObject("a:1", nil)
	b := mock.NewObject("b:2", nil)
	require.NoError(t, reused.CreateHandle(ctx, a))

	err = reused.CreateHandle(ctx, b)
	assert.True(t, errors.IsValidationError(err), "expected validation error, got %v", err)

	_, err = reused.ReadHandle(ctx, handlemodels.FromObject(b))
	assert.True(t, errors.IsNotFound(err), "b must not be registered")

	target, err := reused.ReadHandle(ctx, handlemodels.FromObject(a))
	require.NoError(t, err)
	assert.Equal(t, "https://repo.example.org/islandora/object/a:1", target)
}

func TestNewDefaultsToREST(t *testing.T) {
	cfg := baseConfig()
	cfg.Backend = ""
	cfg.HandleService.URL = "https://handle.example.org:8000"

	h, err := handlestore.New(&cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &hdlrest.Handler{}, h)
}

func TestNewErrors(t *testing.T) {
	cfg := baseConfig()
	cfg.Backend = "gopher"
	_, err := handlestore.New(&cfg, nil)
	assert.ErrorIs(t, err, errors.ErrUnknownBackend)

	cfg = baseConfig()
	cfg.Prefix = ""
	_, err = handlestore.New(&cfg, nil)
	assert.True(t, errors.IsValidationError(err))

	cfg = baseConfig()
	cfg.Backend = "rest"
	_, err = handlestore.New(&cfg, nil)
	assert.True(t, errors.IsValidationError(err), "missing handle service URL")
}

func TestBuiltinBackendsRegistered(t *testing.T) {
	assert.Subset(t, registry.Backends(), []string{"dynamodb", "mock", "rest"})
}

func TestGetVersionInfo(t *testing.T) {
	info := handlestore.GetVersionInfo()
	assert.Equal(t, handlestore.Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
