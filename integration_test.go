//go:build integration
// +build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handlestore_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/suparena/handlestore"
	"github.com/suparena/handlestore/config"
	"github.com/suparena/handlestore/errors"
	"github.com/suparena/handlestore/handlemodels"
	"github.com/suparena/handlestore/handler"
	"github.com/suparena/handlestore/handler/mock"
)

// setupConfig reads .env and HANDLESTORE_* variables and selects backend.
func setupConfig(t *testing.T, backend string) config.Config {
	if err := config.LoadDotEnv(); err != nil {
		t.Fatalf("Failed to load .env: %v", err)
	}
	cfg, err := config.Load(os.Getenv("HANDLESTORE_CONFIG"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	cfg.Backend = backend

	switch backend {
	case "rest":
		if cfg.HandleService.URL == "" {
			t.Skip("HANDLESTORE_HANDLE_SERVICE_URL not set, skipping integration test")
		}
	case "dynamodb":
		if cfg.DynamoDB.Table == "" {
			t.Skip("AWS_DDB_TABLE not set, skipping integration test")
		}
	}
	if cfg.Prefix == "" {
		t.Skip("HANDLESTORE_PREFIX not set, skipping integration test")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://repo.example.org"
	}
	return cfg
}

func runLifecycle(t *testing.T, backend string) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := setupConfig(t, backend)
	obj := mock.NewObject(fmt.Sprintf("test:%d", time.Now().UnixNano()), nil)

	h, err := handlestore.New(&cfg, obj)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}
	ref := handlemodels.FromObject(obj)

	// Mint
	if err := h.CreateHandle(ctx, obj); err != nil {
		t.Fatalf("Failed to create handle: %v", err)
	}
	defer func() {
		if err := h.DeleteHandle(ctx, ref); err != nil && !errors.IsNotFound(err) {
			t.Errorf("Cleanup failed: %v", err)
		}
	}()

	if err := h.CreateHandle(ctx, obj); !errors.IsAlreadyExists(err) {
		t.Errorf("Expected already exists error, got: %v", err)
	}

	// Read
	target, err := h.ReadHandle(ctx, ref)
	if err != nil {
		t.Fatalf("Failed to read handle: %v", err)
	}
	if want := handler.BuildTargetURL(&cfg, obj.ID(), nil); target != want {
		t.Errorf("Target mismatch: got %s, want %s", target, want)
	}

	// Update
	moved := "https://example.org/moved/" + obj.ID()
	if err := h.UpdateHandle(ctx, ref, moved); err != nil {
		t.Fatalf("Failed to update handle: %v", err)
	}
	if target, err = h.ReadHandle(ctx, ref); err != nil || target != moved {
		t.Errorf("Expected %s after update, got %s (%v)", moved, target, err)
	}

	// Delete
	if err := h.DeleteHandle(ctx, ref); err != nil {
		t.Fatalf("Failed to delete handle: %v", err)
	}
	if _, err := h.ReadHandle(ctx, ref); !errors.IsNotFound(err) {
		t.Errorf("Expected not found error, got: %v", err)
	}
}

func TestIntegrationREST(t *testing.T) {
	runLifecycle(t, "rest")
}

func TestIntegrationDynamoDB(t *testing.T) {
	runLifecycle(t, "dynamodb")
}
