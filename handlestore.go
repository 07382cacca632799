/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handlestore

import (
	"fmt"

	"github.com/suparena/handlestore/config"
	"github.com/suparena/handlestore/handlemodels"
	"github.com/suparena/handlestore/handler"
	"github.com/suparena/handlestore/registry"

	// Built-in backends register themselves.
	_ "github.com/suparena/handlestore/handler/ddb"
	_ "github.com/suparena/handlestore/handler/hdlrest"
	_ "github.com/suparena/handlestore/handler/mock"
)

// New validates cfg and builds the handler of the configured backend,
// bound to obj when obj is non-nil.
func New(cfg *config.Config, obj handlemodels.Object, opts ...handler.Option) (handler.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	name := cfg.Backend
	if name == "" {
		name = config.DefaultBackend
	}
	factory, err := registry.GetFactory(name)
	if err != nil {
		return nil, err
	}

	h, err := factory(cfg, obj, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s handler: %w", name, err)
	}
	return h, nil
}
