/*
Package handlestore mints and maintains Handle.net persistent identifiers for
repository objects and stamps the resolvable handle URL into their metadata.

A handle has the form "<prefix>/<suffix>". The suffix defaults to the object's
PID; the handle resolves to the object's public page:

	1234567/abc:123  ->  https://repo.example.org/islandora/object/abc:123

Backends:
  - rest: a Handle.net handle server through its REST API (default)
  - dynamodb: a DynamoDB table used as a handle registry
  - mock: an in-memory registry for tests

Basic Usage:

	cfg, err := config.Load("handlestore.yaml")
	if err != nil {
	    return err
	}

	h, err := handlestore.New(&cfg, obj)
	if err != nil {
	    return err
	}

	// Mint the handle, then record it in the MODS datastream
	if err := h.CreateHandle(ctx, obj); err != nil && !errors.IsAlreadyExists(err) {
	    return err
	}
	outcome := h.AppendHandleToMetadata(ctx, obj, "MODS", "xsl/mods_handle.xsl")
	if !outcome.Success {
	    log.Error(outcome.Message)
	}

Metadata updates need a stylesheet processor, passed with
handler.WithTransformer (see the transform packages). Datastreams are written
only when the stylesheet output differs from the current content.

Errors are classified by the errors package (errors.IsNotFound,
errors.IsAlreadyExists and friends).

The handlectl command wraps these operations for the shell.
*/
package handlestore
