/*
Package handler defines the handle backend contract and the helper every
backend shares.

Handler is the capability set a backend implements:

	type Handler interface {
	    CreateHandle(ctx context.Context, obj handlemodels.Object) error
	    ReadHandle(ctx context.Context, ref handlemodels.HandleRef) (string, error)
	    UpdateHandle(ctx context.Context, ref handlemodels.HandleRef, target string) error
	    DeleteHandle(ctx context.Context, ref handlemodels.HandleRef) error
	    AppendHandleToMetadata(ctx context.Context, obj handlemodels.Object, dsid, xslLocation string) handlemodels.Outcome
	}

Base holds the shared state (prefix, pid, memoized target URL, Basic
authorization header) and implements handle construction and the metadata
rewrite. Backends embed *Base:

	base := handler.NewBase(&cfg, obj, handler.WithTransformer(xsltproc.New()))
	base.FullHandle(handlemodels.FromObject(obj))  // "1234567/abc:123"
	base.HandleMetadataValue(obj)                  // "http://hdl.handle.net/1234567/abc:123"
	outcome := base.AppendHandleToMetadata(ctx, obj, "MODS", "/etc/handle/add_handle.xsl")

Implementations:
  - hdlrest: Handle.net REST API
  - ddb: DynamoDB handle registry
  - mock: in-memory backend for testing
*/
package handler
