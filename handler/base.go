/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package handler

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/suparena/handlestore/config"
	"github.com/suparena/handlestore/errors"
	"github.com/suparena/handlestore/handlemodels"
	"github.com/suparena/handlestore/logging"
)

// SuffixFunc derives the handle suffix for an object.
type SuffixFunc func(obj handlemodels.Object) string

// PIDSuffix uses the object identifier as the suffix.
func PIDSuffix(obj handlemodels.Object) string {
	return obj.ID()
}

// UUIDSuffix derives a stable UUIDv5 from the object identifier.
func UUIDSuffix(obj handlemodels.Object) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(obj.ID())).String()
}

// PathAliaser rewrites a repository path to its public alias.
type PathAliaser interface {
	Alias(path string) string
}

// PathAliaserFunc adapts a function to PathAliaser.
type PathAliaserFunc func(path string) string

// Alias calls f(path).
func (f PathAliaserFunc) Alias(path string) string {
	return f(path)
}

// Base carries what every backend shares: the prefix, the memoized target URL,
// the object pid and the Basic authorization header. Backends embed *Base.
//
// A Base is meant for a single caller-driven operation and is not safe for
// concurrent use.
type Base struct {
	cfg                 *config.Config
	prefix              string
	pid                 string
	targetURL           *string
	targetID            string
	authorizationHeader string

	suffixFunc  SuffixFunc
	aliaser     PathAliaser
	transformer Transformer
	loader      StylesheetLoader
	logger      *log.Logger
}

// Option configures a Base.
type Option func(*Base)

// WithPrefix overrides the configured prefix.
func WithPrefix(prefix string) Option {
	return func(b *Base) {
		if prefix != "" {
			b.prefix = prefix
		}
	}
}

// WithSuffixFunc overrides the suffix policy.
func WithSuffixFunc(f SuffixFunc) Option {
	return func(b *Base) {
		b.suffixFunc = f
	}
}

// WithPathAliaser sets the aliaser used when the configuration enables aliases.
func WithPathAliaser(a PathAliaser) Option {
	return func(b *Base) {
		b.aliaser = a
	}
}

// WithTransformer sets the XSLT processor used by AppendHandleToMetadata.
func WithTransformer(t Transformer) Option {
	return func(b *Base) {
		b.transformer = t
	}
}

// WithStylesheetLoader replaces the default stylesheet loader.
func WithStylesheetLoader(l StylesheetLoader) Option {
	return func(b *Base) {
		b.loader = l
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Base) {
		b.logger = l
	}
}

// NewBase builds a Base from cfg. When obj is non-nil its target URL is
// resolved right away and its identifier becomes the pid.
func NewBase(cfg *config.Config, obj handlemodels.Object, opts ...Option) *Base {
	b := &Base{
		cfg:    cfg,
		prefix: cfg.Prefix,
		loader: &FileLoader{},
	}
	if cfg.SuffixPolicy == config.SuffixPolicyUUID {
		b.suffixFunc = UUIDSuffix
	} else {
		b.suffixFunc = PIDSuffix
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.NewLogger("handler")
		if err := logging.SetLevel(b.logger, cfg.LogLevel); err != nil {
			b.logger.WithError(err).Warn("keeping default log level")
		}
	}

	b.authorizationHeader = BasicAuthorization(cfg.AdminUsername, cfg.AdminPassword)

	if obj != nil {
		b.TargetURL(obj.ID())
		b.pid = obj.ID()
	}
	return b
}

// BasicAuthorization builds the Authorization header value for a handle
// administrator. The username is percent-encoded since handle admin names
// ("300:0.NA/PREFIX") contain the colon that separates user from password.
func BasicAuthorization(username, password string) string {
	credentials := url.QueryEscape(username) + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// BuildTargetURL computes the URL a handle for id resolves to. It is pure;
// Base.TargetURL memoizes it.
func BuildTargetURL(cfg *config.Config, id string, aliaser PathAliaser) string {
	basePath := cfg.ObjectsBasePath
	if basePath == "" {
		basePath = config.DefaultObjectsBasePath
	}
	path := fmt.Sprintf("%s/%s", strings.TrimRight(basePath, "/"), id)
	if cfg.UseAlias && aliaser != nil {
		path = aliaser.Alias(path)
	}

	host := cfg.AlternateHost
	if host == "" {
		host = cfg.BaseURL
	}
	return strings.TrimRight(host, "/") + "/" + strings.TrimLeft(path, "/")
}

// TargetURL returns the target URL for id. The first result is kept for the
// lifetime of the Base; later calls return it regardless of id or
// configuration changes.
func (b *Base) TargetURL(id string) string {
	if b.targetURL == nil {
		u := BuildTargetURL(b.cfg, id, b.aliaser)
		b.targetURL = &u
		b.targetID = id
	}
	return *b.targetURL
}

// TargetFor returns the memoized target URL when it belongs to obj. A Base
// whose target was resolved for another object refuses, so a reused handler
// cannot register obj against someone else's URL.
func (b *Base) TargetFor(obj handlemodels.Object) (string, error) {
	if obj == nil {
		return "", errors.NewValidationError("object", "object is required")
	}
	if b.targetURL != nil && b.targetID != obj.ID() {
		return "", errors.NewValidationError("object",
			fmt.Sprintf("handler is bound to %q, not %q", b.targetID, obj.ID()))
	}
	return b.TargetURL(obj.ID()), nil
}

// Suffix returns the handle suffix for obj.
func (b *Base) Suffix(obj handlemodels.Object) string {
	return b.suffixFunc(obj)
}

// FullHandle resolves ref to "prefix/suffix". Raw handles pass through unchanged.
func (b *Base) FullHandle(ref handlemodels.HandleRef) string {
	switch r := ref.(type) {
	case handlemodels.RawHandle:
		return string(r)
	case handlemodels.ObjectRef:
		if r.Object == nil {
			return ""
		}
		return b.prefix + "/" + b.Suffix(r.Object)
	default:
		return ""
	}
}

// ResolveHandle is FullHandle plus validation of the result.
func (b *Base) ResolveHandle(ref handlemodels.HandleRef) (string, error) {
	h := b.FullHandle(ref)
	if h == "" {
		return "", errors.NewValidationError("handle", "empty handle reference")
	}
	prefix, suffix, ok := strings.Cut(h, "/")
	if !ok || prefix == "" || suffix == "" {
		return "", errors.NewValidationError("handle", fmt.Sprintf("%q is not of the form prefix/suffix", h))
	}
	return h, nil
}

// HandleMetadataValue is the resolvable handle URL embedded into metadata.
func (b *Base) HandleMetadataValue(obj handlemodels.Object) string {
	resolver := b.cfg.ResolverBaseURL
	if resolver == "" {
		resolver = config.DefaultResolverBaseURL
	}
	return strings.TrimRight(resolver, "/") + "/" + b.FullHandle(handlemodels.FromObject(obj))
}

// ValidateTarget rejects targets that are not URIs.
func ValidateTarget(target string) error {
	if target == "" || !strfmt.Default.Validates("uri", target) {
		return errors.NewValidationError("target", fmt.Sprintf("%q is not a valid URI", target))
	}
	return nil
}

// Prefix is the handle namespace in use.
func (b *Base) Prefix() string { return b.prefix }

// PID is the identifier of the object the Base was built for, if any.
func (b *Base) PID() string { return b.pid }

// AuthorizationHeader is the precomputed HTTP Basic Authorization value.
func (b *Base) AuthorizationHeader() string { return b.authorizationHeader }

// Config returns the configuration the Base reads.
func (b *Base) Config() *config.Config { return b.cfg }

// Logger returns the logger shared with embedding backends.
func (b *Base) Logger() *log.Logger { return b.logger }
