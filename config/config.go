/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/suparena/handlestore/errors"
)

const (
	// DefaultObjectsBasePath is the repository-relative path objects are served under.
	DefaultObjectsBasePath = "islandora/object"
	// DefaultResolverBaseURL is the public Handle.net proxy embedded into metadata.
	DefaultResolverBaseURL = "http://hdl.handle.net"
	// DefaultBackend is the backend used when none is configured.
	DefaultBackend = "rest"
	// DefaultTimeout bounds a single call to the handle service.
	DefaultTimeout = 30 * time.Second
)

// Suffix policies.
const (
	SuffixPolicyPID  = "pid"
	SuffixPolicyUUID = "uuid"
)

// HandleServiceSection configures the Handle.net REST backend.
type HandleServiceSection struct {
	// URL of the handle server, e.g. "https://handle.example.org:8000".
	URL string `yaml:"url" mapstructure:"url"`

	// Timeout uses Go duration format ("30s", "1m"). Defaults to 30 seconds.
	Timeout string `yaml:"timeout" mapstructure:"timeout"`

	// InsecureSkipVerify disables TLS verification for self-signed handle servers.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
}

// TimeoutDuration parses Timeout, falling back to DefaultTimeout when empty.
func (s HandleServiceSection) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid handle_service.timeout %q: %w", s.Timeout, err)
	}
	return d, nil
}

// DynamoDBSection configures the DynamoDB handle registry.
type DynamoDBSection struct {
	Region    string `yaml:"region" mapstructure:"region"`
	Table     string `yaml:"table" mapstructure:"table"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	// Endpoint overrides the service endpoint, e.g. "http://localhost:8000" for DynamoDB Local.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}

// Config holds everything a handle handler reads from the deployment.
type Config struct {
	// Prefix is the handle namespace, e.g. "1234567".
	Prefix string `yaml:"prefix" mapstructure:"prefix"`

	// AdminUsername and AdminPassword are sent as HTTP Basic credentials.
	// For Handle.net servers the username is usually "300:<prefix>/ADMIN".
	AdminUsername string `yaml:"admin_username" mapstructure:"admin_username"`
	AdminPassword string `yaml:"admin_password" mapstructure:"admin_password"`

	// BaseURL is the repository's own absolute URL.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// AlternateHost replaces BaseURL when building target URLs.
	AlternateHost string `yaml:"alternate_host" mapstructure:"alternate_host"`

	// UseAlias enables path alias rewriting of target URLs. Off by default
	// so target URLs stay stable.
	UseAlias bool `yaml:"use_alias" mapstructure:"use_alias"`

	ObjectsBasePath string `yaml:"objects_base_path" mapstructure:"objects_base_path"`
	ResolverBaseURL string `yaml:"resolver_base_url" mapstructure:"resolver_base_url"`

	// Backend names the registered backend to mint handles with.
	Backend string `yaml:"backend" mapstructure:"backend"`

	// SuffixPolicy is "pid" (default) or "uuid".
	SuffixPolicy string `yaml:"suffix_policy" mapstructure:"suffix_policy"`

	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	HandleService HandleServiceSection `yaml:"handle_service" mapstructure:"handle_service"`
	DynamoDB      DynamoDBSection      `yaml:"dynamodb" mapstructure:"dynamodb"`
}

// Defaults returns a Config with every optional field set to its default.
func Defaults() Config {
	return Config{
		ObjectsBasePath: DefaultObjectsBasePath,
		ResolverBaseURL: DefaultResolverBaseURL,
		Backend:         DefaultBackend,
		SuffixPolicy:    SuffixPolicyPID,
		LogLevel:        "info",
	}
}

// Validate checks the fields every backend depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Prefix) == "" {
		return errors.NewValidationError("prefix", "must not be empty")
	}
	if strings.Contains(c.Prefix, "/") {
		return errors.NewValidationError("prefix", "must not contain '/'")
	}
	if c.BaseURL == "" && c.AlternateHost == "" {
		return errors.NewValidationError("base_url", "either base_url or alternate_host is required")
	}
	switch c.SuffixPolicy {
	case "", SuffixPolicyPID, SuffixPolicyUUID:
	default:
		return errors.NewValidationError("suffix_policy", fmt.Sprintf("unknown policy %q", c.SuffixPolicy))
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return errors.NewValidationError("log_level", fmt.Sprintf("unknown level %q", c.LogLevel))
		}
	}
	if _, err := c.HandleService.TimeoutDuration(); err != nil {
		return errors.NewValidationError("handle_service.timeout", err.Error())
	}
	return nil
}
