/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/handlestore/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, "handlestore.yaml", `
prefix: "1234567"
admin_username: "300:1234567/ADMIN"
admin_password: "secret"
base_url: "https://repo.example.org"
alternate_host: "http://example.org/"
handle_service:
  url: "https://hdl.example.org:8000"
  timeout: 5s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "1234567", cfg.Prefix)
	assert.Equal(t, "300:1234567/ADMIN", cfg.AdminUsername)
	assert.Equal(t, "http://example.org/", cfg.AlternateHost)
	assert.Equal(t, DefaultObjectsBasePath, cfg.ObjectsBasePath)
	assert.Equal(t, DefaultResolverBaseURL, cfg.ResolverBaseURL)
	assert.Equal(t, DefaultBackend, cfg.Backend)
	assert.Equal(t, SuffixPolicyPID, cfg.SuffixPolicy)

	timeout, err := cfg.HandleService.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "prefix: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	path := writeFile(t, "handlestore.yaml", `
prefix: "1111"
base_url: "https://repo.example.org"
`)
	t.Setenv("HANDLESTORE_PREFIX", "2222")
	t.Setenv("HANDLESTORE_USE_ALIAS", "true")
	t.Setenv("AWS_DDB_TABLE", "handles")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2222", cfg.Prefix)
	assert.True(t, cfg.UseAlias)
	assert.Equal(t, "handles", cfg.DynamoDB.Table)
}

func TestNestedEnvOverrides(t *testing.T) {
	t.Setenv("HANDLESTORE_PREFIX", "1234567")
	t.Setenv("HANDLESTORE_HANDLE_SERVICE_URL", "https://hdl.example.org:8000")
	t.Setenv("HANDLESTORE_HANDLE_SERVICE_INSECURE_SKIP_VERIFY", "true")
	t.Setenv("HANDLESTORE_DYNAMODB_TABLE", "from-prefix")
	t.Setenv("AWS_DDB_TABLE", "from-aws")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "1234567", cfg.Prefix)
	assert.Equal(t, "https://hdl.example.org:8000", cfg.HandleService.URL)
	assert.True(t, cfg.HandleService.InsecureSkipVerify)
	assert.Equal(t, "from-prefix", cfg.DynamoDB.Table, "HANDLESTORE_* wins over AWS_*")
	assert.Equal(t, "eu-west-1", cfg.DynamoDB.Region)
	assert.Equal(t, DefaultBackend, cfg.Backend)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadViperFlagPrecedence(t *testing.T) {
	path := writeFile(t, "handlestore.yaml", `
prefix: "1111"
backend: dynamodb
base_url: "https://repo.example.org"
`)
	t.Setenv("HANDLESTORE_PREFIX", "2222")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("prefix", "", "")
	flags.String("backend", "", "")
	require.NoError(t, flags.Parse([]string{"--prefix", "3333"}))

	v := NewViper()
	require.NoError(t, v.BindPFlag("prefix", flags.Lookup("prefix")))
	require.NoError(t, v.BindPFlag("backend", flags.Lookup("backend")))

	cfg, err := LoadViper(v, path)
	require.NoError(t, err)
	assert.Equal(t, "3333", cfg.Prefix, "explicit flag wins")
	assert.Equal(t, "dynamodb", cfg.Backend, "unset flag does not shadow the file")
}

func TestEnvOverrideInvalidBool(t *testing.T) {
	t.Setenv("HANDLESTORE_USE_ALIAS", "sometimes")
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "HANDLESTORE_TEST_DOTENV=loaded\n")
	t.Cleanup(func() { os.Unsetenv("HANDLESTORE_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, "loaded", os.Getenv("HANDLESTORE_TEST_DOTENV"))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Defaults()
		c.Prefix = "1234567"
		c.BaseURL = "https://repo.example.org"
		return c
	}

	cases := map[string]struct {
		mutate func(c *Config)
		field  string
	}{
		"Valid":            {mutate: func(c *Config) {}},
		"EmptyPrefix":      {mutate: func(c *Config) { c.Prefix = " " }, field: "prefix"},
		"SlashInPrefix":    {mutate: func(c *Config) { c.Prefix = "12/34" }, field: "prefix"},
		"NoHost":           {mutate: func(c *Config) { c.BaseURL = "" }, field: "base_url"},
		"AlternateOnly":    {mutate: func(c *Config) { c.BaseURL = ""; c.AlternateHost = "http://example.org" }},
		"UnknownPolicy":    {mutate: func(c *Config) { c.SuffixPolicy = "random" }, field: "suffix_policy"},
		"BadTimeout":       {mutate: func(c *Config) { c.HandleService.Timeout = "soon" }, field: "handle_service.timeout"},
		"BadLogLevel":      {mutate: func(c *Config) { c.LogLevel = "loud" }, field: "log_level"},
		"DebugLogLevel":    {mutate: func(c *Config) { c.LogLevel = "debug" }},
		"UUIDPolicyIsFine": {mutate: func(c *Config) { c.SuffixPolicy = SuffixPolicyUUID }},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			err := c.Validate()
			if tc.field == "" {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.IsValidationError(err), "expected validation error, got %v", err)
			var ve *errors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}
