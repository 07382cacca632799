/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override. Nested keys join with an
// underscore, so handle_service.url is read from HANDLESTORE_HANDLE_SERVICE_URL.
const EnvPrefix = "HANDLESTORE"

// NewViper returns a viper instance with defaults registered for every key
// and HANDLESTORE_* environment lookups enabled. Callers may bind flags to it
// before passing it to LoadViper.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key, including the ones without a default, so
// Unmarshal sees environment values for them.
func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("prefix", d.Prefix)
	v.SetDefault("admin_username", d.AdminUsername)
	v.SetDefault("admin_password", d.AdminPassword)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("alternate_host", d.AlternateHost)
	v.SetDefault("use_alias", d.UseAlias)
	v.SetDefault("objects_base_path", d.ObjectsBasePath)
	v.SetDefault("resolver_base_url", d.ResolverBaseURL)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("suffix_policy", d.SuffixPolicy)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("handle_service.url", d.HandleService.URL)
	v.SetDefault("handle_service.timeout", d.HandleService.Timeout)
	v.SetDefault("handle_service.insecure_skip_verify", d.HandleService.InsecureSkipVerify)
	v.SetDefault("dynamodb.region", d.DynamoDB.Region)
	v.SetDefault("dynamodb.table", d.DynamoDB.Table)
	v.SetDefault("dynamodb.access_key", d.DynamoDB.AccessKey)
	v.SetDefault("dynamodb.secret_key", d.DynamoDB.SecretKey)
	v.SetDefault("dynamodb.endpoint", d.DynamoDB.Endpoint)
}

// Load reads a YAML configuration file, then applies environment overrides
// and defaults. An empty path skips the file and uses the environment only.
func Load(path string) (Config, error) {
	return LoadViper(NewViper(), path)
}

// LoadViper is Load on a caller-prepared viper from NewViper. Flags bound to
// v win over the environment when they were set explicitly.
func LoadViper(v *viper.Viper, path string) (Config, error) {
	var cfg Config

	if path != "" {
		v.SetConfigFile(filepath.Clean(path))
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse configuration: %w", err)
	}
	applyAWSEnv(&cfg)
	return cfg, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// applyAWSEnv fills unset DynamoDB settings from the variable names the AWS
// tooling around the table already uses.
func applyAWSEnv(cfg *Config) {
	aws := map[string]*string{
		"AWS_ACCESS_KEY":   &cfg.DynamoDB.AccessKey,
		"AWS_SECRET_KEY":   &cfg.DynamoDB.SecretKey,
		"AWS_REGION":       &cfg.DynamoDB.Region,
		"AWS_DDB_TABLE":    &cfg.DynamoDB.Table,
		"AWS_DDB_ENDPOINT": &cfg.DynamoDB.Endpoint,
	}
	for key, dst := range aws {
		if v, ok := os.LookupEnv(key); ok && *dst == "" {
			*dst = v
		}
	}
}
