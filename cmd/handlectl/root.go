/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suparena/handlestore"
	"github.com/suparena/handlestore/config"
	"github.com/suparena/handlestore/handlemodels"
	"github.com/suparena/handlestore/handler"
	"github.com/suparena/handlestore/logging"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v          *viper.Viper
	cfg        config.Config
	logger     *log.Logger
	stopTraces func(context.Context) error
}

// configFlags maps persistent flags onto configuration keys. Viper only lets
// a flag win over the config file and environment when it was given.
var configFlags = map[string]string{
	"backend":            "backend",
	"prefix":             "prefix",
	"base-url":           "base_url",
	"alternate-host":     "alternate_host",
	"handle-service-url": "handle_service.url",
	"suffix-policy":      "suffix_policy",
	"log-level":          "log_level",
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:          "handlectl",
		Short:        "Mint and maintain Handle.net identifiers for repository objects",
		Version:      handlestore.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.stopTraces == nil {
				return nil
			}
			return a.stopTraces(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringP("config", "c", "", "config file (YAML)")
	flags.StringSlice("env-file", []string{".env"}, "dotenv files loaded before the environment is read")
	flags.String("backend", "", "handle backend (rest, dynamodb, mock)")
	flags.String("prefix", "", "handle prefix")
	flags.String("base-url", "", "public base URL of the repository")
	flags.String("alternate-host", "", "host used instead of base-url in target URLs")
	flags.String("handle-service-url", "", "handle server REST endpoint")
	flags.String("suffix-policy", "", "suffix policy (pid, uuid)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("trace", false, "print handle service spans to stderr")
	for name, key := range configFlags {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		newCreateCmd(a),
		newReadCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newAppendCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	flags := cmd.Flags()
	envFiles, err := flags.GetStringSlice("env-file")
	if err != nil {
		return err
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return err
	}
	path, err := flags.GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.LoadViper(a.v, path)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger = logging.NewLogger("handlectl")
	a.logger.SetOutput(cmd.ErrOrStderr())
	if err := logging.SetLevel(a.logger, cfg.LogLevel); err != nil {
		return err
	}

	if trace, _ := flags.GetBool("trace"); trace {
		stop, err := startTracing(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		a.stopTraces = stop
	}
	return nil
}

func (a *app) handler(obj handlemodels.Object, opts ...handler.Option) (handler.Handler, error) {
	opts = append([]handler.Option{handler.WithLogger(a.logger)}, opts...)
	return handlestore.New(&a.cfg, obj, opts...)
}

// pidObject is an object known only by its PID.
type pidObject string

func (p pidObject) ID() string { return string(p) }

func (p pidObject) Datastream(string) (handlemodels.Datastream, bool) { return nil, false }

// parseRef reads "prefix/suffix" as a raw handle and anything else as a PID.
func parseRef(arg string) (handlemodels.HandleRef, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("empty handle or PID")
	}
	if strings.Contains(arg, "/") {
		return handlemodels.RawHandle(arg), nil
	}
	return handlemodels.FromObject(pidObject(arg)), nil
}
