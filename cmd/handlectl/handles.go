/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/handlestore/errors"
	"github.com/suparena/handlestore/handlemodels"
)

func newCreateCmd(a *app) *cobra.Command {
	var ignoreExisting bool
	cmd := &cobra.Command{
		Use:   "create <pid>",
		Short: "Mint the handle of an object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obj := pidObject(args[0])
			h, err := a.handler(obj)
			if err != nil {
				return err
			}
			err = h.CreateHandle(cmd.Context(), obj)
			if ignoreExisting && errors.IsAlreadyExists(err) {
				err = nil
			}
			if err != nil {
				return err
			}
			target, err := h.ReadHandle(cmd.Context(), handlemodels.FromObject(obj))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ignoreExisting, "ignore-existing", false, "succeed when the handle already exists")
	return cmd
}

func newReadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "read <handle|pid>",
		Short: "Print the URL a handle resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			h, err := a.handler(nil)
			if err != nil {
				return err
			}
			target, err := h.ReadHandle(cmd.Context(), ref)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
}

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <handle|pid> <target-url>",
		Short: "Point an existing handle at a new URL",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			h, err := a.handler(nil)
			if err != nil {
				return err
			}
			return h.UpdateHandle(cmd.Context(), ref, args[1])
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <handle|pid>",
		Short: "Delete a handle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := parseRef(args[0])
			if err != nil {
				return err
			}
			h, err := a.handler(nil)
			if err != nil {
				return err
			}
			return h.DeleteHandle(cmd.Context(), ref)
		},
	}
}
