/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suparena/handlestore/handler"
	"github.com/suparena/handlestore/repository/fsrepo"
	"github.com/suparena/handlestore/transform/libxslt"
	"github.com/suparena/handlestore/transform/xsltproc"
)

// newTransformer picks the stylesheet processor named by --processor.
var newTransformer = func(name string) (handler.Transformer, error) {
	switch name {
	case "libxslt":
		return libxslt.New()
	case "xsltproc":
		return xsltproc.New()
	case "auto", "":
		if libxslt.Available {
			return libxslt.New()
		}
		return xsltproc.New()
	default:
		return nil, fmt.Errorf("unknown processor %q (auto, libxslt, xsltproc)", name)
	}
}

func newAppendCmd(a *app) *cobra.Command {
	var (
		repoDir   string
		dsid      string
		xsl       string
		processor string
	)
	cmd := &cobra.Command{
		Use:   "append <pid>",
		Short: "Record an object's handle URL in one of its metadata datastreams",
		Long: `Runs the stylesheet over the datastream with the handle URL bound to the
handle_value parameter and saves the result when it differs from the
current content. Objects are read from a file repository directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := fsrepo.Open(repoDir)
			if err != nil {
				return err
			}
			obj, err := repo.Object(args[0])
			if err != nil {
				return err
			}
			tr, err := newTransformer(processor)
			if err != nil {
				return err
			}
			h, err := a.handler(obj, handler.WithTransformer(tr))
			if err != nil {
				return err
			}

			outcome := h.AppendHandleToMetadata(cmd.Context(), obj, dsid, xsl)
			if outcome.Message != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", outcome.Message.Severity, outcome.Message)
			}
			if !outcome.Success {
				return fmt.Errorf("append failed for %s", obj.ID())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&repoDir, "repo", ".", "file repository directory")
	cmd.Flags().StringVar(&dsid, "dsid", "MODS", "datastream to update")
	cmd.Flags().StringVar(&xsl, "xsl", "", "stylesheet path or URL")
	cmd.Flags().StringVar(&processor, "processor", "auto", "stylesheet processor (auto, libxslt, xsltproc)")
	_ = cmd.MarkFlagRequired("xsl")
	return cmd
}
