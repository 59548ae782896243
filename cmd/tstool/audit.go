// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"codeberg.org/spacetrace/tscatalog/catalog"
)

type fileReport struct {
	File           string `yaml:"file"`
	catalog.Report `yaml:",inline"`
}

func newAuditCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "audit FILE...",
		Short: "Report the translation status of catalogues",
		Long: `Audit prints a YAML report per catalogue with message counts by status,
per-context counts and keys that occur more than once.

With --strict the command fails unless every catalogue is clean: all
messages final and translated, and no duplicated keys.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd.Context(), cmd.OutOrStdout(), args, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail unless every catalogue is clean")

	return cmd
}

func runAudit(ctx context.Context, w io.Writer, files []string, strict bool) error {
	reports := make([]fileReport, len(files))

	g, ctx := errgroup.WithContext(ctx)

	for i, file := range files {
		g.Go(func() error {
			c, err := readCatalog(ctx, file)
			if err != nil {
				return err
			}

			reports[i] = fileReport{File: file, Report: catalog.Audit(c)}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	out, err := yaml.MarshalWithOptions(reports, yaml.Indent(2))
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if _, err := w.Write(out); err != nil {
		return err
	}

	if !strict {
		return nil
	}

	var dirty []string

	for _, r := range reports {
		if !r.Clean() {
			dirty = append(dirty, r.File)
		}
	}

	if len(dirty) > 0 {
		return fmt.Errorf("%w: %s", errNotClean, strings.Join(dirty, ", "))
	}

	return nil
}
