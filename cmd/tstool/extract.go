// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/spacetrace/tscatalog/audit"
	"codeberg.org/spacetrace/tscatalog/catalog"
	"codeberg.org/spacetrace/tscatalog/config"
	"codeberg.org/spacetrace/tscatalog/i18n"
)

func newExtractCommand() *cobra.Command {
	var dir, merge, output, lang string

	cmd := &cobra.Command{
		Use:   "extract [PACKAGE...]",
		Short: "Extract translatable messages from Go packages",
		Long: `Extract scans Go packages (default ./...) for i18n.Tr and i18n.TrC calls
and i18n.MsgKey constants and writes them as a catalogue.

With --merge the messages are merged into an existing catalogue: known
translations are kept, messages no longer found become obsolete and new
ones are added unfinished. The result replaces the merged file unless
--output is set. Without --merge a new catalogue is written to --output,
or to stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			patterns := args
			if len(patterns) == 0 {
				patterns = []string{"./..."}
			}

			span := audit.Span{Op: audit.Scan, File: dir}
			span.Begin(ctx)

			entries, err := scanPackages(dir, patterns, config.Global.Translations.DefaultContext)

			span.End()
			span.Messages = len(entries)
			span.Error = err
			span.Log()

			if err != nil {
				return err
			}

			var old *catalog.Catalog

			if merge != "" {
				if old, err = readCatalog(ctx, merge); err != nil {
					return err
				}

				if output == "" {
					output = merge
				}
			}

			meta := catalog.Meta{Language: lang}
			if old == nil {
				meta.SourceLanguage = i18n.BaseLocale
			}

			c, stats, err := catalog.Update(old, meta, entries)
			if err != nil {
				return err
			}

			log.Info().
				Int("added", stats.Added).
				Int("kept", stats.Kept).
				Int("revived", stats.Revived).
				Int("obsoleted", stats.Obsoleted).
				Msg("Extracted messages")

			format := formatOf(output)
			if format == "" {
				format = "ts"
			}

			data, err := render(format, c)
			if err != nil {
				return err
			}

			return writeOutput(ctx, cmd.OutOrStdout(), output, data, c.Len())
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", ".", "directory to resolve package patterns from")
	cmd.Flags().StringVarP(&merge, "merge", "m", "", "existing catalogue to merge into")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout if empty")
	cmd.Flags().StringVar(&lang, "language", "", "language attribute of a new catalogue")

	return cmd
}
