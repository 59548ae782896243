// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConvertCommand() *cobra.Command {
	var to, output string

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a catalogue to TS, YAML or PO",
		Long: `Convert reads a TS (optionally .ts.zst) or YAML catalogue and writes it
as TS, YAML or gettext PO. The output format defaults to the extension of
--output. PO output is checked with a gettext parser before it is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := to
			if format == "" {
				format = formatOf(output)
			}

			if format == "" {
				return fmt.Errorf("%w: set --to or an --output with a known extension", errUnknownFormat)
			}

			c, err := readCatalog(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			data, err := render(format, c)
			if err != nil {
				return err
			}

			return writeOutput(cmd.Context(), cmd.OutOrStdout(), output, data, c.Len())
		},
	}

	cmd.Flags().StringVarP(&to, "to", "t", "", "output format: ts, yaml or po")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, stdout if empty; a .zst suffix compresses")

	return cmd
}
