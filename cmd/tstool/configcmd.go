// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"codeberg.org/spacetrace/tscatalog/config"
)

func newConfigCommand() *cobra.Command {
	var example string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Config prints the configuration after the config file, .env file and
environment variables were applied. With --example it prints a commented
example .env or YAML file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printConfig(cmd.OutOrStdout(), example)
		},
	}

	cmd.Flags().StringVar(&example, "example", "", "print an example file: env or yaml")

	return cmd
}

func printConfig(w io.Writer, example string) error {
	switch example {
	case "":
		return config.Global.Write(w)
	case "env":
		_, err := io.WriteString(w, config.ExampleEnv())

		return err
	case "yaml":
		out, err := config.ExampleYAML()
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, out)

		return err
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, example)
	}
}
