// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command tstool inspects, converts and maintains Qt Linguist translation
// catalogues.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/spacetrace/tscatalog/audit"
	"codeberg.org/spacetrace/tscatalog/config"
)

var (
	errPackageErrors = errors.New("scanned packages contain errors")
	errNotClean      = errors.New("catalogues are not clean")
	errUnknownFormat = errors.New("unknown catalogue format")
)

func main() {
	audit.SetDefaultLogger()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "tstool",
		Short: "Qt Linguist catalogue tool",
		Long: `tstool reads Qt Linguist TS catalogues and helps keep them in shape.

It reports translation status, looks up messages the way the runtime does,
converts catalogues to YAML and gettext PO, and extracts translatable
messages from Go packages into new or existing catalogues.`,
		Version:      config.BuildVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.Global.LoadConfig(configFile)
		},
	}

	root.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: $"+config.ConfigFileEnv+" or "+config.DefaultConfigFile+")")

	root.AddCommand(
		newAuditCommand(),
		newLookupCommand(),
		newConvertCommand(),
		newExtractCommand(),
		newConfigCommand(),
	)

	return root
}
