// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"codeberg.org/spacetrace/tscatalog/config"
	"codeberg.org/spacetrace/tscatalog/i18n"
)

type explanation struct {
	Locale      string `yaml:"locale"`
	Context     string `yaml:"context"`
	Source      string `yaml:"source"`
	Translation string `yaml:"translation"`
	Status      string `yaml:"status,omitempty"`
	Location    string `yaml:"location,omitempty"`
}

func newLookupCommand() *cobra.Command {
	var (
		locale  string
		explain bool
	)

	cmd := &cobra.Command{
		Use:   "lookup CONTEXT SOURCE [ARG...]",
		Short: "Translate a message with the configured catalogues",
		Long: `Lookup resolves SOURCE in CONTEXT exactly as the runtime does and prints
the result with ARGs substituted for its placeholders. An empty CONTEXT
selects the default context.

The locale is taken from --locale, the configured locale, or LC_ALL,
LC_MESSAGES and LANG, in that order.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Global.SetupI18n(); err != nil {
				return err
			}

			tag := lookupLocale(locale)
			ctx := i18n.WithTag(cmd.Context(), tag)

			params := make([]any, 0, len(args)-2)
			for _, a := range args[2:] {
				params = append(params, a)
			}

			text := i18n.TrC(ctx, args[0], args[1], params...)

			if !explain {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), text)

				return err
			}

			return writeExplanation(cmd.OutOrStdout(), tag, args[0], args[1], text)
		},
	}

	cmd.Flags().StringVarP(&locale, "locale", "l", "", "locale to translate into, such as ru or pt_BR")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the matched locale, status and location as YAML")

	return cmd
}

func lookupLocale(flag string) language.Tag {
	switch {
	case flag != "":
		return i18n.Match(flag)
	case config.Global.Translations.Locale != "":
		return i18n.Match(config.Global.Translations.Locale)
	default:
		return i18n.FromEnvironment()
	}
}

func writeExplanation(w io.Writer, tag language.Tag, contextKey, source, text string) error {
	if contextKey == "" {
		contextKey = config.Global.Translations.DefaultContext
	}

	c, matched := i18n.Catalog(tag)

	ex := explanation{
		Locale:      matched.String(),
		Context:     contextKey,
		Source:      source,
		Translation: text,
	}

	if e, ok := c.Entry(contextKey, source); ok {
		ex.Status = string(e.Status)

		if loc, ok := e.Provenance(); ok {
			ex.Location = loc.String()
		}
	}

	out, err := yaml.MarshalWithOptions(ex, yaml.Indent(2))
	if err != nil {
		return fmt.Errorf("failed to marshal explanation: %w", err)
	}

	_, err = w.Write(out)

	return err
}
