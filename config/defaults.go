// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "codeberg.org/spacetrace/tscatalog/translations"

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Translations.Dir = ""
	cfg.Translations.Domain = translations.Domain
	cfg.Translations.DefaultContext = translations.Domain
	cfg.Translations.Locale = ""

	cfg.Internationalization.StrictMissingKeys = false
	cfg.Internationalization.UseUnfinished = true

	cfg.Log.Level = "warn"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Development.InDevelopment = false
}
