// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// print logs the effective configuration when debug logging is enabled.
func (cfg *Config) print() {
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}

	log.Debug().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Msg("Starting tstool")

	if err := cfg.Write(os.Stderr); err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")
	}
}

// Write marshals the configuration to w as YAML.
func (cfg *Config) Write(w io.Writer) error {
	configYAML, err := yaml.MarshalWithOptions(cfg, yaml.Indent(2))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	_, err = w.Write(configYAML)

	return err
}
