// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command genconfig regenerates the example configuration files in deploy/.
package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"codeberg.org/spacetrace/tscatalog/audit"
	"codeberg.org/spacetrace/tscatalog/config"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/tscatalog.yaml.example"
	filePerm       = 0o644
	dirPerm        = 0o755
)

func main() {
	audit.SetDefaultLogger()

	writeFile(envOutputFile, config.ExampleEnv())

	content, err := config.ExampleYAML()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to render YAML example")
	}

	writeFile(yamlOutputFile, content)
}

func writeFile(path, content string) {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to create output directory")
	}

	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write file")
	}

	log.Info().Str("path", path).Msg("Successfully generated")
}
