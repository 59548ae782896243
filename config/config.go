// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"codeberg.org/spacetrace/tscatalog/i18n"
	"codeberg.org/spacetrace/tscatalog/translations"
)

// Default locations of the configuration file, relative to the working directory.
const (
	DefaultConfigFile  = "./tscatalog.yaml"
	fallbackConfigFile = "./tscatalog.yml"

	// ConfigFileEnv names the environment variable that selects a configuration file.
	ConfigFileEnv = "TSCATALOG_CONFIGFILE"
)

// Global exposes the tool configuration.
var Global Config

// Config holds the application configuration.
type Config struct {
	Build buildInfo `yaml:"-"`

	Translations struct {
		// Dir is read instead of the embedded catalogues when set.
		Dir            string `env:"TSCATALOG_TRANSLATIONS_DIR,overwrite" yaml:"dir"`
		Domain         string `env:"TSCATALOG_DOMAIN,overwrite"           yaml:"domain"`
		DefaultContext string `env:"TSCATALOG_DEFAULT_CONTEXT,overwrite"  yaml:"defaultContext"`
		// Locale overrides the locale read from LC_ALL, LC_MESSAGES and LANG.
		Locale string `env:"TSCATALOG_LOCALE,overwrite" yaml:"locale"`
	} `yaml:"translations"`

	Internationalization struct {
		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"TSCATALOG_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`

		// UseUnfinished shows translations that were not approved yet.
		UseUnfinished bool `env:"TSCATALOG_USE_UNFINISHED,overwrite" yaml:"useUnfinished"`
	} `yaml:"internationalization"`

	Log struct {
		Level   string   `env:"TSCATALOG_LOG_LEVEL,overwrite"   yaml:"logLevel"`
		Outputs []string `env:"TSCATALOG_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"TSCATALOG_LOG_FORMAT,overwrite"  yaml:"logFormat"`
	} `yaml:"log"`

	Development struct {
		InDevelopment bool `env:"TSCATALOG_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`
}

// LoadConfig loads the configuration from various sources.
//
// configFile is the value of the --config flag, or "" if the flag was not
// given. The file is chosen with the following precedence:
//  1. configFile
//  2. the TSCATALOG_CONFIGFILE environment variable
//  3. ./tscatalog.yaml, falling back to ./tscatalog.yml
//
// A missing file is not an error. Values from the file are then overridden by
// a .env file and by TSCATALOG_* environment variables.
func (cfg *Config) LoadConfig(configFile string) error {
	configFilePath := resolveConfigFile(configFile)

	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	return nil
}

func resolveConfigFile(configFile string) string {
	if configFile != "" {
		return configFile
	}

	if envVar := os.Getenv(ConfigFileEnv); envVar != "" {
		return envVar
	}

	if _, err := os.Stat(DefaultConfigFile); os.IsNotExist(err) {
		if _, statErr := os.Stat(fallbackConfigFile); statErr == nil {
			return fallbackConfigFile
		}
	}

	return DefaultConfigFile
}

// I18nOptions converts the configuration to options for i18n.Setup.
func (cfg *Config) I18nOptions() i18n.Options {
	return i18n.Options{
		Domain:            cfg.Translations.Domain,
		DefaultContext:    cfg.Translations.DefaultContext,
		StrictMissingKeys: cfg.Internationalization.StrictMissingKeys,
		UseUnfinished:     cfg.Internationalization.UseUnfinished,
	}
}

// SetupI18n loads the configured catalogues into package i18n: the directory
// named by Translations.Dir, or the embedded catalogues when it is empty.
func (cfg *Config) SetupI18n() error {
	if cfg.Translations.Dir != "" {
		return i18n.Setup(os.DirFS(cfg.Translations.Dir), ".", cfg.I18nOptions())
	}

	return i18n.Setup(translations.FS, ".", cfg.I18nOptions())
}
