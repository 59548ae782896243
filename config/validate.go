// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// validation errors.
var (
	errEmptyDomain        = errors.New("translations.domain cannot be empty")
	errInvalidDomain      = errors.New("translations.domain must not contain path separators")
	errNotADirectory      = errors.New("translations.dir is not a directory")
	errInvalidLocale      = errors.New("invalid translations.locale")
	errInvalidLogLevel    = errors.New("invalid log.logLevel")
	errInvalidLogFormat   = errors.New("invalid log.logFormat")
	errEmptyLogOutputPath = errors.New("log.logOutputs cannot contain empty paths")
)

var (
	validLogLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	validLogFormats = []string{"console", "json"}
)

// validateAndSet validates the configuration and normalises some fields.
func (cfg *Config) validateAndSet() error {
	if cfg.Translations.Domain == "" {
		return errEmptyDomain
	}

	if strings.ContainsAny(cfg.Translations.Domain, `/\`) {
		return fmt.Errorf("%w: %q", errInvalidDomain, cfg.Translations.Domain)
	}

	if cfg.Translations.DefaultContext == "" {
		cfg.Translations.DefaultContext = cfg.Translations.Domain
	}

	if cfg.Translations.Dir != "" {
		info, err := os.Stat(cfg.Translations.Dir)
		if err != nil {
			return fmt.Errorf("failed to access translations.dir: %w", err)
		}

		if !info.IsDir() {
			return fmt.Errorf("%w: %s", errNotADirectory, cfg.Translations.Dir)
		}
	}

	if cfg.Translations.Locale != "" {
		tag, err := language.Parse(strings.ReplaceAll(cfg.Translations.Locale, "_", "-"))
		if err != nil {
			return fmt.Errorf("%w %q: %w", errInvalidLocale, cfg.Translations.Locale, err)
		}

		cfg.Translations.Locale = tag.String()
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if !slices.Contains(validLogLevels, cfg.Log.Level) {
		return fmt.Errorf("%w %q, must be one of %s", errInvalidLogLevel, cfg.Log.Level, strings.Join(validLogLevels, ", "))
	}

	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if !slices.Contains(validLogFormats, cfg.Log.Format) {
		return fmt.Errorf("%w %q, must be one of %s", errInvalidLogFormat, cfg.Log.Format, strings.Join(validLogFormats, ", "))
	}

	if slices.Contains(cfg.Log.Outputs, "") {
		return errEmptyLogOutputPath
	}

	return nil
}
