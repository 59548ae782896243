// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"codeberg.org/spacetrace/tscatalog/i18n"
	"codeberg.org/spacetrace/tscatalog/translations"
)

/*
These tests change the working directory and environment, so none of them
run in parallel.
*/

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := &Config{}
	require.NoError(t, cfg.LoadConfig(""))

	assert.Equal(t, translations.Domain, cfg.Translations.Domain)
	assert.Equal(t, translations.Domain, cfg.Translations.DefaultContext)
	assert.Empty(t, cfg.Translations.Dir)
	assert.True(t, cfg.Internationalization.UseUnfinished)
	assert.False(t, cfg.Internationalization.StrictMissingKeys)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"/dev/stderr"}, cfg.Log.Outputs)
}

func TestLoadConfigFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, "tscatalog.yml", "translations:\n  domain: FromYml\n")
	writeFile(t, "env.yaml", "translations:\n  domain: FromEnv\n")
	writeFile(t, "flag.yaml", "translations:\n  domain: FromFlag\n")

	tests := []struct {
		name string
		flag string
		env  string
		want string
	}{
		{name: "fallback to .yml", want: "FromYml"},
		{name: "environment variable", env: filepath.Join(dir, "env.yaml"), want: "FromEnv"},
		{name: "flag wins", flag: "flag.yaml", env: filepath.Join(dir, "env.yaml"), want: "FromFlag"},
		{name: "missing file is skipped", flag: "nope.yaml", want: translations.Domain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigFileEnv, tt.env)

			cfg := &Config{}
			require.NoError(t, cfg.LoadConfig(tt.flag))
			assert.Equal(t, tt.want, cfg.Translations.Domain)
		})
	}
}

func TestLoadConfigYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	logFile := filepath.Join(dir, "tool.log")

	writeFile(t, "tscatalog.yaml", `
translations:
  domain: SpaceTracePlugin
  defaultContext: ""
  locale: ru_RU
internationalization:
  strictMissingKeys: true
  useUnfinished: true
log:
  logLevel: info
  logFormat: json
`)

	t.Setenv("TSCATALOG_USE_UNFINISHED", "false")
	t.Setenv("TSCATALOG_STRICT_MISSING_KEYS", "false")
	t.Setenv("TSCATALOG_LOG_LEVEL", "ERROR")
	t.Setenv("TSCATALOG_LOG_OUTPUTS", logFile+", ,")

	cfg := &Config{}
	require.NoError(t, cfg.LoadConfig(""))

	assert.Equal(t, "ru-RU", cfg.Translations.Locale)
	assert.Equal(t, "SpaceTracePlugin", cfg.Translations.DefaultContext, "empty context defaults to the domain")
	assert.False(t, cfg.Internationalization.UseUnfinished, "overwrite variables replace file values")
	assert.True(t, cfg.Internationalization.StrictMissingKeys, "other variables only fill zero values")
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{logFile}, cfg.Log.Outputs)
	assert.FileExists(t, logFile)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeFile(t, "plain.txt", "")

	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{"log level", map[string]string{"TSCATALOG_LOG_LEVEL": "loud"}, errInvalidLogLevel},
		{"log format", map[string]string{"TSCATALOG_LOG_FORMAT": "xml"}, errInvalidLogFormat},
		{"empty domain", map[string]string{"TSCATALOG_DOMAIN": ""}, errEmptyDomain},
		{"domain with separator", map[string]string{"TSCATALOG_DOMAIN": "../x"}, errInvalidDomain},
		{"locale", map[string]string{"TSCATALOG_LOCALE": "not a locale"}, errInvalidLocale},
		{"dir is a file", map[string]string{"TSCATALOG_TRANSLATIONS_DIR": filepath.Join(dir, "plain.txt")}, errNotADirectory},
		{"missing dir", map[string]string{"TSCATALOG_TRANSLATIONS_DIR": filepath.Join(dir, "missing")}, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := &Config{}
			err := cfg.LoadConfig("")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	t.Chdir(t.TempDir())

	writeFile(t, "tscatalog.yaml", "translations: [oops")

	cfg := &Config{}
	err := cfg.LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading YAML config")
}

func TestReadEnvErrors(t *testing.T) {
	t.Setenv("TSCATALOG_DEV", "maybe")

	cfg := &Config{}
	err := readEnv(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TSCATALOG_DEV")

	assert.ErrorIs(t, readEnv(*cfg), errExpectedPointerToStruct)

	n := 3
	assert.ErrorIs(t, readEnv(&n), errExpectedPointerToStruct)

	var unsupported struct {
		Ratio float64 `env:"TSCATALOG_TEST_RATIO"`
	}

	t.Setenv("TSCATALOG_TEST_RATIO", "0.5")
	assert.ErrorIs(t, readEnv(&unsupported), errUnsupportedFieldType)
}

func TestTryLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, strings.Join([]string{
		"# comment",
		`TSCATALOG_TEST_QUOTED="quoted value"`,
		"not a pair",
		"TSCATALOG_TEST_KEPT=from file",
		"TSCATALOG_TEST_EMPTY=''",
	}, "\n"))

	t.Setenv("TSCATALOG_TEST_KEPT", "from env")
	t.Cleanup(func() {
		os.Unsetenv("TSCATALOG_TEST_QUOTED")
		os.Unsetenv("TSCATALOG_TEST_EMPTY")
	})

	require.NoError(t, tryLoadDotEnv(path))

	assert.Equal(t, "quoted value", os.Getenv("TSCATALOG_TEST_QUOTED"))
	assert.Equal(t, "from env", os.Getenv("TSCATALOG_TEST_KEPT"))

	v, ok := os.LookupEnv("TSCATALOG_TEST_EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)

	require.NoError(t, tryLoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestSetupI18n(t *testing.T) {
	raw, err := translations.FS.ReadFile("SpaceTracePlugin_ru.ts")
	require.NoError(t, err)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Plugin_de.ts"), `<TS language="de"><context><name>Plugin</name>`+
		`<message><source>Success</source><translation>Erfolg</translation></message></context></TS>`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SpaceTracePlugin_ru.ts"), raw, 0o600))

	cfg := &Config{}
	cfg.SetDefaults()
	cfg.Translations.Domain = "Plugin"
	cfg.Translations.DefaultContext = "Plugin"
	cfg.Translations.Dir = dir

	opts := cfg.I18nOptions()
	assert.Equal(t, i18n.Options{Domain: "Plugin", DefaultContext: "Plugin", UseUnfinished: true}, opts)

	require.NoError(t, cfg.SetupI18n())
	assert.Equal(t, []language.Tag{language.German, language.English}, i18n.Languages())

	cfg.SetDefaults()
	require.NoError(t, cfg.SetupI18n())
	assert.Equal(t, []language.Tag{language.English, language.Russian}, i18n.Languages())
}

func TestExamples(t *testing.T) {
	env := ExampleEnv()
	assert.True(t, strings.HasPrefix(env, envFileHeader))
	assert.Contains(t, env, "## Translations\n# TSCATALOG_TRANSLATIONS_DIR=\n# TSCATALOG_DOMAIN=SpaceTracePlugin\n")
	assert.Contains(t, env, "# TSCATALOG_USE_UNFINISHED=true\n")
	assert.Contains(t, env, "# TSCATALOG_LOG_OUTPUTS=/dev/stderr\n")
	assert.NotContains(t, env, "Build")

	yml, err := ExampleYAML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(yml, yamlFileHeader))
	assert.Contains(t, yml, "\ntranslations:\n")
	assert.Contains(t, yml, "  # domain: SpaceTracePlugin\n")
	assert.Contains(t, yml, "\nlog:\n")
}

func TestRevision(t *testing.T) {
	b := buildInfo{VcsRevision: "0123456789abcdef", VcsTime: "2025-01-02T03:04:05Z", VcsModified: true}
	assert.Equal(t, "2025-01-02-01234567+dirty", b.Revision())
	assert.Equal(t, BuildVersion+" (2025-01-02-01234567+dirty)", b.Version())

	assert.Equal(t, "unknown", (&buildInfo{}).Revision())
}

func TestWrite(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	var sb strings.Builder
	require.NoError(t, cfg.Write(&sb))
	assert.Contains(t, sb.String(), "domain: SpaceTracePlugin")
	assert.NotContains(t, sb.String(), "vcsrevision")
}
