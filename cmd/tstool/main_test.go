// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/spacetrace/tscatalog/catalog"
)

// execute runs tstool with args from an empty working directory and
// returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCommand()

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

// sample returns the absolute path of the embedded Russian catalogue and
// moves the test into an empty directory.
func sample(t *testing.T) string {
	t.Helper()

	path, err := filepath.Abs(filepath.Join("..", "..", "translations", "SpaceTracePlugin_ru.ts"))
	require.NoError(t, err)

	t.Chdir(t.TempDir())

	return path
}

func TestRootCommand(t *testing.T) {
	root := newRootCommand()

	assert.Equal(t, "tstool", root.Use)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))

	for _, name := range []string{"audit", "lookup", "convert", "extract", "config"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]string{
		"a.ts":         "ts",
		"a.ts.zst":     "ts",
		"dir/a.yaml":   "yaml",
		"a.yml":        "yaml",
		"a.po":         "po",
		"template.pot": "po",
		"a.json":       "",
		"":             "",
	}

	for in, want := range tests {
		assert.Equal(t, want, formatOf(in), in)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := render("xliff", nil)
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestAuditCommand(t *testing.T) {
	path := sample(t)

	out, err := execute(t, "audit", path)
	require.NoError(t, err)
	assert.Contains(t, out, "file: "+path)
	assert.Contains(t, out, "total: 39")
	assert.Contains(t, out, "unfinished: 1")
	assert.Contains(t, out, "name: SpaceTracePluginDialogBase")

	_, err = execute(t, "audit", "--strict", path)
	assert.ErrorIs(t, err, errNotClean)

	_, err = execute(t, "audit", filepath.Join(t.TempDir(), "missing.ts"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAuditStrictClean(t *testing.T) {
	sample(t)

	c, err := catalog.New(catalog.Meta{Language: "de"}, []catalog.Entry{
		{Context: "Main", Source: "Open", Translation: "Öffnen"},
	})
	require.NoError(t, err)

	data, err := catalog.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile("clean_de.ts", data, 0o600))

	_, err = execute(t, "audit", "--strict", "clean_de.ts")
	assert.NoError(t, err)
}

func TestConvertCommand(t *testing.T) {
	path := sample(t)

	_, err := execute(t, "convert", "-o", "ru.yaml", path)
	require.NoError(t, err)

	fromYAML, err := loadCatalog("ru.yaml")
	require.NoError(t, err)
	assert.Equal(t, 39, fromYAML.Len())

	_, err = execute(t, "convert", "-o", "ru.ts.zst", "ru.yaml")
	require.NoError(t, err)

	back, err := catalog.LoadFile("ru.ts.zst")
	require.NoError(t, err)

	assert.Equal(t, 39, back.Len())

	got, ok := back.Lookup("SpaceTracePlugin", "Success")
	assert.True(t, ok)
	assert.Equal(t, "Успешно", got)

	out, err := execute(t, "convert", "--to", "po", path)
	require.NoError(t, err)
	assert.Contains(t, out, `msgctxt "SpaceTracePlugin"`)
	assert.Contains(t, out, `msgstr "Успешно"`)

	_, err = execute(t, "convert", path)
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestLookupCommand(t *testing.T) {
	sample(t)

	out, err := execute(t, "lookup", "--locale", "ru", "SpaceTracePlugin", "Success")
	require.NoError(t, err)
	assert.Equal(t, "Успешно\n", out)

	out, err = execute(t, "lookup", "--locale", "en", "", "{} created successfully", "Moon")
	require.NoError(t, err)
	assert.Equal(t, "Moon created successfully\n", out)

	out, err = execute(t, "lookup", "--locale", "ru_RU.UTF-8", "--explain", "SpaceTracePluginDialogBase", "Help")
	require.NoError(t, err)
	assert.Contains(t, out, "translation: Помощь")
	assert.Contains(t, out, "status: unfinished")
	assert.Contains(t, out, "context: SpaceTracePluginDialogBase")

	_, err = execute(t, "lookup", "only-context")
	assert.Error(t, err)
}

func TestConfigCommand(t *testing.T) {
	sample(t)

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "domain: SpaceTracePlugin")

	out, err = execute(t, "config", "--example", "env")
	require.NoError(t, err)
	assert.Contains(t, out, "# TSCATALOG_DOMAIN=SpaceTracePlugin")

	out, err = execute(t, "config", "--example", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "translations:")

	_, err = execute(t, "config", "--example", "toml")
	assert.ErrorIs(t, err, errUnknownFormat)
}

func TestScanPackages(t *testing.T) {
	entries, err := scanPackages(".", []string{"./testdata/app"}, "Default")
	require.NoError(t, err)

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Context+"/"+e.Source)

		for _, l := range e.Locations {
			assert.True(t, strings.HasSuffix(l.File, "testdata/app/app.go"), l.File)
			assert.Positive(t, l.Line)
		}
	}

	assert.Equal(t, []string{
		"Default/Cancel",
		"Default/Close",
		"Default/Draw orbit",
		"Default/Help",
		"Default/OK",
		"Default/Open",
		"Default/Success",
		"Dialog/Browse",
	}, keys)

	for _, e := range entries {
		if e.Source == "Success" {
			assert.Len(t, e.Locations, 2, "Tr and TrC with the default context merge")
		}
	}
}

func TestExtractMerge(t *testing.T) {
	pkgDir, err := os.Getwd()
	require.NoError(t, err)

	t.Chdir(t.TempDir())
	t.Setenv("TSCATALOG_DEFAULT_CONTEXT", "Default")

	old, err := catalog.New(catalog.Meta{Language: "ru", SourceLanguage: "en_US"}, []catalog.Entry{
		{Context: "Default", Source: "Success", Translation: "Успех"},
		{Context: "Default", Source: "Gone", Translation: "Ушло"},
	})
	require.NoError(t, err)

	data, err := catalog.Marshal(old)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile("app_ru.ts", data, 0o600))

	_, err = execute(t, "extract", "--dir", pkgDir, "--merge", "app_ru.ts", "./testdata/app")
	require.NoError(t, err)

	merged, err := catalog.LoadFile("app_ru.ts")
	require.NoError(t, err)
	assert.Equal(t, "ru", merged.Language())
	assert.Equal(t, "en_US", merged.SourceLanguage(), "merge keeps the source language")

	got, ok := merged.LookupFinal("Default", "Success")
	assert.True(t, ok)
	assert.Equal(t, "Успех", got)

	gone, ok := merged.Entry("Default", "Gone")
	require.True(t, ok)
	assert.Equal(t, catalog.StatusObsolete, gone.Status)

	browse, ok := merged.Entry("Dialog", "Browse")
	require.True(t, ok)
	assert.Equal(t, catalog.StatusUnfinished, browse.Status)
	assert.Empty(t, browse.Translation)
}

func TestExtractTemplate(t *testing.T) {
	pkgDir, err := os.Getwd()
	require.NoError(t, err)

	t.Chdir(t.TempDir())

	out, err := execute(t, "extract", "-C", pkgDir, "--language", "de", "./testdata/app")
	require.NoError(t, err)

	c, err := catalog.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "de", c.Language())
	assert.Equal(t, "en", c.SourceLanguage())
	assert.Equal(t, 9, c.Len(), "explicit \"Default\" is not the default context here")
	assert.Equal(t, []string{"Default", "Dialog", "SpaceTracePlugin"}, c.Contexts())

	_, ok := c.Entry("SpaceTracePlugin", "Draw orbit")
	assert.True(t, ok)
}
