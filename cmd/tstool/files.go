// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"codeberg.org/spacetrace/tscatalog/audit"
	"codeberg.org/spacetrace/tscatalog/catalog"
)

// renderers serialise a catalogue in each supported output format.
var renderers = map[string]func(io.Writer, *catalog.Catalog) error{
	"ts":   catalog.Write,
	"yaml": catalog.WriteYAML,
	"po":   catalog.WritePO,
}

// formatOf guesses the catalogue format from the extension of path,
// ignoring a trailing ".zst".
func formatOf(path string) string {
	switch filepath.Ext(strings.TrimSuffix(path, ".zst")) {
	case ".ts":
		return "ts"
	case ".yaml", ".yml":
		return "yaml"
	case ".po", ".pot":
		return "po"
	default:
		return ""
	}
}

// readCatalog loads a TS or YAML catalogue. TS files ending in ".zst" are
// decompressed first.
func readCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	span := audit.Span{Op: audit.Load, File: path}
	span.Begin(ctx)

	c, err := loadCatalog(path)

	span.End()

	if fi, statErr := os.Stat(path); statErr == nil {
		span.Size = int(fi.Size())
	}

	span.Messages = c.Len()
	span.Error = err
	span.Log()

	return c, err
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if formatOf(path) != "yaml" {
		return catalog.LoadFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := catalog.LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// render serialises c in format. PO output is checked against c with gotext
// before it is returned.
func render(format string, c *catalog.Catalog) ([]byte, error) {
	fn, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}

	var buf bytes.Buffer
	if err := fn(&buf, c); err != nil {
		return nil, err
	}

	if format == "po" {
		if err := catalog.VerifyPO(buf.Bytes(), c); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// writeOutput writes data to path, or to stdout when path is "" or "-".
// Paths ending in ".zst" are compressed with zstd.
func writeOutput(ctx context.Context, stdout io.Writer, path string, data []byte, messages int) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)

		return err
	}

	span := audit.Span{Op: audit.Write, File: path, Messages: messages}
	span.Begin(ctx)

	defer func() {
		span.End()
		span.Log()
	}()

	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			span.Error = err

			return err
		}

		data = enc.EncodeAll(data, nil)

		if err := enc.Close(); err != nil {
			span.Error = err

			return err
		}
	}

	span.Size = len(data)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		span.Error = err

		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
