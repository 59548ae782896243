// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

const tsHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n" + `<!DOCTYPE TS>` + "\n"

// Write serialises c as a TS document. Entries are grouped by context in
// order of first appearance and keep their relative order. Locations are
// written with absolute line numbers.
func Write(w io.Writer, c *Catalog) error {
	meta := c.Meta()
	if meta.Version == "" {
		meta.Version = DefaultVersion
	}

	doc := tsDocument{
		Version:        meta.Version,
		Language:       meta.Language,
		SourceLanguage: meta.SourceLanguage,
	}

	byContext := make(map[string]int)

	for _, e := range c.Entries() {
		i, ok := byContext[e.Context]
		if !ok {
			i = len(doc.Contexts)
			byContext[e.Context] = i
			doc.Contexts = append(doc.Contexts, tsContext{Name: e.Context})
		}

		doc.Contexts[i].Messages = append(doc.Contexts[i].Messages, toTSMessage(e))
	}

	if _, err := io.WriteString(w, tsHeader); err != nil {
		return fmt.Errorf("failed to write TS header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode TS document: %w", err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write TS document: %w", err)
	}

	return nil
}

// Marshal returns the TS document for c.
func Marshal(c *Catalog) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, c); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func toTSMessage(e Entry) tsMessage {
	m := tsMessage{
		Source:            &e.Source,
		OldSource:         e.OldSource,
		Comment:           e.Comment,
		ExtraComment:      e.ExtraComment,
		TranslatorComment: e.TranslatorComment,
		Translation: &tsTranslation{
			Type: e.Status.typeAttr(),
			Text: e.Translation,
		},
	}

	if len(e.NumerusForms) > 0 {
		m.Numerus = "yes"
		m.Translation.Text = ""
		m.Translation.NumerusForms = e.NumerusForms
	}

	for _, l := range e.Locations {
		file := l.File
		loc := tsLocation{Filename: &file}

		if l.Line > 0 {
			loc.Line = strconv.Itoa(l.Line)
		}

		m.Locations = append(m.Locations, loc)
	}

	return m
}
