// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

type yamlCatalog struct {
	Meta     `yaml:",inline"`
	Contexts []yamlContext `yaml:"contexts"`
}

type yamlContext struct {
	Name     string        `yaml:"name"`
	Messages []yamlMessage `yaml:"messages"`
}

type yamlMessage struct {
	Source            string     `yaml:"source"`
	Translation       string     `yaml:"translation"`
	Status            Status     `yaml:"status,omitempty"`
	Locations         []Location `yaml:"locations,omitempty"`
	OldSource         string     `yaml:"oldSource,omitempty"`
	Comment           string     `yaml:"comment,omitempty"`
	ExtraComment      string     `yaml:"extraComment,omitempty"`
	TranslatorComment string     `yaml:"translatorComment,omitempty"`
	NumerusForms      []string   `yaml:"numerusForms,omitempty"`
}

// WriteYAML serialises c as YAML, grouped by context. The status of final
// entries is omitted.
func WriteYAML(w io.Writer, c *Catalog) error {
	doc := yamlCatalog{Meta: c.Meta()}
	byContext := make(map[string]int)

	for _, e := range c.Entries() {
		i, ok := byContext[e.Context]
		if !ok {
			i = len(doc.Contexts)
			byContext[e.Context] = i
			doc.Contexts = append(doc.Contexts, yamlContext{Name: e.Context})
		}

		m := yamlMessage{
			Source:            e.Source,
			Translation:       e.Translation,
			Status:            Status(e.Status.typeAttr()),
			Locations:         e.Locations,
			OldSource:         e.OldSource,
			Comment:           e.Comment,
			ExtraComment:      e.ExtraComment,
			TranslatorComment: e.TranslatorComment,
			NumerusForms:      e.NumerusForms,
		}

		doc.Contexts[i].Messages = append(doc.Contexts[i].Messages, m)
	}

	if err := yaml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode catalog as YAML: %w", err)
	}

	return nil
}

// LoadYAML reads a catalogue written by [WriteYAML].
func LoadYAML(r io.Reader) (*Catalog, error) {
	var doc yamlCatalog
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML catalog: %w", err)
	}

	var entries []Entry

	for _, ctx := range doc.Contexts {
		for _, m := range ctx.Messages {
			entries = append(entries, Entry{
				Context:           ctx.Name,
				Source:            m.Source,
				Translation:       m.Translation,
				Status:            m.Status,
				Locations:         m.Locations,
				OldSource:         m.OldSource,
				Comment:           m.Comment,
				ExtraComment:      m.ExtraComment,
				TranslatorComment: m.TranslatorComment,
				NumerusForms:      m.NumerusForms,
			})
		}
	}

	return New(doc.Meta, entries)
}
