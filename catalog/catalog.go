// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// DefaultVersion is the TS format version written when a catalogue does not carry one.
const DefaultVersion = "2.1"

// Meta holds the document level attributes of a catalogue.
type Meta struct {
	Version        string `yaml:"version,omitempty"`
	Language       string `yaml:"language,omitempty"`
	SourceLanguage string `yaml:"sourceLanguage,omitempty"`
}

// Duplicate describes a key that occurs in more than one entry.
type Duplicate struct {
	Context   string     `yaml:"context"`
	Source    string     `yaml:"source"`
	Locations []Location `yaml:"locations,omitempty"`
}

// Catalog is an immutable set of translations for one target locale.
//
// Instances are built by [New], [Load] and friends; the zero value holds no
// entries. A Catalog is safe for concurrent use since it never changes after
// construction.
type Catalog struct {
	meta    Meta
	tag     language.Tag
	entries []Entry

	usable map[Key]int // last final or unfinished entry per key
	final  map[Key]int // last final entry per key
	last   map[Key]int // last entry per key, any status

	contexts   []string
	duplicates []Duplicate
}

func logger() *zerolog.Logger {
	l := log.With().Str("sys", "catalog").Logger()

	return &l
}

// New builds a catalogue from entries. The entries are copied.
//
// It returns an error wrapping [ErrInvalidStatus] if an entry carries an
// unknown status. An empty status is treated as [StatusFinal].
func New(meta Meta, entries []Entry) (*Catalog, error) {
	c := &Catalog{
		meta:    meta,
		tag:     parseTag(meta.Language),
		entries: make([]Entry, 0, len(entries)),
		usable:  make(map[Key]int, len(entries)),
		final:   make(map[Key]int, len(entries)),
		last:    make(map[Key]int, len(entries)),
	}

	seenContext := make(map[string]bool)
	counts := make(map[Key]int)

	for i, e := range entries {
		st, err := ParseStatus(string(e.Status))
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, e.Source, err)
		}

		e = e.clone()
		e.Status = st

		idx := len(c.entries)
		c.entries = append(c.entries, e)

		k := e.Key()
		counts[k]++
		c.last[k] = idx

		if st.Usable() {
			c.usable[k] = idx
		}

		if st == StatusFinal {
			c.final[k] = idx
		}

		if !seenContext[e.Context] {
			seenContext[e.Context] = true
			c.contexts = append(c.contexts, e.Context)
		}
	}

	c.collectDuplicates(counts)

	return c, nil
}

// collectDuplicates records every key seen more than once, in order of first appearance.
func (c *Catalog) collectDuplicates(counts map[Key]int) {
	reported := make(map[Key]bool)

	for _, e := range c.entries {
		k := e.Key()
		if counts[k] < 2 || reported[k] {
			continue
		}

		reported[k] = true

		d := Duplicate{Context: k.Context, Source: k.Source}

		for _, other := range c.entries {
			if other.Key() == k {
				d.Locations = append(d.Locations, other.Locations...)
			}
		}

		c.duplicates = append(c.duplicates, d)

		logger().Warn().
			Str("language", c.meta.Language).
			Str("context", k.Context).
			Str("source", k.Source).
			Int("count", counts[k]).
			Msg("Duplicate message in catalog")
	}
}

// parseTag converts Qt style locale codes such as "ru_RU" to a language tag.
// It returns [language.Und] when s cannot be parsed.
func parseTag(s string) language.Tag {
	if s == "" {
		return language.Und
	}

	t, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und
	}

	return t
}

// Lookup returns the translation of source within context.
//
// It reports false when no final or unfinished entry exists for the key or
// when the winning entry's translation is empty. Obsolete translations are
// never returned; callers should display source instead.
func (c *Catalog) Lookup(context, source string) (string, bool) {
	if c == nil {
		return "", false
	}

	return c.lookupIn(c.usable, context, source)
}

// LookupFinal is like [Catalog.Lookup] but ignores unfinished translations.
func (c *Catalog) LookupFinal(context, source string) (string, bool) {
	if c == nil {
		return "", false
	}

	return c.lookupIn(c.final, context, source)
}

func (c *Catalog) lookupIn(index map[Key]int, context, source string) (string, bool) {
	i, ok := index[Key{Context: context, Source: source}]
	if !ok || c.entries[i].Translation == "" {
		return "", false
	}

	return c.entries[i].Translation, true
}

// Entry returns a copy of the entry that determines lookups for the key,
// falling back to the last entry of any status.
func (c *Catalog) Entry(context, source string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}

	k := Key{Context: context, Source: source}

	i, ok := c.usable[k]
	if !ok {
		i, ok = c.last[k]
	}

	if !ok {
		return Entry{}, false
	}

	return c.entries[i].clone(), true
}

// Entries returns a copy of all entries in document order, including
// obsolete and unfinished ones.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}

	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.clone()
	}

	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.entries)
}

// Contexts returns the context names in order of first appearance.
func (c *Catalog) Contexts() []string {
	if c == nil {
		return nil
	}

	return slices.Clone(c.contexts)
}

// Duplicates returns the keys that occur in more than one entry.
func (c *Catalog) Duplicates() []Duplicate {
	if c == nil {
		return nil
	}

	out := make([]Duplicate, len(c.duplicates))
	for i, d := range c.duplicates {
		d.Locations = slices.Clone(d.Locations)
		out[i] = d
	}

	return out
}

// Meta returns the document attributes of c.
func (c *Catalog) Meta() Meta {
	if c == nil {
		return Meta{}
	}

	return c.meta
}

// Language returns the target language code as written in the document, e.g. "ru_RU".
func (c *Catalog) Language() string { return c.Meta().Language }

// SourceLanguage returns the source language code, e.g. "en_US".
func (c *Catalog) SourceLanguage() string { return c.Meta().SourceLanguage }

// Tag returns the target language as a BCP 47 tag, or [language.Und] if the
// document does not declare a valid one.
func (c *Catalog) Tag() language.Tag {
	if c == nil {
		return language.Und
	}

	return c.tag
}
