// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"codeberg.org/spacetrace/tscatalog/catalog"
	"codeberg.org/spacetrace/tscatalog/translations"
)

// Options controls how translations are loaded and resolved.
type Options struct {
	// Domain is the catalogue file prefix, as in "<Domain>_<locale>.ts".
	// Defaults to translations.Domain.
	Domain string

	// DefaultContext is the context used by [Tr] and [MsgKey].
	// Defaults to Domain.
	DefaultContext string

	// StrictMissingKeys logs missing translations once per locale and key
	// and wraps the returned text in "⟦...⟧".
	StrictMissingKeys bool

	// UseUnfinished makes unfinished translations visible to users.
	UseUnfinished bool
}

// state is the immutable result of a Setup call.
type state struct {
	opts Options

	// catalogs maps canonical BCP 47 tags, for example "ru" or "pt-BR",
	// to their loaded catalogue.
	catalogs map[string]*catalog.Catalog

	// tags is the supported list given to matcher, baseTag first.
	tags    []language.Tag
	matcher language.Matcher
}

// current holds the state installed by the last successful Setup.
var current atomic.Pointer[state]

// loaded is a catalogue file resolved to its locale.
type loaded struct {
	file string
	tag  language.Tag
	cat  *catalog.Catalog
}

// Setup initialises package i18n by loading translation catalogues from dir
// in fsys and constructing a language matcher.
//
// The expected layout is:
//
//	<dir>/<Domain>_<locale>.ts
//	<dir>/<Domain>_<locale>.ts.zst
//
// The <locale> filename part may use hyphens or underscores, for example
// "pt-BR" or "pt_BR", and is normalised to a canonical BCP 47 tag. If it does
// not parse, the language attribute of the document is used instead. Files are
// parsed concurrently. When two files resolve to the same tag the one sorting
// last wins. The base locale, [BaseLocale], is always supported and acts as
// the default fallback.
//
// Setup returns an error if dir cannot be read or any catalogue is malformed;
// the previously installed state is then left untouched. Otherwise the new
// state replaces the old one in a single step.
func Setup(fsys fs.FS, dir string, opts Options) error {
	Logger = log.With().Str("sys", "i18n").Logger()

	if opts.Domain == "" {
		opts.Domain = translations.Domain
	}

	if opts.DefaultContext == "" {
		opts.DefaultContext = opts.Domain
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read translations directory: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if _, ok := localeName(entry.Name(), opts.Domain); ok {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	results := make([]loaded, len(names))

	var g errgroup.Group

	for i, name := range names {
		g.Go(func() error {
			c, err := catalog.LoadFS(fsys, path.Join(dir, name))
			if err != nil {
				return err
			}

			results[i] = loaded{file: name, tag: fileTag(name, opts.Domain, c), cat: c}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	st := &state{
		opts:     opts,
		catalogs: make(map[string]*catalog.Catalog, len(results)),
	}

	var tagsList []language.Tag

	for _, r := range results {
		if r.tag == language.Und {
			Logger.Warn().Str("file", r.file).Msg("Skipping catalog without a valid locale")

			continue
		}

		canonical := r.tag.String()

		if _, dup := st.catalogs[canonical]; dup {
			Logger.Warn().
				Str("locale", canonical).
				Str("file", r.file).
				Msg("Locale loaded twice, replacing previous catalog")
		} else {
			tagsList = append(tagsList, r.tag)
		}

		st.catalogs[canonical] = r.cat

		Logger.Info().
			Str("locale", canonical).
			Str("domain", opts.Domain).
			Int("messages", r.cat.Len()).
			Msg("Loaded locale")
	}

	// baseTag is first to make it the default fallback for matching.
	all := make([]language.Tag, 0, len(tagsList)+1)

	all = append(all, baseTag)

	sort.Slice(tagsList, func(i, j int) bool { return tagsList[i].String() < tagsList[j].String() })

	for _, t := range tagsList {
		if t == baseTag {
			continue
		}

		all = append(all, t)
	}

	st.tags = all
	st.matcher = language.NewMatcher(all)

	current.Store(st)
	missingKeyOnce.Clear()

	return nil
}

// localeName extracts the locale part of a catalogue file name.
func localeName(file, domain string) (string, bool) {
	rest, ok := strings.CutPrefix(file, domain+"_")
	if !ok {
		return "", false
	}

	rest = strings.TrimSuffix(rest, ".zst")

	name, ok := strings.CutSuffix(rest, ".ts")
	if !ok || name == "" {
		return "", false
	}

	return name, true
}

// fileTag resolves the locale of a catalogue from its file name, falling back
// to the language declared in the document.
func fileTag(file, domain string, c *catalog.Catalog) language.Tag {
	name, _ := localeName(file, domain)

	t, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		Logger.Debug().Err(err).Str("file", file).Msg("Using document language for catalog")

		return c.Tag()
	}

	return t
}
