// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"sort"

	"golang.org/x/text/language"

	"codeberg.org/spacetrace/tscatalog/catalog"
)

// BaseLocale is the language source texts are written in. It is used when no
// specific locale is set or matched.
const BaseLocale = "en"

// baseTag is the canonical tag for BaseLocale.
var baseTag = language.Make(BaseLocale)

// Languages returns the list of supported language tags derived from
// the loaded catalogues, including the base locale.
//
// The returned slice is a copy, is sorted by tag string, and is safe to retain.
//
// Setup must be called successfully before using Languages; otherwise it panics.
func Languages() []language.Tag {
	st := current.Load()
	if st == nil {
		panic("i18n: Setup must be called before calling Languages")
	}

	out := make([]language.Tag, len(st.tags))
	copy(out, st.tags)

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })

	return out
}

// Catalog returns the catalogue that serves t after matching, and the
// matched tag. It returns nil when t resolves to a locale without a
// catalogue, such as the base locale.
func Catalog(t language.Tag) (*catalog.Catalog, language.Tag) {
	st := current.Load()
	if st == nil {
		return nil, baseTag
	}

	return st.resolve(t)
}

// resolve matches t against the supported tags.
func (st *state) resolve(t language.Tag) (*catalog.Catalog, language.Tag) {
	_, i := language.MatchStrings(st.matcher, t.String())
	matched := st.tags[i]

	return st.catalogs[matched.String()], matched
}
