// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"os"
	"strings"

	"golang.org/x/text/language"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// localeEnv lists the environment variables consulted by [FromEnvironment],
// in priority order.
var localeEnv = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// WithTag stores t in ctx and returns a derived context that carries it.
//
// The returned context should be passed to downstream code that performs
// translations. Passing the zero value of [language.Tag] clears any existing value.
//
// The ctx must not be nil.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the language tag stored in ctx, or the tag for [BaseLocale]
// if none is present. It never returns the zero value of [language.Tag].
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return baseTag
}

// Match returns the supported tag that best fits prefs. Each preference may be
// a BCP 47 tag, a Qt style locale such as "ru_RU", or an Accept-Language value.
// Empty preferences are ignored.
//
// If nothing matches, or if Setup has not been called, Match returns the tag
// for [BaseLocale].
func Match(prefs ...string) language.Tag {
	st := current.Load()
	if st == nil {
		return baseTag
	}

	preferred := make([]string, 0, len(prefs))

	for _, p := range prefs {
		if p = normaliseLocale(p); p != "" {
			preferred = append(preferred, p)
		}
	}

	_, i := language.MatchStrings(st.matcher, preferred...)

	return st.tags[i]
}

// FromEnvironment matches the POSIX locale of the process, read from
// LC_ALL, LC_MESSAGES and LANG in that order.
func FromEnvironment() language.Tag {
	for _, name := range localeEnv {
		if v := os.Getenv(name); v != "" && v != "C" && v != "POSIX" {
			return Match(v)
		}
	}

	return Match()
}

// normaliseLocale turns POSIX and Qt locale names such as "ru_RU.UTF-8@euro"
// into BCP 47 form. Each item of an Accept-Language list is normalised on its
// own and its parameters, such as "q=0.8", are kept.
func normaliseLocale(s string) string {
	items := strings.Split(strings.TrimSpace(s), ",")

	for i, item := range items {
		tag, params, hasParams := strings.Cut(strings.TrimSpace(item), ";")

		if j := strings.IndexAny(tag, ".@"); j >= 0 {
			tag = tag[:j]
		}

		tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
		if hasParams {
			tag += ";" + params
		}

		items[i] = tag
	}

	return strings.Join(items, ",")
}
