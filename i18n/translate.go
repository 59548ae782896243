// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"

	"codeberg.org/spacetrace/tscatalog/catalog"
)

// Tr returns the translation of source in the default context for the locale
// carried by ctx. Positional arguments are substituted with [catalog.Arg].
//
// If a translation is not found, Tr returns source, or visibly wrapped source
// if strict mode is enabled. Source texts are never treated as missing for the
// base locale.
func Tr(ctx context.Context, source string, args ...any) string {
	return translate(ctx, "", source, args)
}

// TrC translates source within an explicit context, such as a dialog name.
// It mirrors QCoreApplication::translate.
func TrC(ctx context.Context, contextKey, source string, args ...any) string {
	return translate(ctx, contextKey, source, args)
}

func translate(ctx context.Context, contextKey, source string, args []any) string {
	st := current.Load()
	if st == nil {
		return catalog.Arg(source, args...)
	}

	if contextKey == "" {
		contextKey = st.opts.DefaultContext
	}

	c, matched := st.resolve(TagFrom(ctx))

	text, found := source, false

	switch {
	case c == nil:
		found = matched == baseTag
	case st.opts.UseUnfinished:
		if s, ok := c.Lookup(contextKey, source); ok {
			text, found = s, true
		}
	default:
		if s, ok := c.LookupFinal(contextKey, source); ok {
			text, found = s, true
		}
	}

	if !found && st.opts.StrictMissingKeys {
		logMissingOnce(strippedTagString(matched), buildLogKey(contextKey, source))

		text = "⟦" + source + "⟧"
	}

	return catalog.Arg(text, args...)
}
