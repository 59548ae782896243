// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n translates user-visible text at runtime from Qt Linguist
catalogues loaded with package catalog.

# Quick start

Load the catalogues once at startup, then carry the user's locale in a
context:

	err := i18n.Setup(translations.FS, ".", i18n.Options{UseUnfinished: true})
	ctx = i18n.WithTag(ctx, i18n.Match("ru_RU"))

Use the original English UI text as the source; do not invent keys.

	i18n.Tr(ctx, "Success")                                // default context
	i18n.TrC(ctx, "SpaceTracePluginDialogBase", "Browse") // explicit context
	i18n.Tr(ctx, "{} created successfully", path)

The default context is the catalogue domain, "SpaceTracePlugin", unless
Options.DefaultContext says otherwise.

# Missing translations

Missing translations return the source text unchanged, with positional
arguments substituted. Obsolete translations are never used. When
StrictMissingKeys is enabled, missing lookups are logged once per
locale+key and the returned text is visibly wrapped as "⟦...⟧".

Unfinished translations are only used when Options.UseUnfinished is set.

# Formatting

Translations can contain Qt style "%1" or Python style "{}" and "{0}"
placeholders; see [catalog.Arg]. Numbers are not localised automatically.
*/
package i18n
