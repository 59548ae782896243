// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog loads Qt Linguist translation sources (.ts files) into
immutable translation catalogues and answers lookups against them.

# Loading

A catalogue holds the messages of a single target locale:

	c, err := catalog.LoadFile("translations/SpaceTracePlugin_ru.ts")
	if err != nil {
		var perr *catalog.ParseError
		if errors.As(err, &perr) {
			// perr.Line points at the offending element
		}
	}

Malformed documents fail with a [*ParseError]; a partially parsed catalogue
is never returned. Files whose name ends in ".zst" are decompressed first.

# Lookup

Messages are keyed by their context (usually a dialog or class name) and
their source text:

	s, ok := c.Lookup("SpaceTracePlugin", "Success") // "Успешно", true

Final and unfinished translations are returned; obsolete and vanished ones
are not, so callers fall back to the source text. Use [Catalog.LookupFinal]
to ignore unfinished translations as well. Empty translations count as
missing.

When a key occurs more than once, the last final or unfinished entry wins
and obsolete entries never shadow it. Every repeated key is reported by
[Catalog.Duplicates].

# Placeholders

Translations are templates. Callers substitute positional markers with [Arg]:

	catalog.Arg("%1 created successfully", path)
	catalog.Arg("{} created successfully", path)

# Other formats

[Write] serialises a catalogue back to TS. [WriteYAML] and [LoadYAML] use a
YAML representation, and [WritePO] exports GNU gettext PO text. [Audit]
summarises catalogue freshness for tooling.
*/
package catalog
