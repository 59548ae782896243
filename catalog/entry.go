// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

// ErrInvalidStatus is returned for a message status other than the ones
// defined by this package.
var ErrInvalidStatus = errors.New("invalid message status")

// Status is the review state of a translation.
type Status string

// Possible values for Status.
const (
	// StatusFinal marks a reviewed translation. In TS files it is the
	// absence of a type attribute.
	StatusFinal Status = "final"
	// StatusUnfinished marks a translation that has not been approved yet.
	StatusUnfinished Status = "unfinished"
	// StatusObsolete marks a translation kept for history only.
	StatusObsolete Status = "obsolete"
	// StatusVanished is the TS 2.1 marker for a message that lupdate no
	// longer finds in the sources. It behaves like StatusObsolete.
	StatusVanished Status = "vanished"
)

// ParseStatus converts s to a Status. The empty string maps to StatusFinal.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusFinal:
		return StatusFinal, nil
	case StatusUnfinished, StatusObsolete, StatusVanished:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Usable reports whether a translation with this status may be shown to users.
func (s Status) Usable() bool {
	return s == StatusFinal || s == StatusUnfinished
}

// Stale reports whether s is StatusObsolete or StatusVanished.
func (s Status) Stale() bool {
	return s == StatusObsolete || s == StatusVanished
}

// typeAttr returns the value of the TS type attribute for s.
func (s Status) typeAttr() string {
	if s == StatusFinal || s == "" {
		return ""
	}

	return string(s)
}

// Location is the provenance of a message in the application sources.
// It is informational only.
type Location struct {
	File string `yaml:"file"`
	Line int    `yaml:"line,omitempty"`
}

func (l Location) String() string {
	if l.Line <= 0 {
		return l.File
	}

	return l.File + ":" + strconv.Itoa(l.Line)
}

// Key identifies a message within a catalogue.
type Key struct {
	Context string
	Source  string
}

// String renders k the way gettext stores contextual msgids.
func (k Key) String() string {
	return k.Context + "\x04" + k.Source
}

// Entry is a single message of a catalogue.
type Entry struct {
	Context     string
	Source      string
	Translation string
	Status      Status

	// Locations lists where the message was found. The first location,
	// when present, is the entry's provenance.
	Locations []Location

	OldSource         string
	Comment           string
	ExtraComment      string
	TranslatorComment string

	// NumerusForms holds the plural forms of a numerus message. Translation
	// is the first form. Plural selection is not supported.
	NumerusForms []string
}

// Key returns the lookup key of e.
func (e Entry) Key() Key {
	return Key{Context: e.Context, Source: e.Source}
}

// Provenance returns the first location of e, if any.
func (e Entry) Provenance() (Location, bool) {
	if len(e.Locations) == 0 {
		return Location{}, false
	}

	return e.Locations[0], true
}

func (e Entry) clone() Entry {
	e.Locations = slices.Clone(e.Locations)
	e.NumerusForms = slices.Clone(e.NumerusForms)

	return e
}
