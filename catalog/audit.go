// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

// Counts tallies entries by status.
type Counts struct {
	Total      int `yaml:"total"`
	Final      int `yaml:"final"`
	Unfinished int `yaml:"unfinished"`
	Obsolete   int `yaml:"obsolete"`
	Vanished   int `yaml:"vanished"`
	// Empty counts final and unfinished entries without a translation.
	Empty int `yaml:"empty"`
}

func (n *Counts) add(e Entry) {
	n.Total++

	switch e.Status {
	case StatusFinal:
		n.Final++
	case StatusUnfinished:
		n.Unfinished++
	case StatusObsolete:
		n.Obsolete++
	case StatusVanished:
		n.Vanished++
	}

	if e.Status.Usable() && e.Translation == "" {
		n.Empty++
	}
}

// ContextReport is the per-context part of a [Report].
type ContextReport struct {
	Name   string `yaml:"name"`
	Counts `yaml:",inline"`
}

// Report summarises the freshness of a catalogue.
type Report struct {
	Language   string `yaml:"language"`
	Counts     `yaml:",inline"`
	Duplicates []Duplicate     `yaml:"duplicates,omitempty"`
	Contexts   []ContextReport `yaml:"contexts"`
}

// Stale reports whether the catalogue still carries obsolete or vanished entries.
func (r Report) Stale() bool {
	return r.Obsolete+r.Vanished > 0
}

// Clean reports whether every entry is final and translated, and no key is duplicated.
func (r Report) Clean() bool {
	return r.Final == r.Total && r.Empty == 0 && len(r.Duplicates) == 0
}

// Audit computes the freshness report of c.
func Audit(c *Catalog) Report {
	r := Report{
		Language:   c.Language(),
		Duplicates: c.Duplicates(),
	}

	byContext := make(map[string]int)

	for _, e := range c.Entries() {
		r.add(e)

		i, ok := byContext[e.Context]
		if !ok {
			i = len(r.Contexts)
			byContext[e.Context] = i
			r.Contexts = append(r.Contexts, ContextReport{Name: e.Context})
		}

		r.Contexts[i].add(e)
	}

	return r
}
