// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

// UpdateStats summarises the changes made by [Update].
type UpdateStats struct {
	Added     int `yaml:"added"`
	Kept      int `yaml:"kept"`
	Revived   int `yaml:"revived"`
	Obsoleted int `yaml:"obsoleted"`
}

// Update merges freshly scanned messages into an existing catalogue the way
// lupdate does, and returns the new catalogue.
//
// Scanned entries only need Context, Source and Locations; comments are
// taken over when set. For each key:
//   - present in both: the translation and status are kept and the
//     locations replaced. Obsolete or vanished entries become unfinished.
//   - only in old: final and unfinished entries become obsolete.
//   - only scanned: added as unfinished with an empty translation.
//
// Repeated keys in old collapse into the entry that wins lookups. Empty
// fields of meta are taken from old. old may be nil.
func Update(old *Catalog, meta Meta, scanned []Entry) (*Catalog, UpdateStats, error) {
	var stats UpdateStats

	oldMeta := old.Meta()
	if meta.Version == "" {
		meta.Version = oldMeta.Version
	}

	if meta.Language == "" {
		meta.Language = oldMeta.Language
	}

	if meta.SourceLanguage == "" {
		meta.SourceLanguage = oldMeta.SourceLanguage
	}

	// Collapse repeated scanned keys, keeping first-seen order.
	found := make(map[Key]*Entry, len(scanned))
	order := make([]Key, 0, len(scanned))

	for _, s := range scanned {
		k := s.Key()
		if f, ok := found[k]; ok {
			f.Locations = append(f.Locations, s.Locations...)

			continue
		}

		s = s.clone()
		found[k] = &s
		order = append(order, k)
	}

	out := make([]Entry, 0, old.Len()+len(scanned))
	emitted := make(map[Key]bool)

	for _, e := range old.Entries() {
		k := e.Key()

		f, ok := found[k]
		if !ok {
			if e.Status.Usable() {
				e.Status = StatusObsolete
				stats.Obsoleted++
			}

			out = append(out, e)

			continue
		}

		if emitted[k] {
			continue
		}

		emitted[k] = true

		winner, _ := old.Entry(k.Context, k.Source)
		winner.Locations = f.Locations

		if f.Comment != "" {
			winner.Comment = f.Comment
		}

		if f.ExtraComment != "" {
			winner.ExtraComment = f.ExtraComment
		}

		if winner.Status.Stale() {
			winner.Status = StatusUnfinished
			stats.Revived++
		} else {
			stats.Kept++
		}

		out = append(out, winner)
	}

	for _, k := range order {
		if emitted[k] {
			continue
		}

		f := found[k]
		f.Translation = ""
		f.Status = StatusUnfinished
		f.NumerusForms = nil

		out = append(out, *f)
		stats.Added++
	}

	c, err := New(meta, out)
	if err != nil {
		return nil, UpdateStats{}, err
	}

	return c, stats, nil
}
