// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/spacetrace/tscatalog/catalog"
)

func TestAuditSample(t *testing.T) {
	t.Parallel()

	r := catalog.Audit(loadSample(t))

	assert.Equal(t, "ru_RU", r.Language)
	assert.Equal(t, catalog.Counts{Total: 39, Final: 32, Unfinished: 1, Obsolete: 6}, r.Counts)
	assert.Equal(t, []catalog.ContextReport{
		{Name: pluginContext, Counts: catalog.Counts{Total: 14, Final: 9, Obsolete: 5}},
		{Name: dialogContext, Counts: catalog.Counts{Total: 25, Final: 23, Unfinished: 1, Obsolete: 1}},
	}, r.Contexts)
	assert.Empty(t, r.Duplicates)
	assert.True(t, r.Stale())
	assert.False(t, r.Clean())
}

func TestAuditClean(t *testing.T) {
	t.Parallel()

	c, err := catalog.New(catalog.Meta{Language: "de"}, []catalog.Entry{
		{Context: "A", Source: "Yes", Translation: "Ja"},
		{Context: "A", Source: "No", Translation: "Nein"},
	})
	require.NoError(t, err)

	r := catalog.Audit(c)
	assert.True(t, r.Clean())
	assert.False(t, r.Stale())
}

func TestAuditEmptyAndDuplicates(t *testing.T) {
	t.Parallel()

	c, err := catalog.New(catalog.Meta{}, []catalog.Entry{
		{Context: "A", Source: "Yes", Translation: "Ja"},
		{Context: "A", Source: "Yes", Translation: "Jawohl"},
		{Context: "A", Source: "Later", Status: catalog.StatusUnfinished},
		{Context: "A", Source: "Old", Translation: "Alt", Status: catalog.StatusVanished},
	})
	require.NoError(t, err)

	r := catalog.Audit(c)
	assert.Equal(t, catalog.Counts{Total: 4, Final: 2, Unfinished: 1, Vanished: 1, Empty: 1}, r.Counts)
	require.Len(t, r.Duplicates, 1)
	assert.Equal(t, "Yes", r.Duplicates[0].Source)
	assert.True(t, r.Stale())
	assert.False(t, r.Clean())
}

func TestAuditNil(t *testing.T) {
	t.Parallel()

	r := catalog.Audit(nil)
	assert.Zero(t, r.Total)
	assert.Empty(t, r.Contexts)
	assert.True(t, r.Clean())
}
