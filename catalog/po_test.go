// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/spacetrace/tscatalog/catalog"
)

func TestWritePO(t *testing.T) {
	t.Parallel()

	c, err := catalog.New(catalog.Meta{Language: "de"}, []catalog.Entry{
		{
			Context: "Dialog", Source: "Open", Translation: "Öffnen",
			Locations:         []catalog.Location{{File: "my dialog.py", Line: 3}},
			TranslatorComment: "check",
			Comment:           "menu",
		},
		{Context: "Dialog", Source: "Help", Translation: "Hilfe", Status: catalog.StatusUnfinished},
		{Context: "Dialog", Source: "Old", Translation: "Alt", Status: catalog.StatusObsolete},
		{Context: "Dialog", Source: "Open", Translation: "Aufmachen", Status: catalog.StatusObsolete},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, catalog.WritePO(&buf, c))

	want := `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"Language: de\n"

# check
#. menu
#: ` + "\u2068my dialog.py\u2069:3" + `
msgctxt "Dialog"
msgid "Open"
msgstr "Öffnen"

#, fuzzy
msgctxt "Dialog"
msgid "Help"
msgstr "Hilfe"

#~ msgctxt "Dialog"
#~ msgid "Old"
#~ msgstr "Alt"
`
	assert.Equal(t, want, buf.String())
}

func TestWritePONumerus(t *testing.T) {
	t.Parallel()

	c, err := catalog.New(catalog.Meta{}, []catalog.Entry{
		{Source: "%n file(s)", Translation: "%n Datei", NumerusForms: []string{"%n Datei", "%n Dateien"}},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, catalog.WritePO(&buf, c))

	assert.Contains(t, buf.String(), `msgid "%n file(s)"
msgid_plural "%n file(s)"
msgstr[0] "%n Datei"
msgstr[1] "%n Dateien"
`)
	assert.NotContains(t, buf.String(), "msgctxt")
}

func TestVerifyPOSample(t *testing.T) {
	t.Parallel()

	c := loadSample(t)

	var buf bytes.Buffer
	require.NoError(t, catalog.WritePO(&buf, c))

	po := buf.String()
	assert.Contains(t, po, "\"Language: ru_RU\\n\"\n")
	assert.Contains(t, po, "msgctxt \"SpaceTracePlugin\"\nmsgid \"Success\"\nmsgstr \"Успешно\"\n")
	assert.Contains(t, po, "#, fuzzy\nmsgctxt \"SpaceTracePluginDialogBase\"\nmsgid \"Help\"\n")
	assert.Contains(t, po, "#~ msgctxt \"SpaceTracePlugin\"\n#~ msgid \"Error\"\n#~ msgstr \"Ошибка\"\n")

	require.NoError(t, catalog.VerifyPO(buf.Bytes(), c))

	tampered := strings.Replace(po, `msgstr "Успешно"`, `msgstr "Ура"`, 1)
	err := catalog.VerifyPO([]byte(tampered), c)
	require.ErrorIs(t, err, catalog.ErrPOMismatch)
	assert.Contains(t, err.Error(), `source "Success"`)
}

func TestVerifyPONil(t *testing.T) {
	t.Parallel()

	assert.NoError(t, catalog.VerifyPO([]byte("garbage"), nil))
}

func TestWritePOEscapes(t *testing.T) {
	t.Parallel()

	c, err := catalog.New(catalog.Meta{Language: "ru"}, []catalog.Entry{
		{Context: "Units", Source: "100 km", Translation: "100\u00a0км"},
		{Context: "Units", Source: "Say \"hi\"\n\tnow\\", Translation: "Скажи \"привет\"\n\tсейчас\\"},
		{Context: "Units", Source: "bell\a", Translation: "звонок\x01", Status: catalog.StatusUnfinished},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, catalog.WritePO(&buf, c))

	po := buf.String()
	assert.Contains(t, po, "msgstr \"100\u00a0км\"\n", "no-break space is written raw")
	assert.NotContains(t, po, `\u00a0`)
	assert.Contains(t, po, `msgid "Say \"hi\"\n\tnow\\"`)
	assert.Contains(t, po, `msgid "bell\007"`)
	assert.Contains(t, po, `msgstr "звонок\001"`)

	require.NoError(t, catalog.VerifyPO(buf.Bytes(), c))
}
