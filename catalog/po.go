// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// ErrPOMismatch is returned by [VerifyPO] when a PO document does not
// resolve a final entry to its translation.
var ErrPOMismatch = errors.New("PO document does not match catalog")

// WritePO exports c as a GNU gettext PO document.
//
// Contexts become msgctxt, locations become "#:" references and unfinished
// entries are flagged fuzzy. Only the entry that wins lookups is written for
// a repeated key. Keys that only have obsolete or vanished entries are
// written as "#~" comments.
func WritePO(w io.Writer, c *Catalog) error {
	if c == nil {
		c = &Catalog{}
	}

	var b strings.Builder

	writePOHeader(&b, c.meta)

	for i, e := range c.entries {
		k := e.Key()

		if j, ok := c.usable[k]; ok {
			if j != i {
				continue
			}

			b.WriteString("\n")
			writePOEntry(&b, e, "")

			continue
		}

		if c.last[k] == i {
			b.WriteString("\n")
			writePOEntry(&b, e, "#~ ")
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write PO document: %w", err)
	}

	return nil
}

func writePOHeader(b *strings.Builder, meta Meta) {
	b.WriteString("msgid \"\"\n")
	b.WriteString("msgstr \"\"\n")
	b.WriteString(poQuote("Content-Type: text/plain; charset=UTF-8\n") + "\n")
	b.WriteString(poQuote("Content-Transfer-Encoding: 8bit\n") + "\n")

	if meta.Language != "" {
		b.WriteString(poQuote("Language: "+meta.Language+"\n") + "\n")
	}

	if meta.SourceLanguage != "" {
		b.WriteString(poQuote("X-Source-Language: "+meta.SourceLanguage+"\n") + "\n")
	}
}

func writePOEntry(b *strings.Builder, e Entry, prefix string) {
	writePOComment(b, "# ", e.TranslatorComment)
	writePOComment(b, "#. ", e.Comment)
	writePOComment(b, "#. ", e.ExtraComment)

	if len(e.Locations) > 0 {
		b.WriteString("#:")

		for _, l := range e.Locations {
			b.WriteString(" ")
			b.WriteString(poReference(l))
		}

		b.WriteString("\n")
	}

	if e.Status == StatusUnfinished {
		b.WriteString("#, fuzzy\n")
	}

	if e.Context != "" {
		fmt.Fprintf(b, "%smsgctxt %s\n", prefix, poQuote(e.Context))
	}

	fmt.Fprintf(b, "%smsgid %s\n", prefix, poQuote(e.Source))

	if len(e.NumerusForms) > 0 {
		fmt.Fprintf(b, "%smsgid_plural %s\n", prefix, poQuote(e.Source))

		for n, form := range e.NumerusForms {
			fmt.Fprintf(b, "%smsgstr[%d] %s\n", prefix, n, poQuote(form))
		}

		return
	}

	fmt.Fprintf(b, "%smsgstr %s\n", prefix, poQuote(e.Translation))
}

// poQuote quotes s as a PO string literal. Only the escapes understood by
// GNU gettext are used; other control bytes are written in octal and every
// other byte is copied as is.
func poQuote(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('"')

	for i := range len(s) {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}

	b.WriteByte('"')

	return b.String()
}

// poReference formats l for a "#:" line. File names containing spaces are
// wrapped in Unicode isolates, as GNU gettext does.
func poReference(l Location) string {
	if strings.ContainsAny(l.File, " \t") {
		l.File = "\u2068" + l.File + "\u2069"
	}

	return l.String()
}

func writePOComment(b *strings.Builder, prefix, text string) {
	if text == "" {
		return
	}

	for _, line := range strings.Split(text, "\n") {
		b.WriteString(strings.TrimRight(prefix+line, " "))
		b.WriteString("\n")
	}
}

// VerifyPO parses data with gotext and checks that every final, translated,
// non-numerus entry of c resolves to the same translation.
func VerifyPO(data []byte, c *Catalog) error {
	if c == nil {
		return nil
	}

	po := gotext.NewPo()
	po.Parse(data)

	for i, e := range c.entries {
		k := e.Key()
		if c.usable[k] != i || e.Status != StatusFinal || e.Translation == "" || len(e.NumerusForms) > 0 {
			continue
		}

		if got := po.GetC(e.Source, e.Context); got != e.Translation {
			return fmt.Errorf("%w: context %q, source %q: got %q, want %q",
				ErrPOMismatch, e.Context, e.Source, got, e.Translation)
		}
	}

	return nil
}
