// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Parse errors wrapped by [ParseError].
var (
	ErrNotTS           = errors.New("not a TS document")
	ErrInvalidLocation = errors.New("invalid location")
)

// ParseError reports a malformed TS document.
type ParseError struct {
	// Line is the 1-based line of the offending element, or 0 if unknown.
	Line int
	// Context is the name of the enclosing context, if known.
	Context string
	Msg     string
	Err     error
}

func (e *ParseError) Error() string {
	var b strings.Builder

	b.WriteString("catalog: ")

	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}

	if e.Context != "" {
		fmt.Fprintf(&b, "context %q: ", e.Context)
	}

	b.WriteString(e.Msg)

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads a TS document from r and builds a catalogue from it.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Parse(data)
}

// Parse builds a catalogue from a TS document held in memory.
//
// It returns a [*ParseError] if the document is not well-formed, has a root
// element other than <TS>, or contains a context without <name>, a message
// without <source> or <translation>, an invalid <location>, or an unknown
// translation type.
func Parse(data []byte) (*Catalog, error) {
	p := &parser{
		dec:      xml.NewDecoder(bytes.NewReader(stripBOM(data))),
		lastLine: make(map[string]int),
	}

	return p.parse()
}

// LoadFS opens name in fsys and loads it. Names ending in ".zst" are
// decompressed with zstd first.
func LoadFS(fsys fs.FS, name string) (*Catalog, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	var r io.Reader = f

	if strings.HasSuffix(name, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream %s: %w", name, err)
		}
		defer dec.Close()

		r = dec
	}

	c, err := Load(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	return c, nil
}

// LoadFile loads the catalogue stored at path. See [LoadFS].
func LoadFile(path string) (*Catalog, error) {
	return LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

type parser struct {
	dec     *xml.Decoder
	meta    Meta
	entries []Entry

	// context is the name of the context being parsed.
	context string

	// lastFile and lastLine resolve relative locations (line="+3") and
	// locations that omit the filename.
	lastFile string
	lastLine map[string]int
}

func (p *parser) parse() (*Catalog, error) {
	root, err := p.root()
	if err != nil {
		return nil, err
	}

	for _, a := range root.Attr {
		switch a.Name.Local {
		case "version":
			p.meta.Version = a.Value
		case "language":
			p.meta.Language = a.Value
		case "sourcelanguage":
			p.meta.SourceLanguage = a.Value
		}
	}

	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "message" {
				return nil, p.fail(p.line(), "message outside <context>", nil)
			}

			if t.Name.Local != "context" {
				if err := p.dec.Skip(); err != nil {
					return nil, p.syntax(err)
				}

				continue
			}

			if err := p.parseContext(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			// </TS>
			if err := p.trailer(); err != nil {
				return nil, err
			}

			return New(p.meta, p.entries)
		}
	}
}

// root skips the prolog and returns the root element.
func (p *parser) root() (xml.StartElement, error) {
	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, p.fail(p.line(), "empty document", ErrNotTS)
		}

		if err != nil {
			return xml.StartElement{}, p.syntax(err)
		}

		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "TS" {
				return se, p.fail(p.line(), fmt.Sprintf("unexpected root element <%s>", se.Name.Local), ErrNotTS)
			}

			return se, nil
		}
	}
}

// trailer makes sure nothing but whitespace, comments and processing
// instructions follow the root element.
func (p *parser) trailer() error {
	for {
		tok, err := p.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return p.syntax(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return p.fail(p.line(), fmt.Sprintf("element <%s> after root element", t.Name.Local), nil)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return p.fail(p.line(), "text after root element", nil)
			}
		}
	}
}

func (p *parser) parseContext() error {
	start := p.line()
	first := len(p.entries)
	named := false

	p.context = ""

	for {
		tok, err := p.token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "name":
				var name string
				if err := p.dec.DecodeElement(&name, &t); err != nil {
					return p.syntax(err)
				}

				p.context = name
				named = true
			case "message":
				e, err := p.parseMessage(t)
				if err != nil {
					return err
				}

				p.entries = append(p.entries, e)
			default:
				if err := p.dec.Skip(); err != nil {
					return p.syntax(err)
				}
			}
		case xml.EndElement:
			if !named {
				return p.fail(start, "context without <name>", nil)
			}

			for i := first; i < len(p.entries); i++ {
				p.entries[i].Context = p.context
			}

			p.context = ""

			return nil
		}
	}
}

func (p *parser) parseMessage(start xml.StartElement) (Entry, error) {
	line := p.line()

	var m tsMessage
	if err := p.dec.DecodeElement(&m, &start); err != nil {
		return Entry{}, p.syntax(err)
	}

	if m.Source == nil {
		return Entry{}, p.fail(line, "message without <source>", nil)
	}

	if m.Translation == nil {
		return Entry{}, p.fail(line, fmt.Sprintf("message %q without <translation>", *m.Source), nil)
	}

	status, err := statusFromType(m.Translation.Type)
	if err != nil {
		return Entry{}, p.fail(line, fmt.Sprintf("message %q", *m.Source), err)
	}

	e := Entry{
		Source:            *m.Source,
		Translation:       m.Translation.Text,
		Status:            status,
		OldSource:         m.OldSource,
		Comment:           m.Comment,
		ExtraComment:      m.ExtraComment,
		TranslatorComment: m.TranslatorComment,
	}

	if m.Numerus == "yes" {
		e.NumerusForms = m.Translation.NumerusForms
		e.Translation = ""

		if len(e.NumerusForms) > 0 {
			e.Translation = e.NumerusForms[0]
		}
	}

	for _, l := range m.Locations {
		loc, err := p.location(l)
		if err != nil {
			return Entry{}, p.fail(line, fmt.Sprintf("message %q", *m.Source), err)
		}

		e.Locations = append(e.Locations, loc)
	}

	return e, nil
}

// location resolves l to an absolute location.
func (p *parser) location(l tsLocation) (Location, error) {
	file := p.lastFile
	if l.Filename != nil {
		file = *l.Filename
	}

	if file == "" {
		return Location{}, fmt.Errorf("%w: missing filename", ErrInvalidLocation)
	}

	loc := Location{File: file}

	if l.Line != "" {
		n, err := strconv.Atoi(l.Line)
		if err != nil {
			return Location{}, fmt.Errorf("%w: line %q", ErrInvalidLocation, l.Line)
		}

		if l.Line[0] == '+' || l.Line[0] == '-' {
			n += p.lastLine[file]
		}

		if n < 0 {
			return Location{}, fmt.Errorf("%w: line %q resolves to %d", ErrInvalidLocation, l.Line, n)
		}

		loc.Line = n
	}

	p.lastFile = file
	p.lastLine[file] = loc.Line

	return loc, nil
}

func (p *parser) token() (xml.Token, error) {
	tok, err := p.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, p.fail(p.line(), "unexpected end of document", io.ErrUnexpectedEOF)
	}

	if err != nil {
		return nil, p.syntax(err)
	}

	return tok, nil
}

func (p *parser) line() int {
	line, _ := p.dec.InputPos()

	return line
}

func (p *parser) fail(line int, msg string, err error) *ParseError {
	return &ParseError{Line: line, Context: p.context, Msg: msg, Err: err}
}

func (p *parser) syntax(err error) *ParseError {
	pe := p.fail(p.line(), "malformed XML", err)

	var se *xml.SyntaxError
	if errors.As(err, &se) {
		pe.Line = se.Line
	}

	return pe
}

// statusFromType maps the TS translation type attribute to a Status.
func statusFromType(typ string) (Status, error) {
	switch typ {
	case "":
		return StatusFinal, nil
	case string(StatusUnfinished), string(StatusObsolete), string(StatusVanished):
		return Status(typ), nil
	default:
		return "", fmt.Errorf("%w: type %q", ErrInvalidStatus, typ)
	}
}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}
