// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import "encoding/xml"

// XML shapes of the TS format. Pointer fields distinguish a missing element
// from an empty one when decoding.

type tsDocument struct {
	XMLName        xml.Name    `xml:"TS"`
	Version        string      `xml:"version,attr,omitempty"`
	Language       string      `xml:"language,attr,omitempty"`
	SourceLanguage string      `xml:"sourcelanguage,attr,omitempty"`
	Contexts       []tsContext `xml:"context"`
}

type tsContext struct {
	Name     string      `xml:"name"`
	Messages []tsMessage `xml:"message"`
}

type tsMessage struct {
	Numerus           string         `xml:"numerus,attr,omitempty"`
	Locations         []tsLocation   `xml:"location"`
	Source            *string        `xml:"source"`
	OldSource         string         `xml:"oldsource,omitempty"`
	Comment           string         `xml:"comment,omitempty"`
	ExtraComment      string         `xml:"extracomment,omitempty"`
	TranslatorComment string         `xml:"translatorcomment,omitempty"`
	Translation       *tsTranslation `xml:"translation"`
}

type tsLocation struct {
	Filename *string `xml:"filename,attr"`
	Line     string  `xml:"line,attr,omitempty"`
}

type tsTranslation struct {
	Type         string   `xml:"type,attr,omitempty"`
	Text         string   `xml:",chardata"`
	NumerusForms []string `xml:"numerusform"`
}
