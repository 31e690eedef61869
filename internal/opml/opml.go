// Package opml reads and writes OPML subscription lists.
package opml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

type Document struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    Head     `xml:"head"`
	Body    Body     `xml:"body"`
}

type Head struct {
	Title        string `xml:"title,omitempty"`
	DateCreated  string `xml:"dateCreated,omitempty"`
	DateModified string `xml:"dateModified,omitempty"`
}

type Body struct {
	Outlines []Outline `xml:"outline"`
}

// Outline is either a folder (children, no xmlUrl) or a feed.
type Outline struct {
	Text     string    `xml:"text,attr"`
	Title    string    `xml:"title,attr,omitempty"`
	Type     string    `xml:"type,attr,omitempty"`
	XMLURL   string    `xml:"xmlUrl,attr,omitempty"`
	HTMLURL  string    `xml:"htmlUrl,attr,omitempty"`
	Outlines []Outline `xml:"outline,omitempty"`
}

// IsFeed reports whether the outline points at a feed.
func (o Outline) IsFeed() bool {
	if strings.TrimSpace(o.XMLURL) != "" {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(o.Type)) {
	case "rss", "atom", "feed":
		return true
	}
	return false
}

// DisplayName prefers the title attribute and falls back to text.
func (o Outline) DisplayName() string {
	if name := strings.TrimSpace(o.Title); name != "" {
		return name
	}
	return strings.TrimSpace(o.Text)
}

func Parse(r io.Reader) (Document, error) {
	var doc Document
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		// Declared charsets are ignored; input is read as UTF-8.
		return input, nil
	}
	if err := decoder.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode opml: %w", err)
	}
	return doc, nil
}

func Encode(doc Document) ([]byte, error) {
	if doc.Version == "" {
		doc.Version = "2.0"
	}
	output, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode opml: %w", err)
	}
	return append([]byte(xml.Header), output...), nil
}
