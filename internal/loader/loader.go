// Package loader decodes host element documents into markup elements.
//
// A document lists element openings extracted by a host parser. YAML and JSON
// documents share the same field names:
//
//	file: src/App.jsx
//	elements:
//	  - tag: div
//	    attributes:
//	      - name: class
//	        span: {start: {line: 1, column: 6, offset: 5}, end: {line: 1, column: 11, offset: 10}}
//	      - spread: true
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/propcheck/pkg/markup"
	"github.com/leapstack-labs/propcheck/pkg/token"
)

// ErrUnsupportedFormat is returned for a file extension the loader cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format identifies the document encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Document is a decoded host document.
type Document struct {
	// Path is the document's own location, empty when decoded from memory.
	Path string
	// File is the source the spans refer to, relative to the document.
	File     string
	Elements []markup.Element
}

// SourcePath resolves File against the document location.
func (d *Document) SourcePath() string {
	if d.File == "" || filepath.IsAbs(d.File) || d.Path == "" {
		return d.File
	}
	return filepath.Join(filepath.Dir(d.Path), d.File)
}

// documentYAML is the wire form shared by YAML and JSON.
type documentYAML struct {
	File     string        `yaml:"file" json:"file"`
	Elements []elementYAML `yaml:"elements" json:"elements"`
}

type elementYAML struct {
	Tag        string          `yaml:"tag" json:"tag"`
	Component  bool            `yaml:"component" json:"component"`
	Pos        *token.Position `yaml:"pos" json:"pos"`
	Attributes []attributeYAML `yaml:"attributes" json:"attributes"`
}

type attributeYAML struct {
	Name   string      `yaml:"name" json:"name"`
	Value  string      `yaml:"value" json:"value"`
	Spread bool        `yaml:"spread" json:"spread"`
	Span   *token.Span `yaml:"span" json:"span"`
}

// LoadFile reads and decodes the document at path.
func LoadFile(path string) (*Document, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Decode parses a document. Unknown fields are rejected.
func Decode(data []byte, format Format) (*Document, error) {
	var raw documentYAML
	switch format {
	case FormatYAML:
		if err := decodeYAML(bytes.NewReader(data), &raw); err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, &ParseError{Message: fmt.Sprintf("invalid JSON: %v", err)}
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}
	return raw.toDocument()
}

func decodeYAML(r io.Reader, out *documentYAML) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (d documentYAML) toDocument() (*Document, error) {
	doc := &Document{File: d.File, Elements: make([]markup.Element, 0, len(d.Elements))}
	for i, e := range d.Elements {
		el := markup.Element{Tag: e.Tag, Component: e.Component}
		if e.Pos != nil {
			el.Pos = *e.Pos
		}
		if el.Tag == "" && !el.Component {
			return nil, fmt.Errorf("element %d: %w", i, markup.ErrMissingTag)
		}
		for j, a := range e.Attributes {
			attr, err := a.toAttribute()
			if err != nil {
				return nil, fmt.Errorf("element %d attribute %d: %w", i, j, err)
			}
			el.Attributes = append(el.Attributes, attr)
		}
		doc.Elements = append(doc.Elements, el)
	}
	return doc, nil
}

func (a attributeYAML) toAttribute() (markup.Attribute, error) {
	if a.Spread {
		if a.Name != "" {
			return markup.Attribute{}, &ParseError{Message: fmt.Sprintf("spread attribute cannot have a name (%q)", a.Name)}
		}
		return markup.Spread(), nil
	}
	if a.Name == "" {
		return markup.Attribute{}, markup.ErrMissingName
	}
	attr := markup.Named(a.Name)
	attr.Value = a.Value
	if a.Span != nil {
		attr.Span = *a.Span
	}
	return attr, nil
}

// ParseError reports a document that could not be decoded.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}
