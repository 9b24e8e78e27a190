package dictionary

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed data/attributes.yaml
var builtinYAML []byte

// builtin is decoded once at package initialization.
var builtin = mustParse(builtinYAML)

// Tables is the serialized form of a dictionary.
type Tables struct {
	Version    string     `yaml:"version"`
	HTML       []string   `yaml:"html"`
	Events     []string   `yaml:"events"`
	SVG        []string   `yaml:"svg"`
	ARIA       []string   `yaml:"aria"`
	Attributes []EntryDef `yaml:"attributes"`
}

// EntryDef describes one entry with extra data.
type EntryDef struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Aliases  []string `yaml:"aliases,omitempty"`
	DOM      []string `yaml:"dom,omitempty"`
	Custom   []string `yaml:"custom,omitempty"`
}

// Default returns the built-in dictionary.
func Default() *Dictionary {
	return builtin
}

// Load decodes a YAML dictionary document and builds it.
func Load(r io.Reader) (*Dictionary, error) {
	var tables Tables
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tables); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}
	return Build(tables)
}

// Parse is Load over a byte slice.
func Parse(data []byte) (*Dictionary, error) {
	return Load(bytes.NewReader(data))
}

func mustParse(data []byte) *Dictionary {
	d, err := Parse(data)
	if err != nil {
		panic(fmt.Sprintf("dictionary: built-in table is invalid: %v", err))
	}
	return d
}
