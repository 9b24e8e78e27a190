// Package markup models the elements a host parser hands to the checker and
// decides which of them are subject to attribute validation.
//
// An Element is one element opening as seen by the host: its tag identity and
// its ordered attribute occurrences. Elements are built fresh per visit and are
// never retained by the checker.
package markup

import (
	"errors"

	"github.com/leapstack-labs/propcheck/pkg/token"
)

// ErrMissingTag is returned when an element has neither a tag name nor the
// component marker.
var ErrMissingTag = errors.New("element has no tag name")

// ErrMissingName is returned when a named attribute occurrence has no name.
var ErrMissingName = errors.New("attribute has no name")

// AttributeKind distinguishes named attributes from spread occurrences.
type AttributeKind int

const (
	// KindNamed is a `name=value` or bare `name` attribute.
	KindNamed AttributeKind = iota
	// KindSpread is a `{...props}` occurrence whose keys are not statically known.
	KindSpread
)

// String returns the kind name.
func (k AttributeKind) String() string {
	if k == KindSpread {
		return "spread"
	}
	return "named"
}

// Attribute is one attribute occurrence on an element.
type Attribute struct {
	Kind  AttributeKind
	Name  string     // raw name as written; empty for spreads
	Value string     // opaque value placeholder, never inspected
	Span  token.Span // range of the name token
}

// Named returns a named attribute occurrence.
func Named(name string) Attribute {
	return Attribute{Kind: KindNamed, Name: name}
}

// NamedAt returns a named attribute occurrence with its name token range.
func NamedAt(name string, span token.Span) Attribute {
	return Attribute{Kind: KindNamed, Name: name, Span: span}
}

// Spread returns a spread occurrence.
func Spread() Attribute {
	return Attribute{Kind: KindSpread}
}

// IsSpread reports whether the occurrence is a spread.
func (a Attribute) IsSpread() bool {
	return a.Kind == KindSpread
}

// Element is a single element opening.
type Element struct {
	// Tag is the element name as written (`div`, `Foo`, `Foo.Bar`, `my-widget`).
	Tag string
	// Component is set by hosts that already know the element is not intrinsic,
	// for example when the tag is an expression rather than a name.
	Component  bool
	Attributes []Attribute
	Pos        token.Position
}

// NewElement builds an element from a tag and attribute occurrences.
func NewElement(tag string, attrs ...Attribute) Element {
	return Element{Tag: tag, Attributes: attrs}
}
