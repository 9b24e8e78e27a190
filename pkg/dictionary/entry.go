package dictionary

import (
	"slices"
	"strings"
)

// Category groups entries by where they come from.
type Category string

// Entry categories.
const (
	CategoryHTML  Category = "html"
	CategoryEvent Category = "event"
	CategorySVG   Category = "svg"
	CategoryARIA  Category = "aria"
)

// Entry is one recognized attribute. Entries are read-only; accessors that
// return slices return copies.
type Entry struct {
	name     string
	category Category
	tags     []string // sorted; empty means any tag
	aliases  []string
	dom      []string
	custom   []string
}

// Name returns the canonical spelling.
func (e Entry) Name() string { return e.name }

// Category returns the entry's category.
func (e Entry) Category() Category { return e.category }

// Restricted reports whether the entry is limited to specific tags.
func (e Entry) Restricted() bool { return len(e.tags) > 0 }

// Tags returns the sorted allowed tags, or nil when any tag is allowed.
func (e Entry) Tags() []string { return slices.Clone(e.tags) }

// Aliases returns the spellings accepted on equal footing with Name.
func (e Entry) Aliases() []string { return slices.Clone(e.aliases) }

// DOMNames returns historical spellings that are renamed to Name.
func (e Entry) DOMNames() []string { return slices.Clone(e.dom) }

// CustomElementNames returns spellings accepted as-is on elements carrying
// the type marker.
func (e Entry) CustomElementNames() []string { return slices.Clone(e.custom) }

// AllowsTag reports whether the entry may be used on tag.
func (e Entry) AllowsTag(tag string) bool {
	if len(e.tags) == 0 {
		return true
	}
	_, found := slices.BinarySearch(e.tags, tag)
	return found
}

// Accepts reports whether raw is the canonical spelling or a registered alias.
func (e Entry) Accepts(raw string) bool {
	return raw == e.name || slices.Contains(e.aliases, raw)
}

// AcceptsOnCustomElement reports whether raw is accepted as-is on a
// customized built-in element.
func (e Entry) AcceptsOnCustomElement(raw string) bool {
	return slices.Contains(e.custom, raw)
}

// AllowedTagList renders the tag restriction for messages: sorted and
// comma-joined.
func (e Entry) AllowedTagList() string {
	return strings.Join(e.tags, ", ")
}

// spellings returns every spelling that indexes this entry.
func (e Entry) spellings() []string {
	out := make([]string, 0, 1+len(e.aliases)+len(e.dom)+len(e.custom))
	out = append(out, e.name)
	out = append(out, e.aliases...)
	out = append(out, e.dom...)
	out = append(out, e.custom...)
	return out
}
