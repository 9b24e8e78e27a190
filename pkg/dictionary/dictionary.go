package dictionary

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrAmbiguousKey is returned when two different entries share a normalized key.
var ErrAmbiguousKey = errors.New("ambiguous normalized key")

// Dictionary is an immutable lookup table from normalized key to Entry.
type Dictionary struct {
	version string
	byKey   map[string]*Entry
	entries []*Entry // sorted by name
}

// Build validates tables and builds a Dictionary from them.
//
// Entries listed more than once under the same canonical name are merged.
// Two different canonical names whose spellings normalize to the same key are
// rejected with ErrAmbiguousKey.
func Build(tables Tables) (*Dictionary, error) {
	byName := make(map[string]*Entry)
	var order []string

	add := func(es EntryDef, fallback Category) error {
		if es.Name == "" {
			return errors.New("entry without name")
		}
		cat := Category(es.Category)
		if cat == "" {
			cat = fallback
		}
		e, ok := byName[es.Name]
		if !ok {
			e = &Entry{name: es.Name, category: cat}
			byName[es.Name] = e
			order = append(order, es.Name)
		}
		if len(es.Tags) > 0 && len(e.tags) > 0 && !sameSet(e.tags, es.Tags) {
			return fmt.Errorf("entry %q: conflicting tag restrictions", es.Name)
		}
		if len(es.Tags) > 0 {
			e.tags = sortedUnique(es.Tags)
		}
		e.aliases = sortedUnique(append(e.aliases, es.Aliases...))
		e.dom = sortedUnique(append(e.dom, es.DOM...))
		e.custom = sortedUnique(append(e.custom, es.Custom...))
		return nil
	}

	lists := []struct {
		names []string
		cat   Category
	}{
		{tables.HTML, CategoryHTML},
		{tables.Events, CategoryEvent},
		{tables.SVG, CategorySVG},
		{tables.ARIA, CategoryARIA},
	}
	for _, l := range lists {
		for _, name := range l.names {
			if err := add(EntryDef{Name: name}, l.cat); err != nil {
				return nil, err
			}
		}
	}
	for _, es := range tables.Attributes {
		if err := add(es, CategoryHTML); err != nil {
			return nil, err
		}
	}

	d := &Dictionary{
		version: tables.Version,
		byKey:   make(map[string]*Entry, len(order)),
		entries: make([]*Entry, 0, len(order)),
	}
	for _, name := range order {
		e := byName[name]
		for _, s := range e.spellings() {
			key := Normalize(s)
			if prev, ok := d.byKey[key]; ok && prev != e {
				return nil, fmt.Errorf("%w: %q (%s) and %q (%s)", ErrAmbiguousKey, key, prev.name, s, e.name)
			}
			d.byKey[key] = e
		}
		d.entries = append(d.entries, e)
	}
	sort.Slice(d.entries, func(i, j int) bool {
		return d.entries[i].name < d.entries[j].name
	})
	return d, nil
}

// Version identifies the table contents.
func (d *Dictionary) Version() string {
	return d.version
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Lookup returns the entry for a normalized key.
func (d *Dictionary) Lookup(key string) (Entry, bool) {
	e, ok := d.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// LookupName normalizes raw and looks it up.
func (d *Dictionary) LookupName(raw string) (Entry, bool) {
	return d.Lookup(Normalize(raw))
}

// Entries returns all entries sorted by canonical name.
func (d *Dictionary) Entries() []Entry {
	out := make([]Entry, len(d.entries))
	for i, e := range d.entries {
		out[i] = *e
	}
	return out
}

func sortedUnique(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}

func sameSet(a, b []string) bool {
	return slices.Equal(sortedUnique(a), sortedUnique(b))
}
