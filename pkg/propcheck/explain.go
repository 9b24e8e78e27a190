package propcheck

import (
	"github.com/leapstack-labs/propcheck/pkg/dictionary"
	"github.com/leapstack-labs/propcheck/pkg/markup"
)

// Explanation describes how a single attribute name resolves on a tag.
type Explanation struct {
	Name        string   `json:"name"`
	Tag         string   `json:"tag"`
	Key         string   `json:"key"`
	Intrinsic   bool     `json:"intrinsic"`
	Found       bool     `json:"found"`
	Canonical   string   `json:"canonical,omitempty"`
	Category    string   `json:"category,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
	DOMNames    []string `json:"dom_names,omitempty"`
	AllowedTags []string `json:"allowed_tags,omitempty"`
	Verdict     string   `json:"verdict"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

// Explain evaluates name on a synthetic <tag> element and reports the
// dictionary entry it resolves to. typeMarker adds the `is` attribute.
func (e *Engine) Explain(tag, name string, typeMarker bool) (Explanation, error) {
	attrs := []markup.Attribute{markup.Named(name)}
	if typeMarker && name != markup.TypeMarker {
		attrs = append(attrs, markup.Named(markup.TypeMarker))
	}
	ctx, err := markup.Classify(markup.NewElement(tag, attrs...))
	if err != nil {
		return Explanation{}, err
	}
	v, err := e.Evaluate(ctx, attrs[0])
	if err != nil {
		return Explanation{}, err
	}

	x := Explanation{
		Name:      name,
		Tag:       tag,
		Key:       dictionary.Normalize(name),
		Intrinsic: !ctx.IsComponent,
		Verdict:   v.Kind.String(),
	}
	if v.Kind == KindUnknownWithSuggestion {
		x.Suggestion = v.Canonical
	}
	if entry, ok := e.dict.Lookup(x.Key); ok {
		x.Found = true
		x.Canonical = entry.Name()
		x.Category = string(entry.Category())
		x.Aliases = entry.Aliases()
		x.DOMNames = entry.DOMNames()
		x.AllowedTags = entry.Tags()
	}
	return x, nil
}
