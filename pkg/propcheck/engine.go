package propcheck

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/propcheck/pkg/dictionary"
	"github.com/leapstack-labs/propcheck/pkg/markup"
)

var (
	// ErrMissingName is returned for a named attribute occurrence without a name.
	ErrMissingName = markup.ErrMissingName

	// ErrSpreadAttribute is returned when a spread occurrence is passed to
	// name-based validation.
	ErrSpreadAttribute = errors.New("spread attribute has no static name")
)

// Config is the per-run configuration supplied by the host.
type Config struct {
	// Ignore lists literal attribute names that are always accepted.
	Ignore []string `koanf:"ignore" json:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// Engine evaluates attributes against a dictionary.
type Engine struct {
	dict   *dictionary.Dictionary
	ignore map[string]struct{}
}

// New creates an engine. A nil dictionary selects dictionary.Default().
func New(dict *dictionary.Dictionary, cfg Config) *Engine {
	if dict == nil {
		dict = dictionary.Default()
	}
	ignore := make(map[string]struct{}, len(cfg.Ignore))
	for _, name := range cfg.Ignore {
		ignore[name] = struct{}{}
	}
	return &Engine{dict: dict, ignore: ignore}
}

// Dictionary returns the dictionary the engine consults.
func (e *Engine) Dictionary() *dictionary.Dictionary {
	return e.dict
}

// Evaluate returns the verdict for one attribute occurrence on an element
// classified as ctx. Attributes on components are always accepted.
func (e *Engine) Evaluate(ctx markup.Context, attr markup.Attribute) (Verdict, error) {
	if attr.IsSpread() {
		return Verdict{}, ErrSpreadAttribute
	}
	if attr.Name == "" {
		return Verdict{}, ErrMissingName
	}
	if ctx.IsComponent {
		return OK(), nil
	}
	return e.evaluateName(ctx, attr.Name), nil
}

func (e *Engine) evaluateName(ctx markup.Context, raw string) Verdict {
	if _, ok := e.ignore[raw]; ok {
		return OK()
	}
	if dictionary.IsDataAttribute(raw) {
		return OK()
	}
	// A malformed data- name is never renamed to another attribute.
	if dictionary.HasDataPrefix(raw) {
		return Unknown()
	}

	entry, ok := e.dict.Lookup(dictionary.Normalize(raw))
	if !ok {
		return Unknown()
	}
	// An aria- prefixed name only matches the enumerated ARIA set.
	if dictionary.HasARIAPrefix(raw) && entry.Category() != dictionary.CategoryARIA {
		return Unknown()
	}

	accepted := entry.Accepts(raw) || (ctx.HasTypeMarker && entry.AcceptsOnCustomElement(raw))
	if !accepted {
		return UnknownWithSuggestion(entry.Name())
	}

	if entry.AllowsTag(ctx.TagName) {
		return OK()
	}
	return InvalidOnTag(entry.Name(), entry.Tags())
}

// Result pairs an attribute with its verdict.
type Result struct {
	Index     int // position in Element.Attributes
	Attribute markup.Attribute
	Verdict   Verdict
}

// Check classifies el and evaluates every named attribute on it. It returns
// the element context and one Result per rejected attribute, in attribute
// order. Components and spread occurrences produce no results.
func (e *Engine) Check(el markup.Element) (markup.Context, []Result, error) {
	ctx, err := markup.Classify(el)
	if err != nil {
		return markup.Context{}, nil, err
	}
	results, err := e.CheckClassified(ctx, el)
	return ctx, results, err
}

// CheckClassified is Check for an element the caller has already classified.
func (e *Engine) CheckClassified(ctx markup.Context, el markup.Element) ([]Result, error) {
	if ctx.IsComponent {
		return nil, nil
	}

	var results []Result
	for i, attr := range el.Attributes {
		if attr.IsSpread() {
			continue
		}
		v, err := e.Evaluate(ctx, attr)
		if err != nil {
			return nil, fmt.Errorf("attribute %d on <%s>: %w", i, ctx.TagName, err)
		}
		if v.IsOK() {
			continue
		}
		results = append(results, Result{Index: i, Attribute: attr, Verdict: v})
	}
	return results, nil
}
