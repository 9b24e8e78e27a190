package markup

import "fmt"

// TypeMarker is the attribute that turns a built-in element into a customized
// built-in element (`<button is="fancy-button">`).
const TypeMarker = "is"

// exemptTags are lowercase pseudo-elements owned by translation frameworks.
// They look intrinsic but are rendered by user code.
var exemptTags = map[string]struct{}{
	"fbt": {},
	"fbs": {},
}

// Context is the per-element classification consumed by the decision engine.
type Context struct {
	TagName       string
	IsComponent   bool
	HasTypeMarker bool
}

// Classify resolves whether el is a component or a host element and whether it
// carries the type marker. It fails only on structurally invalid input.
func Classify(el Element) (Context, error) {
	if el.Component {
		return Context{TagName: el.Tag, IsComponent: true}, nil
	}
	if el.Tag == "" {
		return Context{}, ErrMissingTag
	}

	ctx := Context{
		TagName:     el.Tag,
		IsComponent: !IsIntrinsicTag(el.Tag),
	}
	for i, attr := range el.Attributes {
		if attr.IsSpread() {
			continue
		}
		if attr.Name == "" {
			return Context{}, fmt.Errorf("attribute %d on <%s>: %w", i, el.Tag, ErrMissingName)
		}
		if attr.Name == TypeMarker {
			ctx.HasTypeMarker = true
		}
	}
	return ctx, nil
}

// IsIntrinsicTag reports whether name denotes a built-in host element.
//
// Intrinsic tags start with a lowercase ASCII letter and contain none of '-',
// '.' and ':'. Everything else names a user-defined construct.
func IsIntrinsicTag(name string) bool {
	if name == "" {
		return false
	}
	if c := name[0]; c < 'a' || c > 'z' {
		return false
	}
	for i := 1; i < len(name); i++ {
		switch name[i] {
		case '-', '.', ':':
			return false
		}
	}
	_, exempt := exemptTags[name]
	return !exempt
}
