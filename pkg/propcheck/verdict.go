package propcheck

import (
	"fmt"
	"slices"
	"strings"
)

// Kind identifies the verdict variant.
type Kind int

// Verdict kinds.
const (
	// KindOK means the attribute is accepted.
	KindOK Kind = iota
	// KindUnknown means the name is not recognized and no spelling is close.
	KindUnknown
	// KindUnknownWithSuggestion means the name is a miscased or mis-separated
	// spelling of a known attribute.
	KindUnknownWithSuggestion
	// KindInvalidOnTag means the canonical attribute is not allowed on the tag.
	KindInvalidOnTag
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindUnknown:
		return "unknown"
	case KindUnknownWithSuggestion:
		return "unknown-with-suggestion"
	case KindInvalidOnTag:
		return "invalid-on-tag"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Verdict is the outcome for a single attribute.
type Verdict struct {
	Kind Kind
	// Canonical is set for KindUnknownWithSuggestion and KindInvalidOnTag.
	Canonical string
	// AllowedTags is set for KindInvalidOnTag; sorted and never empty.
	AllowedTags []string
}

// OK returns the accepting verdict.
func OK() Verdict { return Verdict{Kind: KindOK} }

// Unknown returns the verdict for an unrecognized name.
func Unknown() Verdict { return Verdict{Kind: KindUnknown} }

// UnknownWithSuggestion returns the verdict for a misspelled known name.
func UnknownWithSuggestion(canonical string) Verdict {
	return Verdict{Kind: KindUnknownWithSuggestion, Canonical: canonical}
}

// InvalidOnTag returns the verdict for a canonical name on a disallowed tag.
func InvalidOnTag(canonical string, allowed []string) Verdict {
	tags := slices.Clone(allowed)
	slices.Sort(tags)
	return Verdict{Kind: KindInvalidOnTag, Canonical: canonical, AllowedTags: tags}
}

// IsOK reports whether the verdict accepts the attribute.
func (v Verdict) IsOK() bool {
	return v.Kind == KindOK
}

// AllowedTagList renders AllowedTags for messages.
func (v Verdict) AllowedTagList() string {
	return strings.Join(v.AllowedTags, ", ")
}

// String renders the verdict for logs and tests.
func (v Verdict) String() string {
	switch v.Kind {
	case KindUnknownWithSuggestion:
		return fmt.Sprintf("%s(%s)", v.Kind, v.Canonical)
	case KindInvalidOnTag:
		return fmt.Sprintf("%s(%s; %s)", v.Kind, v.Canonical, v.AllowedTagList())
	default:
		return v.Kind.String()
	}
}
