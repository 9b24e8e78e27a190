package props

import (
	"fmt"

	"github.com/leapstack-labs/propcheck/pkg/core"
	"github.com/leapstack-labs/propcheck/pkg/lint"
	"github.com/leapstack-labs/propcheck/pkg/markup"
	"github.com/leapstack-labs/propcheck/pkg/propcheck"
)

// Message IDs reported in Diagnostic.Code.
const (
	MessageUnknownProp                 = "unknownProp"
	MessageUnknownPropWithStandardName = "unknownPropWithStandardName"
	MessageInvalidPropOnTag            = "invalidPropOnTag"
)

// Emit turns a rejected attribute into a diagnostic. Only renames carry a fix:
// a single edit replacing the attribute name token with the canonical name.
func Emit(ruleID string, severity core.Severity, tag string, res propcheck.Result) lint.Diagnostic {
	attr := res.Attribute
	d := lint.Diagnostic{
		RuleID:           ruleID,
		Severity:         severity,
		Pos:              attr.Span.Start,
		EndPos:           attr.Span.End,
		DocumentationURL: lint.BuildDocURL(ruleID),
	}

	v := res.Verdict
	switch v.Kind {
	case propcheck.KindUnknownWithSuggestion:
		d.Code = MessageUnknownPropWithStandardName
		d.Data = map[string]string{"name": attr.Name, "standardName": v.Canonical}
		d.Message = fmt.Sprintf("Unknown property '%s' found, use '%s' instead", attr.Name, v.Canonical)
		d.Fixes = []lint.Fix{renameFix(attr, v.Canonical)}
		d.AutoFixable = true
	case propcheck.KindInvalidOnTag:
		tags := v.AllowedTagList()
		d.Code = MessageInvalidPropOnTag
		d.Data = map[string]string{"name": attr.Name, "tagName": tag, "allowedTags": tags}
		d.Message = fmt.Sprintf("Invalid property '%s' found on tag '%s', but it is only allowed on: %s", attr.Name, tag, tags)
	default:
		d.Code = MessageUnknownProp
		d.Data = map[string]string{"name": attr.Name}
		d.Message = fmt.Sprintf("Unknown property '%s' found", attr.Name)
	}
	return d
}

func renameFix(attr markup.Attribute, canonical string) lint.Fix {
	return lint.Fix{
		Description: fmt.Sprintf("Rename '%s' to '%s'", attr.Name, canonical),
		TextEdits: []lint.TextEdit{{
			Pos:     attr.Span.Start,
			EndPos:  attr.Span.End,
			OldText: attr.Name,
			NewText: canonical,
		}},
	}
}
