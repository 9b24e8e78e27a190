package lint

import (
	"github.com/leapstack-labs/propcheck/pkg/core"
	"github.com/leapstack-labs/propcheck/pkg/markup"
	"github.com/leapstack-labs/propcheck/pkg/token"
)

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Rules are stateless - all context comes via the Check function parameters.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "PR01"
	Name        string        // Human-readable name, e.g., "props.no-unknown-property"
	Group       string        // Category, e.g., "props"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Check       CheckFunc     // The check function
	ConfigKeys  []string      // Configuration keys this rule accepts (for rule-specific options)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc analyzes one element and returns diagnostics.
// The element has already been classified; ctx is the classification.
// The opts parameter contains rule-specific options from configuration.
// An error means the element is structurally invalid, not that it has problems.
type CheckFunc func(el markup.Element, ctx markup.Context, opts map[string]any) ([]Diagnostic, error)

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string            `json:"rule_id"`
	Severity core.Severity     `json:"severity"`
	Code     string            `json:"code"`           // Message ID, e.g., "unknownProp"
	Message  string            `json:"message"`        // Rendered message
	Data     map[string]string `json:"data,omitempty"` // Message parameters
	Pos      token.Position    `json:"pos"`
	EndPos   token.Position    `json:"end_pos"`         // Optional: end of the problematic range
	Fixes    []Fix             `json:"fixes,omitempty"` // Optional: suggested fixes

	// Remediation metadata
	DocumentationURL string `json:"documentation_url,omitempty"`
	AutoFixable      bool   `json:"auto_fixable"` // true if Fixes can be auto-applied
}

// Fix represents a suggested code fix.
type Fix struct {
	Description string     `json:"description"`
	TextEdits   []TextEdit `json:"text_edits"`
}

// TextEdit represents a text replacement. OldText, when set, is the text the
// range must still hold for the edit to apply.
type TextEdit struct {
	Pos     token.Position `json:"pos"`
	EndPos  token.Position `json:"end_pos"`
	OldText string         `json:"old_text,omitempty"`
	NewText string         `json:"new_text"`
}

// Span returns the range the edit replaces.
func (e TextEdit) Span() token.Span {
	return token.Span{Start: e.Pos, End: e.EndPos}
}

// =============================================================================
// Rule Interfaces
// =============================================================================

// Rule is the base interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "PR01"
	ID() string

	// Name returns the human-readable name, e.g., "props.no-unknown-property"
	Name() string

	// Group returns the category, e.g., "props"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() core.Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)
}

// ElementRule analyzes one element opening at a time.
type ElementRule interface {
	Rule

	// CheckElement analyzes a classified element and returns diagnostics.
	CheckElement(el markup.Element, ctx markup.Context, opts map[string]any) ([]Diagnostic, error)
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Rationale:       r.Rationale(),
		BadExample:      r.BadExample(),
		GoodExample:     r.GoodExample(),
		Fix:             r.Fix(),
		DocsURL:         BuildDocURL(r.ID()),
	}
}

// =============================================================================
// Wrapped RuleDef
// =============================================================================

// wrappedRuleDef wraps a RuleDef to implement ElementRule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the ElementRule interface.
func WrapRuleDef(def RuleDef) ElementRule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                     { return w.def.ID }
func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Group() string                  { return w.def.Group }
func (w *wrappedRuleDef) Description() string            { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string           { return w.def.ConfigKeys }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) CheckElement(el markup.Element, ctx markup.Context, opts map[string]any) ([]Diagnostic, error) {
	return w.def.Check(el, ctx, opts)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
