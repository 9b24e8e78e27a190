// Package lint provides the rule framework that turns element openings into
// diagnostics.
//
// # Architecture
//
// The host parses source and hands the analyzer one markup.Element per
// element opening. The Analyzer classifies the element once, skips
// components, and runs every enabled ElementRule against host elements.
// Rules return Diagnostic values; an error from a rule means the element was
// structurally invalid.
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their packages are imported:
//
//	import _ "github.com/leapstack-labs/propcheck/pkg/lint/rules"
//
// # Configuration
//
// Use Config to control which rules are enabled, their severity, and their options:
//
//	config := lint.NewConfig()
//	config.Disable("PR01")
//	config.SetSeverity("PR01", core.SeverityError)
//	config.SetRuleOptions("PR01", map[string]any{"ignore": []string{"css"}})
//
// # Fixes
//
// Diagnostics may carry Fixes. The analyzer never applies them; hosts that
// own the source call ApplyFixes.
package lint
