// Package rules provides the lint rule implementations for propcheck.
//
// Rules are organized by category:
//   - props: Rules about attribute names on host elements (PR01)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/propcheck/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/propcheck/pkg/lint/rules/props"
package rules
