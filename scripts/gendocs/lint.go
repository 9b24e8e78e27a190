package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/propcheck/pkg/core"
	"github.com/leapstack-labs/propcheck/pkg/lint"
	_ "github.com/leapstack-labs/propcheck/pkg/lint/rules"
)

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"props": "Rules about the attribute names written on host elements.",
}

// generateLintDocs generates the rules reference page.
func generateLintDocs(outDir string) error {
	log.Printf("Generating lint docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), renderRulesPage(lint.AllRules()), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")
	return nil
}

// renderRulesPage renders every rule, grouped and sorted by ID.
func renderRulesPage(rules []core.RuleInfo) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Lint Rules", "Attribute name rules checked by propcheck")
	w.GeneratedMarker()

	w.Header(1, "Lint Rules")
	w.Paragraph(fmt.Sprintf("propcheck ships %d lint rules.", len(rules)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Critical issue that should be fixed"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Rules can be configured in `propcheck.yaml`:")
	w.CodeBlock("yaml", `lint:
  disabled: [PR01]         # disable rule
  severity:
    PR01: warning          # override severity
  rules:
    PR01:
      ignore: [css, tw]    # rule-specific option`)

	grouped := groupRules(rules)
	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, group := range groups {
		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()
		if desc, ok := groupDescriptions[group]; ok {
			w.Paragraph(desc)
		}
		for _, rule := range grouped[group] {
			writeRuleDoc(w, rule)
		}
	}

	return w.Bytes()
}

// groupRules organizes rules by their Group field, sorted by ID.
func groupRules(rules []core.RuleInfo) map[string][]core.RuleInfo {
	grouped := make(map[string][]core.RuleInfo)
	for _, r := range rules {
		grouped[r.Group] = append(grouped[r.Group], r)
	}
	for group := range grouped {
		sort.Slice(grouped[group], func(i, j int) bool {
			return grouped[group][i].ID < grouped[group][j].ID
		})
	}
	return grouped
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule core.RuleInfo) {
	// ### PR01 - props.no-unknown-property {#pr01}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", rule.ID, rule.Name, strings.ToLower(rule.ID)))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.DefaultSeverity.String())))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description))

	if rule.Rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(rule.Rationale)
	}
	if rule.BadExample != "" {
		w.Header(4, "Bad")
		w.CodeBlock("jsx", rule.BadExample)
	}
	if rule.GoodExample != "" {
		w.Header(4, "Good")
		w.CodeBlock("jsx", rule.GoodExample)
	}
	if rule.Fix != "" {
		w.Header(4, "How to Fix")
		w.Paragraph(rule.Fix)
	}
	if len(rule.ConfigKeys) > 0 {
		w.Header(4, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule accepts the following configuration options: %s",
			InlineCode(strings.Join(rule.ConfigKeys, ", "))))
	}

	w.Line("---")
	w.Newline()
}
