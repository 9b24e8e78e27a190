package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/propcheck/internal/cli/output"
	"github.com/leapstack-labs/propcheck/pkg/core"
)

// renderCheckResults prints results and reports whether any issues remain.
func renderCheckResults(r *output.Renderer, results []output.CheckFileResult, summary output.CheckSummary) bool {
	mode := r.EffectiveMode()
	if mode == output.ModeJSON {
		_ = r.JSON(output.CheckOutput{Summary: summary, Files: results})
		return summary.TotalIssues > 0
	}

	if summary.Fixed > 0 {
		r.Success(fmt.Sprintf("Applied %d fixes", summary.Fixed))
	}
	renderDiffs(r, results)
	if summary.TotalIssues == 0 {
		r.Success(fmt.Sprintf("No issues found in %d documents", summary.FilesChecked))
		return false
	}

	if mode == output.ModeMarkdown {
		renderCheckMarkdown(r, results)
	} else {
		renderCheckText(r, results)
	}
	r.Printf("Summary: %s in %d documents\n", summaryLine(summary), summary.FilesChecked)
	return true
}

func renderCheckText(r *output.Renderer, results []output.CheckFileResult) {
	styles := r.Styles()
	for _, res := range results {
		r.Println(styles.Path.Render(displayPath(res)))
		for _, d := range res.Diagnostics {
			fixable := ""
			if d.AutoFixable {
				fixable = styles.Muted.Render(" (fixable)")
			}
			r.Printf("  %s  %s  %s  %s%s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", d.Pos.String())),
				severityLabel(r, d.Severity),
				styles.Bold.Render(d.RuleID),
				d.Message,
				fixable,
			)
		}
		r.Println("")
	}
}

func renderCheckMarkdown(r *output.Renderer, results []output.CheckFileResult) {
	for _, res := range results {
		r.Printf("## %s\n\n", displayPath(res))
		for _, d := range res.Diagnostics {
			r.Printf("- `%s` **%s** %s: %s", d.Pos.String(), d.RuleID, d.Severity.String(), d.Message)
			if d.AutoFixable {
				r.Printf(" _(fixable)_")
			}
			r.Println("")
		}
		r.Println("")
	}
}

func renderDiffs(r *output.Renderer, results []output.CheckFileResult) {
	for _, res := range results {
		if res.Diff == "" {
			continue
		}
		r.Println("```diff")
		r.Printf("%s", res.Diff)
		r.Println("```")
		r.Println("")
	}
}

// displayPath names the source when the document points at one.
func displayPath(res output.CheckFileResult) string {
	if res.Source != "" {
		return res.Source
	}
	return res.Path
}

func summaryLine(s output.CheckSummary) string {
	parts := []string{fmt.Sprintf("%d issues", s.TotalIssues)}
	if s.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", s.Errors))
	}
	if s.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", s.Warnings))
	}
	if s.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", s.Info))
	}
	if s.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", s.Hints))
	}
	return strings.Join(parts, ", ")
}

func severityLabel(r *output.Renderer, sev core.Severity) string {
	styles := r.Styles()
	switch sev {
	case core.SeverityError:
		return styles.Error.Render("error  ")
	case core.SeverityWarning:
		return styles.Warning.Render("warning")
	case core.SeverityInfo:
		return styles.Info.Render("info   ")
	case core.SeverityHint:
		return styles.Muted.Render("hint   ")
	default:
		return styles.Muted.Render("unknown")
	}
}
