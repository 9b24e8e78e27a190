package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/leapstack-labs/propcheck/pkg/lint"
)

// previewFixes returns the changed lines the fixes in diags would produce in
// source, or "" when nothing applies.
func previewFixes(source string, diags []lint.Diagnostic) (string, error) {
	src, err := os.ReadFile(source) //nolint:gosec // path comes from a user document
	if err != nil {
		return "", err
	}
	out, n, err := lint.ApplyFixes(src, diags)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	return changedLines(source, string(src), string(out)), nil
}

// changedLines renders a line diff of before and after without context lines.
func changedLines(name, before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	_, _ = fmt.Fprintf(&sb, "--- %s\n+++ %s\n", name, name)
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
