package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/propcheck/internal/cli/config"
	"github.com/leapstack-labs/propcheck/internal/cli/testutil"
	"github.com/leapstack-labs/propcheck/pkg/lint"
	"github.com/leapstack-labs/propcheck/pkg/lint/rules/props"
)

func TestCheckCommand_ReportsIssues(t *testing.T) {
	doc := testutil.SetupCheckProject(t)

	out, _, err := execute(t, NewCheckCommand(), nil, doc, "-f", "markdown")
	require.ErrorIs(t, err, ErrIssuesFound)

	assert.Contains(t, out, "App.jsx")
	assert.Contains(t, out, "Unknown property 'for' found, use 'htmlFor' instead")
	assert.Contains(t, out, "Unknown property 'class' found, use 'className' instead")
	assert.NotContains(t, out, "crossOrigin")
	assert.Contains(t, out, "Summary: 2 issues")
	testutil.AssertNoANSI(t, out)
}

func TestCheckCommand_JSON(t *testing.T) {
	doc := testutil.SetupCheckProject(t)

	out, _, err := execute(t, NewCheckCommand(), nil, doc, "-f", "json")
	require.ErrorIs(t, err, ErrIssuesFound)

	assert.Contains(t, out, `"files_checked": 1`)
	assert.Contains(t, out, `"total_issues": 2`)
	assert.Contains(t, out, `"rule_id": "PR01"`)
	assert.Contains(t, out, `"code": "unknownPropWithStandardName"`)
}

func TestCheckCommand_Fix(t *testing.T) {
	doc := testutil.SetupCheckProject(t)
	source := filepath.Join(filepath.Dir(doc), "App.jsx")

	out, _, err := execute(t, NewCheckCommand(), nil, doc, "--fix", "-f", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 2 fixes")

	got, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, `<label htmlFor="email" className="field">Email</label>
<img crossOrigin="anonymous" />
`, string(got))
}

func TestCheckCommand_FixTwice(t *testing.T) {
	doc := testutil.SetupCheckProject(t)
	source := filepath.Join(filepath.Dir(doc), "App.jsx")
	want := `<label htmlFor="email" className="field">Email</label>
<img crossOrigin="anonymous" />
`

	_, _, err := execute(t, NewCheckCommand(), nil, doc, "--fix", "-f", "markdown")
	require.NoError(t, err)

	// The document still describes the original source, so its edits are stale.
	out, _, err := execute(t, NewCheckCommand(), nil, doc, "--fix", "-f", "markdown")
	require.ErrorIs(t, err, ErrIssuesFound)
	assert.NotContains(t, out, "Applied")

	got, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestCheckCommand_FixSharedSource(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteFile(t, dir, "App.jsx", `<label for="email" class="field">Email</label>
`)
	forAttr := `      - name: for
        span: {start: {line: 1, column: 8, offset: 7}, end: {line: 1, column: 11, offset: 10}}
`
	classAttr := `      - name: class
        span: {start: {line: 1, column: 20, offset: 19}, end: {line: 1, column: 25, offset: 24}}
`
	header := "file: App.jsx\nelements:\n  - tag: label\n    attributes:\n"
	testutil.WriteFile(t, dir, "a.propcheck.yaml", header+forAttr)
	testutil.WriteFile(t, dir, "b.propcheck.yaml", header+classAttr)
	testutil.WriteFile(t, dir, "c.propcheck.yaml", header+forAttr+classAttr)

	out, _, err := execute(t, NewCheckCommand(), nil, dir, "--fix", "-j", "4", "-f", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied 2 fixes")

	got, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, `<label htmlFor="email" className="field">Email</label>
`, string(got))
}

func TestCheckCommand_Ignore(t *testing.T) {
	doc := testutil.SetupCheckProject(t)

	out, _, err := execute(t, NewCheckCommand(), nil, doc, "--ignore", "for,class", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"total_issues": 0`)
}

func TestCheckCommand_Disable(t *testing.T) {
	doc := testutil.SetupCheckProject(t)

	out, _, err := execute(t, NewCheckCommand(), nil, doc, "--disable", "PR01", "-f", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found in 1 documents")
}

func TestCheckCommand_SeverityThreshold(t *testing.T) {
	doc := testutil.SetupCheckProject(t)
	cfg := config.Default()
	cfg.Lint = &config.LintConfig{
		Severity: map[string]string{props.NoUnknownProperty.ID: "info"},
	}

	out, _, err := execute(t, NewCheckCommand(), cfg, doc, "-f", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")

	out, _, err = execute(t, NewCheckCommand(), cfg, doc, "--severity", "info", "-f", "markdown")
	require.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, out, "PR01** info")
}

func TestCheckCommand_Errors(t *testing.T) {
	t.Run("invalid severity", func(t *testing.T) {
		doc := testutil.SetupCheckProject(t)
		_, _, err := execute(t, NewCheckCommand(), nil, doc, "--severity", "fatal")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid severity")
	})

	t.Run("empty directory", func(t *testing.T) {
		_, _, err := execute(t, NewCheckCommand(), nil, t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no documents found")
	})

	t.Run("missing path", func(t *testing.T) {
		_, _, err := execute(t, NewCheckCommand(), nil, filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}

func TestCollectDocuments(t *testing.T) {
	dir := t.TempDir()
	a := testutil.WriteFile(t, dir, "a.propcheck.yaml", "elements: []\n")
	b := testutil.WriteFile(t, dir, "nested/b.propcheck.json", `{"elements": []}`)
	testutil.WriteFile(t, dir, "nested/c.yaml", "elements: []\n")
	testutil.WriteFile(t, dir, ".cache/d.propcheck.yaml", "elements: []\n")

	paths, err := collectDocuments([]string{dir, a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths)

	_, err = collectDocuments([]string{testutil.WriteFile(t, dir, "notes.txt", "")})
	require.Error(t, err)
}

func TestBuildLintConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Lint = &config.LintConfig{
		Rules: map[string]config.RuleOptions{
			props.NoUnknownProperty.ID: {props.OptionIgnore: []any{"css"}},
		},
	}

	lintCfg, err := buildLintConfig(cfg, &CheckOptions{Ignore: []string{"tw"}, Disable: []string{" XX01 "}})
	require.NoError(t, err)

	opts := lintCfg.GetRuleOptions(props.NoUnknownProperty.ID)
	assert.Equal(t, []string{"css", "tw"}, lint.GetStringSliceOption(opts, props.OptionIgnore, nil))
	assert.True(t, lintCfg.IsDisabled("XX01"))
	assert.False(t, lintCfg.IsDisabled(props.NoUnknownProperty.ID))
}

func TestCheckCommand_Diff(t *testing.T) {
	doc := testutil.SetupCheckProject(t)
	source := filepath.Join(filepath.Dir(doc), "App.jsx")
	before, err := os.ReadFile(source)
	require.NoError(t, err)

	out, _, err := execute(t, NewCheckCommand(), nil, doc, "--diff", "-f", "markdown")
	require.ErrorIs(t, err, ErrIssuesFound)
	assert.Contains(t, out, "```diff\n--- "+source+"\n+++ "+source+"\n"+
		`-<label for="email" class="field">Email</label>`+"\n"+
		`+<label htmlFor="email" className="field">Email</label>`+"\n```")
	testutil.AssertValidMarkdown(t, out)

	after, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "--diff must not write")

	_, _, err = execute(t, NewCheckCommand(), nil, doc, "--diff", "--fix")
	require.Error(t, err)
}

func TestChangedLines(t *testing.T) {
	got := changedLines("a.jsx", "one\ntwo\nthree", "one\nTWO\nthree")
	assert.Equal(t, "--- a.jsx\n+++ a.jsx\n-two\n+TWO\n", got)
}
