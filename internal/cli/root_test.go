package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/propcheck/internal/cli/commands"
	"github.com/leapstack-labs/propcheck/internal/cli/testutil"
	"github.com/leapstack-labs/propcheck/pkg/lint"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile = ""
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_Subcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"version", "check", "rules", "lookup", "serve", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	for _, flag := range []string{"config", "verbose", "output", "docs-url"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRoot_Version(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "propcheck v"+Version)
}

func TestRoot_CheckUsesConfigFile(t *testing.T) {
	doc := testutil.SetupCheckProject(t)
	dir := filepath.Dir(doc)
	t.Chdir(dir)
	testutil.WriteFile(t, dir, "propcheck.yaml", `output: json
lint:
  rules:
    PR01:
      ignore: [class]
`)

	out, err := run(t, "check", filepath.Base(doc))
	require.ErrorIs(t, err, commands.ErrIssuesFound)
	assert.Contains(t, out, `"total_issues": 1`)
	assert.Contains(t, out, "'for'")
	assert.NotContains(t, out, "'class'")
}

func TestRoot_ExplicitConfigAndOutputFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := testutil.WriteFile(t, t.TempDir(), "custom.yaml", "lint:\n  disabled: [PR01]\n")
	doc := testutil.SetupCheckProject(t)

	out, err := run(t, "--config", cfg, "-o", "markdown", "check", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found in 1 documents")
}

func TestRoot_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteFile(t, dir, "propcheck.yaml", "lint:\n  severity:\n    PR01: fatal\n")
	doc := testutil.SetupCheckProject(t)

	_, err := run(t, "check", doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid severity")
}

func TestRoot_DocsURLFlag(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(lint.ResetDocsBaseURL)

	out, err := run(t, "--docs-url", "https://docs.example.com/rules", "rules", "PR01", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"docs_url": "https://docs.example.com/rules/pr01"`)
}

func TestRoot_Completion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "propcheck")

	_, err = run(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestExecute_NoArgsShowsHelp(t *testing.T) {
	t.Chdir(t.TempDir())
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"propcheck", "--help"}

	require.NoError(t, Execute(context.Background()))
}
