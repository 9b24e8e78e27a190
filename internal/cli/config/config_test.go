package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/propcheck/internal/testutil"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("config", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	flags.String("docs-url", "", "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.Verbose)
	assert.Nil(t, cfg.Lint)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Empty(t, cfg.File)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "propcheck.yaml", `
output: json
lint:
  disabled: [PR02]
  severity:
    PR01: warning
  rules:
    PR01:
      ignore: [css, tw]
server:
  addr: "127.0.0.1:9000"
  read_timeout: 3s
docs:
  base_url: http://localhost:8000/rules
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, path, cfg.File)
	require.NotNil(t, cfg.Lint)
	assert.Equal(t, []string{"PR02"}, cfg.Lint.Disabled)
	assert.Equal(t, "warning", cfg.Lint.Severity["PR01"])
	assert.Equal(t, []any{"css", "tw"}, cfg.Lint.Rules["PR01"]["ignore"])
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "http://localhost:8000/rules", cfg.Docs.BaseURL)
}

func TestLoad_SearchesUpward(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, ".propcheck.yml", "output: markdown\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Output)

	got, err := filepath.EvalSymlinks(cfg.File)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "propcheck.yaml", "output: text\nserver:\n  addr: \":1\"\n")

	t.Setenv("PROPCHECK_OUTPUT", "markdown")
	t.Setenv("PROPCHECK_SERVER__ADDR", ":2")
	t.Setenv("PROPCHECK_LINT__DISABLED", "PR01,PR02")

	t.Run("env over file", func(t *testing.T) {
		cfg, err := Load(path, testFlags())
		require.NoError(t, err)
		assert.Equal(t, "markdown", cfg.Output)
		assert.Equal(t, ":2", cfg.Server.Addr)
		require.NotNil(t, cfg.Lint)
		assert.Equal(t, []string{"PR01", "PR02"}, cfg.Lint.Disabled)
	})

	t.Run("flags over env", func(t *testing.T) {
		flags := testFlags()
		require.NoError(t, flags.Parse([]string{"-o", "json", "--verbose", "--docs-url", "http://x"}))

		cfg, err := Load(path, flags)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "http://x", cfg.Docs.BaseURL)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{name: "unknown top-level key", content: "outptu: json\n", errSubstr: "outptu"},
		{name: "unknown nested key", content: "server:\n  adr: \":1\"\n", errSubstr: "adr"},
		{name: "invalid output", content: "output: html\n", errSubstr: "invalid output"},
		{name: "invalid severity", content: "lint:\n  severity:\n    PR01: loud\n", errSubstr: "invalid severity"},
		{name: "bad duration", content: "server:\n  read_timeout: soon\n", errSubstr: "invalid duration"},
		{name: "malformed yaml", content: "output: [\n", errSubstr: "error reading config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "propcheck.yaml", tt.content)
			_, err := Load(path, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()

	assert.NotNil(t, GetLogger(ctx))
	assert.Equal(t, DefaultAddr, FromContext(ctx).Server.Addr)

	logger := testutil.NewTestLogger(t)
	ctx = context.WithValue(ctx, LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))

	cfg := &Config{Output: "json"}
	ctx = WithConfig(ctx, cfg)
	assert.Same(t, cfg, FromContext(ctx))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "output", envKey("PROPCHECK_OUTPUT"))
	assert.Equal(t, "server.read_timeout", envKey("PROPCHECK_SERVER__READ_TIMEOUT"))
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("nil lint section", func(t *testing.T) {
		cfg := Default()
		lintCfg, err := cfg.BuildLintConfig()
		require.NoError(t, err)
		assert.False(t, lintCfg.IsDisabled("PR01"))
	})

	t.Run("disabled and severity", func(t *testing.T) {
		cfg := Default()
		cfg.Lint = &LintConfig{
			Disabled: []string{"PR01"},
			Severity: map[string]string{"PR01": "hint"},
		}
		lintCfg, err := cfg.BuildLintConfig()
		require.NoError(t, err)
		assert.True(t, lintCfg.IsDisabled("PR01"))
	})

	t.Run("options for unregistered rule", func(t *testing.T) {
		cfg := Default()
		cfg.Lint = &LintConfig{Rules: map[string]RuleOptions{"ZZ01": {"x": 1}}}
		_, err := cfg.BuildLintConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ZZ01")
	})
}
