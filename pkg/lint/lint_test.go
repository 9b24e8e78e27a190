package lint_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/propcheck/internal/testutil"
	"github.com/leapstack-labs/propcheck/pkg/core"
	"github.com/leapstack-labs/propcheck/pkg/lint"
	"github.com/leapstack-labs/propcheck/pkg/markup"
)

// attrCount reports one diagnostic per named attribute.
var attrCount = lint.RuleDef{
	ID:          "TS01",
	Name:        "test.attr-count",
	Group:       "test",
	Description: "Reports every named attribute.",
	Severity:    core.SeverityInfo,
	ConfigKeys:  []string{"skip"},
	Check: func(el markup.Element, _ markup.Context, opts map[string]any) ([]lint.Diagnostic, error) {
		skip := lint.GetStringSliceOption(opts, "skip", nil)
		var diags []lint.Diagnostic
		for _, a := range el.Attributes {
			if a.IsSpread() || contains(skip, a.Name) {
				continue
			}
			diags = append(diags, lint.Diagnostic{RuleID: "TS01", Severity: core.SeverityInfo, Message: a.Name})
		}
		return diags, nil
	},
}

var errBoom = errors.New("boom")

var failing = lint.RuleDef{
	ID:       "TS02",
	Name:     "test.failing",
	Group:    "test",
	Severity: core.SeverityError,
	Check: func(markup.Element, markup.Context, map[string]any) ([]lint.Diagnostic, error) {
		return nil, errBoom
	},
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func newAnalyzer(t *testing.T, cfg *lint.Config, defs ...lint.RuleDef) *lint.Analyzer {
	t.Helper()
	rules := make([]lint.ElementRule, 0, len(defs))
	for _, d := range defs {
		rules = append(rules, lint.WrapRuleDef(d))
	}
	return lint.NewAnalyzer(cfg, lint.WithRules(rules...), lint.WithLogger(testutil.NewTestLogger(t)))
}

func TestAnalyzer_Analyze(t *testing.T) {
	a := newAnalyzer(t, nil, attrCount)

	diags, err := a.Analyze(markup.NewElement("div", markup.Named("a"), markup.Spread(), markup.Named("b")))
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, "a", diags[0].Message)
	assert.Equal(t, "b", diags[1].Message)
}

func TestAnalyzer_SkipsComponents(t *testing.T) {
	a := newAnalyzer(t, nil, attrCount, failing)

	for _, tag := range []string{"Foo", "Foo.Bar", "my-widget", "fbs"} {
		diags, err := a.Analyze(markup.NewElement(tag, markup.Named("x")))
		require.NoError(t, err, tag)
		assert.Empty(t, diags, tag)
	}
}

func TestAnalyzer_DisabledRule(t *testing.T) {
	a := newAnalyzer(t, lint.NewConfig().Disable("TS02"), attrCount, failing)

	diags, err := a.Analyze(markup.NewElement("div", markup.Named("a")))
	require.NoError(t, err)
	assert.Len(t, diags, 1)
}

func TestAnalyzer_SeverityOverride(t *testing.T) {
	a := newAnalyzer(t, lint.NewConfig().SetSeverity("TS01", core.SeverityError), attrCount)

	diags, err := a.Analyze(markup.NewElement("div", markup.Named("a")))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, core.SeverityError, diags[0].Severity)
}

func TestAnalyzer_RuleOptions(t *testing.T) {
	cfg := lint.NewConfig().SetRuleOptions("TS01", map[string]any{"skip": []any{"a"}})
	a := newAnalyzer(t, cfg, attrCount)

	diags, err := a.Analyze(markup.NewElement("div", markup.Named("a"), markup.Named("b")))
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "b", diags[0].Message)
}

func TestAnalyzer_Errors(t *testing.T) {
	t.Run("rule error is wrapped", func(t *testing.T) {
		a := newAnalyzer(t, nil, failing)
		_, err := a.Analyze(markup.NewElement("div"))
		require.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "rule TS02")
	})

	t.Run("missing tag", func(t *testing.T) {
		a := newAnalyzer(t, nil, attrCount)
		_, err := a.Analyze(markup.Element{})
		require.ErrorIs(t, err, markup.ErrMissingTag)
	})

	t.Run("element index in multi-element runs", func(t *testing.T) {
		a := newAnalyzer(t, nil, attrCount)
		_, err := a.AnalyzeMultiple([]markup.Element{
			markup.NewElement("div"),
			markup.NewElement("span", markup.Named("")),
		})
		require.ErrorIs(t, err, markup.ErrMissingName)
		assert.Contains(t, err.Error(), "element 1")
	})
}

func TestAnalyzer_AnalyzeMultiple(t *testing.T) {
	a := newAnalyzer(t, nil, attrCount)

	diags, err := a.AnalyzeMultiple([]markup.Element{
		markup.NewElement("div", markup.Named("a")),
		markup.NewElement("Foo", markup.Named("b")),
		markup.NewElement("span", markup.Named("c")),
	})
	require.NoError(t, err)
	require.Len(t, diags, 2)
	assert.Equal(t, "c", diags[1].Message)
}

func TestGetStringSliceOption(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
		want []string
	}{
		{name: "nil options", opts: nil, want: []string{"d"}},
		{name: "missing key", opts: map[string]any{}, want: []string{"d"}},
		{name: "string slice", opts: map[string]any{"k": []string{"a", "b"}}, want: []string{"a", "b"}},
		{name: "any slice skips non-strings", opts: map[string]any{"k": []any{"a", 1, "b"}}, want: []string{"a", "b"}},
		{name: "single string", opts: map[string]any{"k": "a"}, want: []string{"a"}},
		{name: "comma separated string", opts: map[string]any{"k": "a, b,,c"}, want: []string{"a", "b", "c"}},
		{name: "wrong type", opts: map[string]any{"k": 3}, want: []string{"d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lint.GetStringSliceOption(tt.opts, "k", []string{"d"}))
		})
	}
}

func TestDocsURL(t *testing.T) {
	t.Cleanup(lint.ResetDocsBaseURL)

	assert.Equal(t, lint.DefaultDocsBaseURL+"/ts01", lint.BuildDocURL("TS01"))

	lint.SetDocsBaseURL("https://example.com/rules/")
	assert.Equal(t, "https://example.com/rules/ts01", lint.BuildDocURL("TS01"))

	info := lint.GetRuleInfo(lint.WrapRuleDef(attrCount))
	assert.Equal(t, "https://example.com/rules/ts01", info.DocsURL)
	assert.Equal(t, []string{"skip"}, info.ConfigKeys)
}
