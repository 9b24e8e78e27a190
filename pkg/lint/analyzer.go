package lint

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/propcheck/pkg/markup"
)

// Analyzer runs lint rules against element openings.
type Analyzer struct {
	config *Config
	logger *slog.Logger
	rules  []ElementRule // nil means the global registry
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the analyzer's logger.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithRules restricts the analyzer to the given rules instead of the registry.
func WithRules(rules ...ElementRule) AnalyzerOption {
	return func(a *Analyzer) {
		a.rules = rules
	}
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config, opts ...AnalyzerOption) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	a := &Analyzer{config: config}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.DiscardHandler)
	}
	return a
}

// Config returns the analyzer configuration.
func (a *Analyzer) Config() *Config {
	return a.config
}

// Analyze classifies el once and, for host elements, runs every enabled rule.
// Components are skipped without running any rule.
func (a *Analyzer) Analyze(el markup.Element) ([]Diagnostic, error) {
	ctx, err := markup.Classify(el)
	if err != nil {
		return nil, err
	}
	if ctx.IsComponent {
		a.logger.Debug("skipping component", slog.String("tag", el.Tag))
		return nil, nil
	}

	rules := a.rules
	if rules == nil {
		rules = GetAll()
	}

	var diagnostics []Diagnostic
	for _, rule := range rules {
		// Skip disabled rules
		if a.config.IsDisabled(rule.ID()) {
			continue
		}

		opts := a.config.GetRuleOptions(rule.ID())
		diags, err := rule.CheckElement(el, ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID(), err)
		}

		// Apply severity overrides
		for i := range diags {
			diags[i].Severity = a.config.GetSeverity(rule.ID(), diags[i].Severity)
		}
		diagnostics = append(diagnostics, diags...)
	}

	a.logger.Debug("analyzed element",
		slog.String("tag", el.Tag),
		slog.Int("attributes", len(el.Attributes)),
		slog.Int("diagnostics", len(diagnostics)),
	)
	return diagnostics, nil
}

// AnalyzeMultiple runs analysis on multiple elements in order.
// It stops at the first structurally invalid element.
func (a *Analyzer) AnalyzeMultiple(elements []markup.Element) ([]Diagnostic, error) {
	var diagnostics []Diagnostic
	for i, el := range elements {
		diags, err := a.Analyze(el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		diagnostics = append(diagnostics, diags...)
	}
	return diagnostics, nil
}
