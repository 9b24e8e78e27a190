package lint

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/propcheck/pkg/core"
)

// ErrUnknownOption is returned when configuration names an option a rule does
// not accept.
var ErrUnknownOption = errors.New("unknown rule option")

// Config controls which rules are enabled, their severity, and their options.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity

	// RuleOptions holds rule-specific options keyed by rule ID
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// FromLintConfig converts the lint section of the configuration file.
func FromLintConfig(lc *core.LintConfig) (*Config, error) {
	cfg := NewConfig()
	if lc == nil {
		return cfg, nil
	}
	for _, id := range lc.Disabled {
		cfg.Disable(strings.TrimSpace(id))
	}
	for id, sev := range lc.Severity {
		s, ok := core.ParseSeverity(sev)
		if !ok {
			return nil, fmt.Errorf("rule %s: invalid severity %q", id, sev)
		}
		cfg.SetSeverity(id, s)
	}
	for id, opts := range lc.Rules {
		cfg.SetRuleOptions(id, opts)
	}
	return cfg, nil
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule, or nil.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}

// SetRuleOptions replaces the options for a rule.
func (c *Config) SetRuleOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[ruleID] = opts
	return c
}

// Validate checks rule options against the keys each registered rule declares.
// Options for unregistered rules are rejected as well.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	for id, opts := range c.RuleOptions {
		rule, ok := GetByID(id)
		if !ok {
			errs = append(errs, fmt.Errorf("options for unknown rule %s", id))
			continue
		}
		keys := rule.ConfigKeys()
		for key := range opts {
			if !slices.Contains(keys, key) {
				errs = append(errs, fmt.Errorf("rule %s: %w %q", id, ErrUnknownOption, key))
			}
		}
	}
	return errors.Join(errs...)
}
