package config

import (
	"fmt"

	"github.com/leapstack-labs/propcheck/pkg/lint"
)

// BuildLintConfig converts the lint section into an analyzer configuration
// and validates rule options against the registered rules.
func (c *Config) BuildLintConfig() (*lint.Config, error) {
	lintCfg, err := lint.FromLintConfig(c.Lint)
	if err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}
	if err := lintCfg.Validate(); err != nil {
		return nil, fmt.Errorf("lint: %w", err)
	}
	return lintCfg, nil
}
