// Package config provides configuration management for the propcheck CLI.
//
// The shared lint configuration types live in pkg/core and are re-exported
// here via type aliases for convenience.
package config

import (
	"fmt"
	"time"

	"github.com/leapstack-labs/propcheck/pkg/core"
)

// LintConfig is an alias for the shared lint configuration.
type LintConfig = core.LintConfig

// RuleOptions is an alias for the shared rule options type.
type RuleOptions = core.RuleOptions

// Config holds all CLI configuration options.
type Config struct {
	Output  string       `koanf:"output"`
	Verbose bool         `koanf:"verbose"`
	Lint    *LintConfig  `koanf:"lint"`
	Server  ServerConfig `koanf:"server"`
	Docs    DocsConfig   `koanf:"docs"`

	// File is the configuration file that was loaded, empty when none was found.
	File string `koanf:"-"`
}

// ServerConfig holds configuration for the check server.
type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	MaxBodyBytes int64         `koanf:"max_body_bytes"`
}

// DocsConfig controls rule documentation links.
type DocsConfig struct {
	BaseURL string `koanf:"base_url"`
}

// Default configuration values.
const (
	DefaultOutput       = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultAddr         = ":8787"
	DefaultReadTimeout  = 10 * time.Second
	DefaultMaxBodyBytes = 1 << 20
)

// OutputModes lists the accepted values of the output key.
var OutputModes = []string{"auto", "text", "markdown", "json"}

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Output: DefaultOutput,
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultReadTimeout,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	valid := false
	for _, m := range OutputModes {
		if c.Output == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output %q, must be one of: auto, text, markdown, json", c.Output)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if c.Lint != nil {
		for id, sev := range c.Lint.Severity {
			if _, ok := core.ParseSeverity(sev); !ok {
				return fmt.Errorf("lint.severity.%s: invalid severity %q", id, sev)
			}
		}
	}
	return nil
}
