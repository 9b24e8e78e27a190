package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/propcheck/internal/cli/config"
)

// ConfigField describes one key of propcheck.yaml.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// getConfigSchema returns the documented keys with defaults taken from
// config.Default.
func getConfigSchema() []ConfigField {
	def := config.Default()
	return []ConfigField{
		{Name: "output", Type: "string", Default: def.Output, Description: "Output format: auto, text, markdown, json"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Debug logging on stderr"},
		{Name: "lint.disabled", Type: "[]string", Description: "Rule IDs to skip"},
		{Name: "lint.severity", Type: "map[string]string", Description: "Severity override per rule ID"},
		{Name: "lint.rules", Type: "map[string]map", Description: "Options per rule ID, checked against the rule's declared keys"},
		{Name: "server.addr", Type: "string", Default: def.Server.Addr, Description: "Listen address for propcheck serve"},
		{Name: "server.read_timeout", Type: "duration", Default: def.Server.ReadTimeout.String(), Description: "Request read timeout"},
		{Name: "server.max_body_bytes", Type: "int", Default: strconv.FormatInt(def.Server.MaxBodyBytes, 10), Description: "Largest accepted /v1/check body"},
		{Name: "docs.base_url", Type: "string", Description: "Base URL for rule documentation links"},
	}
}

// generateConfigDocs writes the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), renderConfigPage(getConfigSchema()), 0600); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")
	return nil
}

func renderConfigPage(fields []ConfigField) []byte {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "propcheck configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("propcheck reads `propcheck.yaml` (or `.propcheck.yaml`) from the working directory or the nearest parent. Pass `--config` to name a file explicitly.")

	w.Header(2, "Keys")
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		defVal := f.Default
		if defVal == "" {
			defVal = "-"
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(defVal), f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Precedence")
	w.BulletList([]string{
		"Command-line flags",
		fmt.Sprintf("Environment variables (%s)", InlineCode(config.EnvPrefix+"*")),
		"Config file",
		"Defaults",
	})

	return w.Bytes()
}
