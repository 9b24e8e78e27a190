// Package core holds the small set of types shared between the lint framework,
// the CLI, and configuration loading: severities, rule metadata, and the
// lint section of the configuration file.
package core
