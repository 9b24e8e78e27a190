package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/propcheck/internal/cli/config"
	"github.com/leapstack-labs/propcheck/internal/cli/output"
	"github.com/leapstack-labs/propcheck/internal/loader"
	"github.com/leapstack-labs/propcheck/internal/watch"
	"github.com/leapstack-labs/propcheck/pkg/core"
	"github.com/leapstack-labs/propcheck/pkg/lint"
	"github.com/leapstack-labs/propcheck/pkg/lint/rules/props"
)

// ErrIssuesFound is returned when diagnostics at or above the threshold remain.
var ErrIssuesFound = errors.New("issues found")

// documentSuffixes mark host documents inside directories.
var documentSuffixes = []string{".propcheck.yaml", ".propcheck.yml", ".propcheck.json"}

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format   string   // Output format: text, markdown, json
	Fix      bool     // Rewrite source files with rename fixes
	Diff     bool     // Print the rename fixes instead of writing them
	Watch    bool     // Re-run when documents change
	Ignore   []string // Attribute names accepted on every element
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity to report: error, warning, info, hint
	Jobs     int      // Documents checked concurrently
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <document|dir>...",
		Short: "Check attribute names in host element documents",
		Long: `Validate the attribute names recorded in host element documents.

A document lists the element openings a host parser extracted from a source
file, with the range of every attribute name. Directories are searched for
files ending in .propcheck.yaml, .propcheck.yml or .propcheck.json.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # Check one document
  propcheck check src/App.propcheck.yaml

  # Check every document under src and apply renames to the sources
  propcheck check src --fix

  # Preview the renames without touching the sources
  propcheck check src --diff

  # Accept attributes handled by a custom renderer
  propcheck check src --ignore css,tw

  # Re-run on every change
  propcheck check src --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.Fix, "fix", false, "Apply rename fixes to the source files")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Show the lines rename fixes would change")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run when documents change")
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, "Attribute names to accept everywhere")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, info, hint")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", runtime.GOMAXPROCS(0), "Documents checked concurrently")

	cmd.MarkFlagsMutuallyExclusive("fix", "diff")

	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)

	threshold, ok := core.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid severity %q, must be one of: error, warning, info, hint", opts.Severity)
	}

	lintCfg, err := buildLintConfig(cmdCtx.Cfg, opts)
	if err != nil {
		return err
	}

	paths, err := collectDocuments(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no documents found in %s", strings.Join(args, ", "))
	}

	c := &checker{
		analyzer:  lint.NewAnalyzer(lintCfg, lint.WithLogger(cmdCtx.Logger)),
		logger:    cmdCtx.Logger,
		threshold: threshold,
		fix:       opts.Fix,
		diff:      opts.Diff,
		jobs:      opts.Jobs,
	}

	ctx := cmd.Context()
	if !opts.Watch {
		return c.runOnce(ctx, cmdCtx.Renderer, paths)
	}

	if err := c.runOnce(ctx, cmdCtx.Renderer, paths); err != nil && !errors.Is(err, ErrIssuesFound) {
		cmdCtx.Renderer.Error(err.Error())
	}
	cmdCtx.Logger.Info("watching for changes", slog.Int("documents", len(paths)))
	return watch.Run(ctx, watch.Config{
		Files:  paths,
		Logger: cmdCtx.Logger,
		OnChange: func(ctx context.Context, changed []string) {
			if err := c.runOnce(ctx, cmdCtx.Renderer, changed); err != nil && !errors.Is(err, ErrIssuesFound) {
				cmdCtx.Renderer.Error(err.Error())
			}
		},
	})
}

// buildLintConfig layers CLI flags over the configured lint section.
func buildLintConfig(cfg *config.Config, opts *CheckOptions) (*lint.Config, error) {
	lintCfg, err := cfg.BuildLintConfig()
	if err != nil {
		return nil, err
	}

	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	if len(opts.Ignore) > 0 {
		id := props.NoUnknownProperty.ID
		ruleOpts := make(map[string]any)
		for k, v := range lintCfg.GetRuleOptions(id) {
			ruleOpts[k] = v
		}
		ignore := lint.GetStringSliceOption(ruleOpts, props.OptionIgnore, nil)
		ruleOpts[props.OptionIgnore] = append(slices.Clone(ignore), opts.Ignore...)
		lintCfg.SetRuleOptions(id, ruleOpts)
	}

	return lintCfg, nil
}

// collectDocuments expands directories into the host documents they contain.
func collectDocuments(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if _, err := loader.FormatForPath(arg); err != nil {
				return nil, err
			}
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if isDocument(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func isDocument(name string) bool {
	for _, suffix := range documentSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// checker runs the analyzer over documents.
type checker struct {
	analyzer  *lint.Analyzer
	logger    *slog.Logger
	threshold core.Severity
	fix       bool
	diff      bool
	jobs      int
}

func (c *checker) runOnce(ctx context.Context, r *output.Renderer, paths []string) error {
	results, summary, err := c.checkAll(ctx, paths)
	if err != nil {
		return err
	}
	if renderCheckResults(r, results, summary) {
		return ErrIssuesFound
	}
	return nil
}

// checkAll checks documents concurrently and returns results in path order.
func (c *checker) checkAll(ctx context.Context, paths []string) ([]output.CheckFileResult, output.CheckSummary, error) {
	results := make([]output.CheckFileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if c.jobs > 0 {
		g.SetLimit(c.jobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := c.checkFile(path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, output.CheckSummary{}, err
	}

	summary := output.CheckSummary{FilesChecked: len(paths)}
	if c.fix {
		n, err := c.fixSources(ctx, results)
		if err != nil {
			return nil, output.CheckSummary{}, err
		}
		summary.Fixed = n
	}

	kept := results[:0]
	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		for _, d := range res.Diagnostics {
			summary.TotalIssues++
			switch d.Severity {
			case core.SeverityError:
				summary.Errors++
			case core.SeverityWarning:
				summary.Warnings++
			case core.SeverityInfo:
				summary.Info++
			case core.SeverityHint:
				summary.Hints++
			}
		}
		kept = append(kept, res)
	}
	return kept, summary, nil
}

// checkFile analyzes one document and, with --diff, previews its fixes.
func (c *checker) checkFile(path string) (output.CheckFileResult, error) {
	doc, err := loader.LoadFile(path)
	if err != nil {
		return output.CheckFileResult{}, err
	}
	diags, err := c.analyzer.AnalyzeMultiple(doc.Elements)
	if err != nil {
		return output.CheckFileResult{}, fmt.Errorf("%s: %w", path, err)
	}

	diags = slices.DeleteFunc(diags, func(d lint.Diagnostic) bool {
		return !d.Severity.AtLeast(c.threshold)
	})

	res := output.CheckFileResult{Path: path, Source: doc.SourcePath(), Diagnostics: diags}
	if c.diff && res.Source != "" && countFixable(diags) > 0 {
		res.Diff, err = previewFixes(res.Source, diags)
		if err != nil {
			return output.CheckFileResult{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return res, nil
}

// fixSources rewrites every source named by results once, with the edits of
// all documents that refer to it. Diagnostics are dropped from the results of
// a source only when all of its edits applied. It returns the edits applied.
func (c *checker) fixSources(ctx context.Context, results []output.CheckFileResult) (int, error) {
	bySource := make(map[string][]int)
	var sources []string
	for i, res := range results {
		if res.Source == "" || countFixable(res.Diagnostics) == 0 {
			continue
		}
		key, err := filepath.Abs(res.Source)
		if err != nil {
			return 0, err
		}
		if _, ok := bySource[key]; !ok {
			sources = append(sources, key)
		}
		bySource[key] = append(bySource[key], i)
	}

	applied := make([]int, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	if c.jobs > 0 {
		g.SetLimit(c.jobs)
	}
	for i, source := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var diags []lint.Diagnostic
			for _, idx := range bySource[source] {
				diags = append(diags, results[idx].Diagnostics...)
			}
			n, err := c.applyFixes(source, diags)
			if err != nil {
				return fmt.Errorf("%s: %w", results[bySource[source][0]].Path, err)
			}
			applied[i] = n
			if n > 0 && n == lint.CountEdits(diags) {
				for _, idx := range bySource[source] {
					results[idx].Diagnostics = slices.DeleteFunc(results[idx].Diagnostics, func(d lint.Diagnostic) bool {
						return d.AutoFixable
					})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, n := range applied {
		total += n
	}
	return total, nil
}

func (c *checker) applyFixes(source string, diags []lint.Diagnostic) (int, error) {
	info, err := os.Stat(source)
	if err != nil {
		return 0, err
	}
	src, err := os.ReadFile(source) //nolint:gosec // path comes from a user document
	if err != nil {
		return 0, err
	}
	out, n, err := lint.ApplyFixes(src, diags)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		c.logger.Debug("no fixes applied", slog.String("file", source))
		return 0, nil
	}
	if err := os.WriteFile(source, out, info.Mode().Perm()); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", source, err)
	}
	c.logger.Info("applied fixes", slog.String("file", source), slog.Int("edits", n))
	return n, nil
}

func countFixable(diags []lint.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.AutoFixable {
			n++
		}
	}
	return n
}
