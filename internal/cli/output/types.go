package output

import "github.com/leapstack-labs/propcheck/pkg/lint"

// CheckSummary holds aggregate counts for a check run.
type CheckSummary struct {
	FilesChecked int `json:"files_checked"`
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Info         int `json:"info"`
	Hints        int `json:"hints"`
	Fixed        int `json:"fixed"`
}

// CheckFileResult holds the diagnostics for one document.
type CheckFileResult struct {
	Path        string            `json:"path"`
	Source      string            `json:"source,omitempty"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
	Diff        string            `json:"diff,omitempty"` // Set by check --diff
}

// CheckOutput is the JSON output of the check command.
type CheckOutput struct {
	Summary CheckSummary      `json:"summary"`
	Files   []CheckFileResult `json:"files"`
}
