package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/propcheck/pkg/dictionary"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display propcheck version and the attribute dictionary it was built with.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "propcheck v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dictionary %s, %d entries\n",
				dictionary.Default().Version(), dictionary.Default().Len())
		},
	}
}
