package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/propcheck/internal/cli/output"
	"github.com/leapstack-labs/propcheck/pkg/dictionary"
	"github.com/leapstack-labs/propcheck/pkg/propcheck"
)

// LookupOptions holds options for the lookup command.
type LookupOptions struct {
	Tag        string // Element the attribute is written on
	TypeMarker bool   // Element carries the `is` attribute
	Ignore     []string
	Format     string
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand() *cobra.Command {
	opts := &LookupOptions{}
	cmd := &cobra.Command{
		Use:   "lookup <name>",
		Short: "Explain how an attribute name resolves",
		Long: `Show the dictionary entry an attribute name normalizes to and the verdict
it receives on a tag.`,
		Example: `  # Why is class rejected?
  propcheck lookup class

  # Is crossOrigin allowed on a div?
  propcheck lookup crossOrigin --tag div

  # Customized built-in elements keep DOM spellings
  propcheck lookup class --tag button --is`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Tag, "tag", "div", "Element tag")
	cmd.Flags().BoolVar(&opts.TypeMarker, "is", false, "Element carries the is attribute")
	cmd.Flags().StringSliceVar(&opts.Ignore, "ignore", nil, "Attribute names to accept everywhere")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runLookup(cmd *cobra.Command, name string, opts *LookupOptions) error {
	r := NewCommandContext(cmd, opts.Format).Renderer

	engine := propcheck.New(nil, propcheck.Config{Ignore: opts.Ignore})
	x, err := engine.Explain(opts.Tag, name, opts.TypeMarker)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(x)
	}
	renderExplanation(r, x, engine.Dictionary())
	return nil
}

func renderExplanation(r *output.Renderer, x propcheck.Explanation, dict *dictionary.Dictionary) {
	rows := [][]string{
		{"Name", x.Name},
		{"Tag", x.Tag},
		{"Key", x.Key},
	}
	if x.Found {
		rows = append(rows,
			[]string{"Canonical", x.Canonical},
			[]string{"Category", x.Category},
		)
		if len(x.Aliases) > 0 {
			rows = append(rows, []string{"Aliases", strings.Join(x.Aliases, ", ")})
		}
		if len(x.DOMNames) > 0 {
			rows = append(rows, []string{"DOM names", strings.Join(x.DOMNames, ", ")})
		}
		allowed := "any"
		if len(x.AllowedTags) > 0 {
			allowed = strings.Join(x.AllowedTags, ", ")
		}
		rows = append(rows, []string{"Allowed on", allowed})
	} else {
		rows = append(rows, []string{"Canonical", "(not in dictionary)"})
	}
	rows = append(rows, []string{"Verdict", verdictLabel(x)})
	rows = append(rows, []string{"Dictionary", dict.Version()})

	r.Table([]string{"Field", "Value"}, rows)
}

func verdictLabel(x propcheck.Explanation) string {
	switch {
	case !x.Intrinsic:
		return fmt.Sprintf("%s (<%s> is not a host element)", x.Verdict, x.Tag)
	case x.Suggestion != "":
		return fmt.Sprintf("%s: use %s", x.Verdict, x.Suggestion)
	default:
		return x.Verdict
	}
}
