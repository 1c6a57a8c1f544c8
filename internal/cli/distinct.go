package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/pipeline"
)

// DistinctOptions holds flags for the distinct command.
type DistinctOptions struct {
	*RootOptions
	Field string
}

// NewDistinctCommand creates the distinct command.
func NewDistinctCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DistinctOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "distinct <source>",
		Short: "Remove duplicate records",
		Long: `Deduplicate records by one field, or by their whole content when
--field is not given. Content compares by canonical JSON, so key order
does not matter but 1 and "1" differ.

A later record replaces an earlier one with the same key, at the position
where the key first appeared.

Examples:
  reckit distinct objects.json --field name
  reckit distinct objects.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDistinct(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Field, "field", "", "field to deduplicate by")

	return cmd
}

func runDistinct(opts *DistinctOptions, source string, cmd *cobra.Command) error {
	step := pipeline.Step{Distinct: &pipeline.DistinctStep{Field: opts.Field}}
	return runStep(newFormatter(opts.RootOptions, cmd), "distinct", map[string]string{sourceName: source}, step)
}
