package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/pipeline"
)

// SortOptions holds flags for the sort command.
type SortOptions struct {
	*RootOptions
	Field  string
	Order  string
	Top    []string
	Bottom []string
}

// NewSortCommand creates the sort command.
func NewSortCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SortOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sort <source>",
		Short: "Sort records by a field",
		Long: `Stably sort records by one field, then pin values to the ends.

--top and --bottom may be repeated. Each value is read as a JSON literal
when it parses as one, otherwise as a string, and pins the first record
whose field is strictly equal to it. Top pins keep the order given.

Examples:
  reckit sort objects.json --field name
  reckit sort objects.json --field name --order desc
  reckit sort objects.json --field name --top Account --top Contact --bottom Lead`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Field, "field", "", "field to sort by (required)")
	cmd.Flags().StringVar(&opts.Order, "order", "asc", "sort order (asc|desc)")
	cmd.Flags().StringArrayVar(&opts.Top, "top", nil, "value to pin to the front (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Bottom, "bottom", nil, "value to pin to the back (repeatable)")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func runSort(opts *SortOptions, source string, cmd *cobra.Command) error {
	step := pipeline.Step{Sort: &pipeline.SortStep{
		Field:  opts.Field,
		Order:  opts.Order,
		Top:    parseLiterals(opts.Top),
		Bottom: parseLiterals(opts.Bottom),
	}}
	return runStep(newFormatter(opts.RootOptions, cmd), "sort", map[string]string{sourceName: source}, step)
}
