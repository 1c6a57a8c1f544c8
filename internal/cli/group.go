package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/pipeline"
)

// GroupOptions holds flags for the group command.
type GroupOptions struct {
	*RootOptions
	By    string
	Key   string
	Items string
}

// NewGroupCommand creates the group command.
func NewGroupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GroupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "group <source>",
		Short: "Group records by a field",
		Long: `Group records by the string form of one field.

Each group becomes one record holding the key and the member records,
ordered by key. Members are copies of the input records.

Examples:
  reckit group objects.json --by category
  reckit group objects.json --by category --key category --items objects`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.By, "by", "", "field to group by (required)")
	cmd.Flags().StringVar(&opts.Key, "key", "key", "output field holding the group key")
	cmd.Flags().StringVar(&opts.Items, "items", "items", "output field holding the members")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}

func runGroup(opts *GroupOptions, source string, cmd *cobra.Command) error {
	step := pipeline.Step{Group: &pipeline.GroupStep{By: opts.By, Key: opts.Key, Items: opts.Items}}
	return runStep(newFormatter(opts.RootOptions, cmd), "group", map[string]string{sourceName: source}, step)
}
