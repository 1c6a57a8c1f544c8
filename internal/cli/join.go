package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/pipeline"
)

// JoinOptions holds flags for the join command.
type JoinOptions struct {
	*RootOptions
	Kind    string
	On      map[string]string // source field -> target field
	Project string
	Prefix  string
}

// NewJoinCommand creates the join command.
func NewJoinCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JoinOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "join <source> <target>",
		Short: "Join two record files",
		Long: `Join the records of two files on one or more field pairs.

Sources are JSON, YAML or CUE files, optionally followed by a selector:
"describes.yaml#sobjects". Field values are compared with loose equality,
so 1 matches "1".

Kinds:
  inner - every matching pair
  left  - every source record, with an empty target when unmatched
  right - every target record, with an empty source when unmatched
  full  - left join plus the unmatched target records
  cross - every combination; --on is not allowed

Exit codes:
  0 - Success
  2 - Command error (unreadable source, invalid flags)

Examples:
  reckit join objects.json describes.yaml#sobjects --on name=name
  reckit join objects.json describes.yaml#sobjects --kind left --on name=name --prefix describe_
  reckit join a.json b.json --kind cross --project pair --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", pipeline.JoinInner, "join kind (inner|left|right|full|cross)")
	cmd.Flags().StringToStringVar(&opts.On, "on", nil, "field pairs to match, source=target")
	cmd.Flags().StringVar(&opts.Project, "project", pipeline.ProjectMerge, "projection (merge|pair)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "prefix for target fields in the merge projection")

	return cmd
}

func runJoin(opts *JoinOptions, source, target string, cmd *cobra.Command) error {
	step := pipeline.Step{Join: &pipeline.JoinStep{
		With:    targetName,
		Kind:    opts.Kind,
		On:      opts.On,
		Project: opts.Project,
		Prefix:  opts.Prefix,
	}}
	sources := map[string]string{sourceName: source, targetName: target}
	return runStep(newFormatter(opts.RootOptions, cmd), "join", sources, step)
}
