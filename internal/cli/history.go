package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database    string
	Show        int64  // print the records of this seq
	Fingerprint string // find snapshots by fingerprint instead of name
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [name]",
		Short: "List saved snapshots",
		Long: `List the snapshots of <name> in order, or every snapshot name when no
name is given.

--show prints the records of one snapshot. --fingerprint lists the
snapshots, under any name, whose content has that fingerprint.

Exit codes:
  0 - Success
  2 - Command error (missing database, database error, unknown snapshot)

Examples:
  reckit history --db ./reckit.db
  reckit history --db ./reckit.db objects
  reckit history --db ./reckit.db objects --show 2
  reckit history --db ./reckit.db --fingerprint 3f2a...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runHistory(opts, name, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().Int64Var(&opts.Show, "show", 0, "print the records of this snapshot seq")
	cmd.Flags().StringVar(&opts.Fingerprint, "fingerprint", "", "find snapshots by content fingerprint")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := contextOf(cmd)

	if opts.Show > 0 && name == "" {
		_ = formatter.Error(ErrCodeInvalidFlag, "--show requires a snapshot name", nil)
		return NewExitError(ExitCommandError, "--show requires a snapshot name")
	}

	// Opening creates missing databases; history only reads.
	if _, err := os.Stat(opts.Database); err != nil {
		return storeFailure(formatter, fmt.Errorf("database %s: %w", opts.Database, err))
	}

	st, err := openStore(opts.Database, nil)
	if err != nil {
		return storeFailure(formatter, err)
	}
	defer closeStore(st)

	switch {
	case opts.Show > 0:
		snap, err := st.Get(ctx, name, opts.Show)
		if errors.Is(err, store.ErrNotFound) {
			_ = formatter.Error(ErrCodeStore, fmt.Sprintf("no snapshot %s@%d", name, opts.Show), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("no snapshot %s@%d", name, opts.Show))
		}
		if err != nil {
			return storeFailure(formatter, err)
		}
		return formatter.Records(snap.Records)

	case opts.Fingerprint != "":
		snaps, err := st.FindByFingerprint(ctx, opts.Fingerprint)
		if err != nil {
			return storeFailure(formatter, err)
		}
		return outputSnapshots(cmd, formatter, snaps)

	case name != "":
		snaps, err := st.History(ctx, name)
		if err != nil {
			return storeFailure(formatter, err)
		}
		return outputSnapshots(cmd, formatter, snaps)

	default:
		names, err := st.Names(ctx)
		if err != nil {
			return storeFailure(formatter, err)
		}
		if formatter.Format == "json" {
			return formatter.Success(names)
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	}
}

func outputSnapshots(cmd *cobra.Command, formatter *OutputFormatter, snaps []store.Snapshot) error {
	infos := make([]SnapshotInfo, len(snaps))
	for i, s := range snaps {
		infos[i] = infoOf(s)
	}

	if formatter.Format == "json" {
		return formatter.Success(infos)
	}

	w := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintln(w, "No snapshots found.")
		return nil
	}
	for _, info := range infos {
		fmt.Fprintf(w, "%s@%d  %d record(s)  %s  %s\n", info.Name, info.Seq, info.Records, info.Fingerprint, info.ID)
	}
	return nil
}
