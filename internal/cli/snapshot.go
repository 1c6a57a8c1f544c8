package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/loader"
	"github.com/roach88/reckit/internal/store"
)

// SnapshotOptions holds flags for the snapshot command.
type SnapshotOptions struct {
	*RootOptions
	Database string

	// IDs allows overriding the snapshot ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs store.IDGenerator
}

// SnapshotInfo describes one stored snapshot.
type SnapshotInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Seq         int64  `json:"seq"`
	Fingerprint string `json:"fingerprint"`
	Records     int    `json:"records"`
}

// SnapshotOutput is the JSON payload of the snapshot command.
type SnapshotOutput struct {
	Snapshot SnapshotInfo `json:"snapshot"`
	Saved    bool         `json:"saved"`
}

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "snapshot <name> <source>",
		Short: "Save a version of a record file",
		Long: `Save the records of a source as the next snapshot of <name>.

Nothing is written when the records are deep-equal to the latest snapshot
of <name>; the latest snapshot is reported instead. The database is
created if it does not exist.

Exit codes:
  0 - Saved, or unchanged
  2 - Command error (unreadable source, database error)

Examples:
  reckit snapshot --db ./reckit.db objects objects.json
  reckit snapshot --db ./reckit.db describes describes.yaml#sobjects --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSnapshot(opts *SnapshotOptions, name, source string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	rs, err := loader.Load(source)
	if err != nil {
		return formatter.Fail("failed to load source", err)
	}

	st, err := openStore(opts.Database, opts.IDs)
	if err != nil {
		return storeFailure(formatter, err)
	}
	defer closeStore(st)

	snap, saved, err := st.Save(contextOf(cmd), name, rs)
	if err != nil {
		return storeFailure(formatter, err)
	}
	slog.Debug("snapshot", "name", name, "seq", snap.Seq, "saved", saved)

	out := SnapshotOutput{Snapshot: infoOf(snap), Saved: saved}
	if formatter.Format == "json" {
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	if saved {
		fmt.Fprintf(w, "✓ saved %s@%d (%d record(s), %s)\n", snap.Name, snap.Seq, len(snap.Records), snap.Fingerprint)
	} else {
		fmt.Fprintf(w, "= unchanged %s@%d (%s)\n", snap.Name, snap.Seq, snap.Fingerprint)
	}
	return nil
}

func openStore(path string, ids store.IDGenerator) (*store.Store, error) {
	var opts []store.Option
	if ids != nil {
		opts = append(opts, store.WithIDGenerator(ids))
	}
	slog.Debug("opening database", "path", path)
	return store.Open(path, opts...)
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

func storeFailure(f *OutputFormatter, err error) error {
	_ = f.Error(ErrCodeStore, err.Error(), nil)
	return WrapExitError(ExitCommandError, "database error", err)
}

func infoOf(s store.Snapshot) SnapshotInfo {
	return SnapshotInfo{
		ID:          s.ID,
		Name:        s.Name,
		Seq:         s.Seq,
		Fingerprint: s.Fingerprint,
		Records:     len(s.Records),
	}
}

// contextOf returns the command's context, or Background when the command
// was executed without one.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
