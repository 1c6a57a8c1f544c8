package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/deep"
	"github.com/roach88/reckit/internal/loader"
	"github.com/roach88/reckit/internal/store"
	"github.com/roach88/reckit/internal/value"
	"github.com/roach88/reckit/internal/watch"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Debounce         time.Duration
	ExistsInBothOnly bool
	EmptyAsUndefined bool

	// Database and Name, when both set, save every change as a snapshot.
	Database string
	Name     string

	// IDs allows overriding the snapshot ID generator (for testing).
	IDs store.IDGenerator
}

// ChangeOutput is one line of watch output in JSON format.
type ChangeOutput struct {
	Path        string `json:"path"`
	Initial     bool   `json:"initial"`
	Records     int    `json:"records"`
	Previous    int    `json:"previous"`
	Fingerprint string `json:"fingerprint"`
	Rows        any    `json:"rows,omitempty"`
	Seq         int64  `json:"seq,omitempty"`
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch <source>",
		Short: "Print a record file whenever its content changes",
		Long: `Watch a record file and print its records each time they change.

Saves that leave the records deep-equal to the last printed version are
ignored, so reformatting a file or touching it prints nothing. With --db
and --name every change is also saved as a snapshot.

Stops on SIGINT or SIGTERM.

Examples:
  reckit watch objects.json
  reckit watch describes.yaml#sobjects --empty-as-undefined
  reckit watch objects.json --db ./reckit.db --name objects --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Debounce, "debounce", 100*time.Millisecond, "wait this long for more events before reloading")
	cmd.Flags().BoolVar(&opts.ExistsInBothOnly, "exists-in-both-only", false, "compare only fields present in the new version (a change in record count still prints)")
	cmd.Flags().BoolVar(&opts.EmptyAsUndefined, "empty-as-undefined", false, "treat empty values as missing")
	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database to save changes to")
	cmd.Flags().StringVar(&opts.Name, "name", "", "snapshot name for saved changes")

	return cmd
}

func runWatch(opts *WatchOptions, source string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if (opts.Database == "") != (opts.Name == "") {
		_ = formatter.Error(ErrCodeInvalidFlag, "--db and --name must be used together", nil)
		return NewExitError(ExitCommandError, "--db and --name must be used together")
	}

	var st *store.Store
	if opts.Database != "" {
		var err error
		if st, err = openStore(opts.Database, opts.IDs); err != nil {
			return storeFailure(formatter, err)
		}
		defer closeStore(st)
	}

	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := func(c watch.Change) {
		var seq int64
		if st != nil {
			snap, saved, err := st.Save(ctx, opts.Name, c.Current)
			if err != nil {
				slog.Error("failed to save snapshot", "name", opts.Name, "error", err)
			} else {
				seq = snap.Seq
				slog.Debug("snapshot", "name", opts.Name, "seq", snap.Seq, "saved", saved)
			}
		}
		if err := outputChange(cmd, formatter, c, seq); err != nil {
			slog.Error("failed to write change", "error", err)
		}
	}

	w, err := watch.New(source, handler, &watch.Options{
		Debounce: opts.Debounce,
		Equal: deep.Options{
			ExistsInBothOnly: opts.ExistsInBothOnly,
			EmptyAsUndefined: opts.EmptyAsUndefined,
		},
		Load: loader.Load,
	})
	if err != nil {
		return formatter.Fail("failed to watch", err)
	}

	slog.Info("watching", "source", source)
	if err := w.Run(ctx); err != nil {
		return formatter.Fail("watch failed", err)
	}
	slog.Info("watch stopped", "source", source)
	return nil
}

func outputChange(cmd *cobra.Command, formatter *OutputFormatter, c watch.Change, seq int64) error {
	out := ChangeOutput{
		Path:        c.Path,
		Initial:     c.Previous == nil,
		Records:     len(c.Current),
		Previous:    len(c.Previous),
		Fingerprint: c.Fingerprint,
		Rows:        value.ToAny(value.Array(c.Current)),
		Seq:         seq,
	}

	if formatter.Format == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(CLIResponse{Status: "ok", Data: out})
	}

	w := cmd.OutOrStdout()
	if out.Initial {
		fmt.Fprintf(w, "● %s: %d record(s) %s\n", c.Path, out.Records, c.Fingerprint)
	} else {
		fmt.Fprintf(w, "~ %s: %d -> %d record(s) %s\n", c.Path, out.Previous, out.Records, c.Fingerprint)
	}
	if seq > 0 {
		fmt.Fprintf(w, "  snapshot seq %d\n", seq)
	}
	return formatter.Records(c.Current)
}
