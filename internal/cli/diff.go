package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/deep"
	"github.com/roach88/reckit/internal/loader"
	"github.com/roach88/reckit/internal/value"
)

// DiffOptions holds flags for the diff command.
type DiffOptions struct {
	*RootOptions
	ExistsInBothOnly bool
	EmptyAsUndefined bool
}

// DiffSide describes one of the compared sources.
type DiffSide struct {
	Ref         string `json:"ref"`
	Records     int    `json:"records"`
	Fingerprint string `json:"fingerprint"`
}

// DiffResult holds the outcome of a diff.
type DiffResult struct {
	Equal bool     `json:"equal"`
	Left  DiffSide `json:"left"`
	Right DiffSide `json:"right"`

	// Rows lists the indices at which the sequences differ. An index past
	// the end of one side is listed too.
	Rows []int `json:"rows"`
}

// NewDiffCommand creates the diff command.
func NewDiffCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DiffOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Compare two record files",
		Long: `Compare two record sequences with deep loose equality.

Values compare loosely (1 equals "1"), objects compare key by key and
arrays index by index. Fingerprints are the SHA-256 of the canonical JSON
and differ whenever the bytes would.

--exists-in-both-only compares only the fields present on the left side.
--empty-as-undefined treats "", 0, false, null and missing as equal.

Exit codes:
  0 - Records are equal
  1 - Records differ
  2 - Command error (unreadable source, etc.)

Examples:
  reckit diff before.json after.json
  reckit diff expected.yaml actual.json --exists-in-both-only
  reckit diff a.cue#records b.json --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.ExistsInBothOnly, "exists-in-both-only", false, "compare only fields present on the left")
	cmd.Flags().BoolVar(&opts.EmptyAsUndefined, "empty-as-undefined", false, "treat empty values as missing")

	return cmd
}

func runDiff(opts *DiffOptions, left, right string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	ls, err := loader.Load(left)
	if err != nil {
		return formatter.Fail("failed to load left", err)
	}
	rs, err := loader.Load(right)
	if err != nil {
		return formatter.Fail("failed to load right", err)
	}

	result, err := diffRecords(ls, rs, deep.Options{
		ExistsInBothOnly: opts.ExistsInBothOnly,
		EmptyAsUndefined: opts.EmptyAsUndefined,
	})
	if err != nil {
		return formatter.Fail("failed to fingerprint", err)
	}
	result.Left.Ref = left
	result.Right.Ref = right

	if formatter.Format == "json" {
		return outputDiffJSON(cmd, result)
	}
	return outputDiffText(cmd, result)
}

// diffRecords compares a and b as whole sequences and row by row.
func diffRecords(a, b []value.Value, opts deep.Options) (DiffResult, error) {
	result := DiffResult{
		Equal: deep.EqualsWith(value.Array(a), value.Array(b), opts),
		Left:  DiffSide{Records: len(a)},
		Right: DiffSide{Records: len(b)},
		Rows:  []int{},
	}

	var err error
	if result.Left.Fingerprint, err = value.Fingerprint(value.Array(a)); err != nil {
		return result, err
	}
	if result.Right.Fingerprint, err = value.Fingerprint(value.Array(b)); err != nil {
		return result, err
	}

	for i := 0; i < max(len(a), len(b)); i++ {
		// With ExistsInBothOnly a longer right side is not a difference.
		if i >= len(a) && opts.ExistsInBothOnly {
			continue
		}
		if !deep.EqualsWith(at(a, i), at(b, i), opts) {
			result.Rows = append(result.Rows, i)
		}
	}
	return result, nil
}

// at returns rs[i], or nil (undefined) past the end.
func at(rs []value.Value, i int) value.Value {
	if i < len(rs) {
		return rs[i]
	}
	return nil
}

func outputDiffJSON(cmd *cobra.Command, result DiffResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.Equal {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeDiffers,
			Message: fmt.Sprintf("records differ at %d row(s)", len(result.Rows)),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.Equal {
		return NewExitError(ExitFailure, "records differ")
	}
	return nil
}

func outputDiffText(cmd *cobra.Command, result DiffResult) error {
	w := cmd.OutOrStdout()

	if result.Equal {
		fmt.Fprintf(w, "✓ equal (%d record(s))\n", result.Left.Records)
	} else {
		fmt.Fprintln(w, "✗ records differ")
	}
	fmt.Fprintf(w, "  left:  %s (%d record(s), %s)\n", result.Left.Ref, result.Left.Records, result.Left.Fingerprint)
	fmt.Fprintf(w, "  right: %s (%d record(s), %s)\n", result.Right.Ref, result.Right.Records, result.Right.Fingerprint)
	for _, i := range result.Rows {
		fmt.Fprintf(w, "  row %d differs\n", i)
	}

	if !result.Equal {
		return NewExitError(ExitFailure, "records differ")
	}
	return nil
}
