package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/pipeline"
	"github.com/roach88/reckit/internal/value"
)

// RunOutput is the JSON payload of the run command.
type RunOutput struct {
	Name        string   `json:"name"`
	Rows        any      `json:"rows"`
	Fingerprint string   `json:"fingerprint"`
	Passed      bool     `json:"passed"`
	Errors      []string `json:"errors,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <pipeline.yaml>",
		Short: "Run a pipeline file",
		Long: `Load the sources of a pipeline file, apply its steps and print the
resulting records. If the pipeline has an expect block it is checked too.

Exit codes:
  0 - Success (and expectations held)
  1 - A step failed or an expectation did not hold
  2 - Command error (unreadable or invalid pipeline, unreadable source)

Examples:
  reckit run ./pipelines/objects_view.pipeline.yaml
  reckit run ./pipelines/objects_view.pipeline.yaml --format json --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runPipeline(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	p, err := pipeline.LoadFile(path)
	if err != nil {
		if pipeline.IsValidationError(err) {
			return formatter.Fail("invalid pipeline", err)
		}
		_ = formatter.Error(ErrCodeInvalidPipeline, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load pipeline", err)
	}

	slog.Debug("running pipeline", "name", p.Name, "sources", len(p.Sources), "steps", len(p.Steps))
	result, err := pipeline.Run(p)
	if err != nil {
		return formatter.Fail("pipeline failed", err)
	}
	slog.Debug("pipeline finished", "name", p.Name, "rows", len(result.Rows), "passed", result.Passed)

	if formatter.Format == "json" {
		return outputRunJSON(cmd, result)
	}

	if err := formatter.Records(result.Rows); err != nil {
		return err
	}
	if !result.Passed {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "✗ %s: expectations failed\n", result.Name)
		for _, e := range result.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", len(result.Errors)))
	}
	return nil
}

func outputRunJSON(cmd *cobra.Command, result *pipeline.Result) error {
	response := CLIResponse{
		Status: "ok",
		Data: RunOutput{
			Name:        result.Name,
			Rows:        value.ToAny(value.Array(result.Rows)),
			Fingerprint: result.Fingerprint,
			Passed:      result.Passed,
			Errors:      result.Errors,
		},
	}
	if !result.Passed {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d expectation(s) failed", len(result.Errors)),
		}
	}

	if err := json.NewEncoder(cmd.OutOrStdout()).Encode(response); err != nil {
		return err
	}
	if !result.Passed {
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", len(result.Errors)))
	}
	return nil
}
