package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/reckit/internal/pipeline"
	"github.com/roach88/reckit/internal/value"
)

// Pipeline files are recognised by suffix so data files can live next to
// them in the same directory.
var pipelineSuffixes = []string{".pipeline.yaml", ".pipeline.yml"}

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // pipeline filter (glob pattern)
}

// PipelineResult holds the result of one pipeline test.
type PipelineResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Pipelines []PipelineResult `json:"pipelines"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <pipelines-dir>",
		Short: "Run pipeline tests",
		Long: `Run every *.pipeline.yaml file under a directory as a test.

A pipeline passes when its expect block holds and, if a golden file
golden/<name>.golden exists next to it, the canonical JSON of its output
matches that file byte for byte. <name> is the file name without the
.pipeline.yaml suffix.

Exit codes:
  0 - All pipelines passed
  1 - One or more pipelines failed
  2 - Command error (invalid paths, etc.)

Examples:
  reckit test ./pipelines
  reckit test ./pipelines --filter "objects_*"
  reckit test ./pipelines --update
  reckit test ./pipelines --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter pipelines by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("pipelines directory not found: %s", dir))
	}

	files, err := findPipelineFiles(dir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find pipelines", err)
	}

	if len(files) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{Pipelines: []PipelineResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No pipelines found.")
		return nil
	}

	result := TestResult{
		Pipelines: make([]PipelineResult, 0, len(files)),
		Total:     len(files),
	}

	for _, file := range files {
		pr := runPipelineTest(file, opts)
		if opts.Format != "json" {
			reportPipeline(cmd, pr, opts.Update)
		}
		result.Pipelines = append(result.Pipelines, pr)

		if pr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// findPipelineFiles finds all pipeline files under dir, in walk order.
func findPipelineFiles(dir string, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		name, ok := pipelineName(path)
		if !ok {
			return nil
		}

		if filter != "" {
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// pipelineName strips the pipeline suffix from the base name of path.
func pipelineName(path string) (string, bool) {
	base := filepath.Base(path)
	for _, suffix := range pipelineSuffixes {
		if name, ok := strings.CutSuffix(base, suffix); ok {
			return name, true
		}
	}
	return "", false
}

// runPipelineTest runs one pipeline file and checks its expectations and
// golden file.
func runPipelineTest(file string, opts *TestOptions) PipelineResult {
	name, _ := pipelineName(file)
	fail := func(format string, args ...any) PipelineResult {
		return PipelineResult{Name: name, Errors: []string{fmt.Sprintf(format, args...)}}
	}

	p, err := pipeline.LoadFile(file)
	if err != nil {
		return fail("failed to load pipeline: %v", err)
	}

	result, err := pipeline.Run(p)
	if err != nil {
		return fail("execution failed: %v", err)
	}

	data, err := value.MarshalCanonical(value.Array(result.Rows))
	if err != nil {
		return fail("failed to marshal output: %v", err)
	}

	goldenPath := goldenFilePath(file)
	if opts.Update {
		if err := writeGoldenFile(goldenPath, data); err != nil {
			return fail("failed to update golden file: %v", err)
		}
		return PipelineResult{Name: name, Pass: result.Passed, Errors: result.Errors}
	}

	errs := result.Errors
	golden, err := os.ReadFile(goldenPath)
	switch {
	case os.IsNotExist(err):
		// No golden file: expectations only.
	case err != nil:
		errs = append(errs, fmt.Sprintf("failed to read golden file: %v", err))
	case !bytes.Equal(golden, data):
		errs = append(errs, "output does not match golden file (run with --update to regenerate)")
	}

	return PipelineResult{Name: name, Pass: len(errs) == 0, Errors: errs}
}

// goldenFilePath returns the path to the golden file for a pipeline file.
func goldenFilePath(file string) string {
	name, _ := pipelineName(file)
	return filepath.Join(filepath.Dir(file), "golden", name+".golden")
}

func writeGoldenFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func reportPipeline(cmd *cobra.Command, pr PipelineResult, updated bool) {
	w := cmd.OutOrStdout()
	switch {
	case !pr.Pass:
		fmt.Fprintf(w, "✗ %s\n", pr.Name)
		for _, e := range pr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	case updated:
		fmt.Fprintf(w, "✓ %s (golden updated)\n", pr.Name)
	default:
		fmt.Fprintf(w, "✓ %s\n", pr.Name)
	}
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d pipeline(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d pipeline(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test summary as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d pipeline(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All pipelines passed")
	return nil
}
