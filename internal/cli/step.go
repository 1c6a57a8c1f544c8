package cli

import (
	"github.com/roach88/reckit/internal/pipeline"
	"github.com/roach88/reckit/internal/value"
)

// Source names used by the single-step commands.
const (
	sourceName = "source"
	targetName = "target"
)

// runStep runs one pipeline step over the records of the given sources
// and writes the result. Flags are validated the same way a pipeline
// file is, so a bad --kind reports the same message in both places.
func runStep(f *OutputFormatter, name string, sources map[string]string, step pipeline.Step) error {
	p := &pipeline.Pipeline{
		Name:    name,
		Sources: sources,
		Input:   sourceName,
		Steps:   []pipeline.Step{step},
	}
	if err := pipeline.Validate(p); err != nil {
		_ = f.Error(ErrCodeInvalidFlag, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid flags", err)
	}

	result, err := pipeline.Run(p)
	if err != nil {
		return f.Fail(name+" failed", err)
	}
	f.VerboseLog("%s: %d record(s), fingerprint %s", name, len(result.Rows), result.Fingerprint)
	return f.Records(result.Rows)
}

// parseLiteral reads a flag value as a JSON literal, falling back to a
// plain string: "1" is a number, "true" a bool, "Account" a string.
func parseLiteral(s string) value.Value {
	v, err := value.Decode([]byte(s))
	if err != nil {
		return value.String(s)
	}
	return v
}

func parseLiterals(in []string) []any {
	if len(in) == 0 {
		return nil
	}
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = parseLiteral(s)
	}
	return out
}
