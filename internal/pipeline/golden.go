package pipeline

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/reckit/internal/value"
)

// RunWithGolden runs a pipeline and compares its rows, as canonical JSON,
// against testdata/golden/{p.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/pipeline -update
func RunWithGolden(t *testing.T, p *Pipeline, opts ...RunnerOption) (*Result, error) {
	t.Helper()

	result, err := NewRunner(opts...).Run(p)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, p.Name, result.Rows); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares rows against a golden file without re-running.
func AssertGolden(t *testing.T, name string, rows []value.Value) error {
	t.Helper()

	data, err := value.MarshalCanonical(value.Array(rows))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
