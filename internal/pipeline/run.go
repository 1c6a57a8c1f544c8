package pipeline

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/roach88/reckit/internal/deep"
	"github.com/roach88/reckit/internal/loader"
	"github.com/roach88/reckit/internal/records"
	"github.com/roach88/reckit/internal/seq"
	"github.com/roach88/reckit/internal/value"
)

// Result is the outcome of running a pipeline.
type Result struct {
	Name        string
	Rows        []value.Value
	Fingerprint string

	// Passed is true when there is no Expect block or every expectation
	// held.
	Passed bool
	Errors []string
}

// SourceLoader resolves a source reference to records.
type SourceLoader func(ref string) ([]value.Value, error)

// Runner executes pipelines.
type Runner struct {
	load SourceLoader
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSourceLoader replaces the file loader, e.g. with in-memory fixtures.
func WithSourceLoader(load SourceLoader) RunnerOption {
	return func(r *Runner) {
		r.load = load
	}
}

// NewRunner creates a Runner that loads sources with loader.Load.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{load: loader.Load}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run loads the sources of p, executes its steps and checks Expect.
// A failed expectation is reported in the Result, not as an error.
func Run(p *Pipeline) (*Result, error) {
	return NewRunner().Run(p)
}

// Run loads the sources of p, executes its steps and checks Expect.
func (r *Runner) Run(p *Pipeline) (*Result, error) {
	sources, err := r.LoadSources(p)
	if err != nil {
		return nil, err
	}

	rows, err := Execute(p, sources)
	if err != nil {
		return nil, err
	}

	fp, err := value.Fingerprint(value.Array(rows))
	if err != nil {
		return nil, fmt.Errorf("fingerprint output: %w", err)
	}

	result := &Result{Name: p.Name, Rows: rows, Fingerprint: fp}
	result.Errors = Check(p.Expect, rows)
	result.Passed = len(result.Errors) == 0
	return result, nil
}

// LoadSources loads every source of p, in name order.
func (r *Runner) LoadSources(p *Pipeline) (map[string][]value.Value, error) {
	names := make([]string, 0, len(p.Sources))
	for name := range p.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	sources := make(map[string][]value.Value, len(names))
	for _, name := range names {
		rs, err := r.load(p.Sources[name])
		if err != nil {
			return nil, fmt.Errorf("load source %q: %w", name, err)
		}
		slog.Debug("source loaded", "pipeline", p.Name, "source", name, "records", len(rs))
		sources[name] = rs
	}
	return sources, nil
}

// Execute applies the steps of p to the input source. sources must hold
// every source the pipeline names; the input slices are not modified.
func Execute(p *Pipeline, sources map[string][]value.Value) ([]value.Value, error) {
	rows, ok := sources[p.Input]
	if !ok {
		return nil, fmt.Errorf("input source %q not loaded", p.Input)
	}

	for i, step := range p.Steps {
		before := len(rows)
		next, err := apply(step, rows, sources)
		if err != nil {
			return nil, &StepError{Index: i, Op: step.op(), Err: err}
		}
		rows = next
		slog.Debug("step applied", "pipeline", p.Name, "step", i, "op", step.op(), "in", before, "out", len(rows))
	}
	return rows, nil
}

func apply(step Step, rows []value.Value, sources map[string][]value.Value) ([]value.Value, error) {
	switch {
	case step.Join != nil:
		return applyJoin(step.Join, rows, sources)
	case step.Sort != nil:
		return applySort(step.Sort, rows)
	case step.Group != nil:
		key := step.Group.Key
		if key == "" {
			key = "key"
		}
		items := step.Group.Items
		if items == "" {
			items = "items"
		}
		return records.GroupByProp(rows, step.Group.By, key, items), nil
	case step.Distinct != nil:
		if step.Distinct.Field == "" {
			return records.DistinctByContent(rows)
		}
		return records.DistinctByField(rows, step.Distinct.Field), nil
	case step.Flat != nil:
		return records.FlatByField(rows, step.Flat.Field), nil
	case step.Exclude != nil:
		others, ok := sources[step.Exclude.From]
		if !ok {
			return nil, fmt.Errorf("source %q not loaded", step.Exclude.From)
		}
		return records.ExcludeBy(rows, step.Exclude.SourceKey, step.Exclude.TargetKey, others), nil
	case step.Remove != nil:
		props, err := value.FromAny(step.Remove)
		if err != nil {
			return nil, fmt.Errorf("remove props: %w", err)
		}
		return records.RemoveByProps(rows, props.(value.Object)), nil
	case step.Take != nil:
		return seq.Take(rows, *step.Take), nil
	case step.Offset != nil:
		return seq.Offset(rows, *step.Offset), nil
	default:
		return nil, fmt.Errorf("no operation set")
	}
}

func applyJoin(j *JoinStep, rows []value.Value, sources map[string][]value.Value) ([]value.Value, error) {
	target, ok := sources[j.With]
	if !ok {
		return nil, fmt.Errorf("source %q not loaded", j.With)
	}

	project := records.Merge(j.Prefix)
	if j.Project == ProjectPair {
		project = records.Pair("source", "target")
	}
	match := records.AllFieldsEqual(j.On)

	switch j.Kind {
	case JoinInner:
		return seq.InnerJoin(rows, target, match, project), nil
	case JoinLeft:
		return seq.LeftJoin(rows, target, match, project), nil
	case JoinRight:
		return seq.RightJoin(rows, target, match, project), nil
	case JoinFull:
		return seq.FullJoin(rows, target, match, project), nil
	case JoinCross:
		return seq.CrossJoin(rows, target, project), nil
	default:
		return nil, fmt.Errorf("unknown join kind %q", j.Kind)
	}
}

func applySort(s *SortStep, rows []value.Value) ([]value.Value, error) {
	top, err := toValues(s.Top)
	if err != nil {
		return nil, fmt.Errorf("top: %w", err)
	}
	bottom, err := toValues(s.Bottom)
	if err != nil {
		return nil, fmt.Errorf("bottom: %w", err)
	}
	return records.SortByFieldPinned(rows, s.Field, s.Order != "desc", top, bottom), nil
}

func toValues(raw []any) ([]value.Value, error) {
	out := make([]value.Value, len(raw))
	for i, elem := range raw {
		v, err := value.FromAny(elem)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Check compares rows with an expectation and returns one message per
// mismatch. A nil Expect always passes.
func Check(exp *Expect, rows []value.Value) []string {
	if exp == nil {
		return nil
	}
	var errs []string

	if exp.Count != nil && *exp.Count != len(rows) {
		errs = append(errs, fmt.Sprintf("expected %d rows, got %d", *exp.Count, len(rows)))
	}

	if exp.Rows == nil {
		return errs
	}
	want, err := toValues(exp.Rows)
	if err != nil {
		return append(errs, fmt.Sprintf("expect.rows: %v", err))
	}
	if len(want) != len(rows) {
		errs = append(errs, fmt.Sprintf("expected %d rows, got %d", len(want), len(rows)))
	}

	opts := deep.Options{ExistsInBothOnly: exp.ExistsInBothOnly, EmptyAsUndefined: exp.EmptyAsUndefined}
	for i := 0; i < min(len(want), len(rows)); i++ {
		if !deep.EqualsWith(want[i], rows[i], opts) {
			errs = append(errs, fmt.Sprintf("row %d: expected %s, got %s", i, render(want[i]), render(rows[i])))
		}
	}
	return errs
}

func render(v value.Value) string {
	data, err := value.Marshal(v)
	if err != nil {
		return value.ToString(v)
	}
	return string(data)
}
