package pipeline

// Pipeline is a declarative record transformation.
// It names its record sources, picks one as the input and applies the
// steps to it in order. An optional Expect block turns it into a test.
type Pipeline struct {
	// Name uniquely identifies this pipeline (used for golden files).
	Name string `yaml:"name" validate:"required"`

	// Description explains what the pipeline builds.
	Description string `yaml:"description,omitempty"`

	// Sources maps a source name to a loader reference ("file#selector").
	// Relative paths resolve against the pipeline file's directory.
	Sources map[string]string `yaml:"sources" validate:"required,min=1,dive,keys,required,endkeys,required"`

	// Input is the source the steps start from.
	Input string `yaml:"input" validate:"required"`

	// Steps run in order; each holds exactly one operation.
	Steps []Step `yaml:"steps" validate:"dive"`

	// Expect, when present, is checked against the final rows.
	Expect *Expect `yaml:"expect,omitempty" validate:"omitempty"`
}

// Step is one operation. Exactly one field must be set.
type Step struct {
	Join     *JoinStep      `yaml:"join,omitempty" validate:"omitempty"`
	Sort     *SortStep      `yaml:"sort,omitempty" validate:"omitempty"`
	Group    *GroupStep     `yaml:"group,omitempty" validate:"omitempty"`
	Distinct *DistinctStep  `yaml:"distinct,omitempty" validate:"omitempty"`
	Flat     *FlatStep      `yaml:"flat,omitempty" validate:"omitempty"`
	Exclude  *ExcludeStep   `yaml:"exclude,omitempty" validate:"omitempty"`
	Remove   map[string]any `yaml:"remove,omitempty"`
	Take     *int           `yaml:"take,omitempty" validate:"omitempty,gte=0"`
	Offset   *int           `yaml:"offset,omitempty" validate:"omitempty,gte=0"`
}

// Join kinds.
const (
	JoinInner = "inner"
	JoinLeft  = "left"
	JoinRight = "right"
	JoinFull  = "full"
	JoinCross = "cross"
)

// Join projections.
const (
	ProjectMerge = "merge"
	ProjectPair  = "pair"
)

// JoinStep joins the current rows (source side) with another source
// (target side).
type JoinStep struct {
	// With names the target source.
	With string `yaml:"with" validate:"required"`

	// Kind is one of inner, left, right, full, cross.
	Kind string `yaml:"kind" validate:"required,oneof=inner left right full cross"`

	// On maps source field names to target field names; all pairs must
	// be loosely equal. Ignored for cross joins.
	On map[string]string `yaml:"on,omitempty"`

	// Project is merge (default) or pair.
	Project string `yaml:"project,omitempty" validate:"omitempty,oneof=merge pair"`

	// Prefix is prepended to target field names by the merge projection.
	Prefix string `yaml:"prefix,omitempty"`
}

// SortStep sorts by one field and pins values to the ends.
type SortStep struct {
	Field  string `yaml:"field" validate:"required"`
	Order  string `yaml:"order,omitempty" validate:"omitempty,oneof=asc desc"`
	Top    []any  `yaml:"top,omitempty"`
	Bottom []any  `yaml:"bottom,omitempty"`
}

// GroupStep groups by a field into {key: ..., items: [...]} rows.
type GroupStep struct {
	By    string `yaml:"by" validate:"required"`
	Key   string `yaml:"key,omitempty"`
	Items string `yaml:"items,omitempty"`
}

// DistinctStep deduplicates by a field, or by the row's canonical content
// when Field is empty.
type DistinctStep struct {
	Field string `yaml:"field,omitempty"`
}

// FlatStep replaces the rows with the concatenation of an array field.
type FlatStep struct {
	Field string `yaml:"field" validate:"required"`
}

// ExcludeStep drops rows whose SourceKey appears among the TargetKey
// values of another source.
type ExcludeStep struct {
	From      string `yaml:"from" validate:"required"`
	SourceKey string `yaml:"source_key" validate:"required"`
	TargetKey string `yaml:"target_key" validate:"required"`
}

// Expect describes the expected output of a pipeline.
type Expect struct {
	// Count, when set, is the exact number of rows.
	Count *int `yaml:"count,omitempty" validate:"omitempty,gte=0"`

	// Rows, when set, are compared with the output row by row.
	Rows []any `yaml:"rows,omitempty"`

	// ExistsInBothOnly compares only the fields the expected row lists;
	// extra output fields are ignored.
	ExistsInBothOnly bool `yaml:"exists_in_both_only,omitempty"`

	// EmptyAsUndefined treats any two falsy values as equal.
	EmptyAsUndefined bool `yaml:"empty_as_undefined,omitempty"`
}
