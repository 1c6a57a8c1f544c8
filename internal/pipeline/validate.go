package pipeline

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their YAML names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// Validate checks a pipeline definition: struct tags first, then the
// cross-field rules tags cannot express (one operation per step, source
// references that resolve). All problems are returned together as
// ValidationErrors.
func Validate(p *Pipeline) error {
	v := &checker{}

	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			v.add(fieldPath(fe.Namespace()), "%s", describe(fe))
		}
	}

	v.checkSources(p)
	for i := range p.Steps {
		v.checkStep(p, i)
	}

	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

// checker accumulates problems during traversal.
type checker struct {
	errs ValidationErrors
}

func (v *checker) add(field, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v *checker) checkSources(p *Pipeline) {
	if p.Input != "" && len(p.Sources) > 0 {
		if _, ok := p.Sources[p.Input]; !ok {
			v.add("input", "unknown source %q (have %s)", p.Input, sourceNames(p))
		}
	}
}

func (v *checker) checkStep(p *Pipeline, i int) {
	step := p.Steps[i]
	path := fmt.Sprintf("steps[%d]", i)

	ops := step.ops()
	switch len(ops) {
	case 0:
		v.add(path, "no operation set")
		return
	case 1:
	default:
		v.add(path, "exactly one operation allowed, got %s", strings.Join(ops, ", "))
		return
	}

	switch {
	case step.Join != nil:
		v.checkRef(p, path+".join.with", step.Join.With)
		if step.Join.Kind != JoinCross && len(step.Join.On) == 0 {
			v.add(path+".join.on", "required for %s joins", step.Join.Kind)
		}
		if step.Join.Kind == JoinCross && len(step.Join.On) > 0 {
			v.add(path+".join.on", "not allowed for cross joins")
		}
	case step.Exclude != nil:
		v.checkRef(p, path+".exclude.from", step.Exclude.From)
	}
}

func (v *checker) checkRef(p *Pipeline, field, name string) {
	if name == "" {
		return
	}
	if _, ok := p.Sources[name]; !ok {
		v.add(field, "unknown source %q (have %s)", name, sourceNames(p))
	}
}

// ops lists the operations set on a step, in field order.
func (s Step) ops() []string {
	var ops []string
	if s.Join != nil {
		ops = append(ops, "join")
	}
	if s.Sort != nil {
		ops = append(ops, "sort")
	}
	if s.Group != nil {
		ops = append(ops, "group")
	}
	if s.Distinct != nil {
		ops = append(ops, "distinct")
	}
	if s.Flat != nil {
		ops = append(ops, "flat")
	}
	if s.Exclude != nil {
		ops = append(ops, "exclude")
	}
	if s.Remove != nil {
		ops = append(ops, "remove")
	}
	if s.Take != nil {
		ops = append(ops, "take")
	}
	if s.Offset != nil {
		ops = append(ops, "offset")
	}
	return ops
}

// op returns the single operation name of a validated step.
func (s Step) op() string {
	if ops := s.ops(); len(ops) > 0 {
		return ops[0]
	}
	return ""
}

func sourceNames(p *Pipeline) string {
	names := make([]string, 0, len(p.Sources))
	for name := range p.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return ns
	}
	return rest
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
