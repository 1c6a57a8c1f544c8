package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports one problem in a pipeline definition.
type ValidationError struct {
	// Field is the YAML path of the offending field, e.g. "steps[1].join.kind".
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one definition.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// IsValidationError returns true if err is or wraps ValidationErrors or a
// single ValidationError.
func IsValidationError(err error) bool {
	var many ValidationErrors
	if errors.As(err, &many) {
		return true
	}
	var one *ValidationError
	return errors.As(err, &one)
}

// StepError reports a failure while executing one step.
type StepError struct {
	Index int
	Op    string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("steps[%d] (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
