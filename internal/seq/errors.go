package seq

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is wrapped by every IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an index outside the bounds of a sequence.
type IndexError struct {
	// Op is the operation that rejected the index (e.g. "move").
	Op string

	// Index is the offending index.
	Index int

	// Len is the length of the sequence at the time of the call.
	Len int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0,%d)", e.Op, e.Index, e.Len)
}

// Unwrap lets errors.Is match ErrIndexOutOfRange.
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// IsIndexError returns true if err is or wraps an IndexError.
func IsIndexError(err error) bool {
	var ie *IndexError
	return errors.As(err, &ie)
}
