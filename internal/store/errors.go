package store

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidGrade is returned when a grade is not one of the accepted letter grades.
	ErrInvalidGrade = errors.New("invalid grade")
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("student not found")
	// ErrMalformed is returned by a strict backend when persisted data does not decode.
	ErrMalformed = errors.New("malformed data file")
	// ErrIDExhausted is returned by Add once the highest possible id has been assigned.
	ErrIDExhausted = errors.New("id space exhausted")
)

// PersistenceError reports that the backing storage could not be written. The
// in-memory state is still correct when a store operation returns one; storage
// catches up on the next successful write.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// MalformedError is returned by a strict FileBackend. It matches ErrMalformed and
// unwraps to the decode failure.
type MalformedError struct {
	Path string
	Line int
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrMalformed, e.Err)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

func (e *MalformedError) Unwrap() error { return e.Err }
