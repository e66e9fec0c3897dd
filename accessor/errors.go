package accessor

import (
	"errors"
	"fmt"
)

var (
	// ErrRecordNotFound is matched by every *RecordNotFoundError.
	ErrRecordNotFound = errors.New("record not found")
	// ErrNotImplemented is returned by backends that do not support an
	// operation.
	ErrNotImplemented = errors.New("record accessor operation not implemented")
	// ErrUnknownFilter is returned in strict mode for undeclared filters.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrUnknownRelationship is returned when traversing a relationship the
	// resource does not declare.
	ErrUnknownRelationship = errors.New("unknown relationship")
)

// RecordNotFoundError is returned by FindByKey when no record has the key.
type RecordNotFoundError struct {
	Key any
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("record identified by %v could not be found", e.Key)
}

func (e *RecordNotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}
