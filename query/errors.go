package query

import "errors"

// ErrAssociationNotFound is returned when an association name does not
// resolve on a model.
var ErrAssociationNotFound = errors.New("association not found")

// ErrPathNotJoined is returned when a condition names an association path
// that the relation does not eagerly include.
var ErrPathNotJoined = errors.New("association path not joined")
