// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrValidation indicates malformed or incomplete input: missing dimension
// coverage, out-of-range scores, pilot gate failures, bad week ordering.
var ErrValidation = errors.New("validation failed")

// ErrState indicates an operation that is illegal in the entity's current
// lifecycle state, such as rescoring a completed assessment or requesting
// an illegal pilot transition.
var ErrState = errors.New("illegal state")

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a concurrent modification conflict (optimistic locking).
var ErrConflict = errors.New("conflict: resource was modified by another request")
