package colony

import "errors"

// Error taxonomy. Every error is local and recoverable; callers match with errors.Is.
var (
	// ErrInvalidSelection is returned for malformed requests such as breeding
	// without two distinct parents or an unknown experiment type.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrCapacityExceeded is returned when the colony has no room for a new individual.
	ErrCapacityExceeded = errors.New("colony capacity exceeded")

	// ErrNotFound is returned when an id is absent from the colony, catalog or habitat list.
	ErrNotFound = errors.New("not found")
)
