package catalog

import "errors"

var (
	// ErrNotFound is returned when no project has the requested id.
	ErrNotFound = errors.New("project not found")
	// ErrInvalidCategory is returned for a category id outside the taxonomy.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrMalformedRecord is returned when a record fails validation at load or update.
	ErrMalformedRecord = errors.New("malformed project record")
	// ErrDuplicateID is returned when two projects or two categories share an id.
	ErrDuplicateID = errors.New("duplicate id")
)
