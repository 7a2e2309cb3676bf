// Package common defines sentinel errors and small helpers shared by every
// layer of srvtrack. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Rejections caused by the current inventory state.
	ErrorDuplicateIdentifier = errors.New("duplicate identifier")
	ErrorCapacityExceeded    = errors.New("location capacity exceeded")
	ErrorReferentialConflict = errors.New("entity is still referenced")

	// Malformed input shape.
	ErrorValidation = errors.New("validation error")

	// Infrastructure errors (durable backend unreachable).
	ErrorConnectionFailure = errors.New("storage connection failure")

	// Anything else the caller cannot act on.
	ErrorInternal = errors.New("internal error")
)
