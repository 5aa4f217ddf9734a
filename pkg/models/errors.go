package models

import "errors"

var (
	// ErrPathNotFound indicates an input path (or an implied file inside a
	// directory) does not exist
	ErrPathNotFound = errors.New("no such file or directory")

	// ErrUnreadableFile indicates a file could not be opened or read
	ErrUnreadableFile = errors.New("file is not readable")

	// ErrCycleDetected indicates directory recursion revisited a real path
	ErrCycleDetected = errors.New("directory cycle detected")

	// ErrInvalidComparisonMode indicates the input types cannot be reconciled
	ErrInvalidComparisonMode = errors.New("invalid comparison mode")

	// ErrSinkFinalized indicates a report sink was used after Finalize
	ErrSinkFinalized = errors.New("report already finalized")
)

// PathError records an error and the path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Op == "" {
		return e.Path + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
