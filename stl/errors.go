package stl

import "errors"

// Every error returned by the importer wraps exactly one of these (a short
// attribute field wraps both ErrAttribute and ErrTruncated). Test with errors.Is.
var (
	// ErrOpen is returned when the source file cannot be opened for reading.
	ErrOpen = errors.New("stl: cannot open file")
	// ErrTruncated is returned when a fixed-size field is cut short.
	ErrTruncated = errors.New("stl: truncated file")
	// ErrAttribute is returned when a triangle's attribute field is non-zero or unreadable.
	ErrAttribute = errors.New("stl: invalid triangle attribute")
	// ErrAlloc is returned when the triangle count exceeds what the importer is allowed to allocate.
	ErrAlloc = errors.New("stl: triangle buffers too large")
)
