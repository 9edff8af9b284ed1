package engine

import "errors"

var (
	// ErrPackageNotFound indicates the package file does not exist.
	ErrPackageNotFound = errors.New("package not found")

	// ErrExtractionFailed indicates the package could not be unpacked.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrMalformedEntry indicates the package's desktop entry is missing
	// or lacks a mandatory field.
	ErrMalformedEntry = errors.New("malformed desktop entry")

	// ErrIconNotFound indicates icon resolution yielded no candidate.
	ErrIconNotFound = errors.New("icon not found")
)
