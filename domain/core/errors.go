package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)
	ErrFileNotFound    = fmt.Errorf("%w: file", ErrNotFound)

	ErrInvalidID = errors.New("invalid identifier")

	// Load errors, raised by table loaders before any profiling happens
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMalformedInput    = errors.New("malformed input")
	ErrInvalidTable      = errors.New("invalid table")

	// Render errors
	ErrBindingMissing   = errors.New("required chart binding missing")
	ErrColumnNotFound   = errors.New("column not found")
	ErrUnknownChartType = errors.New("unknown chart type")
	ErrCompute          = errors.New("chart computation failed")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewLoadError(format string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrMalformedInput, format, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsLoadError reports whether err came from a loader rejecting its input
func IsLoadError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrInvalidTable)
}

// IsBindingError reports whether err is a chart configuration problem the
// caller can fix by editing the config.
func IsBindingError(err error) bool {
	return errors.Is(err, ErrBindingMissing) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrUnknownChartType)
}

func IsComputeError(err error) bool {
	return errors.Is(err, ErrCompute)
}
