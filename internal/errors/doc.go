// Package apperrors defines structured application error types and exit
// codes, allowing for a clear distinction between error classes
// (configuration, input/output) and for carrying the underlying cause.
//
// The calculator itself never fails; these errors only come from the
// command-line shell around it.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Wrapping types implement Unwrap() to support errors.Is() and errors.As().
package apperrors
