// Package logging provides a unified logging interface for reducecalc.
// It abstracts the underlying logging implementation, allowing consistent logging
// across components. The backend is zerolog; a no-op logger serves callers
// that must stay silent, such as the TUI.
package logging
