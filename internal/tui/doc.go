// Package tui implements the full-screen live calculator built on
// bubbletea. The result is recomputed as the user types.
package tui
