// Package cli implements the command-line presentation layer: text and JSON
// result rendering, the batch progress spinner, the interactive REPL and
// shell completion scripts.
package cli
