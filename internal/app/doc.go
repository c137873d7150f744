// Package app wires configuration, the calculator and the presentation
// layers together and runs the selected mode: batch evaluation, the
// interactive prompt, the live calculator or completion generation.
package app
