// Package calculator turns delimiter-separated text into a single number.
//
// The pipeline is: split on one separator character, drop blank tokens,
// parse the rest as floating point (non-numbers count as 0), and fold the
// values with a reduction.Strategy. The policy is deliberately permissive:
// no input makes Calculate fail.
package calculator
