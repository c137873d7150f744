// Package metrics exposes Prometheus counters describing calculator activity:
// evaluations per strategy, token outcomes and empty inputs.
package metrics
