//go:generate mockgen -source=strategy.go -destination=../mocks/mock_strategy.go -package=mocks

package reduction

// Strategy folds an ordered sequence of numbers into a single value.
// Implementations must be stateless and safe for concurrent use, so a single
// instance can be shared read-only between any number of calculators.
type Strategy interface {
	// Operate reduces numbers to one result. Any finite sequence, including an
	// empty one, is valid input.
	Operate(numbers []float64) float64

	// Name returns the stable identifier of the strategy (e.g., "sum").
	// Used for logging, metrics and output.
	Name() string
}

// Sum adds every number of the sequence. The sum of an empty sequence is 0.
type Sum struct{}

// Name returns "sum".
func (Sum) Name() string { return "sum" }

// Operate returns the arithmetic sum of numbers.
func (Sum) Operate(numbers []float64) float64 {
	var total float64
	for _, n := range numbers {
		total += n
	}
	return total
}

// Product multiplies every number of the sequence, folding left to right with
// an accumulator starting at 1. The product of an empty sequence is therefore 1.
type Product struct{}

// Name returns "product".
func (Product) Name() string { return "product" }

// Operate returns the arithmetic product of numbers.
func (Product) Operate(numbers []float64) float64 {
	result := 1.0
	for _, n := range numbers {
		result *= n
	}
	return result
}

// Default returns the strategy used when none is configured.
func Default() Strategy {
	return Sum{}
}
