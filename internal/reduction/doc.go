// Package reduction defines the pluggable strategies that fold a sequence of
// numbers into one value, and a registry to select them by name.
//
// Strategies are stateless. The empty-sequence result of each one is its
// mathematical identity (0 for Sum, 1 for Product), never a special case.
package reduction
