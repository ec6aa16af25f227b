// Package gen holds the directive-driven generators and validators that sit
// next to the sequence engine: the Builder companion generator, the
// Debug formatter generator, and the sorted-order validator. They all work
// on one shared token-level item reader; none of them does semantic
// analysis beyond the token shapes they consume.
package gen
