// Package domain defines core data structures used throughout the configuration interpreter.
package domain

import (
	"cmp"
	"fmt"
)

// Pair cryptocurrency trading pair. Symbols keep the case they were configured with.
type Pair struct {
	// Base base currency symbol.
	Base string
	// Quote quote currency symbol.
	Quote string
}

// String returns the string representation.
func (p Pair) String() string {
	return fmt.Sprintf("%s_%s", p.Base, p.Quote)
}

// Symbol returns the concatenated symbol representation.
func (p Pair) Symbol() string {
	return p.Base + p.Quote
}

// Compare orders pairs lexicographically on (Base, Quote).
func (p Pair) Compare(other Pair) int {
	if c := cmp.Compare(p.Base, other.Base); c != 0 {
		return c
	}
	return cmp.Compare(p.Quote, other.Quote)
}

// Less reports whether p sorts before other.
func (p Pair) Less(other Pair) bool {
	return p.Compare(other) < 0
}
