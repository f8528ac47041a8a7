package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnrecognizedSymbol is matched by every UnrecognizedSymbolError.
	ErrUnrecognizedSymbol = errors.New("unrecognized symbol")
	// ErrMissingQuantity is matched by every MissingQuantityError.
	ErrMissingQuantity = errors.New("missing quantity specification")
)

// UnrecognizedSymbolError is returned when a configuration key names
// no known market, exchange or strategy.
type UnrecognizedSymbolError struct {
	Section string
	Key     string
}

func (e *UnrecognizedSymbolError) Error() string {
	return fmt.Sprintf("%s: %s is not a valid key", e.Section, e.Key)
}

// Is reports whether target is ErrUnrecognizedSymbol.
func (e *UnrecognizedSymbolError) Is(target error) bool {
	return target == ErrUnrecognizedSymbol
}

// MissingQuantityError is returned when a quantity fragment has neither
// fixed_amount nor balance_percentage.
type MissingQuantityError struct {
	// Fragment is the offending document fragment, rendered for diagnostics.
	Fragment string
}

func (e *MissingQuantityError) Error() string {
	return fmt.Sprintf("%s: fixed_amount or balance_percentage required in configuration", e.Fragment)
}

// Is reports whether target is ErrMissingQuantity.
func (e *MissingQuantityError) Is(target error) bool {
	return target == ErrMissingQuantity
}
