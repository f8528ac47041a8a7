package strategy

import (
	"github.com/vadiminshakov/atd/internal/domain"
)

// Hodl buys once and holds. It takes no parameters.
type Hodl struct {
	base
}

// NewHodl returns a Hodl strategy for pair.
func NewHodl(pair domain.Pair, monitors monitors, notifier notifier) (*Hodl, error) {
	b, err := newBase(domain.StrategyHodl, pair, monitors, notifier)
	if err != nil {
		return nil, err
	}
	return &Hodl{base: b}, nil
}
