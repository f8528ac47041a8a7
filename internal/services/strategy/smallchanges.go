package strategy

import (
	"github.com/vadiminshakov/atd/internal/domain"
)

// SmallChanges trades small price oscillations of the base currency.
type SmallChanges struct {
	base
	buyQuantity  domain.Quantity
	sellQuantity domain.Quantity
}

// NewSmallChanges returns a configured SmallChanges strategy.
func NewSmallChanges(pair domain.Pair, monitors monitors, notifier notifier,
	buyQuantity, sellQuantity domain.Quantity) (*SmallChanges, error) {
	b, err := newBase(domain.StrategySmallChanges, pair, monitors, notifier)
	if err != nil {
		return nil, err
	}

	return &SmallChanges{
		base:         b,
		buyQuantity:  buyQuantity,
		sellQuantity: sellQuantity,
	}, nil
}

// BuyQuantity returns the base amount bought on each dip.
func (s *SmallChanges) BuyQuantity() domain.Quantity {
	return s.buyQuantity
}

// SellQuantity returns the base amount sold on each rise.
func (s *SmallChanges) SellQuantity() domain.Quantity {
	return s.sellQuantity
}
