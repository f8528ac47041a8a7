package strategy

import (
	"github.com/vadiminshakov/atd/internal/domain"
)

// DollarCostAveraging buys a fixed quantity of the quote currency on a schedule.
// Date is kept verbatim; its format is interpreted when the strategy runs.
type DollarCostAveraging struct {
	base
	date        string
	buyQuantity domain.Quantity
}

// NewDollarCostAveraging returns a configured DollarCostAveraging strategy.
func NewDollarCostAveraging(pair domain.Pair, monitors monitors, notifier notifier,
	date string, buyQuantity domain.Quantity) (*DollarCostAveraging, error) {
	b, err := newBase(domain.StrategyDollarCostAveraging, pair, monitors, notifier)
	if err != nil {
		return nil, err
	}

	return &DollarCostAveraging{
		base:        b,
		date:        date,
		buyQuantity: buyQuantity,
	}, nil
}

// Date returns the configured schedule.
func (s *DollarCostAveraging) Date() string {
	return s.date
}

// BuyQuantity returns how much quote currency each buy spends.
func (s *DollarCostAveraging) BuyQuantity() domain.Quantity {
	return s.buyQuantity
}
