package strategy

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/atd/internal/domain"
)

// BuyLowAndHodlParams configures BuyLowAndHodl.
type BuyLowAndHodlParams struct {
	// Low price threshold below which the strategy buys.
	Low decimal.Decimal
	// BalancePercentage share of the quote balance spent per buy.
	BalancePercentage decimal.Decimal
	// TradePeriod how often the strategy evaluates a trade.
	TradePeriod time.Duration
	// StatsPeriod window used for price statistics.
	StatsPeriod time.Duration
}

// BuyLowAndHodl buys when the price falls below Low and holds the position.
type BuyLowAndHodl struct {
	base
	params BuyLowAndHodlParams
}

// NewBuyLowAndHodl returns a configured BuyLowAndHodl strategy.
func NewBuyLowAndHodl(pair domain.Pair, monitors monitors, notifier notifier, params BuyLowAndHodlParams) (*BuyLowAndHodl, error) {
	if params.TradePeriod <= 0 {
		return nil, fmt.Errorf("trade period must be positive, got %s", params.TradePeriod)
	}
	if params.StatsPeriod <= 0 {
		return nil, fmt.Errorf("stats period must be positive, got %s", params.StatsPeriod)
	}

	b, err := newBase(domain.StrategyBuyLowAndHodl, pair, monitors, notifier)
	if err != nil {
		return nil, err
	}

	return &BuyLowAndHodl{base: b, params: params}, nil
}

// Params returns the configured parameters.
func (s *BuyLowAndHodl) Params() BuyLowAndHodlParams {
	return s.params
}
