package internal

import (
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/atd/config"
	"github.com/vadiminshakov/atd/internal/domain"
	"github.com/vadiminshakov/atd/internal/events"
	"github.com/vadiminshakov/atd/internal/monitor"
	"github.com/vadiminshakov/atd/internal/services/strategy"
)

// StrategyCatalog maps every configured pair to its strategies in document order.
type StrategyCatalog map[domain.Pair][]strategy.Strategy

// Pairs returns the configured pairs sorted by base, then quote.
func (c StrategyCatalog) Pairs() []domain.Pair {
	pairs := make([]domain.Pair, 0, len(c))
	for p := range c {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, domain.Pair.Compare)
	return pairs
}

// Len returns the number of strategies across all pairs.
func (c StrategyCatalog) Len() int {
	n := 0
	for _, list := range c {
		n += len(list)
	}
	return n
}

// NewStrategies builds the strategies section:
//
//	strategies:
//	  <base>:
//	    <quote>:
//	      - name: <strategy>
//	        params: {...}
//
// Strategy names are case-insensitive. The monitors and the channel are
// handed to every strategy and must not be nil. Any error discards the
// whole catalog.
func NewStrategies(doc *config.Document, monitors *monitor.Registry, ch *events.Channel, logger *zap.Logger) (StrategyCatalog, error) {
	if monitors == nil {
		return nil, errors.New("monitor registry is required")
	}
	if ch == nil {
		return nil, errors.New("notification channel is required")
	}

	f := newStrategyFactory(logger, monitors, ch)
	return f.createStrategies(doc.Section(config.SectionStrategies))
}

// strategyFactory creates trading strategies.
type strategyFactory struct {
	logger   *zap.Logger
	monitors *monitor.Registry
	notifier *events.Channel
}

// newStrategyFactory creates a new strategy factory.
func newStrategyFactory(logger *zap.Logger, monitors *monitor.Registry, ch *events.Channel) *strategyFactory {
	return &strategyFactory{logger: logger, monitors: monitors, notifier: ch}
}

func (f *strategyFactory) createStrategies(section config.Node) (StrategyCatalog, error) {
	bases, err := section.Entries()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read strategies")
	}

	catalog := make(StrategyCatalog)
	for _, base := range bases {
		quotes, err := base.Value.Entries()
		if err != nil {
			return nil, err
		}

		for _, quote := range quotes {
			specs, err := quote.Value.Items()
			if err != nil {
				return nil, err
			}

			pair := domain.Pair{Base: base.Key, Quote: quote.Key}
			for _, spec := range specs {
				s, err := f.createTradingStrategy(pair, spec)
				if err != nil {
					return nil, errors.Wrapf(err, "failed to create strategy for %s", pair.String())
				}

				catalog[pair] = append(catalog[pair], s)
				f.logger.Info("strategy initialized",
					zap.Stringer("pair", pair),
					zap.String("strategy", s.Kind().Title()),
					zap.Stringer("id", s.ID()))
			}
		}
	}

	return catalog, nil
}

// createTradingStrategy creates a trading strategy instance from one list item.
func (f *strategyFactory) createTradingStrategy(pair domain.Pair, spec config.Node) (strategy.Strategy, error) {
	name, err := spec.Key("name").Text()
	if err != nil {
		return nil, err
	}

	kind, err := domain.ParseStrategyKind(name)
	if err != nil {
		return nil, err
	}

	params := spec.Key("params")
	switch kind {
	case domain.StrategyHodl:
		return f.createHodl(pair)
	case domain.StrategyBuyLowAndHodl:
		return f.createBuyLowAndHodl(pair, params)
	case domain.StrategyDollarCostAveraging:
		return f.createDollarCostAveraging(pair, params)
	case domain.StrategySmallChanges:
		return f.createSmallChanges(pair, params)
	default:
		return nil, &domain.UnrecognizedSymbolError{Section: config.SectionStrategies, Key: name}
	}
}

// createHodl creates a Hodl strategy.
func (f *strategyFactory) createHodl(pair domain.Pair) (strategy.Strategy, error) {
	s, err := strategy.NewHodl(pair, f.monitors, f.notifier)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Hodl strategy")
	}
	return s, nil
}

// createBuyLowAndHodl reads low, trade_period, stats_period and quote.balance_percentage.
func (f *strategyFactory) createBuyLowAndHodl(pair domain.Pair, params config.Node) (strategy.Strategy, error) {
	low, err := params.Key("low").Decimal()
	if err != nil {
		return nil, err
	}
	tradePeriod, err := params.Key("trade_period").Seconds()
	if err != nil {
		return nil, err
	}
	statsPeriod, err := params.Key("stats_period").Seconds()
	if err != nil {
		return nil, err
	}
	balancePercentage, err := params.Key("quote").Key("balance_percentage").Decimal()
	if err != nil {
		return nil, err
	}

	s, err := strategy.NewBuyLowAndHodl(pair, f.monitors, f.notifier, strategy.BuyLowAndHodlParams{
		Low:               low,
		BalancePercentage: balancePercentage,
		TradePeriod:       tradePeriod,
		StatsPeriod:       statsPeriod,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create BuyLowAndHodl strategy")
	}

	return s, nil
}

// createDollarCostAveraging reads buy.quote and date.
func (f *strategyFactory) createDollarCostAveraging(pair domain.Pair, params config.Node) (strategy.Strategy, error) {
	buyQuantity, err := config.ParseQuantity(params.Key("buy").Key("quote"))
	if err != nil {
		return nil, err
	}
	date, err := params.Key("date").Text()
	if err != nil {
		return nil, err
	}

	s, err := strategy.NewDollarCostAveraging(pair, f.monitors, f.notifier, date, buyQuantity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create DollarCostAveraging strategy")
	}

	return s, nil
}

// createSmallChanges reads buy.base and sell.base.
func (f *strategyFactory) createSmallChanges(pair domain.Pair, params config.Node) (strategy.Strategy, error) {
	buyQuantity, err := config.ParseQuantity(params.Key("buy").Key("base"))
	if err != nil {
		return nil, err
	}
	sellQuantity, err := config.ParseQuantity(params.Key("sell").Key("base"))
	if err != nil {
		return nil, err
	}

	s, err := strategy.NewSmallChanges(pair, f.monitors, f.notifier, buyQuantity, sellQuantity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SmallChanges strategy")
	}

	return s, nil
}
