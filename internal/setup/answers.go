package setup

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/atd/config"
	"github.com/vadiminshakov/atd/internal"
	"github.com/vadiminshakov/atd/internal/domain"
)

// QuantityAnswer is an amount typed into the wizard.
type QuantityAnswer struct {
	Amount    string
	IsPercent bool
}

// Answers collects everything the wizard asks for.
type Answers struct {
	KrakenAPIKey    string
	KrakenAPISecret string
	AffiliateKey    string

	Pair          string
	MonitorPeriod string
	Strategy      domain.StrategyKind

	// BuyLowAndHodl
	Low               string
	TradePeriod       string
	StatsPeriod       string
	BalancePercentage string

	// DollarCostAveraging
	Date string

	// DollarCostAveraging uses Buy only, SmallChanges uses both.
	Buy  QuantityAnswer
	Sell QuantityAnswer
}

type strategyEntry struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params,omitempty"`
}

type monitorEntry struct {
	Period     *yaml.Node `yaml:"period"`
	Pairs      [][]string `yaml:"pairs"`
	Currencies []string   `yaml:"currencies"`
}

type document struct {
	Markets    map[string]map[string]string          `yaml:"markets,omitempty"`
	Exchanges  map[string]map[string]string          `yaml:"exchanges,omitempty"`
	Monitor    monitorEntry                          `yaml:"monitor"`
	Strategies map[string]map[string][]strategyEntry `yaml:"strategies"`
}

// Render builds the settings document and checks that it produces a topology.
func (a Answers) Render() ([]byte, error) {
	pair, err := parsePair(a.Pair)
	if err != nil {
		return nil, err
	}

	period, err := number(a.MonitorPeriod, "monitor period")
	if err != nil {
		return nil, err
	}

	entry, err := a.strategyEntry()
	if err != nil {
		return nil, err
	}

	doc := document{
		Monitor: monitorEntry{
			Period:     period,
			Pairs:      [][]string{{pair.Base, pair.Quote}},
			Currencies: []string{pair.Base, pair.Quote},
		},
		Strategies: map[string]map[string][]strategyEntry{
			pair.Base: {pair.Quote: {entry}},
		},
	}
	if a.KrakenAPIKey != "" || a.KrakenAPISecret != "" {
		doc.Markets = map[string]map[string]string{
			domain.MarketKraken.String(): {"apiKey": a.KrakenAPIKey, "apiSecret": a.KrakenAPISecret},
		}
	}
	if a.AffiliateKey != "" {
		doc.Exchanges = map[string]map[string]string{
			domain.ExchangeShapeshift.String(): {"affiliatePrivateKey": a.AffiliateKey},
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate yaml")
	}

	parsed, err := config.Parse(data)
	if err != nil {
		return nil, err
	}
	if _, err := internal.BuildTopology(parsed, zap.NewNop()); err != nil {
		return nil, errors.Wrap(err, "generated configuration is invalid")
	}

	return data, nil
}

func (a Answers) strategyEntry() (strategyEntry, error) {
	entry := strategyEntry{Name: a.Strategy.String()}

	switch a.Strategy {
	case domain.StrategyHodl:
	case domain.StrategyBuyLowAndHodl:
		low, err := number(a.Low, "low")
		if err != nil {
			return entry, err
		}
		tradePeriod, err := number(a.TradePeriod, "trade period")
		if err != nil {
			return entry, err
		}
		statsPeriod, err := number(a.StatsPeriod, "stats period")
		if err != nil {
			return entry, err
		}
		percentage, err := number(a.BalancePercentage, "balance percentage")
		if err != nil {
			return entry, err
		}
		entry.Params = map[string]any{
			"low":          low,
			"trade_period": tradePeriod,
			"stats_period": statsPeriod,
			"quote":        map[string]any{"balance_percentage": percentage},
		}
	case domain.StrategyDollarCostAveraging:
		buy, err := a.Buy.fragment()
		if err != nil {
			return entry, err
		}
		entry.Params = map[string]any{
			"date": a.Date,
			"buy":  map[string]any{"quote": buy},
		}
	case domain.StrategySmallChanges:
		buy, err := a.Buy.fragment()
		if err != nil {
			return entry, err
		}
		sell, err := a.Sell.fragment()
		if err != nil {
			return entry, err
		}
		entry.Params = map[string]any{
			"buy":  map[string]any{"base": buy},
			"sell": map[string]any{"base": sell},
		}
	default:
		return entry, &domain.UnrecognizedSymbolError{Section: config.SectionStrategies, Key: a.Strategy.String()}
	}

	return entry, nil
}

func (q QuantityAnswer) fragment() (map[string]any, error) {
	amount, err := number(q.Amount, "amount")
	if err != nil {
		return nil, err
	}
	if q.IsPercent {
		return map[string]any{"balance_percentage": amount}, nil
	}
	return map[string]any{"fixed_amount": amount}, nil
}

// number renders s as an untagged scalar so it reads back as int or float.
func number(s, field string) (*yaml.Node, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%s must be a valid number", field)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: d.String()}, nil
}

func parsePair(s string) (domain.Pair, error) {
	parts := strings.Split(strings.TrimSpace(s), "_")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return domain.Pair{}, fmt.Errorf("invalid format: must be BASE_QUOTE (e.g. BTC_USD)")
	}
	return domain.Pair{Base: parts[0], Quote: parts[1]}, nil
}
