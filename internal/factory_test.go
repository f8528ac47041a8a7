package internal

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vadiminshakov/atd/config"
	"github.com/vadiminshakov/atd/internal/clients"
	"github.com/vadiminshakov/atd/internal/domain"
	"github.com/vadiminshakov/atd/internal/events"
	"github.com/vadiminshakov/atd/internal/monitor"
	"github.com/vadiminshakov/atd/internal/services/strategy"
)

var btcUsd = domain.Pair{Base: "BTC", Quote: "USD"}

func parseDoc(t *testing.T, input string) *config.Document {
	t.Helper()
	doc, err := config.Parse([]byte(input))
	require.NoError(t, err)
	return doc
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return zap.New(core), logs
}

func newCollaborators(t *testing.T) (*monitor.Registry, *events.Channel) {
	t.Helper()
	registry, err := monitor.NewRegistry(time.Minute, []domain.Pair{btcUsd}, nil)
	require.NoError(t, err)
	return registry, events.NewChannel(8)
}

func TestNewMarkets(t *testing.T) {
	logger, logs := newObservedLogger()
	doc := parseDoc(t, `{"markets": {"kraken": {"apiKey": "k", "apiSecret": "s"}}}`)

	markets, err := NewMarkets(doc, logger)
	require.NoError(t, err)
	require.Len(t, markets, 1)

	kraken, ok := markets["kraken"].(*clients.KrakenClient)
	require.True(t, ok)
	assert.Equal(t, "k", kraken.APIKey())
	assert.Equal(t, "s", kraken.APISecret().Reveal())

	entries := logs.FilterMessage("market initialized").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "kraken", entries[0].ContextMap()["market"])
}

func TestNewMarkets_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr error
		contains    string
	}{
		{
			name:        "Unrecognized market",
			input:       `{"markets": {"bogus": {}}}`,
			expectedErr: domain.ErrUnrecognizedSymbol,
			contains:    "bogus",
		},
		{
			name:        "Market names are case-sensitive",
			input:       `{"markets": {"Kraken": {"apiKey": "k", "apiSecret": "s"}}}`,
			expectedErr: domain.ErrUnrecognizedSymbol,
			contains:    "Kraken",
		},
		{
			name:        "Missing secret",
			input:       `{"markets": {"kraken": {"apiKey": "k"}}}`,
			expectedErr: config.ErrMissingField,
			contains:    "markets.kraken.apiSecret",
		},
		{
			name:     "Markets is a list",
			input:    `{"markets": ["kraken"]}`,
			contains: "expected mapping, got sequence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newObservedLogger()

			markets, err := NewMarkets(parseDoc(t, tt.input), logger)
			require.Error(t, err)
			assert.Nil(t, markets)
			assert.Contains(t, err.Error(), tt.contains)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
			assert.Zero(t, logs.Len())
		})
	}
}

func TestNewMarkets_CredentialsMustBeStrings(t *testing.T) {
	_, err := NewMarkets(parseDoc(t, `{"markets": {"kraken": {"apiKey": 123, "apiSecret": "s"}}}`), zap.NewNop())

	var typeErr *config.FieldTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "markets.kraken.apiKey", typeErr.Path)
	assert.Contains(t, err.Error(), "expected string, got int")

	markets, err := NewMarkets(parseDoc(t, `{"markets": {"kraken": {"apiKey": "123", "apiSecret": "s"}}}`), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "123", markets["kraken"].(*clients.KrakenClient).APIKey())
}

func TestNewMarkets_UnrecognizedCarriesKey(t *testing.T) {
	_, err := NewMarkets(parseDoc(t, `{"markets": {"bogus": {}}}`), zap.NewNop())

	var symErr *domain.UnrecognizedSymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, "bogus", symErr.Key)
}

func TestNewMarkets_NoSection(t *testing.T) {
	markets, err := NewMarkets(parseDoc(t, `{}`), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, markets)
}

func TestNewExchanges(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		hasCredentials bool
		key            string
	}{
		{name: "No exchanges section", input: `{}`},
		{name: "Empty exchanges section", input: `{"exchanges": {}}`},
		{name: "Shapeshift without key", input: `{"exchanges": {"shapeshift": {}}}`},
		{name: "Shapeshift null", input: `{"exchanges": {"shapeshift": null}}`},
		{
			name:           "Shapeshift with affiliate key",
			input:          `{"exchanges": {"shapeshift": {"affiliatePrivateKey": "X"}}}`,
			hasCredentials: true,
			key:            "X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newObservedLogger()

			exchanges, err := NewExchanges(parseDoc(t, tt.input), logger)
			require.NoError(t, err)
			require.Len(t, exchanges, 1)

			shapeshift, ok := exchanges["shapeshift"].(*clients.ShapeshiftClient)
			require.True(t, ok)
			assert.Equal(t, tt.hasCredentials, shapeshift.HasCredentials())
			assert.Equal(t, tt.key, shapeshift.AffiliatePrivateKey().Reveal())

			entries := logs.FilterMessage("exchange initialized").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.hasCredentials, entries[0].ContextMap()["affiliate"])
		})
	}
}

func TestNewExchanges_Errors(t *testing.T) {
	_, err := NewExchanges(parseDoc(t, `{"exchanges": {"binance": {}}}`), zap.NewNop())
	require.ErrorIs(t, err, domain.ErrUnrecognizedSymbol)
	assert.Contains(t, err.Error(), "binance")

	_, err = NewExchanges(parseDoc(t, `{"exchanges": {"shapeshift": {"affiliatePrivateKey": ["a"]}}}`), zap.NewNop())
	var typeErr *config.FieldTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "exchanges.shapeshift.affiliatePrivateKey", typeErr.Path)
}

func TestNewExchanges_AffiliateKeyMustBeString(t *testing.T) {
	_, err := NewExchanges(parseDoc(t, `{"exchanges": {"shapeshift": {"affiliatePrivateKey": true}}}`), zap.NewNop())

	var typeErr *config.FieldTypeError
	require.True(t, errors.As(err, &typeErr))
	assert.Equal(t, "string", typeErr.Want)
}

func TestEnsureDefaultExchanges_KeepsConfigured(t *testing.T) {
	configured := clients.NewShapeshiftClient(clients.WithAffiliatePrivateKey("X"))
	exchanges := map[string]Exchange{"shapeshift": configured}

	ensureDefaultExchanges(exchanges)

	require.Len(t, exchanges, 1)
	assert.Same(t, configured, exchanges["shapeshift"])
}

func TestNewStrategies_Hodl(t *testing.T) {
	registry, ch := newCollaborators(t)
	logger, logs := newObservedLogger()

	catalog, err := NewStrategies(parseDoc(t, `{"strategies": {"BTC": {"USD": [{"name": "hodl"}]}}}`), registry, ch, logger)
	require.NoError(t, err)

	require.Len(t, catalog, 1)
	list := catalog[btcUsd]
	require.Len(t, list, 1)
	_, ok := list[0].(*strategy.Hodl)
	assert.True(t, ok)

	entries := logs.FilterMessage("strategy initialized").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "BTC_USD", entries[0].ContextMap()["pair"])
	assert.Equal(t, "Hodl", entries[0].ContextMap()["strategy"])
}

func TestNewStrategies_AllKinds(t *testing.T) {
	registry, ch := newCollaborators(t)
	doc := parseDoc(t, `
strategies:
  BTC:
    USD:
      - name: SmallChanges
        params:
          buy:
            base: {fixed_amount: 0.01}
          sell:
            base: {balance_percentage: 50}
      - name: HODL
      - name: buylowandhodl
        params:
          low: 9000
          trade_period: 3600
          stats_period: 86400
          quote: {balance_percentage: 10.5}
    EUR:
      - name: DollarCostAveraging
        params:
          date: "every monday"
          buy:
            quote: {fixed_amount: 100, balance_percentage: 5}
`)

	catalog, err := NewStrategies(doc, registry, ch, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, catalog, 2)
	assert.Equal(t, 4, catalog.Len())

	usd := catalog[btcUsd]
	require.Len(t, usd, 3)
	assert.Equal(t, domain.StrategySmallChanges, usd[0].Kind())
	assert.Equal(t, domain.StrategyHodl, usd[1].Kind())
	assert.Equal(t, domain.StrategyBuyLowAndHodl, usd[2].Kind())

	sc := usd[0].(*strategy.SmallChanges)
	assert.Equal(t, "0.01", sc.BuyQuantity().FixedAmount.Decimal.String())
	assert.False(t, sc.BuyQuantity().HasBalancePercentage())
	assert.Equal(t, "50", sc.SellQuantity().BalancePercentage.Decimal.String())

	bl := usd[2].(*strategy.BuyLowAndHodl)
	assert.True(t, decimal.NewFromInt(9000).Equal(bl.Params().Low))
	assert.True(t, decimal.RequireFromString("10.5").Equal(bl.Params().BalancePercentage))
	assert.Equal(t, time.Hour, bl.Params().TradePeriod)
	assert.Equal(t, 24*time.Hour, bl.Params().StatsPeriod)

	eur := catalog[domain.Pair{Base: "BTC", Quote: "EUR"}]
	require.Len(t, eur, 1)
	dca := eur[0].(*strategy.DollarCostAveraging)
	assert.Equal(t, "every monday", dca.Date())
	assert.True(t, dca.BuyQuantity().HasFixedAmount())
	assert.True(t, dca.BuyQuantity().HasBalancePercentage())

	assert.Equal(t, []domain.Pair{{Base: "BTC", Quote: "EUR"}, btcUsd}, catalog.Pairs())
}

func TestNewStrategies_PreservesOrder(t *testing.T) {
	registry, ch := newCollaborators(t)
	doc := parseDoc(t, `{"strategies": {"BTC": {"USD": [
		{"name": "SMALLCHANGES", "params": {"buy": {"base": {"fixed_amount": 1}}, "sell": {"base": {"fixed_amount": 1}}}},
		{"name": "HODL"}
	]}}}`)

	catalog, err := NewStrategies(doc, registry, ch, zap.NewNop())
	require.NoError(t, err)

	list := catalog[btcUsd]
	require.Len(t, list, 2)
	assert.Equal(t, domain.StrategySmallChanges, list[0].Kind())
	assert.Equal(t, domain.StrategyHodl, list[1].Kind())
}

func TestNewStrategies_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		nilMonitors bool
		nilChannel  bool
		expectedErr error
		contains    string
	}{
		{
			name:        "Nil monitor registry",
			input:       `{"strategies": {"BTC": {"USD": [{"name": "hodl"}]}}}`,
			nilMonitors: true,
			contains:    "monitor registry is required",
		},
		{
			name:       "Nil notification channel",
			input:      `{"strategies": {"BTC": {"USD": [{"name": "hodl"}]}}}`,
			nilChannel: true,
			contains:   "notification channel is required",
		},
		{
			name:     "Trade period overflows duration",
			input:    `{"strategies": {"BTC": {"USD": [{"name": "buylowandhodl", "params": {"low": 1, "trade_period": 18446744074, "stats_period": 1, "quote": {"balance_percentage": 1}}}]}}}`,
			contains: "trade_period: expected seconds within range, got 18446744074",
		},
		{
			name:        "Unrecognized strategy",
			input:       `{"strategies": {"BTC": {"USD": [{"name": "BuyLowSellHigh"}]}}}`,
			expectedErr: domain.ErrUnrecognizedSymbol,
			contains:    "BuyLowSellHigh is not a valid key",
		},
		{
			name:        "Missing name",
			input:       `{"strategies": {"BTC": {"USD": [{"params": {}}]}}}`,
			expectedErr: config.ErrMissingField,
			contains:    "strategies.BTC.USD[0].name",
		},
		{
			name:        "Missing date",
			input:       `{"strategies": {"BTC": {"USD": [{"name": "dollarcostaveraging", "params": {"buy": {"quote": {"fixed_amount": 1}}}}]}}}`,
			expectedErr: config.ErrMissingField,
			contains:    "strategies.BTC.USD[0].params.date",
		},
		{
			name:        "Missing quantity",
			input:       `{"strategies": {"BTC": {"USD": [{"name": "smallchanges", "params": {"buy": {"base": {"price": 1}}, "sell": {"base": {"fixed_amount": 1}}}}]}}}`,
			expectedErr: domain.ErrMissingQuantity,
			contains:    "fixed_amount or balance_percentage required",
		},
		{
			name:        "Missing sell quantity fragment",
			input:       `{"strategies": {"BTC": {"USD": [{"name": "smallchanges", "params": {"buy": {"base": {"fixed_amount": 1}}}}]}}}`,
			expectedErr: domain.ErrMissingQuantity,
		},
		{
			name:        "Missing params",
			input:       `{"strategies": {"BTC": {"USD": [{"name": "buylowandhodl"}]}}}`,
			expectedErr: config.ErrMissingField,
			contains:    "strategies.BTC.USD[0].params.low",
		},
		{
			name:        "Missing nested balance percentage",
			input:       `{"strategies": {"BTC": {"USD": [{"name": "buylowandhodl", "params": {"low": 1, "trade_period": 1, "stats_period": 1}}]}}}`,
			expectedErr: config.ErrMissingField,
			contains:    "params.quote.balance_percentage",
		},
		{
			name:     "Fractional period",
			input:    `{"strategies": {"BTC": {"USD": [{"name": "buylowandhodl", "params": {"low": 1, "trade_period": 1.5, "stats_period": 1, "quote": {"balance_percentage": 1}}}]}}}`,
			contains: "trade_period: expected integer",
		},
		{
			name:     "Zero period",
			input:    `{"strategies": {"BTC": {"USD": [{"name": "buylowandhodl", "params": {"low": 1, "trade_period": 0, "stats_period": 1, "quote": {"balance_percentage": 1}}}]}}}`,
			contains: "trade period must be positive",
		},
		{
			name:     "Strategies of a quote is not a list",
			input:    `{"strategies": {"BTC": {"USD": {"name": "hodl"}}}}`,
			contains: "strategies.BTC.USD: expected sequence",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, ch := newCollaborators(t)
			if tt.nilMonitors {
				registry = nil
			}
			if tt.nilChannel {
				ch = nil
			}
			logger, logs := newObservedLogger()

			catalog, err := NewStrategies(parseDoc(t, tt.input), registry, ch, logger)
			require.Error(t, err)
			assert.Nil(t, catalog)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
			assert.Contains(t, err.Error(), tt.contains)
			assert.Zero(t, logs.FilterMessage("strategy initialized").Len())
		})
	}
}

func TestNewStrategies_FailFastAfterValidEntries(t *testing.T) {
	registry, ch := newCollaborators(t)
	logger, logs := newObservedLogger()
	doc := parseDoc(t, `{"strategies": {"BTC": {"USD": [{"name": "hodl"}, {"name": "nope"}]}}}`)

	catalog, err := NewStrategies(doc, registry, ch, logger)
	require.ErrorIs(t, err, domain.ErrUnrecognizedSymbol)
	assert.Nil(t, catalog)
	// notices for instances built before the failure are still emitted
	assert.Equal(t, 1, logs.FilterMessage("strategy initialized").Len())
}

func TestNewStrategies_EmptyListHasNoEntry(t *testing.T) {
	registry, ch := newCollaborators(t)

	catalog, err := NewStrategies(parseDoc(t, `{"strategies": {"BTC": {"USD": []}}}`), registry, ch, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, catalog)
	assert.Empty(t, catalog.Pairs())
}
