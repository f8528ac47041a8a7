package internal

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/atd/config"
	"github.com/vadiminshakov/atd/internal/clients"
	"github.com/vadiminshakov/atd/internal/domain"
)

// Market is a market data source. Instances are shared by reference.
type Market interface {
	Name() string
}

// NewMarkets builds every market listed in the markets section, keyed by its
// lowercase name. Market names are matched case-sensitively. A document
// without markets yields an empty map.
func NewMarkets(doc *config.Document, logger *zap.Logger) (map[string]Market, error) {
	entries, err := doc.Section(config.SectionMarkets).Entries()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read markets")
	}

	markets := make(map[string]Market, len(entries))
	for _, entry := range entries {
		kind, err := domain.ParseMarketKind(entry.Key)
		if err != nil {
			return nil, err
		}

		market, err := createMarket(kind, entry.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create market %s", kind)
		}

		markets[kind.String()] = market
		logger.Info("market initialized", zap.String("market", kind.String()))
	}

	return markets, nil
}

func createMarket(kind domain.MarketKind, params config.Node) (Market, error) {
	switch kind {
	case domain.MarketKraken:
		apiKey, err := params.Key("apiKey").StrictText()
		if err != nil {
			return nil, err
		}
		apiSecret, err := params.Key("apiSecret").StrictText()
		if err != nil {
			return nil, err
		}
		return clients.NewKrakenClient(apiKey, apiSecret), nil
	default:
		return nil, &domain.UnrecognizedSymbolError{Section: config.SectionMarkets, Key: kind.String()}
	}
}
