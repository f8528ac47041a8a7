package internal

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/atd/config"
	"github.com/vadiminshakov/atd/internal/clients"
	"github.com/vadiminshakov/atd/internal/domain"
)

// Exchange is a trading venue connector. Instances are shared by reference.
type Exchange interface {
	Name() string
}

// NewExchanges builds every exchange listed in the exchanges section, keyed by
// its lowercase name. Exchange names are matched case-sensitively.
//
// Shapeshift is a guaranteed collaborator: it needs no credentials, so the
// result always contains it, configured from the document when the section
// lists it and anonymous otherwise.
func NewExchanges(doc *config.Document, logger *zap.Logger) (map[string]Exchange, error) {
	entries, err := doc.Section(config.SectionExchanges).Entries()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read exchanges")
	}

	exchanges := make(map[string]Exchange, len(entries)+1)
	for _, entry := range entries {
		kind, err := domain.ParseExchangeKind(entry.Key)
		if err != nil {
			return nil, err
		}

		exchange, err := createExchange(kind, entry.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create exchange %s", kind)
		}

		exchanges[kind.String()] = exchange
	}

	ensureDefaultExchanges(exchanges)

	shapeshift := exchanges[domain.ExchangeShapeshift.String()].(*clients.ShapeshiftClient)
	logger.Info("exchange initialized",
		zap.String("exchange", shapeshift.Name()),
		zap.Bool("affiliate", shapeshift.HasCredentials()))

	return exchanges, nil
}

func createExchange(kind domain.ExchangeKind, params config.Node) (Exchange, error) {
	switch kind {
	case domain.ExchangeShapeshift:
		key, ok, err := params.Key("affiliatePrivateKey").OptionalStrictText()
		if err != nil {
			return nil, err
		}
		if !ok {
			return clients.NewShapeshiftClient(), nil
		}
		return clients.NewShapeshiftClient(clients.WithAffiliatePrivateKey(key)), nil
	default:
		return nil, &domain.UnrecognizedSymbolError{Section: config.SectionExchanges, Key: kind.String()}
	}
}

// ensureDefaultExchanges adds the exchanges that work without configuration,
// leaving configured instances untouched.
func ensureDefaultExchanges(exchanges map[string]Exchange) {
	name := domain.ExchangeShapeshift.String()
	if _, ok := exchanges[name]; !ok {
		exchanges[name] = clients.NewShapeshiftClient()
	}
}
