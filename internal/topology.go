package internal

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/atd/config"
	"github.com/vadiminshakov/atd/internal/events"
	"github.com/vadiminshakov/atd/internal/monitor"
)

const channelBuffer = 256

// Topology is the object graph the bot starts from.
type Topology struct {
	Markets    map[string]Market
	Exchanges  map[string]Exchange
	Strategies StrategyCatalog
	Monitors   *monitor.Registry
	Channel    *events.Channel
}

// BuildTopology creates the monitor registry and the notification channel,
// then markets, exchanges and strategies, in that order. The first error
// aborts the build.
func BuildTopology(doc *config.Document, logger *zap.Logger) (*Topology, error) {
	monitors, err := newMonitorRegistry(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create monitors")
	}
	ch := events.NewChannel(channelBuffer)

	markets, err := NewMarkets(doc, logger)
	if err != nil {
		return nil, err
	}

	exchanges, err := NewExchanges(doc, logger)
	if err != nil {
		return nil, err
	}

	strategies, err := NewStrategies(doc, monitors, ch, logger)
	if err != nil {
		return nil, err
	}

	for _, pair := range strategies.Pairs() {
		for _, s := range strategies[pair] {
			if !s.Monitored() {
				logger.Warn("strategy pair is not monitored",
					zap.Stringer("pair", pair),
					zap.String("strategy", s.Kind().Title()))
			}
		}
	}

	logger.Info("topology built",
		zap.Int("markets", len(markets)),
		zap.Int("exchanges", len(exchanges)),
		zap.Int("pairs", len(strategies)),
		zap.Int("strategies", strategies.Len()),
		zap.Duration("monitor_period", monitors.Period()))

	return &Topology{
		Markets:    markets,
		Exchanges:  exchanges,
		Strategies: strategies,
		Monitors:   monitors,
		Channel:    ch,
	}, nil
}

// Announce has every strategy publish a ready message on the channel and logs
// each message a subscriber receives. It returns the number delivered.
func (t *Topology) Announce(logger *zap.Logger) int {
	sub := t.Channel.Subscribe()
	done := make(chan int)
	go func() {
		delivered := 0
		for m := range sub {
			logger.Info("strategy ready",
				zap.Stringer("pair", m.Pair),
				zap.String("source", m.Source),
				zap.String("text", m.Text))
			delivered++
		}
		done <- delivered
	}()

	for _, pair := range t.Strategies.Pairs() {
		for _, s := range t.Strategies[pair] {
			s.Notify("ready, id " + s.ID().String())
		}
	}

	// closing keeps buffered messages readable
	t.Channel.Unsubscribe(sub)
	return <-done
}

func newMonitorRegistry(doc *config.Document) (*monitor.Registry, error) {
	period, err := doc.MonitorPeriod()
	if err != nil {
		return nil, err
	}
	pairs, err := doc.MonitorPairs()
	if err != nil {
		return nil, err
	}
	currencies, err := doc.MonitorCurrencies()
	if err != nil {
		return nil, err
	}

	return monitor.NewRegistry(period, pairs, currencies)
}
