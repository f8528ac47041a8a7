// Package strategy contains the trading strategies that can be configured per pair.
// Constructors only validate and store parameters; nothing trades until the
// strategy is run by its owner.
package strategy

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vadiminshakov/atd/internal/domain"
	"github.com/vadiminshakov/atd/internal/events"
)

// Strategy is a constructed strategy instance bound to one pair.
type Strategy interface {
	ID() uuid.UUID
	Kind() domain.StrategyKind
	Pair() domain.Pair
	// Monitored reports whether the monitors watch the strategy's pair.
	Monitored() bool
	// Notify publishes text on the notification channel.
	Notify(text string)
}

type monitors interface {
	Watches(pair domain.Pair) bool
}

type notifier interface {
	Publish(m events.Message)
}

// base is embedded by every strategy.
type base struct {
	id       uuid.UUID
	kind     domain.StrategyKind
	pair     domain.Pair
	monitors monitors
	notifier notifier
}

func newBase(kind domain.StrategyKind, pair domain.Pair, monitors monitors, notifier notifier) (base, error) {
	if monitors == nil {
		return base{}, fmt.Errorf("%s: monitors are required", kind.Title())
	}
	if notifier == nil {
		return base{}, fmt.Errorf("%s: notification channel is required", kind.Title())
	}

	return base{
		id:       uuid.New(),
		kind:     kind,
		pair:     pair,
		monitors: monitors,
		notifier: notifier,
	}, nil
}

// ID returns the instance identifier.
func (b *base) ID() uuid.UUID {
	return b.id
}

// Kind returns the strategy kind.
func (b *base) Kind() domain.StrategyKind {
	return b.kind
}

// Pair returns the pair the strategy trades.
func (b *base) Pair() domain.Pair {
	return b.pair
}

// String returns the string representation.
func (b *base) String() string {
	return fmt.Sprintf("%s: strategy %s", b.pair.String(), b.kind.Title())
}

// Monitored reports whether the monitors watch the strategy's pair.
func (b *base) Monitored() bool {
	return b.monitors.Watches(b.pair)
}

// Notify publishes a message on behalf of the strategy.
func (b *base) Notify(text string) {
	b.notifier.Publish(events.Message{
		Timestamp: time.Now(),
		Pair:      b.pair,
		Source:    b.kind.String(),
		Text:      text,
	})
}
