// Package monitor holds the set of pairs and currencies the data feed observes.
package monitor

import (
	"fmt"
	"time"

	"github.com/vadiminshakov/atd/internal/domain"
)

// Registry is the read-only description of what the data monitors watch.
// Strategies receive it at construction and consult it when they run.
type Registry struct {
	period     time.Duration
	pairs      []domain.Pair
	currencies []string
	pairIndex  map[domain.Pair]struct{}
	currIndex  map[string]struct{}
}

// NewRegistry creates a registry. Duplicate pairs and currencies are kept once,
// in first-seen order.
func NewRegistry(period time.Duration, pairs []domain.Pair, currencies []string) (*Registry, error) {
	if period <= 0 {
		return nil, fmt.Errorf("monitor period must be positive, got %s", period)
	}

	r := &Registry{
		period:     period,
		pairs:      make([]domain.Pair, 0, len(pairs)),
		currencies: make([]string, 0, len(currencies)),
		pairIndex:  make(map[domain.Pair]struct{}, len(pairs)),
		currIndex:  make(map[string]struct{}, len(currencies)),
	}

	for _, p := range pairs {
		if _, ok := r.pairIndex[p]; ok {
			continue
		}
		r.pairIndex[p] = struct{}{}
		r.pairs = append(r.pairs, p)
	}
	for _, c := range currencies {
		if _, ok := r.currIndex[c]; ok {
			continue
		}
		r.currIndex[c] = struct{}{}
		r.currencies = append(r.currencies, c)
	}

	return r, nil
}

// Period returns the polling period of the monitors.
func (r *Registry) Period() time.Duration {
	return r.period
}

// Pairs returns a copy of the watched pairs.
func (r *Registry) Pairs() []domain.Pair {
	out := make([]domain.Pair, len(r.pairs))
	copy(out, r.pairs)
	return out
}

// Currencies returns a copy of the watched currencies.
func (r *Registry) Currencies() []string {
	out := make([]string, len(r.currencies))
	copy(out, r.currencies)
	return out
}

// Watches reports whether the pair is monitored.
func (r *Registry) Watches(pair domain.Pair) bool {
	_, ok := r.pairIndex[pair]
	return ok
}

// WatchesCurrency reports whether the currency balance is monitored.
func (r *Registry) WatchesCurrency(currency string) bool {
	_, ok := r.currIndex[currency]
	return ok
}
