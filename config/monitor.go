package config

import (
	"time"

	"github.com/vadiminshakov/atd/internal/domain"
)

// DefaultMonitorPeriod is used when monitor.period is not configured.
const DefaultMonitorPeriod = time.Minute

// MonitorPeriod returns monitor.period, an integer number of seconds.
func (d *Document) MonitorPeriod() (time.Duration, error) {
	period := d.Section(SectionMonitor).Key("period")
	if !period.Exists() {
		return DefaultMonitorPeriod, nil
	}

	p, err := period.Seconds()
	if err != nil {
		return 0, err
	}
	if p <= 0 {
		return 0, &FieldTypeError{Path: period.Path(), Want: "positive integer", Got: period.Dump()}
	}

	return p, nil
}

// MonitorPairs returns monitor.pairs, each written as [base, quote].
func (d *Document) MonitorPairs() ([]domain.Pair, error) {
	items, err := d.Section(SectionMonitor).Key("pairs").Items()
	if err != nil {
		return nil, err
	}

	pairs := make([]domain.Pair, 0, len(items))
	for _, item := range items {
		symbols, err := item.Items()
		if err != nil {
			return nil, err
		}
		if len(symbols) != 2 {
			return nil, &FieldTypeError{Path: item.Path(), Want: "[base, quote]", Got: item.Dump()}
		}

		base, err := symbols[0].Text()
		if err != nil {
			return nil, err
		}
		quote, err := symbols[1].Text()
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, domain.Pair{Base: base, Quote: quote})
	}

	return pairs, nil
}

// MonitorCurrencies returns monitor.currencies.
func (d *Document) MonitorCurrencies() ([]string, error) {
	items, err := d.Section(SectionMonitor).Key("currencies").Items()
	if err != nil {
		return nil, err
	}

	currencies := make([]string, 0, len(items))
	for _, item := range items {
		c, err := item.Text()
		if err != nil {
			return nil, err
		}
		currencies = append(currencies, c)
	}

	return currencies, nil
}
