package domain

// MarketKind name of a supported market data source.
type MarketKind string

const (
	// MarketKraken Kraken market data.
	MarketKraken MarketKind = "kraken"
)

// String returns the string representation.
func (m MarketKind) String() string {
	return string(m)
}

// ParseMarketKind matches a market name exactly, without case folding.
func ParseMarketKind(name string) (MarketKind, error) {
	switch MarketKind(name) {
	case MarketKraken:
		return MarketKraken, nil
	default:
		return "", &UnrecognizedSymbolError{Section: "markets", Key: name}
	}
}

// ExchangeKind name of a supported exchange connector.
type ExchangeKind string

const (
	// ExchangeShapeshift Shapeshift instant exchange.
	ExchangeShapeshift ExchangeKind = "shapeshift"
)

// String returns the string representation.
func (e ExchangeKind) String() string {
	return string(e)
}

// ParseExchangeKind matches an exchange name exactly, without case folding.
func ParseExchangeKind(name string) (ExchangeKind, error) {
	switch ExchangeKind(name) {
	case ExchangeShapeshift:
		return ExchangeShapeshift, nil
	default:
		return "", &UnrecognizedSymbolError{Section: "exchanges", Key: name}
	}
}

// StrategyKind name of a supported trading strategy.
type StrategyKind string

const (
	// StrategyHodl buy once and hold.
	StrategyHodl StrategyKind = "HODL"
	// StrategyBuyLowAndHodl buy on dips below a threshold and hold.
	StrategyBuyLowAndHodl StrategyKind = "BUYLOWANDHODL"
	// StrategyDollarCostAveraging periodic fixed-size buys.
	StrategyDollarCostAveraging StrategyKind = "DOLLARCOSTAVERAGING"
	// StrategySmallChanges trade small price oscillations.
	StrategySmallChanges StrategyKind = "SMALLCHANGES"
)

// String returns the string representation.
func (s StrategyKind) String() string {
	return string(s)
}

// Title returns a human-readable representation.
func (s StrategyKind) Title() string {
	switch s {
	case StrategyHodl:
		return "Hodl"
	case StrategyBuyLowAndHodl:
		return "BuyLowAndHodl"
	case StrategyDollarCostAveraging:
		return "DollarCostAveraging"
	case StrategySmallChanges:
		return "SmallChanges"
	default:
		return string(s)
	}
}

// ParseStrategyKind upper-cases the ASCII letters of name and matches it against
// the known strategies. Other characters are compared as is, so look-alike
// Unicode letters do not match. The error carries the name as configured.
func ParseStrategyKind(name string) (StrategyKind, error) {
	switch kind := StrategyKind(asciiUpper(name)); kind {
	case StrategyHodl, StrategyBuyLowAndHodl, StrategyDollarCostAveraging, StrategySmallChanges:
		return kind, nil
	default:
		return "", &UnrecognizedSymbolError{Section: "strategies", Key: name}
	}
}

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'a' <= c && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
