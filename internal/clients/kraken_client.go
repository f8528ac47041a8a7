package clients

import (
	"github.com/vadiminshakov/atd/config"
	"github.com/vadiminshakov/atd/internal/domain"
)

const krakenBaseURL = "https://api.kraken.com"

// KrakenClient holds the credentials of a Kraken market data connection.
// No request is made until a consumer uses it.
type KrakenClient struct {
	apiKey    string
	apiSecret config.Secret
	baseURL   string
}

// NewKrakenClient creates a Kraken client with the given API credentials.
func NewKrakenClient(apiKey, apiSecret string) *KrakenClient {
	return &KrakenClient{
		apiKey:    apiKey,
		apiSecret: config.Secret(apiSecret),
		baseURL:   krakenBaseURL,
	}
}

func (c *KrakenClient) Name() string {
	return domain.MarketKraken.String()
}

func (c *KrakenClient) APIKey() string {
	return c.apiKey
}

func (c *KrakenClient) APISecret() config.Secret {
	return c.apiSecret
}

func (c *KrakenClient) BaseURL() string {
	return c.baseURL
}
