package clients

import (
	"github.com/vadiminshakov/atd/config"
	"github.com/vadiminshakov/atd/internal/domain"
)

const shapeshiftBaseURL = "https://shapeshift.io"

// ShapeshiftClient is an instant-exchange connector. It works without
// credentials; an affiliate key only enables affiliate fees.
type ShapeshiftClient struct {
	affiliatePrivateKey config.Secret
	baseURL             string
}

// ShapeshiftOption configures the ShapeshiftClient.
type ShapeshiftOption func(*ShapeshiftClient)

// WithAffiliatePrivateKey sets the affiliate private key.
func WithAffiliatePrivateKey(key string) ShapeshiftOption {
	return func(c *ShapeshiftClient) {
		c.affiliatePrivateKey = config.Secret(key)
	}
}

// NewShapeshiftClient creates a Shapeshift client, anonymous unless an option
// provides credentials.
func NewShapeshiftClient(opts ...ShapeshiftOption) *ShapeshiftClient {
	c := &ShapeshiftClient{baseURL: shapeshiftBaseURL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ShapeshiftClient) Name() string {
	return domain.ExchangeShapeshift.String()
}

// HasCredentials reports whether an affiliate key was configured.
func (c *ShapeshiftClient) HasCredentials() bool {
	return c.affiliatePrivateKey != ""
}

func (c *ShapeshiftClient) AffiliatePrivateKey() config.Secret {
	return c.affiliatePrivateKey
}

func (c *ShapeshiftClient) BaseURL() string {
	return c.baseURL
}
