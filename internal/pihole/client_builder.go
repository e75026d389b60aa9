package pihole

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

// ClientConfig holds the transport settings for the API client
type ClientConfig struct {
	BaseURL            string
	Password           string
	LoginEndpoint      string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// DefaultClientConfig returns default client configuration
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		LoginEndpoint: "/api/auth",
		Timeout:       10 * time.Second,
	}
}

// ClientBuilder builds API clients with fluent interface
type ClientBuilder struct {
	config ClientConfig
	logger zerolog.Logger
}

// NewClientBuilder creates a new ClientBuilder with default configuration
func NewClientBuilder(logger zerolog.Logger) *ClientBuilder {
	return &ClientBuilder{
		config: DefaultClientConfig(),
		logger: logger,
	}
}

// WithBaseURL sets the API base URL
func (b *ClientBuilder) WithBaseURL(baseURL string) *ClientBuilder {
	b.config.BaseURL = baseURL
	return b
}

// WithPassword sets the API password submitted at login
func (b *ClientBuilder) WithPassword(password string) *ClientBuilder {
	b.config.Password = password
	return b
}

// WithLoginEndpoint sets the authentication endpoint path
func (b *ClientBuilder) WithLoginEndpoint(endpoint string) *ClientBuilder {
	if endpoint != "" {
		b.config.LoginEndpoint = endpoint
	}
	return b
}

// WithTimeout sets the per-request deadline
func (b *ClientBuilder) WithTimeout(timeout time.Duration) *ClientBuilder {
	if timeout > 0 {
		b.config.Timeout = timeout
	}
	return b
}

// WithInsecureSkipVerify sets whether to skip TLS verification
func (b *ClientBuilder) WithInsecureSkipVerify(skip bool) *ClientBuilder {
	b.config.InsecureSkipVerify = skip
	return b
}

// Build creates and returns a new Client
func (b *ClientBuilder) Build() *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: b.config.InsecureSkipVerify,
		},
	}
	if err := http2.ConfigureTransport(transport); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   b.config.Timeout,
		},
		baseURL:       b.config.BaseURL,
		password:      b.config.Password,
		loginEndpoint: b.config.LoginEndpoint,
		logger:        b.logger.With().Str("component", "PiholeClient").Logger(),
	}
}
