package coingecko

import (
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public CoinGecko API root.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// DefaultTimeout bounds a single markets request.
	DefaultTimeout = 30 * time.Second
)

// Client talks to the CoinGecko REST API on the public or demo plan.
type Client struct {
	baseURL string
	apiKey  string // sent as x-cg-demo-api-key when set
	http    *http.Client
	logger  *slog.Logger
	retry   retryPolicy
}

// retryPolicy controls in-client retries of retryable responses. The zero
// value performs a single attempt.
type retryPolicy struct {
	max     int
	backoff time.Duration
}

// wait returns the jittered delay before retry n (1-based): the backoff
// doubles per retry and is scaled by a factor in [0.5, 1.5).
func (p retryPolicy) wait(n int) time.Duration {
	d := p.backoff << (n - 1)
	if d <= 0 {
		return 0
	}
	return d/2 + time.Duration(rand.Int63n(int64(d)))
}

// Option configures a Client.
type Option func(*Client)

// NewClient returns a client for the API rooted at baseURL (DefaultBaseURL
// when empty). Requests are attempted once unless WithRetries is given.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
		retry:   retryPolicy{backoff: time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRetries retries 5xx and 429 responses up to max times.
func WithRetries(max int, backoff time.Duration) Option {
	return func(c *Client) {
		c.retry = retryPolicy{max: max, backoff: backoff}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client, including its timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}
