package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL        = "https://api.coingecko.com/api/v3"
	DefaultVsCurrency     = "usd"
	DefaultAPITimeout     = 30 * time.Second
	DefaultDBPort         = 5432
	DefaultDBSSLMode      = "prefer"
	DefaultMaxConns       = 4
	DefaultJobName        = "coin_price_etl"
	DefaultJobDescription = "Fetch and store hourly crypto prices from CoinGecko"
	DefaultJobInterval    = time.Hour
	DefaultJobRetries     = 2
	DefaultJobRetryDelay  = 2 * time.Minute
	DefaultMetricsPort    = 9090
	DefaultMetricsPath    = "/metrics"
)

func (c *CollectorConfig) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.VsCurrency == "" {
		c.API.VsCurrency = DefaultVsCurrency
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}

	// Job defaults
	if c.Job.Name == "" {
		c.Job.Name = DefaultJobName
	}
	if c.Job.Description == "" {
		c.Job.Description = DefaultJobDescription
	}
	if c.Job.Interval == 0 {
		c.Job.Interval = DefaultJobInterval
	}
	if c.Job.Retries == nil {
		retries := DefaultJobRetries
		c.Job.Retries = &retries
	}
	if c.Job.RetryDelay == 0 {
		c.Job.RetryDelay = DefaultJobRetryDelay
	}

	// Metrics defaults
	if c.Metrics.Port == 0 {
		c.Metrics.Port = DefaultMetricsPort
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}
