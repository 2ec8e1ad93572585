package config

import "time"

// CollectorConfig is the root configuration for a collector instance.
type CollectorConfig struct {
	API      APIConfig     `yaml:"api"`
	Database DBConfig      `yaml:"database"`
	Job      JobConfig     `yaml:"job"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// APIConfig holds CoinGecko API settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"` // Optional demo-plan key
	VsCurrency string        `yaml:"vs_currency"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"` // In-client retries; 0 leaves retry to the job
}

// DBConfig holds the PostgreSQL connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// JobConfig describes how the collection job is scheduled.
type JobConfig struct {
	Name           string        `yaml:"name"`
	Description    string        `yaml:"description"`
	Owner          string        `yaml:"owner"`
	Interval       time.Duration `yaml:"interval"`
	Retries        *int          `yaml:"retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`
	AlertEmails    []string      `yaml:"alert_emails"`
	EmailOnFailure *bool         `yaml:"email_on_failure"`
	EmailOnRetry   bool          `yaml:"email_on_retry"`
}

// RetryCount returns the configured retries, or the default when unset.
func (j JobConfig) RetryCount() int {
	if j.Retries == nil {
		return DefaultJobRetries
	}
	return *j.Retries
}

// AlertOnFailure reports whether a final failure should notify AlertEmails.
func (j JobConfig) AlertOnFailure() bool {
	if j.EmailOnFailure == nil {
		return true
	}
	return *j.EmailOnFailure
}

// MetricsConfig holds the health and Prometheus metrics server settings.
type MetricsConfig struct {
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}
