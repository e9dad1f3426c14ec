package core

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ProductionURL is the Bithumb REST API host.
const ProductionURL = "https://api.bithumb.com"

// Credentials holds API authentication credentials.
type Credentials struct {
	// AccessKey is the public API key identifier.
	AccessKey string `json:"access_key"`
	// SecretKey is the private key used for signing requests.
	SecretKey string `json:"secret_key"`
}

// Config contains all configuration options for a client.
// Market data endpoints work without credentials; account and order
// endpoints require them.
type Config struct {
	// BaseURL is the API host, including scheme.
	BaseURL string `json:"base_url" validate:"required,url"`

	// Credentials authenticate private endpoints. Optional for
	// market-data-only usage.
	Credentials *Credentials `json:"credentials,omitempty"`

	// Timeout is the maximum duration for a single HTTP request.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config initialized with sensible defaults:
// production host, 10s timeout, info logging.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:  ProductionURL,
		Timeout:  10 * time.Second,
		LogLevel: "info",
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	return validate.Struct(c)
}

// HasCredentials reports whether both key halves are configured.
func (c *Config) HasCredentials() bool {
	return c.Credentials != nil && c.Credentials.AccessKey != "" && c.Credentials.SecretKey != ""
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithBaseURL overrides the API host and returns the config for chaining.
func (c *Config) WithBaseURL(url string) *Config {
	c.BaseURL = url
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}
