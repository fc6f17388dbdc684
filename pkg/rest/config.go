package rest

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultTimeout is the per-request timeout used when a Config does not
// set one.
const DefaultTimeout = 5 * time.Second

// Config describes a Caller pinned to one Bugout sub-service.
type Config struct {
	// BaseURL is the absolute base URL of the sub-service, without a
	// trailing slash. Example: "https://spire.bugout.dev".
	BaseURL string

	// Timeout for each request. Default: DefaultTimeout.
	Timeout time.Duration

	// Logger for debug-level request traces. Optional.
	Logger hclog.Logger

	// HTTPClient overrides the client built from Timeout. Optional,
	// intended for tests and callers that manage their own transport.
	HTTPClient *http.Client
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https scheme, got: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("base URL has no host: %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got: %v", c.Timeout)
	}
	return nil
}

func (c *Config) newHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
