package bugout

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"

	"github.com/bugout-dev/bugout-go/pkg/rest"
)

const (
	// DefaultBroodURL is the public brood (identity) endpoint.
	DefaultBroodURL = "https://auth.bugout.dev"

	// DefaultSpireURL is the public spire (journals) endpoint.
	DefaultSpireURL = "https://spire.bugout.dev"

	// DefaultTimeout applies when neither Config.Timeout nor
	// EnvTimeoutSeconds is set.
	DefaultTimeout = rest.DefaultTimeout
)

// Environment variables consulted for unset Config fields.
const (
	EnvBroodURL       = "BUGOUT_BROOD_URL"
	EnvSpireURL       = "BUGOUT_SPIRE_URL"
	EnvTimeoutSeconds = "BUGOUT_TIMEOUT_SECONDS"
)

// Config holds the construction parameters of a Client. It is read once
// by New and never mutated afterwards.
type Config struct {
	// BroodAPIURL is the base URL of the brood identity service.
	// Falls back to EnvBroodURL, then DefaultBroodURL.
	BroodAPIURL string

	// SpireAPIURL is the base URL of the spire journal service.
	// Falls back to EnvSpireURL, then DefaultSpireURL.
	SpireAPIURL string

	// Timeout for each request. Falls back to EnvTimeoutSeconds
	// (integer seconds), then DefaultTimeout.
	Timeout time.Duration

	// Logger for debug-level request traces. Optional.
	Logger hclog.Logger

	// HTTPClient overrides the client built from Timeout. Optional.
	HTTPClient *http.Client
}

// ConfigFromEnv builds a Config entirely from the environment. It fails
// when EnvTimeoutSeconds is set but not an integer.
func ConfigFromEnv() (Config, error) {
	return Config{}.withDefaults()
}

// withDefaults fills unset fields from the environment and the package
// defaults.
func (c Config) withDefaults() (Config, error) {
	if c.BroodAPIURL == "" {
		c.BroodAPIURL = envOrDefault(EnvBroodURL, DefaultBroodURL)
	}
	if c.SpireAPIURL == "" {
		c.SpireAPIURL = envOrDefault(EnvSpireURL, DefaultSpireURL)
	}
	if c.Timeout == 0 {
		timeout, err := timeoutFromEnv()
		if err != nil {
			return c, err
		}
		c.Timeout = timeout
	}
	return c, nil
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var result *multierror.Error
	if err := validation.Validate(c.BroodAPIURL, validation.Required, is.URL); err != nil {
		result = multierror.Append(result, fmt.Errorf("brood API URL %q: %w", c.BroodAPIURL, err))
	}
	if err := validation.Validate(c.SpireAPIURL, validation.Required, is.URL); err != nil {
		result = multierror.Append(result, fmt.Errorf("spire API URL %q: %w", c.SpireAPIURL, err))
	}
	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout must be non-negative, got: %v", c.Timeout))
	}
	return result.ErrorOrNil()
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func timeoutFromEnv() (time.Duration, error) {
	raw := os.Getenv(EnvTimeoutSeconds)
	if raw == "" {
		return DefaultTimeout, nil
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("could not parse %s as integer seconds: %q", EnvTimeoutSeconds, raw)
	}
	return time.Duration(seconds) * time.Second, nil
}
