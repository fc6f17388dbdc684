// Package base carries the state shared by every CLI command: the UI,
// the logger and the client construction that all commands perform.
package base

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/bugout-dev/bugout-go/pkg/bugout"
)

// EnvAccessToken is consulted when a command's -token flag is unset.
const EnvAccessToken = "BUGOUT_ACCESS_TOKEN"

// Command is embedded by every CLI command.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger
}

// Client builds a bugout client from the environment.
func (c *Command) Client() (*bugout.Client, error) {
	cfg, err := bugout.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	cfg.Logger = c.Log
	client, err := bugout.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build client: %w", err)
	}
	return client, nil
}

// Token resolves the access token from the flag value or, when the flag
// is empty, from EnvAccessToken.
func (c *Command) Token(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if token := os.Getenv(EnvAccessToken); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("no access token: pass -token or set %s", EnvAccessToken)
}
