package user

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/bugout-dev/bugout-go/internal/cmd/base"
)

type GetCommand struct {
	*base.Command

	flagToken string
}

func (c *GetCommand) Synopsis() string {
	return "Show the user the access token belongs to"
}

func (c *GetCommand) Help() string {
	return `Usage: bugout user get [options]

  Fetches the authenticated user and prints it as JSON.

Options:

  -token=<token>
      Access token. Defaults to ` + base.EnvAccessToken + `.`
}

func (c *GetCommand) Run(args []string) int {
	flags := flag.NewFlagSet("user get", flag.ContinueOnError)
	flags.StringVar(&c.flagToken, "token", "", "access token")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	token, err := c.Token(c.flagToken)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	user, err := client.GetUser(context.Background(), token)
	if err != nil {
		c.UI.Error(fmt.Sprintf("failed to get user: %v", err))
		return 1
	}

	encoded, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(string(encoded))
	return 0
}
