package user

import (
	"context"
	"flag"
	"fmt"

	"github.com/bugout-dev/bugout-go/internal/cmd/base"
	"github.com/bugout-dev/bugout-go/pkg/bugout"
)

type LoginCommand struct {
	*base.Command

	flagUsername string
	flagPassword string
	flagNote     string
}

func (c *LoginCommand) Synopsis() string {
	return "Log in and mint a new access token"
}

func (c *LoginCommand) Help() string {
	return `Usage: bugout user login -username=<username> -password=<password>

  Exchanges credentials for a new access token and prints the token id.

Options:

  -username=<username>
      (Required) Account username.

  -password=<password>
      (Required) Account password.

  -note=<note>
      Optional note attached to the new token.`
}

func (c *LoginCommand) Run(args []string) int {
	flags := flag.NewFlagSet("user login", flag.ContinueOnError)
	flags.StringVar(&c.flagUsername, "username", "", "account username")
	flags.StringVar(&c.flagPassword, "password", "", "account password")
	flags.StringVar(&c.flagNote, "note", "", "token note")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if c.flagUsername == "" || c.flagPassword == "" {
		c.UI.Error("both -username and -password are required")
		return 1
	}

	client, err := c.Client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	token, err := client.CreateToken(context.Background(), bugout.CreateTokenRequest{
		Username: c.flagUsername,
		Password: c.flagPassword,
		Note:     c.flagNote,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("failed to log in: %v", err))
		return 1
	}

	c.UI.Output(token.ID.String())
	return 0
}
