package journals

import (
	"context"
	"flag"
	"fmt"

	"github.com/bugout-dev/bugout-go/internal/cmd/base"
)

type ListCommand struct {
	*base.Command

	flagToken string
}

func (c *ListCommand) Synopsis() string {
	return "List the journals the token can read"
}

func (c *ListCommand) Help() string {
	return `Usage: bugout journals list [options]

  Lists journal ids and names, one per line.

Options:

  -token=<token>
      Access token. Defaults to ` + base.EnvAccessToken + `.`
}

func (c *ListCommand) Run(args []string) int {
	flags := flag.NewFlagSet("journals list", flag.ContinueOnError)
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

	journals, err := client.ListJournals(context.Background(), token)
	if err != nil {
		c.UI.Error(fmt.Sprintf("failed to list journals: %v", err))
		return 1
	}

	for _, journal := range journals.Journals {
		c.UI.Output(fmt.Sprintf("%s\t%s", journal.ID, journal.Name))
	}
	return 0
}
