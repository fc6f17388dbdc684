package journals

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bugout-dev/bugout-go/internal/cmd/base"
	"github.com/bugout-dev/bugout-go/pkg/bugout"
)

type AppendCommand struct {
	*base.Command

	flagToken   string
	flagJournal string
	flagTitle   string
	flagContent string
	flagTags    string
}

func (c *AppendCommand) Synopsis() string {
	return "Append an entry to a journal"
}

func (c *AppendCommand) Help() string {
	return `Usage: bugout journals append -journal=<id> -title=<title> [options]

  Creates a new entry and prints its id.

Options:

  -token=<token>
      Access token. Defaults to ` + base.EnvAccessToken + `.

  -journal=<id>
      (Required) Journal id.

  -title=<title>
      (Required) Entry title.

  -content=<content>
      Entry body.

  -tags=<t1,t2>
      Comma-separated tags.`
}

func (c *AppendCommand) Run(args []string) int {
	flags := flag.NewFlagSet("journals append", flag.ContinueOnError)
	flags.StringVar(&c.flagToken, "token", "", "access token")
	flags.StringVar(&c.flagJournal, "journal", "", "journal id")
	flags.StringVar(&c.flagTitle, "title", "", "entry title")
	flags.StringVar(&c.flagContent, "content", "", "entry content")
	flags.StringVar(&c.flagTags, "tags", "", "comma-separated tags")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	journalID, err := uuid.Parse(c.flagJournal)
	if err != nil {
		c.UI.Error(fmt.Sprintf("invalid -journal: %v", err))
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

	req := bugout.EntryRequest{
		Title:   c.flagTitle,
		Content: c.flagContent,
	}
	if c.flagTags != "" {
		req.Tags = strings.Split(c.flagTags, ",")
	}

	entry, err := client.CreateEntry(context.Background(), token, journalID, req)
	if err != nil {
		c.UI.Error(fmt.Sprintf("failed to create entry: %v", err))
		return 1
	}

	c.UI.Output(entry.ID.String())
	return 0
}
