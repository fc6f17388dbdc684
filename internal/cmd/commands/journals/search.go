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

type SearchCommand struct {
	*base.Command

	flagToken   string
	flagJournal string
	flagQuery   string
	flagFilters string
	flagLimit   int
	flagOffset  int
}

func (c *SearchCommand) Synopsis() string {
	return "Search a journal"
}

func (c *SearchCommand) Help() string {
	return `Usage: bugout journals search -journal=<id> -q=<query> [options]

  Searches one journal and prints the hits with their scores.

Options:

  -token=<token>
      Access token. Defaults to ` + base.EnvAccessToken + `.

  -journal=<id>
      (Required) Journal id.

  -q=<query>
      Free-text query, forwarded verbatim.

  -filters=<f1,f2>
      Comma-separated search filters, e.g. "tag:prod".

  -limit=<n>
      Page size. Default 10.

  -offset=<n>
      Pagination offset.`
}

func (c *SearchCommand) Run(args []string) int {
	flags := flag.NewFlagSet("journals search", flag.ContinueOnError)
	flags.StringVar(&c.flagToken, "token", "", "access token")
	flags.StringVar(&c.flagJournal, "journal", "", "journal id")
	flags.StringVar(&c.flagQuery, "q", "", "search query")
	flags.StringVar(&c.flagFilters, "filters", "", "comma-separated filters")
	flags.IntVar(&c.flagLimit, "limit", bugout.DefaultSearchLimit, "page size")
	flags.IntVar(&c.flagOffset, "offset", 0, "pagination offset")
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

	opts := bugout.SearchOptions{
		Limit:       c.flagLimit,
		Offset:      c.flagOffset,
		OmitContent: true,
	}
	if c.flagFilters != "" {
		opts.Filters = strings.Split(c.flagFilters, ",")
	}

	results, err := client.Search(context.Background(), token, journalID, c.flagQuery, opts)
	if err != nil {
		c.UI.Error(fmt.Sprintf("failed to search: %v", err))
		return 1
	}

	c.UI.Output(fmt.Sprintf("%d results (showing %d from offset %d)",
		results.TotalResults, len(results.Results), results.Offset))
	for _, hit := range results.Results {
		c.UI.Output(fmt.Sprintf("%.3f\t%s\t%s", hit.Score, hit.Title, hit.EntryURL))
	}
	return 0
}
