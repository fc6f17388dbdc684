package ping

import (
	"context"
	"fmt"

	"github.com/bugout-dev/bugout-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Check that the brood and spire APIs are reachable"
}

func (c *Command) Help() string {
	return `Usage: bugout ping

  Pings both API endpoints and reports their status.`
}

func (c *Command) Run(args []string) int {
	client, err := c.Client()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx := context.Background()

	brood, err := client.BroodPing(ctx)
	if err != nil {
		c.UI.Error(fmt.Sprintf("brood: %v", err))
		return 1
	}
	c.UI.Output(fmt.Sprintf("brood (%s): %s", client.BroodURL(), brood.Status))

	spire, err := client.SpirePing(ctx)
	if err != nil {
		c.UI.Error(fmt.Sprintf("spire: %v", err))
		return 1
	}
	c.UI.Output(fmt.Sprintf("spire (%s): %s", client.SpireURL(), spire.Status))

	return 0
}
