package journals

import (
	"github.com/mitchellh/cli"

	"github.com/bugout-dev/bugout-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Work with journals and their entries"
}

func (c *Command) Help() string {
	return `Usage: bugout journals <subcommand> [options]

  This command groups subcommands for listing, searching and appending
  to journals.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
