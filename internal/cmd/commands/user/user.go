package user

import (
	"github.com/mitchellh/cli"

	"github.com/bugout-dev/bugout-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Inspect and authenticate the current user"
}

func (c *Command) Help() string {
	return `Usage: bugout user <subcommand> [options]

  This command groups subcommands for working with the authenticated user.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
