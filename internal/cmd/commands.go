package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/bugout-dev/bugout-go/internal/cmd/base"
	"github.com/bugout-dev/bugout-go/internal/cmd/commands/journals"
	"github.com/bugout-dev/bugout-go/internal/cmd/commands/ping"
	"github.com/bugout-dev/bugout-go/internal/cmd/commands/user"
	"github.com/bugout-dev/bugout-go/internal/version"
)

// Commands is the CLI command registry.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	baseCommand := &base.Command{
		UI:  ui,
		Log: log,
	}

	Commands = map[string]cli.CommandFactory{
		"ping": func() (cli.Command, error) {
			return &ping.Command{Command: baseCommand}, nil
		},
		"user": func() (cli.Command, error) {
			return &user.Command{Command: baseCommand}, nil
		},
		"user get": func() (cli.Command, error) {
			return &user.GetCommand{Command: baseCommand}, nil
		},
		"user login": func() (cli.Command, error) {
			return &user.LoginCommand{Command: baseCommand}, nil
		},
		"journals": func() (cli.Command, error) {
			return &journals.Command{Command: baseCommand}, nil
		},
		"journals list": func() (cli.Command, error) {
			return &journals.ListCommand{Command: baseCommand}, nil
		},
		"journals search": func() (cli.Command, error) {
			return &journals.SearchCommand{Command: baseCommand}, nil
		},
		"journals append": func() (cli.Command, error) {
			return &journals.AppendCommand{Command: baseCommand}, nil
		},
		"version": func() (cli.Command, error) {
			return &versionCommand{ui: ui}, nil
		},
	}
}

type versionCommand struct {
	ui cli.Ui
}

func (c *versionCommand) Synopsis() string { return "Print the CLI version" }

func (c *versionCommand) Help() string { return "Usage: bugout version" }

func (c *versionCommand) Run(args []string) int {
	c.ui.Output(version.Version)
	return 0
}
