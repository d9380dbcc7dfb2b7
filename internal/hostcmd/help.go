package hostcmd

import (
	"context"
	"fmt"
	"io"

	"github.com/nathandchin/cmd3/pkg/command"
)

type helpCommand struct {
	registry *command.Registry
}

// NewHelp returns the help command. It writes every registered command
// name on its own line, so `help | !wc -l` counts the registry.
func NewHelp(registry *command.Registry) command.Command {
	return &helpCommand{registry: registry}
}

func (c *helpCommand) Name() string { return "help" }

func (c *helpCommand) Execute(_ context.Context, _ []string, _ io.Reader, stdout io.Writer) error {
	for _, name := range c.registry.Names() {
		if _, err := fmt.Fprintln(stdout, name); err != nil {
			return err
		}
	}
	return nil
}
