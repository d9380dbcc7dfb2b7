// Package hostcmd provides the demo host's built-in console commands.
//
// The engine itself ships no commands; everything the cmd3 binary offers
// at the prompt is registered here.
package hostcmd

import (
	"github.com/nathandchin/cmd3/pkg/command"
)

// RegisterAll installs the full built-in command set on reg.
func RegisterAll(reg *command.Registry, hist *History) error {
	cmds := []command.Command{
		NewEcho(),
		NewExit(),
		NewHelp(reg),
		NewHistoryCommand(hist),
		NewLines(),
		NewUpper(),
		NewVersion(),
	}
	for _, c := range cmds {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
