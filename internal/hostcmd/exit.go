package hostcmd

import (
	"context"
	"errors"
	"io"

	"github.com/nathandchin/cmd3/pkg/command"
)

// ErrExit signals the REPL loop to terminate. It surfaces as an ordinary
// stage failure; the loop detects it with errors.Is.
var ErrExit = errors.New("exit requested")

type exitCommand struct{}

// NewExit returns the exit command.
func NewExit() command.Command {
	return exitCommand{}
}

func (exitCommand) Name() string { return "exit" }

func (exitCommand) Execute(_ context.Context, _ []string, _ io.Reader, _ io.Writer) error {
	return ErrExit
}
