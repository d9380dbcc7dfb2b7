// Package command defines the contract console commands implement and the
// registry the engine resolves them from.
package command

import (
	"context"
	"io"
)

// Command is a named handler an application registers with the console.
// Execute reads the stage's input from stdin and writes its output to stdout;
// in a pipeline both ends may be connected to sibling stages. Execute must
// return promptly once ctx is cancelled.
type Command interface {
	Name() string
	Execute(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error
}

// ArgCompleter is an optional interface commands implement to offer argument
// completion. args holds the completed words of the current stage after the
// command name, partial the word under the cursor. Returned candidates are
// full replacement words; returning none means no suggestions.
type ArgCompleter interface {
	CompleteArgs(args []string, partial string) []string
}

// ExecuteFunc is the signature of a plain function command handler.
type ExecuteFunc func(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error

// CompleteArgsFunc is the signature of a plain function argument completer.
type CompleteArgsFunc func(args []string, partial string) []string

// Func adapts plain functions into a Command, so simple handlers need no
// dedicated type.
type Func struct {
	name     string
	run      ExecuteFunc
	complete CompleteArgsFunc
}

// NewFunc creates a command from a name and a handler function.
func NewFunc(name string, run ExecuteFunc) *Func {
	return &Func{name: name, run: run}
}

// NewFuncWithCompletion creates a command with an argument completer attached.
func NewFuncWithCompletion(name string, run ExecuteFunc, complete CompleteArgsFunc) *Func {
	return &Func{name: name, run: run, complete: complete}
}

// Name returns the command name used for registration and dispatch.
func (f *Func) Name() string {
	return f.name
}

// Execute invokes the wrapped handler function.
func (f *Func) Execute(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	return f.run(ctx, args, stdin, stdout)
}

// CompleteArgs invokes the attached completer, if any.
func (f *Func) CompleteArgs(args []string, partial string) []string {
	if f.complete == nil {
		return nil
	}
	return f.complete(args, partial)
}
