// Package console is the embedding surface of the engine. A host builds a
// Console around its command registry, then feeds it input lines with Eval
// and cursor positions with Complete; the console parses, resolves and runs
// pipelines and computes completion candidates.
package console

import (
	"context"
	"io"
	"os"

	"github.com/nathandchin/cmd3/internal/logger"
	"github.com/nathandchin/cmd3/internal/timing"
	"github.com/nathandchin/cmd3/pkg/command"
	"github.com/nathandchin/cmd3/pkg/complete"
	"github.com/nathandchin/cmd3/pkg/parser"
	"github.com/nathandchin/cmd3/pkg/pipeline"
)

// Config tunes a Console. The zero value works: a fresh registry, info
// logging to standard error and the process's standard streams.
type Config struct {
	// Registry supplies the command set. A nil Registry gets replaced by an
	// empty one reachable through Console.Registry.
	Registry *command.Registry
	// LogLevel is a logrus level name such as "debug" or "error".
	LogLevel string
	// LogOutput receives engine logs, standard error when nil.
	LogOutput io.Writer
	// PipeBufferSize caps each inter-stage connection in bytes.
	PipeBufferSize int
	// Stdin feeds the first pipeline stage.
	Stdin io.Reader
	// Stdout receives the last stage's output.
	Stdout io.Writer
	// Stderr receives external programs' diagnostics.
	Stderr io.Writer
}

// Console evaluates input lines against a command registry.
type Console struct {
	registry  *command.Registry
	executor  *pipeline.Executor
	completer *complete.Engine
	log       *logger.Logger
	streams   pipeline.IO
}

// New creates a console from cfg.
func New(cfg Config) *Console {
	registry := cfg.Registry
	if registry == nil {
		registry = command.NewRegistry()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	log := logger.New(cfg.LogLevel, cfg.LogOutput)
	return &Console{
		registry:  registry,
		executor:  pipeline.NewExecutor(registry, log).WithPipeBufferSize(cfg.PipeBufferSize),
		completer: complete.NewEngine(registry),
		log:       log,
		streams: pipeline.IO{
			Stdin:  cfg.Stdin,
			Stdout: cfg.Stdout,
			Stderr: cfg.Stderr,
		},
	}
}

// Registry exposes the console's command registry for registration and
// listing.
func (c *Console) Registry() *command.Registry {
	return c.registry
}

// Register adds cmd to the console's registry.
func (c *Console) Register(cmd command.Command) error {
	return c.registry.Register(cmd)
}

// Deregister removes the named command from the console's registry.
func (c *Console) Deregister(name string) error {
	return c.registry.Deregister(name)
}

// Eval parses and runs one input line. A blank line is a no-op returning
// (nil, nil). Parse and resolution errors return before anything runs;
// otherwise Eval blocks until the pipeline finishes and reports the first
// failed stage, if any. The host decides how to present the error; Eval
// never terminates the process.
func (c *Console) Eval(ctx context.Context, line string) (*pipeline.Result, error) {
	timer := timing.NewTimer()

	cl, err := parser.Parse(line)
	if err != nil {
		c.log.Debug().Str("line", line).Err(err).Msg("parse failed")
		return nil, err
	}
	timer.Mark("parse")
	if cl.IsEmpty() {
		return nil, nil
	}

	res, err := c.executor.Run(ctx, cl, c.streams)
	timer.Mark("run")
	c.log.Debug().Str("timing", timer.Summary()).Msg("eval finished")
	return res, err
}

// Start launches one input line without waiting for it, handing back the
// live pipeline. A blank line yields a nil handle and no error.
func (c *Console) Start(ctx context.Context, line string) (*pipeline.Handle, error) {
	cl, err := parser.Parse(line)
	if err != nil {
		return nil, err
	}
	return c.executor.Start(ctx, cl, c.streams)
}

// Complete computes completion candidates for the cursor position in line.
func (c *Console) Complete(line string, cursor int) complete.Result {
	return c.completer.Complete(line, cursor)
}
