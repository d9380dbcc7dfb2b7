// Package pipeline runs parsed command lines: it wires stages together with
// bounded byte connections, starts every stage concurrently and collects
// per-stage outcomes into a single result.
//
// Internal stages invoke a registered command handler; external stages spawn
// an operating system process whose standard error passes straight through
// to the caller, never mixed into pipeline data. A stage whose consumer went
// away, seen as io.ErrClosedPipe on write or a SIGPIPE death, counts as
// completed rather than failed. Cancellation is cooperative: handlers get a
// context, processes get a termination signal, and the inter-stage
// connections are torn down so blocked stages wake up. A handler blocked on
// the caller's own terminal input cannot be interrupted this way.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nathandchin/cmd3/internal/logger"
	"github.com/nathandchin/cmd3/pkg/cerrors"
	"github.com/nathandchin/cmd3/pkg/command"
	"github.com/nathandchin/cmd3/pkg/parser"
)

// defaultWaitDelay bounds how long an external stage may linger between a
// termination signal, or its own exit, and the release of its pipes.
const defaultWaitDelay = 3 * time.Second

// IO carries the streams framing a pipeline: the first stage reads Stdin,
// the last stage writes Stdout, and external stages write diagnostics to
// Stderr. Nil fields default to an empty reader and discarded writers.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// StageResult is the outcome of one stage. ExitCode carries the process
// exit status for external stages and 0 or 1 for internal handlers; a stage
// cut short by cancellation or a failed spawn reports -1. Err is nil for
// stages that completed, including ones whose downstream went away.
type StageResult struct {
	Stage    parser.Stage
	ExitCode int
	Err      error
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID    string
	Stages   []StageResult
	Duration time.Duration
}

// FirstFailure returns the first failed stage in pipeline order, or nil
// when every stage completed.
func (r *Result) FirstFailure() *StageResult {
	for i := range r.Stages {
		if r.Stages[i].Err != nil {
			return &r.Stages[i]
		}
	}
	return nil
}

// Last returns the outcome of the final stage, the one whose output reached
// the caller's Stdout.
func (r *Result) Last() StageResult {
	return r.Stages[len(r.Stages)-1]
}

// Executor starts pipelines against a command registry.
type Executor struct {
	registry  *command.Registry
	log       *logger.Logger
	bufSize   int
	waitDelay time.Duration
}

// NewExecutor creates an executor resolving internal stages from registry.
func NewExecutor(registry *command.Registry, log *logger.Logger) *Executor {
	if log == nil {
		log = logger.New("info", nil)
	}
	return &Executor{
		registry:  registry,
		log:       log,
		bufSize:   DefaultPipeBufferSize,
		waitDelay: defaultWaitDelay,
	}
}

// WithPipeBufferSize sets the capacity of inter-stage connections and
// returns the executor for chaining. Non-positive sizes are ignored.
func (e *Executor) WithPipeBufferSize(size int) *Executor {
	if size > 0 {
		e.bufSize = size
	}
	return e
}

// Handle is one live pipeline execution. It owns the stage goroutines, the
// spawned processes and the inter-stage connections, all released once Wait
// returns.
type Handle struct {
	ID string

	ctx      context.Context
	log      *logger.Logger
	pipes    []*Pipe
	results  []StageResult
	wg       sync.WaitGroup
	started  time.Time
	stopOnce sync.Once
	stopped  chan struct{}
}

// Start resolves and launches every stage of cl concurrently and returns a
// handle to the running pipeline. An empty command line yields a nil handle
// and no error. When an internal stage names an unregistered command, Start
// fails with *cerrors.UnknownCommandError before anything has spawned.
func (e *Executor) Start(ctx context.Context, cl *parser.CommandLine, streams IO) (*Handle, error) {
	if cl == nil || cl.IsEmpty() {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if streams.Stdin == nil {
		streams.Stdin = bytes.NewReader(nil)
	}
	if streams.Stdout == nil {
		streams.Stdout = io.Discard
	}
	if streams.Stderr == nil {
		streams.Stderr = io.Discard
	}

	stages := cl.Stages
	resolved := make([]command.Command, len(stages))
	for i, stage := range stages {
		if stage.Kind != parser.Internal {
			continue
		}
		cmd, found := e.registry.Lookup(stage.Name)
		if !found {
			return nil, cerrors.NewUnknownCommandError(i, stage.Name)
		}
		resolved[i] = cmd
	}

	h := &Handle{
		ID:      uuid.NewString(),
		ctx:     ctx,
		log:     e.log,
		pipes:   make([]*Pipe, len(stages)-1),
		results: make([]StageResult, len(stages)),
		started: time.Now(),
		stopped: make(chan struct{}),
	}
	for i := range h.pipes {
		h.pipes[i] = NewPipe(e.bufSize)
	}
	for i := range h.results {
		h.results[i].Stage = stages[i]
	}

	e.log.Debug().
		Str("run", h.ID).
		Int("stages", len(stages)).
		Str("line", cl.Raw).
		Msg("starting pipeline")

	// wake stages blocked on pipe reads or writes when the run is cancelled
	go func() {
		select {
		case <-ctx.Done():
			h.teardown()
		case <-h.stopped:
		}
	}()

	for i := range stages {
		var (
			stdin  io.Reader = streams.Stdin
			stdout io.Writer = streams.Stdout
			inPipe, outPipe *Pipe
		)
		if i > 0 {
			inPipe = h.pipes[i-1]
			stdin = inPipe
		}
		if i < len(stages)-1 {
			outPipe = h.pipes[i]
			stdout = outPipe
		}

		h.wg.Add(1)
		if stages[i].Kind == parser.Internal {
			go h.runInternal(i, resolved[i], stdin, stdout, inPipe, outPipe)
		} else {
			go h.runExternal(i, e.waitDelay, stdin, stdout, streams.Stderr, inPipe, outPipe)
		}
	}

	return h, nil
}

// Run starts cl and waits for it to finish. It returns the collected result
// and the error of the first failed stage, the context's error when the run
// was cancelled, or nil when every stage completed. An empty command line
// is a no-op returning (nil, nil).
func (e *Executor) Run(ctx context.Context, cl *parser.CommandLine, streams IO) (*Result, error) {
	h, err := e.Start(ctx, cl, streams)
	if err != nil || h == nil {
		return nil, err
	}
	return h.Wait()
}

// Wait blocks until every stage has finished and releases the pipeline's
// processes and connections. The result always carries every stage outcome;
// the error reports cancellation or the first stage failure.
func (h *Handle) Wait() (*Result, error) {
	h.wg.Wait()
	h.teardown()

	res := &Result{
		RunID:    h.ID,
		Stages:   h.results,
		Duration: time.Since(h.started),
	}
	h.log.Debug().
		Str("run", h.ID).
		Dur("duration", res.Duration).
		Msg("pipeline finished")

	if err := h.ctx.Err(); err != nil {
		return res, err
	}
	if failed := res.FirstFailure(); failed != nil {
		return res, failed.Err
	}
	return res, nil
}

// teardown closes every inter-stage connection and stops the cancellation
// watcher. Safe to call more than once.
func (h *Handle) teardown() {
	h.stopOnce.Do(func() {
		for _, p := range h.pipes {
			_ = p.Close()
		}
		close(h.stopped)
	})
}

// release closes the stage's ends of its adjacent connections so that
// neighbours never block on a finished stage.
func release(inPipe, outPipe *Pipe) {
	if outPipe != nil {
		_ = outPipe.CloseWrite()
	}
	if inPipe != nil {
		_ = inPipe.CloseRead()
	}
}

// runInternal executes a registered handler as stage i.
func (h *Handle) runInternal(i int, cmd command.Command, stdin io.Reader, stdout io.Writer, inPipe, outPipe *Pipe) {
	defer h.wg.Done()

	stage := &h.results[i]
	err := cmd.Execute(h.ctx, stage.Stage.Args, stdin, stdout)
	release(inPipe, outPipe)

	switch {
	case err == nil:
	case h.ctx.Err() != nil:
		stage.ExitCode = -1
		stage.Err = h.ctx.Err()
	case errors.Is(err, io.ErrClosedPipe):
		// the consumer finished early; not a failure
		h.log.Debug().
			Str("run", h.ID).
			Int("stage", i).
			Str("command", stage.Stage.Name).
			Msg("downstream closed, stage output dropped")
	default:
		stage.ExitCode = 1
		stage.Err = cerrors.NewExecutionError(i, stage.Stage.Name, err)
		h.log.Error().
			Str("run", h.ID).
			Int("stage", i).
			Str("command", stage.Stage.Name).
			Err(err).
			Msg("command failed")
	}
}

// runExternal spawns an operating system process as stage i.
func (h *Handle) runExternal(i int, waitDelay time.Duration, stdin io.Reader, stdout, stderr io.Writer, inPipe, outPipe *Pipe) {
	defer h.wg.Done()

	stage := &h.results[i]
	name := stage.Stage.Name
	argv := stage.Stage.Argv()

	cmd := exec.CommandContext(h.ctx, argv[0], argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	cmd.Cancel = func() error {
		// ask nicely first; WaitDelay escalates to a kill
		return cmd.Process.Signal(syscall.SIGTERM)
	}

	h.log.Debug().
		Str("run", h.ID).
		Int("stage", i).
		Strs("argv", argv).
		Msg("spawning external program")

	if err := cmd.Start(); err != nil {
		release(inPipe, outPipe)
		stage.ExitCode = -1
		stage.Err = cerrors.NewSpawnError(i, name, err)
		h.log.Error().
			Str("run", h.ID).
			Int("stage", i).
			Str("program", name).
			Err(err).
			Msg("failed to start external program")
		return
	}

	err := cmd.Wait()
	release(inPipe, outPipe)

	switch {
	case err == nil:
	case errors.Is(err, exec.ErrWaitDelay):
		// the process itself succeeded, only its pipes lingered
		stage.ExitCode = cmd.ProcessState.ExitCode()
	case h.ctx.Err() != nil:
		stage.ExitCode = exitCode(cmd, err)
		stage.Err = h.ctx.Err()
	case killedByPipe(err) || errors.Is(err, io.ErrClosedPipe):
		// downstream went away mid-stream; not a failure
		h.log.Debug().
			Str("run", h.ID).
			Int("stage", i).
			Str("program", name).
			Msg("downstream closed, program terminated")
	default:
		stage.ExitCode = exitCode(cmd, err)
		stage.Err = cerrors.NewExecutionError(i, name, err)
		h.log.Error().
			Str("run", h.ID).
			Int("stage", i).
			Str("program", name).
			Int("exit", stage.ExitCode).
			Msg("external program failed")
	}
}

// exitCode extracts the process exit status behind a Wait error.
func exitCode(cmd *exec.Cmd, err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	return -1
}

// killedByPipe reports whether the process died from writing to a pipe
// whose reader had already gone.
func killedByPipe(err error) bool {
	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		return false
	}
	status, ok := ee.Sys().(syscall.WaitStatus)
	return ok && status.Signaled() && status.Signal() == syscall.SIGPIPE
}
