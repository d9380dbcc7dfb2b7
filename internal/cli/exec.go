package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nathandchin/cmd3/internal/hostcmd"
	"github.com/nathandchin/cmd3/internal/trace"
)

// ExecParams contains parameters for the Exec command
type ExecParams struct {
	ConfigPath string
	LogLevel   string
	Line       string
}

// Exec evaluates a single command line with the full built-in command set
// and returns the run's first failure, if any.
func Exec(params ExecParams) error {
	if strings.TrimSpace(params.Line) == "" {
		return fmt.Errorf("no command line given")
	}

	cfg, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}

	cons, hist, err := buildConsole(cfg, params.LogLevel)
	if err != nil {
		return err
	}
	hist.Add(params.Line)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer trace.Region(ctx, "cli.Exec")()

	_, err = cons.Eval(ctx, params.Line)
	if err != nil {
		// exit is a no-op outside the REPL loop.
		if errors.Is(err, hostcmd.ErrExit) {
			return nil
		}
		return err
	}
	return nil
}
