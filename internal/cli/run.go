package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/nathandchin/cmd3/internal/conf"
	"github.com/nathandchin/cmd3/internal/hostcmd"
	"github.com/nathandchin/cmd3/internal/replview"
	"github.com/nathandchin/cmd3/internal/trace"
	"github.com/nathandchin/cmd3/pkg/console"
	"github.com/nathandchin/cmd3/pkg/pipeline"
	"github.com/nathandchin/cmd3/pkg/version"
)

// RunParams contains parameters for the Run command
type RunParams struct {
	ConfigPath string
	LogLevel   string
}

// Run starts the interactive console loop. It returns when the user runs
// exit, closes stdin, or an unrecoverable setup failure occurs.
func Run(params RunParams) error {
	cfg, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}

	cons, hist, err := buildConsole(cfg, params.LogLevel)
	if err != nil {
		return err
	}

	data := conf.CollectPromptData(version.Version)
	prompt := cfg.ExpandPrompt(data)
	if greeting := cfg.ExpandGreeting(data); greeting != "" {
		fmt.Println(replview.Banner(greeting))
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetWordCompleter(wordCompleter(cons))

	for {
		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				// Ctrl+C clears the in-progress line.
				fmt.Println()
				continue
			}
			// EOF (Ctrl+D) or a broken terminal both end the session.
			fmt.Println()
			break
		}

		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		hist.Add(input)

		if done := evalLine(cons, input); done {
			break
		}
	}

	fmt.Println(replview.Goodbye())
	return nil
}

// evalLine runs one line and reports whether the REPL should stop. A
// SIGINT or SIGTERM during the run cancels the whole pipeline.
func evalLine(cons *console.Console, input string) bool {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer trace.Region(ctx, "cli.evalLine")()

	res, err := cons.Eval(ctx, input)
	if err == nil {
		return false
	}
	if errors.Is(err, hostcmd.ErrExit) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, replview.Error(errors.New("interrupted")))
		return false
	}

	fmt.Fprintln(os.Stderr, failureReport(res, err))
	return false
}

// failureReport prefers the per-stage breakdown when the run produced
// one; parse and lex errors only have the bare error.
func failureReport(res *pipeline.Result, err error) string {
	if res != nil {
		if out := replview.Failures(res); out != "" {
			return out
		}
	}
	return replview.Error(err)
}

// wordCompleter adapts the engine's completion API to liner, which
// reports the cursor as a rune index.
func wordCompleter(cons *console.Console) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		runes := []rune(line)
		if pos < 0 {
			pos = 0
		}
		if pos > len(runes) {
			pos = len(runes)
		}
		cursor := len(string(runes[:pos]))

		res := cons.Complete(line, cursor)
		return line[:res.ReplaceStart], res.Candidates, line[res.ReplaceEnd:]
	}
}
