package cli

import (
	"fmt"
	"os"

	"github.com/nathandchin/cmd3/internal/conf"
	"github.com/nathandchin/cmd3/internal/hostcmd"
	"github.com/nathandchin/cmd3/pkg/console"
)

// loadConfig resolves and loads the host configuration. An empty path
// falls back to discovery in the current directory, then to the built-in
// defaults.
func loadConfig(path string) (*conf.Config, error) {
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = conf.Find(cwd)
		}
	}

	cfg, err := conf.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildConsole assembles the console engine with the built-in command set.
// A non-empty logLevel overrides the configured one.
func buildConsole(cfg *conf.Config, logLevel string) (*console.Console, *hostcmd.History, error) {
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}

	hist := hostcmd.NewHistory(cfg.HistoryLimit)
	cons := console.New(console.Config{
		LogLevel:       logLevel,
		PipeBufferSize: cfg.PipeBuffer,
	})

	if err := hostcmd.RegisterAll(cons.Registry(), hist); err != nil {
		return nil, nil, fmt.Errorf("failed to register built-in commands: %w", err)
	}
	return cons, hist, nil
}
