// Package main is the entry point for the cmd3 console binary.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	cmdcli "github.com/nathandchin/cmd3/internal/cli"
	"github.com/nathandchin/cmd3/internal/trace"
	"github.com/nathandchin/cmd3/pkg/version"
	"github.com/urfave/cli/v3"
)

func main() {
	cleanup := trace.Init()
	defer cleanup()

	app := &cli.Command{
		Name:                  "cmd3",
		Usage:                 "Interactive command console with pipelines and external programs",
		Version:               version.Version,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "",
				Usage:   "Log level (debug, info, warn, error); overrides the config file",
				Sources: cli.EnvVars("CMD3_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "",
				Usage:   "Path to a .cmd3 config file (default: discovered in the current directory)",
				Sources: cli.EnvVars("CMD3_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Start the interactive console (the default when no command is given)",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return cmdcli.Run(cmdcli.RunParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
					})
				},
			},
			{
				Name:      "exec",
				Usage:     "Evaluate a single command line and exit",
				ArgsUsage: "<line>",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return cmdcli.Exec(cmdcli.ExecParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Line:       strings.Join(cmd.Args().Slice(), " "),
					})
				},
			},
			{
				Name:  "complete",
				Usage: "Print completion candidates for a partial line",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "line",
						Usage: "The partial command line",
					},
					&cli.IntFlag{
						Name:  "cursor",
						Value: -1,
						Usage: "Cursor byte offset within the line (default: end of line)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return cmdcli.Complete(cmdcli.CompleteParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Line:       cmd.String("line"),
						Cursor:     int(cmd.Int("cursor")),
					})
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a cmd3 configuration file",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := ""
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return cmdcli.Validate(configPath)
				},
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return cmdcli.Run(cmdcli.RunParams{
				ConfigPath: cmd.String("config"),
				LogLevel:   cmd.String("log-level"),
			})
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cleanup()
		os.Exit(1)
	}
}
