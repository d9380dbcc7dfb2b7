package cli

import (
	"fmt"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	ConfigPath string
	LogLevel   string
	Line       string
	Cursor     int
}

// Complete prints the completion candidates for a partial command line,
// one per line, so shell integrations can consume them directly. A
// negative cursor means end of line.
func Complete(params CompleteParams) error {
	cfg, err := loadConfig(params.ConfigPath)
	if err != nil {
		return err
	}

	cons, _, err := buildConsole(cfg, params.LogLevel)
	if err != nil {
		return err
	}

	cursor := params.Cursor
	if cursor < 0 || cursor > len(params.Line) {
		cursor = len(params.Line)
	}

	res := cons.Complete(params.Line, cursor)
	for _, candidate := range res.Candidates {
		fmt.Println(candidate)
	}
	return nil
}
