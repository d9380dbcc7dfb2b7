// Package replview renders the REPL's own output: the greeting banner,
// error reports and the farewell line. Command output itself streams
// through the engine untouched.
package replview

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathandchin/cmd3/pkg/cerrors"
	"github.com/nathandchin/cmd3/pkg/pipeline"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Banner renders the greeting printed when the REPL starts.
func Banner(greeting string) string {
	if greeting == "" {
		return ""
	}
	return bannerStyle.Render(greeting)
}

// Error renders a one-line error report. Engine errors carry a stable
// code, shown after the message.
func Error(err error) string {
	if err == nil {
		return ""
	}

	var cerr cerrors.ConsoleError
	if errors.As(err, &cerr) {
		return errorStyle.Render("✗ "+cerr.Error()) + " " + codeStyle.Render("["+cerr.Code()+"]")
	}
	return errorStyle.Render("✗ " + err.Error())
}

// Failures renders one line per failed stage of a finished run, in stage
// order, each prefixed with the stage as the user typed it. A clean run
// renders to the empty string.
func Failures(res *pipeline.Result) string {
	if res == nil {
		return ""
	}

	var b strings.Builder
	for _, stage := range res.Stages {
		if stage.Err == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(subtleStyle.Render(stage.Stage.String()))
		b.WriteString(" ")
		b.WriteString(Error(stage.Err))
	}
	return b.String()
}

// Goodbye renders the farewell line printed when the REPL exits.
func Goodbye() string {
	return subtleStyle.Render("bye")
}
