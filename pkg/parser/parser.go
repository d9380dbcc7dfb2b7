// Package parser groups lexed tokens into a pipeline of command stages.
package parser

import (
	"strings"

	"github.com/nathandchin/cmd3/pkg/cerrors"
	"github.com/nathandchin/cmd3/pkg/lexer"
)

// StageKind tells the executor how to run a stage.
type StageKind int

const (
	// Internal stages dispatch to a registered command handler.
	Internal StageKind = iota
	// External stages spawn an operating system process.
	External
)

// Stage is one command invocation inside a pipeline.
type Stage struct {
	Kind StageKind
	Name string
	Args []string
}

// Argv returns the stage as a program argument vector, name first.
func (s Stage) Argv() []string {
	return append([]string{s.Name}, s.Args...)
}

// String renders the stage back into input syntax, re-quoting words that
// would not survive lexing bare.
func (s Stage) String() string {
	var b strings.Builder
	if s.Kind == External {
		b.WriteString("!")
	}
	b.WriteString(quoteWord(s.Name))
	for _, arg := range s.Args {
		b.WriteString(" ")
		b.WriteString(quoteWord(arg))
	}
	return b.String()
}

// CommandLine is the parsed form of one input line. Stages appear in source
// order; stage i+1 reads what stage i writes.
type CommandLine struct {
	Raw    string
	Stages []Stage
}

// IsEmpty reports whether the line held no command at all, such as a blank
// or whitespace-only line.
func (c *CommandLine) IsEmpty() bool {
	return len(c.Stages) == 0
}

// String renders the pipeline back into input syntax.
func (c *CommandLine) String() string {
	parts := make([]string, len(c.Stages))
	for i, stage := range c.Stages {
		parts[i] = stage.String()
	}
	return strings.Join(parts, " | ")
}

// quoteWord wraps w in double quotes when lexing it bare would split it or
// change its meaning.
func quoteWord(w string) string {
	if w == "" {
		return `""`
	}
	if !strings.ContainsAny(w, " \t|'\"\\") {
		return w
	}
	var b strings.Builder
	b.WriteString(`"`)
	for _, r := range w {
		if r == '"' || r == '\\' {
			b.WriteString(`\`)
		}
		b.WriteRune(r)
	}
	b.WriteString(`"`)
	return b.String()
}

// Parse tokenizes line strictly and groups the tokens into pipeline stages.
// A blank line parses to an empty CommandLine. Lexer errors pass through
// unchanged; a stage with no words at all, as produced by a leading,
// trailing or doubled pipe, fails with *cerrors.EmptyStageError.
func Parse(line string) (*CommandLine, error) {
	tokens, err := lexer.Split(line)
	if err != nil {
		return nil, err
	}

	stages, err := group(tokens)
	if err != nil {
		return nil, err
	}
	return &CommandLine{Raw: line, Stages: stages}, nil
}

// group splits the token stream on pipe tokens and builds one Stage per
// segment. An empty line yields no stages, but once a pipe appears every
// segment must name a command.
func group(tokens []lexer.Token) ([]Stage, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	var (
		stages  []Stage
		current []lexer.Token
	)

	build := func() error {
		position := len(stages)
		if len(current) == 0 {
			return cerrors.NewEmptyStageError(position)
		}
		head := current[0]
		stage := Stage{Kind: Internal, Name: head.Text}
		if head.External {
			stage.Kind = External
			if stage.Name == "" {
				return cerrors.NewInvalidNameError("", "missing program name after external marker")
			}
		}
		for _, tok := range current[1:] {
			stage.Args = append(stage.Args, tok.Text)
		}
		stages = append(stages, stage)
		current = current[:0]
		return nil
	}

	for _, tok := range tokens {
		if tok.Kind == lexer.Pipe {
			if err := build(); err != nil {
				return nil, err
			}
			continue
		}
		current = append(current, tok)
	}
	if err := build(); err != nil {
		return nil, err
	}

	return stages, nil
}
