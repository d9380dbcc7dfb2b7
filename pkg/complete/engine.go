// Package complete computes tab-completion candidates for console input.
//
// The engine never fails a request: malformed input is tokenized leniently
// and any condition without a sensible suggestion yields an empty candidate
// list. What gets completed depends on where the cursor sits. At a stage's
// first word the engine offers registered command names, or executables from
// PATH when the word carries the external marker. Anywhere else it delegates
// to the stage command's own argument completer, when it has one.
package complete

import (
	"strings"

	"github.com/nathandchin/cmd3/pkg/command"
	"github.com/nathandchin/cmd3/pkg/lexer"
)

// Result is the outcome of one completion request. Candidates are full
// replacement words for the line span [ReplaceStart, ReplaceEnd); the span
// excludes an external marker, which stays in place.
type Result struct {
	Candidates   []string
	ReplaceStart int
	ReplaceEnd   int
}

// Engine answers completion requests against a command registry.
type Engine struct {
	registry *command.Registry
	paths    *pathCache
}

// NewEngine creates a completion engine resolving names from registry.
func NewEngine(registry *command.Registry) *Engine {
	return &Engine{
		registry: registry,
		paths:    newPathCache(),
	}
}

// Complete computes candidates for the cursor position in line. Only the
// text left of the cursor participates; the cursor is clamped into range.
func (e *Engine) Complete(line string, cursor int) Result {
	if cursor > len(line) {
		cursor = len(line)
	}
	if cursor < 0 {
		cursor = 0
	}

	tokens, idx, spanStart := lexer.PartialToken(line, cursor)
	result := Result{ReplaceStart: spanStart, ReplaceEnd: cursor}

	stageStart := 0
	for i := 0; i < idx && i < len(tokens); i++ {
		if tokens[i].Kind == lexer.Pipe {
			stageStart = i + 1
		}
	}

	partial := ""
	external := false
	if idx < len(tokens) {
		partial = tokens[idx].Text
		external = tokens[idx].External
	}

	if idx == stageStart {
		// first word of the stage: command name or external program
		if external {
			result.Candidates = e.scanPath(partial)
		} else {
			result.Candidates = filterPrefix(e.registry.Names(), partial)
		}
		return result
	}

	result.Candidates = e.completeArgument(tokens[stageStart:], idx-stageStart, partial)
	return result
}

// completeArgument asks the stage's command for argument candidates. stage
// holds the stage's tokens, pos the partial's position within them.
func (e *Engine) completeArgument(stage []lexer.Token, pos int, partial string) []string {
	head := stage[0]
	if head.External {
		// external programs carry no completion contract
		return nil
	}
	cmd, found := e.registry.Lookup(head.Text)
	if !found {
		return nil
	}
	completer, ok := cmd.(command.ArgCompleter)
	if !ok {
		return nil
	}

	args := make([]string, 0, pos-1)
	for _, tok := range stage[1:pos] {
		args = append(args, tok.Text)
	}

	return dedupe(completer.CompleteArgs(args, partial))
}

// filterPrefix keeps the candidates starting with prefix. names from the
// registry arrive sorted already.
func filterPrefix(names []string, prefix string) []string {
	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// dedupe drops repeated candidates, keeping the completer's order. The
// completer owns the ordering of its own suggestions.
func dedupe(candidates []string) []string {
	if len(candidates) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
