package hostcmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nathandchin/cmd3/pkg/command"
)

// History is a bounded, concurrency-safe record of executed lines.
type History struct {
	mu    sync.Mutex
	lines []string
	limit int
}

// NewHistory returns a history retaining at most limit entries. A limit
// of 0 keeps everything.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add records a line. Blank lines are skipped. When the limit is reached
// the oldest entry is dropped.
func (h *History) Add(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lines = append(h.lines, line)
	if h.limit > 0 && len(h.lines) > h.limit {
		h.lines = h.lines[len(h.lines)-h.limit:]
	}
}

// Lines returns a copy of the recorded lines, oldest first.
func (h *History) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}

// Clear discards all recorded lines.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lines = nil
}

// Len returns the number of recorded lines.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.lines)
}

type historyCommand struct {
	store *History
}

// NewHistoryCommand returns the history command. With no arguments it
// prints the numbered history; `history clear` empties it.
func NewHistoryCommand(store *History) command.Command {
	return &historyCommand{store: store}
}

func (c *historyCommand) Name() string { return "history" }

func (c *historyCommand) Execute(_ context.Context, args []string, _ io.Reader, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "clear" {
		c.store.Clear()
		return nil
	}

	for i, line := range c.store.Lines() {
		if _, err := fmt.Fprintf(stdout, "%4d  %s\n", i+1, line); err != nil {
			return err
		}
	}
	return nil
}

// CompleteArgs offers the clear subcommand for the first argument.
func (c *historyCommand) CompleteArgs(args []string, partial string) []string {
	if len(args) > 0 {
		return nil
	}
	if strings.HasPrefix("clear", partial) {
		return []string{"clear"}
	}
	return nil
}
