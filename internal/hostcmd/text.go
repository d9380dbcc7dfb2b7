package hostcmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nathandchin/cmd3/pkg/command"
)

// NewEcho returns the echo command: arguments joined by spaces, newline
// terminated.
func NewEcho() command.Command {
	return command.NewFunc("echo", func(_ context.Context, args []string, _ io.Reader, stdout io.Writer) error {
		_, err := fmt.Fprintln(stdout, strings.Join(args, " "))
		return err
	})
}

// NewUpper returns a streaming filter that upper-cases each input line.
func NewUpper() command.Command {
	return command.NewFunc("upper", func(_ context.Context, _ []string, stdin io.Reader, stdout io.Writer) error {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if _, err := fmt.Fprintln(stdout, strings.ToUpper(scanner.Text())); err != nil {
				return err
			}
		}
		return scanner.Err()
	})
}

// NewLines returns a filter that counts input lines, like wc -l.
func NewLines() command.Command {
	return command.NewFunc("lines", func(_ context.Context, _ []string, stdin io.Reader, stdout io.Writer) error {
		scanner := bufio.NewScanner(stdin)
		count := 0
		for scanner.Scan() {
			count++
		}
		if err := scanner.Err(); err != nil {
			return err
		}
		_, err := fmt.Fprintln(stdout, count)
		return err
	})
}
