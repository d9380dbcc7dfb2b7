package hostcmd

import (
	"context"
	"fmt"
	"io"

	"github.com/nathandchin/cmd3/pkg/command"
	"github.com/nathandchin/cmd3/pkg/version"
)

// NewVersion returns the version command, printing build information.
func NewVersion() command.Command {
	return command.NewFunc("version", func(_ context.Context, _ []string, _ io.Reader, stdout io.Writer) error {
		_, err := fmt.Fprintf(stdout, "cmd3 %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		return err
	})
}
