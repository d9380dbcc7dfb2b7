package replview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nathandchin/cmd3/pkg/cerrors"
	"github.com/nathandchin/cmd3/pkg/parser"
	"github.com/nathandchin/cmd3/pkg/pipeline"
)

func TestBanner(t *testing.T) {
	assert.Empty(t, Banner(""))
	assert.Contains(t, Banner("welcome to cmd3"), "welcome to cmd3")
}

func TestError_Nil(t *testing.T) {
	assert.Empty(t, Error(nil))
}

func TestError_PlainError(t *testing.T) {
	output := Error(errors.New("boom"))
	assert.Contains(t, output, "boom")
	assert.NotContains(t, output, "[")
}

func TestError_ConsoleErrorShowsCode(t *testing.T) {
	output := Error(cerrors.NewUnknownCommandError(0, "frobnicate"))
	assert.Contains(t, output, "frobnicate")
	assert.Contains(t, output, "[UNKNOWN_COMMAND]")
}

func TestError_WrappedConsoleError(t *testing.T) {
	wrapped := cerrors.NewExecutionError(1, "wc", errors.New("exit status 2"))
	output := Error(wrapped)
	assert.Contains(t, output, "wc")
	assert.Contains(t, output, "[EXEC_ERROR]")
}

func TestFailures(t *testing.T) {
	assert.Empty(t, Failures(nil))

	clean := &pipeline.Result{Stages: []pipeline.StageResult{
		{Stage: parser.Stage{Name: "echo"}},
	}}
	assert.Empty(t, Failures(clean))

	failed := &pipeline.Result{Stages: []pipeline.StageResult{
		{Stage: parser.Stage{Name: "echo"}},
		{Stage: parser.Stage{Name: "wc"}, ExitCode: 1, Err: cerrors.NewExecutionError(1, "wc", errors.New("exit status 1"))},
	}}
	output := Failures(failed)
	assert.Contains(t, output, "wc")
	assert.Contains(t, output, "[EXEC_ERROR]")
	assert.NotContains(t, output, "echo")
}

func TestFailures_ShowsStageSyntax(t *testing.T) {
	failed := &pipeline.Result{Stages: []pipeline.StageResult{
		{
			Stage:    parser.Stage{Kind: parser.External, Name: "wc", Args: []string{"-l"}},
			ExitCode: -1,
			Err:      cerrors.NewSpawnError(0, "wc", errors.New("executable file not found")),
		},
	}}
	assert.Contains(t, Failures(failed), "!wc -l")
}

func TestGoodbye(t *testing.T) {
	assert.Contains(t, Goodbye(), "bye")
}
