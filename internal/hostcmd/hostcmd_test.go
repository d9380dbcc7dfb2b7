package hostcmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathandchin/cmd3/pkg/command"
)

func TestRegisterAll(t *testing.T) {
	reg := command.NewRegistry()
	require.NoError(t, RegisterAll(reg, NewHistory(0)))

	assert.Equal(t, []string{"echo", "exit", "help", "history", "lines", "upper", "version"}, reg.Names())
}

func TestRegisterAll_DuplicateRegistry(t *testing.T) {
	reg := command.NewRegistry()
	require.NoError(t, RegisterAll(reg, NewHistory(0)))

	assert.Error(t, RegisterAll(reg, NewHistory(0)))
}

func TestHelp_ListsRegisteredNames(t *testing.T) {
	reg := command.NewRegistry()
	require.NoError(t, RegisterAll(reg, NewHistory(0)))

	help, ok := reg.Lookup("help")
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, help.Execute(context.Background(), nil, strings.NewReader(""), &out))

	// One name per line keeps `help | !wc -l` honest.
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, reg.Len())
	assert.Contains(t, lines, "help")
	assert.Contains(t, lines, "exit")
	assert.True(t, sortedStrings(lines))
}

func sortedStrings(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return false
		}
	}
	return true
}

func TestExit_ReturnsSentinel(t *testing.T) {
	cmd := NewExit()
	assert.Equal(t, "exit", cmd.Name())

	err := cmd.Execute(context.Background(), nil, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrExit)
}

func TestVersion_PrintsBuildInfo(t *testing.T) {
	var out bytes.Buffer
	cmd := NewVersion()

	require.NoError(t, cmd.Execute(context.Background(), nil, strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "cmd3")
}
