package hostcmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho(t *testing.T) {
	var out bytes.Buffer
	cmd := NewEcho()

	require.NoError(t, cmd.Execute(context.Background(), []string{"hello", "big world"}, strings.NewReader(""), &out))
	assert.Equal(t, "hello big world\n", out.String())
}

func TestEcho_NoArgs(t *testing.T) {
	var out bytes.Buffer
	cmd := NewEcho()

	require.NoError(t, cmd.Execute(context.Background(), nil, strings.NewReader(""), &out))
	assert.Equal(t, "\n", out.String())
}

func TestUpper(t *testing.T) {
	var out bytes.Buffer
	cmd := NewUpper()

	require.NoError(t, cmd.Execute(context.Background(), nil, strings.NewReader("one\ntwo\n"), &out))
	assert.Equal(t, "ONE\nTWO\n", out.String())
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: "0\n"},
		{name: "three lines", input: "a\nb\nc\n", want: "3\n"},
		{name: "no trailing newline", input: "a\nb", want: "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := NewLines()

			require.NoError(t, cmd.Execute(context.Background(), nil, strings.NewReader(tt.input), &out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}
