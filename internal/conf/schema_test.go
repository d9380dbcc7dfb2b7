package conf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWithSchema_ValidYAML(t *testing.T) {
	content := []byte("prompt: \"$ \"\nlog_level: debug\npipe_buffer: 4096\n")

	result, err := ValidateWithSchema(".cmd3.yml", content)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateWithSchema_ValidJSON(t *testing.T) {
	content := []byte(`{"greeting": "hi", "history_limit": 50}`)

	result, err := ValidateWithSchema(".cmd3.json", content)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateWithSchema_ValidTOML(t *testing.T) {
	result, err := ValidateWithSchema(".cmd3.toml", []byte("history_limit = 25\n"))
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidateWithSchema_UnknownKey(t *testing.T) {
	content := []byte("prompt: \"$ \"\ncolour: red\n")

	result, err := ValidateWithSchema(".cmd3.yml", content)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0].Message, "colour")
}

func TestValidateWithSchema_BadLogLevel(t *testing.T) {
	result, err := ValidateWithSchema(".cmd3.yml", []byte("log_level: loud\n"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "log_level", result.Errors[0].Field)
}

func TestValidateWithSchema_NegativePipeBuffer(t *testing.T) {
	result, err := ValidateWithSchema(".cmd3.json", []byte(`{"pipe_buffer": -1}`))
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestValidateWithSchema_InvalidYAMLSyntax(t *testing.T) {
	result, err := ValidateWithSchema(".cmd3.yml", []byte("prompt: [oops\n"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "syntax", result.Errors[0].Field)
}

func TestValidateWithSchema_InvalidTOMLSyntax(t *testing.T) {
	result, err := ValidateWithSchema(".cmd3.toml", []byte("history_limit = = 25\n"))
	require.NoError(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "syntax", result.Errors[0].Field)
}

func TestValidateWithSchema_UnsupportedFormat(t *testing.T) {
	_, err := ValidateWithSchema("config.ini", []byte("x = 1"))
	assert.Error(t, err)
}
