package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConsoleConfig = `prompt: "{{ .Dir | base }} $ "
log_level: debug
`

func TestValidateCommand_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".cmd3.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(validConsoleConfig), 0644))

	output := captureOutput(t, func() error {
		return Validate(configPath)
	})
	assert.Contains(t, output, "valid")
}

func TestValidateCommand_UnknownKey(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".cmd3.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("colour: red\n"), 0644))

	err := Validate(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateCommand_BadTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".cmd3.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("prompt: \"{{ .Broken\"\n"), 0644))

	err := Validate(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateCommand_AutoDetect(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".cmd3.yml"), []byte(validConsoleConfig), 0644))
	withWorkingDir(t, tmpDir)

	output := captureOutput(t, func() error {
		return Validate("")
	})
	assert.Contains(t, output, "valid")
}

func TestValidateCommand_NoConfigFound(t *testing.T) {
	withWorkingDir(t, t.TempDir())

	err := Validate("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config file found")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	err := Validate(filepath.Join(t.TempDir(), ".cmd3.yml"))
	assert.Error(t, err)
}
