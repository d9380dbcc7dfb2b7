// Package conf loads and validates the demo host configuration.
//
// Configuration is optional: the built-in defaults produce a usable console,
// and a .cmd3.{yml,yaml,toml,json} file in the working directory (or one
// named explicitly with --config) overrides them field by field.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// SupportedConfigNames lists the recognized config file names, in lookup order.
var SupportedConfigNames = []string{
	".cmd3.yml",
	".cmd3.yaml",
	".cmd3.toml",
	".cmd3.json",
}

// Config holds the demo host settings.
type Config struct {
	Prompt       string `koanf:"prompt"`        // prompt template, sprig functions available
	Greeting     string `koanf:"greeting"`      // banner template printed when the REPL starts
	LogLevel     string `koanf:"log_level"`     // debug, info, warn or error
	PipeBuffer   int    `koanf:"pipe_buffer"`   // pipe capacity in bytes, 0 selects the engine default
	HistoryLimit int    `koanf:"history_limit"` // history entries retained, 0 keeps all
}

// defaultConfig is the built-in configuration layered under any user file.
var defaultConfig = []byte(`
prompt: "{{ .Dir | base }} ❯ "
greeting: "cmd3 {{ .Version }} on {{ .Host }} (help lists commands, exit quits)"
log_level: info
pipe_buffer: 0
history_limit: 500
`)

// Load reads a configuration file layered over the built-in defaults.
// An empty path returns the defaults alone.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Find returns the path of the first supported config file in dir, or ""
// when none exists.
func Find(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// parserFor picks the koanf parser matching the file extension.
func parserFor(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}
