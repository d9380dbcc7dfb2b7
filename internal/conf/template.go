package conf

import (
	"os"
	"os/user"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// PromptData carries the values available to prompt and greeting templates.
type PromptData struct {
	User    string
	Host    string
	Dir     string
	Version string
}

// CollectPromptData gathers live values for template expansion. A field
// whose lookup fails is left empty rather than failing the prompt.
func CollectPromptData(version string) PromptData {
	data := PromptData{Version: version}
	if u, err := user.Current(); err == nil {
		data.User = u.Username
	}
	if host, err := os.Hostname(); err == nil {
		data.Host = host
	}
	if dir, err := os.Getwd(); err == nil {
		data.Dir = dir
	}
	return data
}

// ExpandPrompt renders the prompt template with sprig functions available.
func (c *Config) ExpandPrompt(data PromptData) string {
	return expandTemplate(c.Prompt, data)
}

// ExpandGreeting renders the greeting template with sprig functions available.
func (c *Config) ExpandGreeting(data PromptData) string {
	return expandTemplate(c.Greeting, data)
}

// expandTemplate renders tmpl with data. A template that fails to parse or
// execute is returned unchanged so a bad prompt string never breaks the REPL.
func expandTemplate(tmpl string, data PromptData) string {
	t, err := template.New("tmpl").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		return tmpl
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return tmpl
	}
	return sb.String()
}
