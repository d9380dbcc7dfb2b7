package conf

import (
	"fmt"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ValidationError describes a single problem found in a config file.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult collects the outcome of config validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Validate runs the checks the JSON Schema cannot express: the file must
// load, and the prompt and greeting must be parseable templates.
func Validate(path string) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg, err := Load(path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   "syntax",
			Message: fmt.Sprintf("Failed to parse config: %v", err),
		})
		return result, nil
	}

	templates := []struct {
		field string
		tmpl  string
	}{
		{"prompt", cfg.Prompt},
		{"greeting", cfg.Greeting},
	}
	for _, tc := range templates {
		if _, err := template.New(tc.field).Funcs(sprig.FuncMap()).Parse(tc.tmpl); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   tc.field,
				Message: fmt.Sprintf("Invalid template: %v", err),
			})
		}
	}

	return result, nil
}
