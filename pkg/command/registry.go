package command

import (
	"sort"
	"strings"
	"sync"

	"github.com/nathandchin/cmd3/pkg/cerrors"
)

// Registry holds the commands available to a console. All methods are safe
// for concurrent use, so completion may read it while another goroutine
// registers or removes commands.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
	}
}

// Register adds cmd under its name. The name must be one the lexer can
// produce as a stage's first word: non-empty, no whitespace, none of the
// characters the lexer treats specially, and no leading external marker.
// Registering a name twice fails with *cerrors.AlreadyRegisteredError and
// leaves the existing command in place.
func (r *Registry) Register(cmd Command) error {
	name := cmd.Name()
	if err := validateName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; exists {
		return cerrors.NewAlreadyRegisteredError(name)
	}
	r.commands[name] = cmd
	return nil
}

// Deregister removes the command registered under name. It fails with
// *cerrors.NotFoundError when no such command exists.
func (r *Registry) Deregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[name]; !exists {
		return cerrors.NewNotFoundError(name)
	}
	delete(r.commands, name)
	return nil
}

// Lookup retrieves the command registered under name.
func (r *Registry) Lookup(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmd, found := r.commands[name]
	return cmd, found
}

// Names returns all registered command names in lexicographic order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.commands)
}

// validateName rejects names the dispatcher could never route to.
func validateName(name string) error {
	switch {
	case name == "":
		return cerrors.NewInvalidNameError(name, "command name is empty")
	case strings.ContainsAny(name, " \t\n\r|'\"\\"):
		return cerrors.NewInvalidNameError(name, "command name contains reserved characters")
	case strings.HasPrefix(name, "!"):
		return cerrors.NewInvalidNameError(name, "command name starts with the external marker")
	}
	return nil
}
