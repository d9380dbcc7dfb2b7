// Package cerrors provides custom error types for the console engine.
// These error types enable better error handling and more informative error
// messages for embedding applications.
package cerrors

import (
	"fmt"
)

// ConsoleError is the base interface for all engine errors
type ConsoleError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all engine errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// InvalidNameError reports a command name the lexer could never produce as a
// stage-initial word
type InvalidNameError struct {
	baseError
	Name string
}

// NewInvalidNameError creates a new invalid name error
func NewInvalidNameError(name string, message string) *InvalidNameError {
	return &InvalidNameError{
		baseError: baseError{
			code:    "INVALID_NAME",
			message: message,
		},
		Name: name,
	}
}

// AlreadyRegisteredError reports a registration conflict on a command name
type AlreadyRegisteredError struct {
	baseError
	Command string
}

// NewAlreadyRegisteredError creates a new already registered error
func NewAlreadyRegisteredError(command string) *AlreadyRegisteredError {
	return &AlreadyRegisteredError{
		baseError: baseError{
			code:    "ALREADY_REGISTERED",
			message: fmt.Sprintf("command %q is already registered", command),
		},
		Command: command,
	}
}

// NotFoundError reports a registry operation on an unregistered command name
type NotFoundError struct {
	baseError
	Command string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(command string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: fmt.Sprintf("command %q is not registered", command),
		},
		Command: command,
	}
}

// EmptyStageError reports a pipeline stage with no command word, such as a
// leading, trailing or doubled pipe
type EmptyStageError struct {
	baseError
	Position int
}

// NewEmptyStageError creates a new empty stage error. Position is the
// zero-based index of the offending stage.
func NewEmptyStageError(position int) *EmptyStageError {
	return &EmptyStageError{
		baseError: baseError{
			code:    "EMPTY_STAGE",
			message: fmt.Sprintf("stage %d is empty", position),
		},
		Position: position,
	}
}

// UnknownCommandError reports a pipeline stage naming a command absent from
// the registry. It is raised before any stage runs.
type UnknownCommandError struct {
	baseError
	Stage   int
	Command string
}

// NewUnknownCommandError creates a new unknown command error
func NewUnknownCommandError(stage int, command string) *UnknownCommandError {
	return &UnknownCommandError{
		baseError: baseError{
			code:    "UNKNOWN_COMMAND",
			message: fmt.Sprintf("unknown command %q in stage %d", command, stage),
		},
		Stage:   stage,
		Command: command,
	}
}

// SpawnError reports an external program that could not be started
type SpawnError struct {
	baseError
	Stage   int
	Command string
}

// NewSpawnError creates a new spawn error
func NewSpawnError(stage int, command string, cause error) *SpawnError {
	return &SpawnError{
		baseError: baseError{
			code:    "SPAWN_FAILED",
			message: fmt.Sprintf("failed to start %q in stage %d", command, stage),
			cause:   cause,
		},
		Stage:   stage,
		Command: command,
	}
}

// ExecutionError reports an internal command handler that returned an error
type ExecutionError struct {
	baseError
	Stage   int
	Command string
}

// NewExecutionError creates a new execution error
func NewExecutionError(stage int, command string, cause error) *ExecutionError {
	return &ExecutionError{
		baseError: baseError{
			code:    "EXEC_ERROR",
			message: fmt.Sprintf("command %q in stage %d failed", command, stage),
			cause:   cause,
		},
		Stage:   stage,
		Command: command,
	}
}
