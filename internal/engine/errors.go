package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrSpawn classifies commands that could not be started.
	ErrSpawn = errors.New("failed to spawn command")
	// ErrExecution classifies commands that ran but did not succeed.
	ErrExecution = errors.New("command failed")
	// ErrNoExecutable is the cause of a SpawnError for an empty template.
	ErrNoExecutable = errors.New("no executable specified")
)

// SpawnError is returned when the command cannot be found or started.
type SpawnError struct {
	Command string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn command %q: %v", e.Command, e.Err)
}

func (e *SpawnError) Unwrap() []error { return []error{ErrSpawn, e.Err} }

// ExecutionError is returned when the command started but exited unsuccessfully.
// Command is the command line that was run, arguments joined by spaces.
type ExecutionError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
}

func (e *ExecutionError) Unwrap() []error { return []error{ErrExecution, e.Err} }
