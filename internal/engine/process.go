package engine

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"time"
)

// How long Wait keeps copying output after the process has exited. Children
// the command left running in the background may hold the pipes open forever.
const outputWaitDelay = time.Second

// Runs the command and waits for it to exit.
//
// The first element is the executable, looked up in PATH; the rest are its arguments.
// No shell is involved. Output of the process goes to stdout and stderr; nil discards it.
//
// Returns a *SpawnError if the process cannot be started and an *ExecutionError
// if it exits with a non-zero status.
func runProcess(ctx context.Context, stdout, stderr io.Writer, command ...string) error {
	commandLine := strings.Join(command, " ")
	if len(command) == 0 || command[0] == "" {
		return &SpawnError{Command: commandLine, Err: ErrNoExecutable}
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = outputWaitDelay

	if err := cmd.Start(); err != nil {
		return &SpawnError{Command: commandLine, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		// the process itself exited 0, only the output copying was cut short
		if errors.Is(err, exec.ErrWaitDelay) {
			return nil
		}

		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &ExecutionError{Command: commandLine, ExitCode: exitCode, Err: err}
	}

	return nil
}
