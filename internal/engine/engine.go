package engine

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Placeholder is replaced by the image path in the command template.
const Placeholder = "${FILE_PATH}"

// Engine changes the wallpaper by running a command built from a template.
type Engine struct {
	// template split on whitespace
	args []string

	stdout io.Writer
	stderr io.Writer
	log    logrus.FieldLogger
}

// Option configures an Engine.
type Option func(*Engine)

// WithOutput sets where the command's stdout and stderr go. Nil discards.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Engine) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithLogger sets the logger used to report executed commands.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an engine for the given command template.
//
// Use Placeholder in the template to mark where the image path goes; it may
// be embedded in a longer argument such as file://${FILE_PATH}.
// The template is not validated, an empty one only fails when run.
func New(template string, opts ...Option) *Engine {
	e := &Engine{
		args:   strings.Fields(template),
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Args returns the command line for imagePath. The first occurrence of
// Placeholder in each argument is replaced; everything else is kept as is.
func (e *Engine) Args(imagePath string) []string {
	args := make([]string, 0, len(e.args))
	for _, arg := range e.args {
		args = append(args, strings.Replace(arg, Placeholder, imagePath, 1))
	}
	return args
}

// HasPlaceholder reports whether any argument of the template contains Placeholder.
func (e *Engine) HasPlaceholder() bool {
	for _, arg := range e.args {
		if strings.Contains(arg, Placeholder) {
			return true
		}
	}
	return false
}

// String returns the normalized template.
func (e *Engine) String() string {
	return strings.Join(e.args, " ")
}

// ChangeWallpaper runs the command for imagePath and blocks until it exits.
//
// Returns a *SpawnError when the command cannot be started (including an
// empty template) and an *ExecutionError when it exits with a non-zero status.
func (e *Engine) ChangeWallpaper(ctx context.Context, imagePath string) error {
	args := e.Args(imagePath)

	e.log.WithField("command", strings.Join(args, " ")).Debug("Executing command")
	if err := runProcess(ctx, e.stdout, e.stderr, args...); err != nil {
		return err
	}

	e.log.WithField("image", imagePath).Info("Wallpaper changed")
	return nil
}
