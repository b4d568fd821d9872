package platform

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

var (
	// ErrCancelled is returned when the user dismisses the picker without choosing
	ErrCancelled = errors.New("selection cancelled")

	// ErrUnsupported is returned on systems without a native picker surface
	ErrUnsupported = errors.New("no native document picker on this platform")
)

// Platform abstracts the OS-specific document picker
type Platform interface {
	// PickDocument shows the native picker restricted to the given uniform
	// type identifiers and blocks until it is dismissed. It returns the
	// absolute path of the chosen item, or ErrCancelled.
	PickDocument(ctx context.Context, filters []string) (string, error)
}

// Options configures the native picker surfaces
type Options struct {
	Prompt     string // Title or prompt shown in the picker
	ZenityPath string // zenity binary used on Linux
}

// New returns a Platform implementation for the current OS
func New(opts Options) Platform {
	return newPlatform(opts)
}

// commandResult is the outcome of a command that ran to completion
type commandResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// commandRunner runs an external command. A non-nil error means the command
// could not be run at all; a non-zero exit is reported through ExitCode.
type commandRunner func(ctx context.Context, name string, args ...string) (commandResult, error)

func execRunner(ctx context.Context, name string, args ...string) (commandResult, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := commandResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, err
	}
	return res, nil
}
