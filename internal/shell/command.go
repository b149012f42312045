package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/assetpipe/internal/ctxlog"
)

// Cmd holds the configuration to run an external command.
//
// A Cmd is a value; the builder methods return modified copies.
type Cmd struct {
	// Name is the executable to run.
	Name string
	// Args is the arguments handed to the command, not including the command itself.
	Args []string
	// Target is where the command is executed. Nil means LocalTarget.
	Target Target
	Stdout io.Writer
	Stderr io.Writer
}

// Target starts processes for commands.
type Target interface {
	Start(cmd Cmd) (Process, error)
}

// Process is a started command.
type Process interface {
	// Wait blocks until the process exits or ctx is done.
	Wait(ctx context.Context) error
}

// ExitCodeError is returned by Wait when the process ran to completion with a
// non-zero exit status.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// StartError wraps a failure to launch the process at all.
type StartError struct {
	Name string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Name, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// Result is the fully buffered outcome of Call.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Command returns a Cmd with the specified command and arguments set.
func Command(name string, args ...string) Cmd {
	return Cmd{Name: name, Args: args}
}

// On returns a copy of the Cmd with the Target set to target.
func (cmd Cmd) On(target Target) Cmd {
	cmd.Target = target
	return cmd
}

// Capture returns a copy of the Cmd with Stdout and Stderr set.
func (cmd Cmd) Capture(stdout, stderr io.Writer) Cmd {
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd
}

// Run executes the command and blocks until it completes or ctx is done.
func (cmd Cmd) Run(ctx context.Context) error {
	if cmd.Target == nil {
		cmd.Target = LocalTarget
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting process.", "cmd", cmd.String())

	process, err := cmd.Target.Start(cmd)
	if err != nil {
		return &StartError{Name: cmd.Name, Err: err}
	}
	if err := process.Wait(ctx); err != nil {
		logger.Debug("Process returned error.", "cmd", cmd.Name, "error", err)
		return err
	}
	logger.Debug("Process finished.", "cmd", cmd.Name)
	return nil
}

// Call executes the command, capturing stdout and stderr separately into
// memory. The returned error is nil when the process exited with status 0.
// ExitCode is -1 when the process could not be started or was interrupted.
func (cmd Cmd) Call(ctx context.Context) (Result, error) {
	var stdout, stderr bytes.Buffer
	err := cmd.Capture(&stdout, &stderr).Run(ctx)
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *ExitCodeError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.Code
	default:
		res.ExitCode = -1
	}
	return res, err
}

// String renders the command line, quoting arguments that contain spaces.
func (cmd Cmd) String() string {
	var sb strings.Builder
	sb.WriteString(cmd.Name)
	for _, arg := range cmd.Args {
		sb.WriteByte(' ')
		if strings.ContainsRune(arg, ' ') {
			sb.WriteString(`"` + arg + `"`)
		} else {
			sb.WriteString(arg)
		}
	}
	return sb.String()
}
