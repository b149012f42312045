// Package stub provides shell.Target implementations that never launch a real
// process. They exist so compiler dispatch can be tested without glslang or dxc.
package stub

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/specialistvlad/assetpipe/internal/shell"
)

// UnhandledCmdError is returned when no stub target accepts a command.
type UnhandledCmdError shell.Cmd

func (u UnhandledCmdError) Error() string {
	return fmt.Sprint("unmatched: ", shell.Cmd(u).String())
}

// Response always gives exactly the same response.
type Response struct {
	// StartErr is returned by Start if set.
	StartErr error
	Stdout   string
	Stderr   string
	// ExitCode is reported through a *shell.ExitCodeError when non-zero.
	ExitCode int
}

// Respond returns a Response that writes stdout and exits 0.
func Respond(stdout string) *Response {
	return &Response{Stdout: stdout}
}

// Fail returns a Response that writes stderr and exits with code.
func Fail(code int, stderr string) *Response {
	return &Response{Stderr: stderr, ExitCode: code}
}

func (t *Response) Start(cmd shell.Cmd) (shell.Process, error) {
	if t.StartErr != nil {
		return nil, t.StartErr
	}
	return &responseProcess{cmd: cmd, response: t}, nil
}

type responseProcess struct {
	once     sync.Once
	cmd      shell.Cmd
	response *Response
}

func (p *responseProcess) Wait(ctx context.Context) error {
	p.once.Do(func() {
		if p.cmd.Stdout != nil {
			io.WriteString(p.cmd.Stdout, p.response.Stdout)
		}
		if p.cmd.Stderr != nil {
			io.WriteString(p.cmd.Stderr, p.response.Stderr)
		}
	})
	if p.response.ExitCode != 0 {
		return &shell.ExitCodeError{Code: p.response.ExitCode}
	}
	return nil
}

// MatchTarget delegates to Target when the command's executable equals Name.
type MatchTarget struct {
	Name   string
	Target shell.Target
}

// Match returns a MatchTarget for the executable name.
func Match(name string, handler shell.Target) shell.Target {
	return &MatchTarget{Name: name, Target: handler}
}

func (t *MatchTarget) Start(cmd shell.Cmd) (shell.Process, error) {
	if cmd.Name != t.Name {
		return nil, UnhandledCmdError(cmd)
	}
	return t.Target.Start(cmd)
}

// Delegate passes each command to the first handler that accepts it.
type Delegate struct {
	Handlers []shell.Target
}

// OneOf returns a Delegate that uses the supplied handlers.
func OneOf(handlers ...shell.Target) shell.Target {
	return &Delegate{Handlers: handlers}
}

func (t *Delegate) Start(cmd shell.Cmd) (shell.Process, error) {
	for _, handler := range t.Handlers {
		p, err := handler.Start(cmd)
		if _, unhandled := err.(UnhandledCmdError); !unhandled {
			return p, err
		}
	}
	return nil, UnhandledCmdError(cmd)
}

// Recorder remembers every command started through it before handing it to
// Target. It is safe for concurrent use.
type Recorder struct {
	Target shell.Target

	mu   sync.Mutex
	cmds []shell.Cmd
}

// Record wraps target in a Recorder.
func Record(target shell.Target) *Recorder {
	return &Recorder{Target: target}
}

func (r *Recorder) Start(cmd shell.Cmd) (shell.Process, error) {
	r.mu.Lock()
	r.cmds = append(r.cmds, cmd)
	r.mu.Unlock()
	return r.Target.Start(cmd)
}

// Commands returns a copy of the commands seen so far.
func (r *Recorder) Commands() []shell.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]shell.Cmd, len(r.cmds))
	copy(out, r.cmds)
	return out
}
