package shell

import (
	"context"
	"errors"
	"os/exec"

	"github.com/specialistvlad/assetpipe/internal/ctxlog"
)

// LocalTarget runs commands on the local machine using os/exec.
var LocalTarget Target = localTarget{}

type localTarget struct{}

type localProcess struct {
	exec *exec.Cmd
}

func (localTarget) Start(cmd Cmd) (Process, error) {
	p := &localProcess{exec: exec.Command(cmd.Name, cmd.Args...)}
	p.exec.Stdout = cmd.Stdout
	p.exec.Stderr = cmd.Stderr
	return p, p.exec.Start()
}

func (localTarget) String() string { return "local" }

func (p *localProcess) Wait(ctx context.Context) error {
	res := make(chan error, 1)
	go func() { res <- p.exec.Wait() }()
	select {
	case err := <-res:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitCodeError{Code: exitErr.ExitCode()}
		}
		return err
	case <-ctx.Done():
		ctxlog.FromContext(ctx).Warn("Killing process (context cancelled).", "path", p.exec.Path)
		p.exec.Process.Kill()
		<-res
		return ctx.Err()
	}
}
