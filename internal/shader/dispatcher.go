package shader

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/specialistvlad/assetpipe/internal/config"
	"github.com/specialistvlad/assetpipe/internal/ctxlog"
	"github.com/specialistvlad/assetpipe/internal/shell"
)

// Dispatcher compiles shader requests with the configured toolchain.
type Dispatcher struct {
	cfg    config.Model
	target shell.Target
}

// NewDispatcher returns a Dispatcher running compilers on target. A nil
// target means shell.LocalTarget.
func NewDispatcher(cfg config.Model, target shell.Target) *Dispatcher {
	if target == nil {
		target = shell.LocalTarget
	}
	if cfg.GLSLVersion == "" {
		cfg.GLSLVersion = config.DefaultGLSLVersion
	}
	return &Dispatcher{cfg: cfg, target: target}
}

// Compile runs the GLSL branch and then the HLSL branch for req. Neither a
// missing source nor a failing compiler stops the other branch.
func (d *Dispatcher) Compile(ctx context.Context, req Request) Report {
	if req.Stage == "" || req.Stage == StageAuto {
		req.Stage = InferStage(req.Name)
	}
	ctx = ctxlog.With(ctx, "shader", req.Name, "stage", string(req.Stage))
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Dispatching shader.", "working_dir", d.cfg.WorkingDir)

	report := Report{Request: req}

	glslPath := SourcePath(d.cfg.WorkingDir, GLSL, req.Name)
	report.GLSL = d.branch(ctx, GLSL, glslPath, func() shell.Cmd {
		return shell.Command(d.cfg.GLSLCompiler, GLSLArgs(req.Stage, d.cfg.GLSLVersion, glslPath)...)
	})

	hlslPath := SourcePath(d.cfg.WorkingDir, HLSL, req.Name)
	report.HLSL = d.branch(ctx, HLSL, hlslPath, func() shell.Cmd {
		return shell.Command(d.cfg.HLSLCompiler, HLSLArgs(req.Stage, hlslPath)...)
	})

	logger.Debug("Shader dispatched.", "invocations", report.Invocations(), "failed", report.Failed())
	return report
}

func (d *Dispatcher) branch(ctx context.Context, lang Language, path string, build func() shell.Cmd) BranchResult {
	logger := ctxlog.FromContext(ctx).With("language", string(lang), "path", path)
	res := BranchResult{Language: lang, SourcePath: path}

	if !isFile(ctx, path) {
		logger.Info("Source not found, skipping.")
		res.Outcome = NotFound
		return res
	}

	cmd := build().On(d.target)
	logger.Info("Compiling.", "cmd", cmd.String())
	out, err := cmd.Call(ctx)
	res.Invocation = &Invocation{
		Executable: cmd.Name,
		Args:       cmd.Args,
		Stdout:     out.Stdout,
		Stderr:     out.Stderr,
		ExitCode:   out.ExitCode,
	}
	if err != nil {
		logger.Warn("Compiler failed.", "exit_code", out.ExitCode, "error", err)
		res.Outcome = Failed
		res.Err = err
		return res
	}
	res.Outcome = Success
	return res
}

// isFile mirrors a regular-file existence check: anything that cannot be
// stat'ed, or is not a regular file, counts as absent.
func isFile(ctx context.Context, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			ctxlog.FromContext(ctx).Warn("Cannot stat source.", "path", path, "error", err)
		}
		return false
	}
	return info.Mode().IsRegular()
}
