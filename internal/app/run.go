package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/assetpipe/internal/ctxlog"
	"github.com/specialistvlad/assetpipe/internal/imaging"
	"github.com/specialistvlad/assetpipe/internal/shader"
)

// Compile runs compileshader and returns the process exit code: 0 when no
// compiler failed, 1 otherwise. Missing sources are not failures.
func (a *App) Compile(ctx context.Context, cfg *CompileConfig) (int, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Compile started.", "all", cfg.All)

	dispatcher := shader.NewDispatcher(a.toolchain, a.target)
	printer := shader.NewPrinter(a.outW, a.cfg.Color)

	if !cfg.All {
		report := dispatcher.Compile(ctx, shader.Request{Stage: shader.Stage(cfg.Stage), Name: cfg.Name})
		printer.Print(report)
		return shader.ExitCode(report), nil
	}

	reqs, err := shader.Discover(a.toolchain.WorkingDir)
	if err != nil {
		return 1, fmt.Errorf("failed to discover shaders: %w", err)
	}
	if len(reqs) == 0 {
		a.logger.Warn("No shader sources found.", "working_dir", a.toolchain.WorkingDir)
	}
	a.logger.Info("Compiling shaders.", "count", len(reqs), "workers", a.cfg.Workers)

	reports := dispatcher.CompileAll(ctx, reqs, a.cfg.Workers)
	for _, r := range reports {
		printer.Print(r)
	}
	printer.Summary(reports)

	a.logger.Debug("App.Compile finished.")
	return shader.ExitCode(reports...), nil
}

// Convert runs rgbaconvert. An empty output path defaults to
// <input stem>_RGBA.png beside the input.
func (a *App) Convert(ctx context.Context, cfg *ConvertConfig) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	out := cfg.Output
	if out == "" {
		out = imaging.DefaultOutputPath(cfg.Input)
	}
	a.logger.Debug("App.Convert started.", "input", cfg.Input, "output", out)

	if err := imaging.ConvertToOpaqueRGBA(ctx, cfg.Input, out); err != nil {
		return err
	}
	fmt.Fprintln(a.outW, out)
	return nil
}
