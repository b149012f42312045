package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/specialistvlad/assetpipe/internal/config"
	"github.com/specialistvlad/assetpipe/internal/ctxlog"
	"github.com/specialistvlad/assetpipe/internal/shell"
)

// DefaultToolchainFile is picked up from the working directory when no
// toolchain file is given explicitly.
const DefaultToolchainFile = "assetpipe.hcl"

// App encapsulates the resolved configuration and dependencies of one run.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	cfg       Config
	toolchain config.Model
	target    shell.Target
	lookupEnv config.LookupFunc
}

// Option customizes an App.
type Option func(*App)

// WithTarget runs compilers on target instead of the local machine.
func WithTarget(target shell.Target) Option {
	return func(a *App) { a.target = target }
}

// WithLookupEnv replaces os.LookupEnv, for hermetic tests.
func WithLookupEnv(lookup config.LookupFunc) Option {
	return func(a *App) { a.lookupEnv = lookup }
}

// NewApp builds an App writing reports to outW and logs to logW. The
// toolchain is resolved immediately: defaults, then VULKAN_SDK, then the
// toolchain file, then ASSETPIPE_* variables, then flags. A nil loader skips
// the default toolchain file lookup.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	a := &App{
		outW:      outW,
		logger:    logger,
		cfg:       *cfg,
		target:    shell.LocalTarget,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(a)
	}
	if v, ok := a.lookupEnv("NO_COLOR"); ok && v != "" {
		a.cfg.Color = false
	}
	logger.Debug("Logger configured successfully.")

	ctx = ctxlog.WithLogger(ctx, logger)
	toolchain, err := a.resolveToolchain(ctx, loader)
	if err != nil {
		return nil, err
	}
	a.toolchain = toolchain
	logger.Debug("Toolchain resolved.",
		"glslang", toolchain.GLSLCompiler,
		"dxc", toolchain.HLSLCompiler,
		"glsl_version", toolchain.GLSLVersion,
		"working_dir", toolchain.WorkingDir,
	)
	return a, nil
}

// Toolchain returns the resolved toolchain. This is primarily for testing.
func (a *App) Toolchain() config.Model {
	return a.toolchain
}

func (a *App) resolveToolchain(ctx context.Context, loader config.Loader) (config.Model, error) {
	m := config.Defaults().Overlay(config.FromSDK(a.lookupEnv))

	// The working directory decides where the default toolchain file lives,
	// so the flag layer's value is needed before the file is read.
	workingDir := m.Overlay(a.cfg.Toolchain).WorkingDir

	path := a.cfg.ToolchainFile
	if path == "" && loader != nil {
		candidate := filepath.Join(workingDir, DefaultToolchainFile)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		} else if !errors.Is(err, fs.ErrNotExist) {
			return config.Model{}, fmt.Errorf("failed to check toolchain file %s: %w", candidate, err)
		}
	}
	if path != "" {
		if loader == nil {
			return config.Model{}, fmt.Errorf("no loader for toolchain file %s", path)
		}
		fileLayer, err := loader.Load(ctx, path)
		if err != nil {
			return config.Model{}, fmt.Errorf("failed to load toolchain file: %w", err)
		}
		a.logger.Debug("Toolchain file loaded.", "path", path)
		m = m.Overlay(fileLayer)
	}

	m = m.Overlay(config.FromEnv(a.lookupEnv))
	return m.Overlay(a.cfg.Toolchain), nil
}
