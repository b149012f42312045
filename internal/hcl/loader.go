package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/assetpipe/internal/config"
	"github.com/specialistvlad/assetpipe/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// Environ supplies the `env` variable. Nil means os.Environ.
	Environ func() []string
}

// NewLoader creates a new HCL toolchain loader reading the process environment.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ}
}

// fileRoot is the top-level schema of a toolchain file.
type fileRoot struct {
	Toolchain *toolchainBlock `hcl:"toolchain,block"`
}

type toolchainBlock struct {
	GLSLang     *string `hcl:"glslang,optional"`
	DXC         *string `hcl:"dxc,optional"`
	GLSLVersion *string `hcl:"glsl_version,optional"`
}

// Load parses path and returns the toolchain layer it declares.
func (l *Loader) Load(ctx context.Context, path string) (config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL toolchain loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return config.Model{}, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}
	evalCtx := newEvalContext(environ())

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalCtx, &root)
	if diags.HasErrors() {
		return config.Model{}, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	var m config.Model
	if root.Toolchain == nil {
		logger.Debug("Toolchain file has no toolchain block.", "path", path)
		return m, nil
	}

	baseDir := filepath.Dir(path)
	tc := root.Toolchain
	if tc.GLSLang != nil {
		m.GLSLCompiler = resolveTool(baseDir, *tc.GLSLang)
	}
	if tc.DXC != nil {
		m.HLSLCompiler = resolveTool(baseDir, *tc.DXC)
	}
	if tc.GLSLVersion != nil {
		m.GLSLVersion = *tc.GLSLVersion
	}

	logger.Debug("HCL toolchain loading complete.", "glslang", m.GLSLCompiler, "dxc", m.HLSLCompiler)
	return m, nil
}

// resolveTool anchors relative paths at the toolchain file's directory. Bare
// names are left alone so they are looked up on PATH.
func resolveTool(baseDir, tool string) string {
	if tool == "" || filepath.IsAbs(tool) || !strings.ContainsAny(tool, `/\`) {
		return tool
	}
	return filepath.Join(baseDir, tool)
}

var _ config.Loader = (*Loader)(nil)
