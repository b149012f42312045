package config

import (
	"path/filepath"
	"runtime"
)

const (
	// DefaultGLSLCompiler is resolved on PATH when nothing else is configured.
	DefaultGLSLCompiler = "glslang"
	// DefaultHLSLCompiler is resolved on PATH when nothing else is configured.
	DefaultHLSLCompiler = "dxc"
	// DefaultGLSLVersion is passed to the GLSL compiler as --glsl-version.
	DefaultGLSLVersion = "460"
	// DefaultWorkingDir is the directory holding glsl/ and hlsl/.
	DefaultWorkingDir = "."
)

// Model is the resolved toolchain configuration. An empty field means "not
// set by this layer".
type Model struct {
	GLSLCompiler string
	HLSLCompiler string
	GLSLVersion  string
	WorkingDir   string
}

// Defaults returns the built-in bottom layer.
func Defaults() Model {
	return Model{
		GLSLCompiler: DefaultGLSLCompiler,
		HLSLCompiler: DefaultHLSLCompiler,
		GLSLVersion:  DefaultGLSLVersion,
		WorkingDir:   DefaultWorkingDir,
	}
}

// Overlay returns m with every non-empty field of top applied on top.
func (m Model) Overlay(top Model) Model {
	if top.GLSLCompiler != "" {
		m.GLSLCompiler = top.GLSLCompiler
	}
	if top.HLSLCompiler != "" {
		m.HLSLCompiler = top.HLSLCompiler
	}
	if top.GLSLVersion != "" {
		m.GLSLVersion = top.GLSLVersion
	}
	if top.WorkingDir != "" {
		m.WorkingDir = top.WorkingDir
	}
	return m
}

// SDKTools returns the compiler paths inside a Vulkan SDK installation.
func SDKTools(sdkRoot string) Model {
	if sdkRoot == "" {
		return Model{}
	}
	return Model{
		GLSLCompiler: filepath.Join(sdkRoot, "bin", exe("glslang")),
		HLSLCompiler: filepath.Join(sdkRoot, "bin", exe("dxc")),
	}
}

func exe(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
