package app

import (
	"errors"

	"github.com/specialistvlad/assetpipe/internal/config"
)

// Config holds the settings shared by both tools.
type Config struct {
	// ToolchainFile is an explicit HCL toolchain file. Empty means look for
	// DefaultToolchainFile in the working directory.
	ToolchainFile string
	// Toolchain is the command-line layer; empty fields are unset.
	Toolchain config.Model

	LogFormat string
	LogLevel  string
	Color     bool
	Workers   int
}

// CompileConfig configures compileshader.
type CompileConfig struct {
	Config
	Stage string
	Name  string
	// All compiles every shader found under glsl/ and hlsl/.
	All bool
}

// ConvertConfig configures rgbaconvert.
type ConvertConfig struct {
	Config
	Input  string
	Output string
}

// NewCompileConfig validates cfg.
func NewCompileConfig(cfg CompileConfig) (*CompileConfig, error) {
	if cfg.All {
		if cfg.Name != "" {
			return nil, errors.New("a shader name cannot be combined with -all")
		}
	} else if cfg.Stage == "" || cfg.Name == "" {
		return nil, errors.New("both a stage keyword and a shader name are required")
	}
	if cfg.Workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	return &cfg, nil
}

// NewConvertConfig validates cfg.
func NewConvertConfig(cfg ConvertConfig) (*ConvertConfig, error) {
	if cfg.Input == "" {
		return nil, errors.New("an input image path is required")
	}
	return &cfg, nil
}
