package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/assetpipe/internal/app"
	"github.com/specialistvlad/assetpipe/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// commonFlags are shared by both tools.
type commonFlags struct {
	configFile *string
	glslang    *string
	dxc        *string
	dir        *string
	logFormat  *string
	logLevel   *string
	noColor    *bool
}

func addCommonFlags(fs *flag.FlagSet) *commonFlags {
	return &commonFlags{
		configFile: fs.String("config", "", "Path to an HCL toolchain file (default: <dir>/"+app.DefaultToolchainFile+" if present)."),
		glslang:    fs.String("glslang", "", "GLSL compiler executable (overrides $"+config.EnvGLSLCompiler+")."),
		dxc:        fs.String("dxc", "", "HLSL compiler executable (overrides $"+config.EnvHLSLCompiler+")."),
		dir:        fs.String("dir", "", "Working directory holding glsl/ and hlsl/ (default: current directory)."),
		logFormat:  fs.String("log-format", "text", "Log output format. Options: 'text' or 'json'."),
		logLevel:   fs.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'."),
		noColor:    fs.Bool("no-color", false, "Disable colored status output."),
	}
}

func (c *commonFlags) appConfig(workers int) (app.Config, error) {
	logFormat := strings.ToLower(*c.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return app.Config{}, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*c.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return app.Config{}, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	return app.Config{
		ToolchainFile: *c.configFile,
		Toolchain: config.Model{
			GLSLCompiler: *c.glslang,
			HLSLCompiler: *c.dxc,
			WorkingDir:   *c.dir,
		},
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Color:     !*c.noColor,
		Workers:   workers,
	}, nil
}

// ParseCompile processes compileshader arguments. It returns a populated
// CompileConfig, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func ParseCompile(args []string, output io.Writer) (*app.CompileConfig, bool, error) {
	slog.Debug("CLI parser started.", "tool", "compileshader")
	flagSet := flag.NewFlagSet("compileshader", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
compileshader - compile glsl/<name> and hlsl/<name> to SPIR-V.

Usage:
  compileshader [options] <stage> <name>
  compileshader [options] -all

Arguments:
  stage
    Stage keyword: vert, frag, comp, task, mesh, rgen, rmiss, rchit, rcall,
    rahit, or 'auto' to use the name's extension.
  name
    Shader file name, looked up under glsl/ and hlsl/.

Options:
`)
		flagSet.PrintDefaults()
	}

	common := addCommonFlags(flagSet)
	allFlag := flagSet.Bool("all", false, "Compile every shader under glsl/ and hlsl/, inferring stages from extensions.")
	workersFlag := flagSet.Int("workers", 1, "Number of shaders compiled concurrently with -all.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if !*allFlag && flagSet.NArg() == 0 {
		slog.Debug("No shader given, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	base, err := common.appConfig(*workersFlag)
	if err != nil {
		return nil, false, err
	}

	cfg := app.CompileConfig{Config: base, All: *allFlag}
	switch {
	case *allFlag && flagSet.NArg() > 0:
		return nil, false, &ExitError{Code: 2, Message: "-all does not take positional arguments"}
	case *allFlag:
	case flagSet.NArg() == 2:
		cfg.Stage, cfg.Name = flagSet.Arg(0), flagSet.Arg(1)
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected <stage> <name>, got %d argument(s)", flagSet.NArg())}
	}

	validated, err := app.NewCompileConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("CLI parser finished successfully.", "stage", validated.Stage, "name", validated.Name, "all", validated.All)
	return validated, false, nil
}

// ParseConvert processes rgbaconvert arguments.
func ParseConvert(args []string, output io.Writer) (*app.ConvertConfig, bool, error) {
	slog.Debug("CLI parser started.", "tool", "rgbaconvert")
	flagSet := flag.NewFlagSet("rgbaconvert", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
rgbaconvert - rewrite an image as PNG with a fully opaque alpha channel.

Usage:
  rgbaconvert [options] <input> [output]

Arguments:
  input
    Image to convert (png, jpeg, gif, bmp, tiff, webp).
  output
    Destination PNG (default: <input stem>_RGBA.png).

Options:
`)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 2 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected <input> [output], got %d arguments", flagSet.NArg())}
	}

	common := &commonFlags{
		configFile: new(string),
		glslang:    new(string),
		dxc:        new(string),
		dir:        new(string),
		logFormat:  logFormatFlag,
		logLevel:   logLevelFlag,
		noColor:    new(bool),
	}
	base, err := common.appConfig(1)
	if err != nil {
		return nil, false, err
	}

	validated, err := app.NewConvertConfig(app.ConvertConfig{
		Config: base,
		Input:  flagSet.Arg(0),
		Output: flagSet.Arg(1),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return validated, false, nil
}
