package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/assetpipe/internal/app"
	"github.com/specialistvlad/assetpipe/internal/cli"
	"github.com/specialistvlad/assetpipe/internal/hcl"
)

// main is the entrypoint for compileshader.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()
	if err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.ParseCompile(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	compiler, err := app.NewApp(ctx, outW, errW, &cfg.Config, hcl.NewLoader())
	if err != nil {
		return err
	}

	code, err := compiler.Compile(ctx, cfg)
	if err != nil {
		return err
	}
	if code != 0 {
		return &cli.ExitError{Code: code, Message: "one or more shaders failed to compile"}
	}
	return nil
}
