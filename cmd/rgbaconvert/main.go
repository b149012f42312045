package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/assetpipe/internal/app"
	"github.com/specialistvlad/assetpipe/internal/cli"
)

// main is the entrypoint for rgbaconvert.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.ParseConvert(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// No toolchain file is involved in image conversion.
	converter, err := app.NewApp(ctx, outW, errW, &cfg.Config, nil)
	if err != nil {
		return err
	}
	return converter.Convert(ctx, cfg)
}
