package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/assetpipe/internal/cli"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_NoSourcesIsSuccess(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-dir", dir, "-no-color", "vert", "quad.vert"})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "GLSL: not found")
	require.Contains(t, out.String(), "HLSL: not found")
}

func TestRun_MissingCompilerExitsOne(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "hlsl"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hlsl", "blur.comp"), []byte("[numthreads(1,1,1)] void main() {}"), 0644))

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{
		"-dir", dir,
		"-dxc", filepath.Join(dir, "no-such-dxc"),
		"comp", "blur.comp",
	})

	// --- Assert ---
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok, "expected *cli.ExitError, got %T", err)
	require.Equal(t, 1, exitErr.Code)
}

func TestRun_BadToolchainFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assetpipe.hcl"), []byte("toolchain {"), 0600))

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-dir", dir, "vert", "a.vert"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file")
}
