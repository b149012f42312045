package app

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/assetpipe/internal/config"
	"github.com/specialistvlad/assetpipe/internal/hcl"
	"github.com/specialistvlad/assetpipe/internal/imaging"
	"github.com/specialistvlad/assetpipe/internal/shell/stub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_ToolchainPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		DefaultToolchainFile: `
toolchain {
  glslang      = "/file/glslang"
  dxc          = "/file/dxc"
  glsl_version = "450"
}
`,
	})

	testCases := []struct {
		name     string
		env      map[string]string
		flags    config.Model
		expected config.Model
	}{
		{
			name:  "file overrides SDK",
			env:   map[string]string{config.EnvVulkanSDK: "/sdk"},
			flags: config.Model{WorkingDir: dir},
			expected: config.Model{
				GLSLCompiler: "/file/glslang",
				HLSLCompiler: "/file/dxc",
				GLSLVersion:  "450",
				WorkingDir:   dir,
			},
		},
		{
			name:  "env overrides file",
			env:   map[string]string{config.EnvHLSLCompiler: "/env/dxc"},
			flags: config.Model{WorkingDir: dir},
			expected: config.Model{
				GLSLCompiler: "/file/glslang",
				HLSLCompiler: "/env/dxc",
				GLSLVersion:  "450",
				WorkingDir:   dir,
			},
		},
		{
			name:  "flags override everything",
			env:   map[string]string{config.EnvHLSLCompiler: "/env/dxc"},
			flags: config.Model{WorkingDir: dir, HLSLCompiler: "/flag/dxc", GLSLCompiler: "/flag/glslang"},
			expected: config.Model{
				GLSLCompiler: "/flag/glslang",
				HLSLCompiler: "/flag/dxc",
				GLSLVersion:  "450",
				WorkingDir:   dir,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, _ := setupAppTest(t, &Config{Toolchain: tc.flags}, tc.env, nil)
			if diff := cmp.Diff(tc.expected, a.Toolchain()); diff != "" {
				t.Errorf("Toolchain() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewApp_DefaultsWithoutFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, _ := setupAppTest(t, &Config{Toolchain: config.Model{WorkingDir: dir}}, nil, nil)

	expected := config.Defaults()
	expected.WorkingDir = dir
	require.Equal(t, expected, a.Toolchain())
}

func TestNewApp_SDKLayer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, _ := setupAppTest(t, &Config{Toolchain: config.Model{WorkingDir: dir}}, map[string]string{config.EnvVulkanSDK: "/vk"}, nil)

	sdk := config.SDKTools("/vk")
	assert.Equal(t, sdk.GLSLCompiler, a.Toolchain().GLSLCompiler)
	assert.Equal(t, sdk.HLSLCompiler, a.Toolchain().HLSLCompiler)
}

func TestNewApp_BadToolchainFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "broken.hcl")
	writeFiles(t, dir, map[string]string{"broken.hcl": "toolchain {"})

	_, err := NewApp(context.Background(), &SafeBuffer{}, &SafeBuffer{}, &Config{ToolchainFile: path, Workers: 1}, hcl.NewLoader())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load toolchain file")
}

func TestApp_CompileSingle(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"glsl/ray.rgen": "#version 460\n"})
	rec := stub.Record(stub.OneOf(
		stub.Match(config.DefaultGLSLCompiler, stub.Respond("ray.rgen\n")),
	))
	a, out := setupAppTest(t, &Config{Toolchain: config.Model{WorkingDir: dir}}, nil, rec)

	// --- Act ---
	code, err := a.Compile(context.Background(), &CompileConfig{Stage: "rgen", Name: "ray.rgen"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	require.Len(t, rec.Commands(), 1)
	assert.Contains(t, rec.Commands()[0].Args, "spirv1.4")
	assert.Contains(t, out.String(), "GLSL Output:\nray.rgen\n")
	assert.Contains(t, out.String(), "HLSL: not found")
}

func TestApp_CompileAllReportsFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"glsl/a.vert": "",
		"hlsl/b.frag": "",
	})
	target := stub.OneOf(
		stub.Match(config.DefaultGLSLCompiler, stub.Respond("")),
		stub.Match(config.DefaultHLSLCompiler, stub.Fail(1, "error: no main\n")),
	)
	a, out := setupAppTest(t, &Config{Workers: 2, Toolchain: config.Model{WorkingDir: dir}}, nil, target)

	code, err := a.Compile(context.Background(), &CompileConfig{All: true})

	require.NoError(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), "error: no main")
	assert.Contains(t, out.String(), "2 shaders: 1 ok, 1 failed, 2 not found")
}

func TestApp_ConvertDefaultOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "tex.png")
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 9, G: 8, B: 7, A: 0})
	f, err := os.Create(in)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	a, out := setupAppTest(t, &Config{}, nil, nil)
	require.NoError(t, a.Convert(context.Background(), &ConvertConfig{Input: in}))

	expected := imaging.DefaultOutputPath(in)
	assert.Equal(t, expected+"\n", out.String())
	_, err = os.Stat(expected)
	assert.NoError(t, err)
}

func TestNewCompileConfig(t *testing.T) {
	t.Parallel()

	_, err := NewCompileConfig(CompileConfig{Config: Config{Workers: 1}, Stage: "vert"})
	assert.Error(t, err)
	_, err = NewCompileConfig(CompileConfig{Config: Config{Workers: 1}, All: true, Name: "x"})
	assert.Error(t, err)
	_, err = NewCompileConfig(CompileConfig{Config: Config{Workers: 0}, All: true})
	assert.Error(t, err)
	cfg, err := NewCompileConfig(CompileConfig{Config: Config{Workers: 1}, Stage: "vert", Name: "a.vert"})
	require.NoError(t, err)
	assert.Equal(t, "a.vert", cfg.Name)
}
