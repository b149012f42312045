package shader

import (
	"path/filepath"
	"strings"
)

// Language identifies which source tree and compiler a branch uses.
type Language string

const (
	GLSL Language = "GLSL"
	HLSL Language = "HLSL"
)

// Dir is the subdirectory of the working directory holding sources.
func (l Language) Dir() string {
	return strings.ToLower(string(l))
}

// spvExt is appended to the source path to name the compiled artifact.
const spvExt = ".spv"

// SourcePath returns workingDir/<lang dir>/name. The working directory is
// kept verbatim so "." stays visible in the result ("./glsl/a.vert").
func SourcePath(workingDir string, lang Language, name string) string {
	if workingDir == "" {
		workingDir = "."
	}
	sep := string(filepath.Separator)
	dir := strings.TrimRight(workingDir, `/\`)
	return dir + sep + lang.Dir() + sep + name
}

// GLSLArgs builds the glslang argument list for path.
func GLSLArgs(stage Stage, version, path string) []string {
	args := []string{"-V", "--glsl-version", version}
	if stage.Extended() {
		args = append(args, "--target-env", "spirv1.4")
	}
	return append(args, path, "-o", path+spvExt)
}

// HLSLArgs builds the dxc argument list for path. The entry point is always main.
func HLSLArgs(stage Stage, path string) []string {
	return []string{"-spirv", "-T", stage.HLSLProfile(), "-E", "main", path, "-Fo", path + spvExt}
}
