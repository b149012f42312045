package shader

import "strings"

// Stage is the pipeline stage keyword, conventionally the source file extension.
type Stage string

const (
	StageVertex   Stage = "vert"
	StageFragment Stage = "frag"
	StageCompute  Stage = "comp"

	StageTask       Stage = "task"
	StageMesh       Stage = "mesh"
	StageRayGen     Stage = "rgen"
	StageMiss       Stage = "rmiss"
	StageClosestHit Stage = "rchit"
	StageCallable   Stage = "rcall"
	StageAnyHit     Stage = "rahit"
)

// StageAuto asks for the stage to be taken from the file extension.
const StageAuto Stage = "auto"

// Mesh shading and ray tracing stages only validate against SPIR-V 1.4.
var extendedStages = map[Stage]struct{}{
	StageTask:       {},
	StageMesh:       {},
	StageRayGen:     {},
	StageMiss:       {},
	StageClosestHit: {},
	StageCallable:   {},
	StageAnyHit:     {},
}

// Extended reports whether glslang must target the spirv1.4 environment.
func (s Stage) Extended() bool {
	_, ok := extendedStages[s]
	return ok
}

// HLSLProfile returns the dxc target profile. Anything that is not a vertex
// or compute stage is compiled as a pixel shader.
func (s Stage) HLSLProfile() string {
	switch s {
	case StageVertex:
		return "vs_6_0"
	case StageCompute:
		return "cs_6_0"
	default:
		return "ps_6_0"
	}
}

// InferStage takes the stage from the last extension of name:
// "blur.comp" is StageCompute, "hit.rchit" is StageClosestHit. A name without
// an extension yields "". Stage keywords are case-sensitive, so the extension
// is used as written: "x.MESH" yields "MESH", which is not an extended stage.
func InferStage(name string) Stage {
	base := name
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return Stage(base[i+1:])
}
