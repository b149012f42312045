package shader

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter_RelaysOutputVerbatim(t *testing.T) {
	t.Parallel()

	report := Report{
		Request: Request{Stage: "frag", Name: "a.frag"},
		GLSL: BranchResult{
			Language:   GLSL,
			SourcePath: "./glsl/a.frag",
			Outcome:    Failed,
			Err:        errors.New("exit status 2"),
			Invocation: &Invocation{
				Executable: "glslang",
				Args:       []string{"-V", "./glsl/a.frag"},
				Stdout:     "./glsl/a.frag",
				Stderr:     "ERROR: 0:1: '' : syntax error\n",
				ExitCode:   2,
			},
		},
		HLSL: BranchResult{Language: HLSL, SourcePath: "./hlsl/a.frag", Outcome: NotFound},
	}

	out := &bytes.Buffer{}
	NewPrinter(out, false).Print(report)

	expected := `shader stage: frag
shader name: a.frag
GLSL: glslang -V ./glsl/a.frag
GLSL Output:
./glsl/a.frag
GLSL Errors:
ERROR: 0:1: '' : syntax error
GLSL: failed (exit status 2)
HLSL: not found ./hlsl/a.frag
`
	assert.Equal(t, expected, out.String())
}

func TestPrinter_Summary(t *testing.T) {
	t.Parallel()

	reports := []Report{
		{GLSL: BranchResult{Outcome: Success}, HLSL: BranchResult{Outcome: NotFound}},
		{GLSL: BranchResult{Outcome: Failed}, HLSL: BranchResult{Outcome: Success}},
	}
	out := &bytes.Buffer{}
	NewPrinter(out, false).Summary(reports)

	assert.Equal(t, "2 shaders: 2 ok, 1 failed, 1 not found\n", out.String())
}
