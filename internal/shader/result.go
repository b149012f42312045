package shader

import "fmt"

// Outcome is the result kind of one compiler branch.
type Outcome int

const (
	// NotFound means the source file does not exist; nothing was run.
	NotFound Outcome = iota
	// Success means the compiler exited with status 0.
	Success
	// Failed means the compiler exited non-zero or could not be started.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not found"
	case Success:
		return "ok"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Request names one shader to compile.
type Request struct {
	Stage Stage
	Name  string
}

// Invocation is one compiler run with its fully captured output.
type Invocation struct {
	Executable string
	Args       []string
	Stdout     string
	Stderr     string
	// ExitCode is -1 when the process never ran to completion.
	ExitCode int
}

// BranchResult describes what happened to the GLSL or HLSL variant.
type BranchResult struct {
	Language   Language
	SourcePath string
	Outcome    Outcome
	// Invocation is nil for NotFound.
	Invocation *Invocation
	// Err is set for Failed.
	Err error
}

// Report aggregates both branches of a Request.
type Report struct {
	Request Request
	GLSL    BranchResult
	HLSL    BranchResult
}

// Branches returns the GLSL and HLSL results in that order.
func (r Report) Branches() []BranchResult {
	return []BranchResult{r.GLSL, r.HLSL}
}

// Failed reports whether either branch failed.
func (r Report) Failed() bool {
	return r.GLSL.Outcome == Failed || r.HLSL.Outcome == Failed
}

// Invocations counts compiler runs.
func (r Report) Invocations() int {
	n := 0
	for _, b := range r.Branches() {
		if b.Invocation != nil {
			n++
		}
	}
	return n
}

// ExitCode is 1 if any report failed and 0 otherwise. Missing sources do not
// count as failures.
func ExitCode(reports ...Report) int {
	for _, r := range reports {
		if r.Failed() {
			return 1
		}
	}
	return 0
}
