package shader

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
)

// Printer relays reports to the console. Compiler output is copied verbatim,
// except that a newline is supplied when the captured text lacks a trailing
// one, so the next header starts on its own line.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter writes to w, coloring status words when colored is true.
func NewPrinter(w io.Writer, colored bool) *Printer {
	return &Printer{w: w, color: colored}
}

// Print writes one report.
func (p *Printer) Print(r Report) {
	fmt.Fprintf(p.w, "shader stage: %s\n", r.Request.Stage)
	fmt.Fprintf(p.w, "shader name: %s\n", r.Request.Name)
	for _, b := range r.Branches() {
		p.printBranch(b)
	}
}

func (p *Printer) printBranch(b BranchResult) {
	if b.Outcome == NotFound {
		fmt.Fprintf(p.w, "%s: %s %s\n", b.Language, p.status(b.Outcome), b.SourcePath)
		return
	}
	fmt.Fprintf(p.w, "%s: %s\n", b.Language, strings.Join(append([]string{b.Invocation.Executable}, b.Invocation.Args...), " "))
	fmt.Fprintf(p.w, "%s Output:\n", b.Language)
	p.verbatim(b.Invocation.Stdout)
	fmt.Fprintf(p.w, "%s Errors:\n", b.Language)
	p.verbatim(b.Invocation.Stderr)
	if b.Outcome == Failed {
		fmt.Fprintf(p.w, "%s: %s (%v)\n", b.Language, p.status(b.Outcome), b.Err)
		return
	}
	fmt.Fprintf(p.w, "%s: %s\n", b.Language, p.status(b.Outcome))
}

func (p *Printer) verbatim(s string) {
	if s == "" {
		return
	}
	io.WriteString(p.w, s)
	if !strings.HasSuffix(s, "\n") {
		io.WriteString(p.w, "\n")
	}
}

// Summary writes the batch totals line.
func (p *Printer) Summary(reports []Report) {
	var ok, failed, missing int
	for _, r := range reports {
		for _, b := range r.Branches() {
			switch b.Outcome {
			case Success:
				ok++
			case Failed:
				failed++
			case NotFound:
				missing++
			}
		}
	}
	fmt.Fprintf(p.w, "%d shaders: %d %s, %d %s, %d %s\n",
		len(reports),
		ok, p.status(Success),
		failed, p.status(Failed),
		missing, p.status(NotFound),
	)
}

func (p *Printer) status(o Outcome) string {
	s := o.String()
	if !p.color {
		return s
	}
	switch o {
	case Success:
		return color.Green.Sprint(s)
	case Failed:
		return color.Red.Sprint(s)
	default:
		return color.Yellow.Sprint(s)
	}
}
