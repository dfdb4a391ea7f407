package driver

import (
	"fmt"
	"io"

	"github.com/gahag/hush/runtime"
	"github.com/gahag/hush/semantic"
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
	"github.com/gahag/hush/syntax"
)

// diagnostic is one rendered error plus the position its code frame points at.
type diagnostic struct {
	message string
	pos     source.Pos
}

func syntaxDiagnostics(errs []*syntax.Error, in *symbol.Interner) []diagnostic {
	out := make([]diagnostic, len(errs))
	for i, err := range errs {
		out[i] = diagnostic{message: err.Show(in), pos: err.Pos}
	}
	return out
}

func semanticDiagnostics(errs []*semantic.Error, in *symbol.Interner) []diagnostic {
	out := make([]diagnostic, len(errs))
	for i, err := range errs {
		out[i] = diagnostic{message: err.Show(in), pos: err.Pos}
	}
	return out
}

type reporter struct {
	w      io.Writer
	src    *source.Source
	in     *symbol.Interner
	styles styles
	limit  int
}

func newReporter(w io.Writer, in *symbol.Interner, cfg Config) *reporter {
	limit := cfg.Diagnostics.MaxErrors
	if limit <= 0 {
		limit = MaxDiagnostics
	}
	return &reporter{w: w, in: in, styles: newStyles(w, cfg.Diagnostics.Color), limit: limit}
}

func (r *reporter) print(d diagnostic) {
	fmt.Fprintf(r.w, "%s %s\n", r.styles.label.Render("Error:"), d.message)
	if frame := r.src.Frame(d.pos, r.in); frame != "" {
		fmt.Fprintln(r.w, r.styles.frame.Render(frame))
	}
}

// report prints at most r.limit diagnostics and summarizes the rest in one line.
func (r *reporter) report(diags []diagnostic) {
	for i, d := range diags {
		if i == r.limit {
			fmt.Fprintln(r.w, r.styles.summary.Render(fmt.Sprintf("... and %d more errors", len(diags)-r.limit)))
			return
		}
		r.print(d)
	}
}

func (r *reporter) panic(p *runtime.Panic) {
	r.print(diagnostic{message: p.Show(r.in), pos: p.Pos})
}
