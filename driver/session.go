package driver

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/gahag/hush/runtime"
	"github.com/gahag/hush/semantic"
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
	"github.com/gahag/hush/syntax"
)

// ReplPath is the path attributed to chunks evaluated in a Session.
const ReplPath = "<repl>"

// Outcome is the result of evaluating one chunk in a Session.
type Outcome struct {
	Status ExitStatus
	// Value is the value of the chunk's last statement when Status is ExitSuccess.
	Value runtime.Value
	// Output holds whatever the chunk wrote through std.print and std.eprint.
	Output string
	// Errors are the rendered diagnostics, capped like Run caps them.
	Errors []string
}

// Session evaluates chunks of script one after another. Globals declared by a chunk
// stay visible to later chunks. A chunk that fails analysis declares nothing.
type Session struct {
	in       *symbol.Interner
	path     symbol.Symbol
	analyzer *semantic.Analyzer
	rt       *runtime.Runtime
	out      bytes.Buffer
	limit    int
	globals  []string
}

func NewSession(cfg Config) *Session {
	in := symbol.NewInterner()
	s := &Session{
		in:       in,
		path:     in.GetOrIntern(ReplPath),
		analyzer: semantic.New(in),
		limit:    cfg.Diagnostics.MaxErrors,
	}
	if s.limit <= 0 {
		s.limit = MaxDiagnostics
	}
	s.rt = runtime.New(in, runtime.Config{
		RecursionLimit: cfg.Runtime.RecursionLimit,
		Stdout:         &s.out,
		Stderr:         &s.out,
	})
	return s
}

// Runtime exposes the session's runtime so hosts can register natives.
func (s *Session) Runtime() *runtime.Runtime { return s.rt }

// Globals lists the names declared at the top level so far, sorted.
func (s *Session) Globals() []string {
	out := append([]string{semantic.StdName}, s.globals...)
	slices.Sort(out)
	return out
}

// Eval analyzes and runs text. Unlike Run, a chunk with syntax errors never reaches
// semantic analysis, since that would commit its declarations.
func (s *Session) Eval(text string) Outcome {
	s.out.Reset()
	src := source.FromString(s.path, text)

	analysis := syntax.Analyze(src, s.in)
	if len(analysis.Errors) > 0 {
		return s.failed(ExitStaticError, syntaxDiagnostics(analysis.Errors, s.in))
	}

	prog, errs := s.analyzer.Analyze(analysis.AST)
	if len(errs) > 0 {
		return s.failed(ExitStaticError, semanticDiagnostics(errs, s.in))
	}
	s.recordGlobals(analysis.AST)

	value, err := s.rt.Eval(prog)
	if err != nil {
		var p *runtime.Panic
		if !errors.As(err, &p) {
			p = runtime.IoPanic(err, source.File(s.path))
		}
		return s.failed(ExitPanic, []diagnostic{{message: p.Show(s.in), pos: p.Pos}})
	}
	return Outcome{Status: ExitSuccess, Value: value, Output: s.out.String()}
}

func (s *Session) failed(status ExitStatus, diags []diagnostic) Outcome {
	out := Outcome{Status: status, Output: s.out.String()}
	for i, d := range diags {
		if i == s.limit {
			out.Errors = append(out.Errors, fmt.Sprintf("... and %d more errors", len(diags)-s.limit))
			break
		}
		out.Errors = append(out.Errors, d.message)
	}
	return out
}

func (s *Session) recordGlobals(ast *syntax.AST) {
	for _, stmt := range ast.Statements {
		var id *syntax.Identifier
		switch stmt := stmt.(type) {
		case *syntax.LetStmt:
			id = stmt.Name
		case *syntax.FunctionStmt:
			id = stmt.Name
		}
		if id == nil {
			continue
		}
		name := s.in.Name(id.Name)
		if !slices.Contains(s.globals, name) {
			s.globals = append(s.globals, name)
		}
	}
}
