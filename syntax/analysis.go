// Package syntax turns script text into a best-effort syntax tree plus the syntax
// errors found along the way.
package syntax

import (
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
)

// Analysis is the result of syntax analysis. AST is never nil.
type Analysis struct {
	AST    *AST
	Errors []*Error
}

// Analyze parses src, interning every identifier into in.
func Analyze(src *source.Source, in *symbol.Interner) Analysis {
	p := newParser(string(src.Contents), src.Path, in)
	statements := p.parseProgram()
	return Analysis{
		AST:    &AST{Path: src.Path, Statements: statements},
		Errors: p.errors,
	}
}
