// Package source holds script text and the positions that point into it.
package source

import (
	"fmt"
	"io"

	"github.com/gahag/hush/symbol"
)

// Source is the full text of one script together with its interned path.
type Source struct {
	Path     symbol.Symbol
	Contents []byte
}

// FromReader reads r to completion. The returned error is the raw I/O failure; callers
// decide how to surface it.
func FromReader(path symbol.Symbol, r io.Reader) (*Source, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Source{Path: path, Contents: contents}, nil
}

// FromString wraps in-memory script text.
func FromString(path symbol.Symbol, text string) *Source {
	return &Source{Path: path, Contents: []byte(text)}
}

// Pos locates a construct in a script. Line and Column are 1-based; a zero Line means
// the position refers to the whole file.
type Pos struct {
	Path   symbol.Symbol
	Line   int
	Column int
}

// File is the synthetic position of an entire script.
func File(path symbol.Symbol) Pos {
	return Pos{Path: path}
}

// IsFile reports whether p is a whole-file position.
func (p Pos) IsFile() bool {
	return p.Line <= 0
}

func (p Pos) String() string {
	if p.IsFile() {
		return "<file>"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Show renders p with its path resolved through in.
func (p Pos) Show(in *symbol.Interner) string {
	path := in.Name(p.Path)
	if p.IsFile() {
		return path
	}
	return fmt.Sprintf("%s (line %d, column %d)", path, p.Line, p.Column)
}
