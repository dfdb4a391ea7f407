// Package symbol interns identifier and string text into small comparable handles.
//
// An Interner is created once per run and handed explicitly to every stage that needs
// to create or resolve symbols. There is no package level interner.
package symbol

import "fmt"

// Symbol is a handle to interned text. The zero Symbol is Invalid and never resolves.
type Symbol uint32

// Well known symbols are pre-interned by every Interner at fixed handles so that code
// without access to an Interner (host error conversions, for instance) can still build
// symbol keyed values.
const (
	Invalid Symbol = iota
	Description
	Context
	Cause

	firstDynamic
)

var wellKnown = [firstDynamic]string{
	Invalid:     "",
	Description: "description",
	Context:     "context",
	Cause:       "cause",
}

// Interner deduplicates text into Symbols. It is not safe for concurrent use.
type Interner struct {
	ids   map[string]Symbol
	names []string
}

// NewInterner returns an Interner seeded with the well known symbols.
func NewInterner() *Interner {
	in := &Interner{
		ids:   make(map[string]Symbol, 64),
		names: make([]string, 0, 64),
	}
	for sym, name := range wellKnown {
		in.names = append(in.names, name)
		if Symbol(sym) != Invalid {
			in.ids[name] = Symbol(sym)
		}
	}
	return in
}

// GetOrIntern returns the handle for name, interning it when first seen.
func (in *Interner) GetOrIntern(name string) Symbol {
	if sym, ok := in.ids[name]; ok {
		return sym
	}
	sym := Symbol(len(in.names))
	in.names = append(in.names, name)
	in.ids[name] = sym
	return sym
}

// Get looks name up without interning it.
func (in *Interner) Get(name string) (Symbol, bool) {
	sym, ok := in.ids[name]
	return sym, ok
}

// Resolve returns the text behind sym.
func (in *Interner) Resolve(sym Symbol) (string, bool) {
	if sym == Invalid || int(sym) >= len(in.names) {
		return "", false
	}
	return in.names[sym], true
}

// Name is Resolve for display purposes: unknown handles render as a placeholder.
func (in *Interner) Name(sym Symbol) string {
	if name, ok := in.Resolve(sym); ok {
		return name
	}
	return fmt.Sprintf("<symbol %d>", uint32(sym))
}

// Len reports how many symbols are interned, the invalid handle excluded.
func (in *Interner) Len() int {
	return len(in.names) - 1
}
