package symbol

import "testing"

func TestGetOrInternDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.GetOrIntern("foo")
	b := in.GetOrIntern("bar")
	c := in.GetOrIntern("foo")
	if a != c {
		t.Fatalf("expected same handle for repeated text, got %d and %d", a, c)
	}
	if a == b {
		t.Fatalf("distinct text must not share a handle")
	}
	if got := in.Name(b); got != "bar" {
		t.Fatalf("resolve mismatch: %q", got)
	}
}

func TestWellKnownSymbolsArePreInterned(t *testing.T) {
	in := NewInterner()
	cases := map[Symbol]string{
		Description: "description",
		Context:     "context",
		Cause:       "cause",
	}
	for sym, name := range cases {
		if got := in.GetOrIntern(name); got != sym {
			t.Fatalf("%s: expected handle %d, got %d", name, sym, got)
		}
	}
	if in.GetOrIntern("user") < firstDynamic {
		t.Fatalf("dynamic symbols must not collide with well known handles")
	}
}

func TestInvalidNeverResolves(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Resolve(Invalid); ok {
		t.Fatalf("invalid symbol resolved")
	}
	if _, ok := in.Resolve(Symbol(9999)); ok {
		t.Fatalf("out of range symbol resolved")
	}
	if _, ok := in.Get(""); ok {
		t.Fatalf("empty text must not map to the invalid handle")
	}
}

func TestGetDoesNotIntern(t *testing.T) {
	in := NewInterner()
	before := in.Len()
	if _, ok := in.Get("missing"); ok {
		t.Fatalf("unexpected hit")
	}
	if in.Len() != before {
		t.Fatalf("Get interned new text")
	}
}
