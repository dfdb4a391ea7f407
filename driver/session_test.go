package driver

import (
	"slices"
	"strings"
	"testing"

	"github.com/gahag/hush/runtime"
)

func TestSessionKeepsGlobals(t *testing.T) {
	s := NewSession(DefaultConfig())

	if out := s.Eval("let x = 40"); out.Status != ExitSuccess {
		t.Fatalf("unexpected failure %v", out.Errors)
	}
	out := s.Eval("x + 2")
	if out.Status != ExitSuccess {
		t.Fatalf("unexpected failure %v", out.Errors)
	}
	if out.Value.Kind() != runtime.KindInt || out.Value.Int() != 42 {
		t.Fatalf("expected 42, got %s", out.Value.Inspect())
	}
	if got := s.Globals(); !slices.Equal(got, []string{"std", "x"}) {
		t.Fatalf("unexpected globals %v", got)
	}
}

func TestSessionFailedChunkDeclaresNothing(t *testing.T) {
	s := NewSession(DefaultConfig())

	out := s.Eval("let z = 1\nmissing")
	if out.Status != ExitStaticError {
		t.Fatalf("expected static error, got %v", out.Status)
	}
	out = s.Eval("z")
	if out.Status != ExitStaticError {
		t.Fatalf("z must not survive a failed chunk, got %v", out.Status)
	}
	if len(out.Errors) != 1 || !strings.Contains(out.Errors[0], "undeclared variable 'z'") {
		t.Fatalf("unexpected errors %v", out.Errors)
	}

	out = s.Eval("let w = ")
	if out.Status != ExitStaticError || !strings.Contains(out.Errors[0], "syntax error in <repl>") {
		t.Fatalf("expected syntax error, got %v %v", out.Status, out.Errors)
	}
	if out := s.Eval("let w = 2"); out.Status != ExitSuccess {
		t.Fatalf("w should still be declarable, got %v", out.Errors)
	}
}

func TestSessionCapturesOutputAndPanics(t *testing.T) {
	s := NewSession(DefaultConfig())

	out := s.Eval(`std.print("hi")`)
	if out.Status != ExitSuccess || out.Output != "hi\n" {
		t.Fatalf("unexpected outcome %+v", out)
	}

	out = s.Eval("std.print(\"before\")\nlet b = [1]\nb[3]")
	if out.Status != ExitPanic {
		t.Fatalf("expected panic, got %v", out.Status)
	}
	if out.Output != "before\n" {
		t.Fatalf("output before the panic must be kept, got %q", out.Output)
	}
	if !strings.Contains(out.Errors[0], "panic in <repl> (line 3,") {
		t.Fatalf("unexpected panic %v", out.Errors)
	}

	out = s.Eval("1")
	if out.Output != "" {
		t.Fatalf("output must reset between chunks, got %q", out.Output)
	}
}

func TestSessionCapsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Diagnostics.MaxErrors = 3
	s := NewSession(cfg)

	out := s.Eval(strings.Repeat("nope\n", 5))
	if len(out.Errors) != 4 || out.Errors[3] != "... and 2 more errors" {
		t.Fatalf("unexpected errors %v", out.Errors)
	}
}
