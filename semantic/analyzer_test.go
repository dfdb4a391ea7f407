package semantic

import (
	"strings"
	"testing"

	"github.com/gahag/hush/program"
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
	"github.com/gahag/hush/syntax"
)

func parseScript(t *testing.T, in *symbol.Interner, script string) *syntax.AST {
	t.Helper()
	analysis := syntax.Analyze(source.FromString(in.GetOrIntern("<test>"), script), in)
	if len(analysis.Errors) > 0 {
		t.Fatalf("unexpected syntax errors: %v", analysis.Errors)
	}
	return analysis.AST
}

func analyzeScript(t *testing.T, script string) (*program.Program, []*Error, *symbol.Interner) {
	t.Helper()
	in := symbol.NewInterner()
	prog, errs := Analyze(parseScript(t, in, script), in)
	return prog, errs, in
}

func TestAnalyzeResolvesSlots(t *testing.T) {
	prog, errs, _ := analyzeScript(t, `
let a = 1
function f(x)
  return a + x
end
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	// std is slot 0, f is hoisted ahead of a.
	if prog.Root.FrameSize != 3 {
		t.Fatalf("expected root frame of 3 slots, got %d", prog.Root.FrameSize)
	}
	let := prog.Root.Body[1].(*program.Let)
	if let.Index != 1 {
		t.Fatalf("expected f in slot 1, got %d", let.Index)
	}
	fn := let.Value.(*program.FunctionLit).Func
	if fn.Params != 1 || fn.FrameSize != 1 {
		t.Fatalf("unexpected function shape: params=%d frame=%d", fn.Params, fn.FrameSize)
	}
	sum := fn.Body[0].(*program.Return).Value.(*program.Binary)
	if got := sum.Left.(*program.Var).Slot; got != (program.Slot{Depth: 1, Index: 2}) {
		t.Fatalf("a resolved to %v", got)
	}
	if got := sum.Right.(*program.Var).Slot; got != (program.Slot{Depth: 0, Index: 0}) {
		t.Fatalf("x resolved to %v", got)
	}
}

func TestAnalyzeStdIsPredeclared(t *testing.T) {
	prog, errs, _ := analyzeScript(t, `std.print("hi")`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	call := prog.Root.Body[0].(*program.ExprStmt).Expr.(*program.MethodCall)
	if call.Field != "print" {
		t.Fatalf("unexpected method %q", call.Field)
	}
	if slot := call.Object.(*program.Var).Slot; slot.Index != program.StdSlot {
		t.Fatalf("std resolved to %v", slot)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	cases := []struct {
		name   string
		script string
		kind   ErrorKind
		shown  string
	}{
		{"undeclared", "let x = y", UndeclaredVariable, "undeclared variable 'y'"},
		{"duplicate", "let x = 1\nlet x = 2", DuplicateDeclaration, "duplicate declaration 'x'"},
		{"duplicate param", "function f(a, a) end", DuplicateDeclaration, "duplicate declaration 'a'"},
		{"return", "return 1", ReturnOutsideFunction, "return outside function"},
		{"break", "break", BreakOutsideLoop, "break outside loop"},
		{"break in nested function", "while true do function f() break end end", BreakOutsideLoop, "break outside loop"},
		{"self", "self", SelfOutsideFunction, "self outside function"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog, errs, in := analyzeScript(t, tc.script)
			if prog != nil {
				t.Fatalf("expected no program on failure")
			}
			if len(errs) != 1 {
				t.Fatalf("expected one error, got %v", errs)
			}
			if errs[0].Kind != tc.kind {
				t.Fatalf("expected %s, got %s", tc.kind, errs[0].Kind)
			}
			if shown := errs[0].Show(in); !strings.Contains(shown, tc.shown) || !strings.Contains(shown, "<test> (line") {
				t.Fatalf("unexpected rendering: %s", shown)
			}
		})
	}
}

func TestAnalyzeAllowsShadowingInNestedBlocks(t *testing.T) {
	_, errs, _ := analyzeScript(t, `
let x = 1
if true then
  let x = 2
end
for x in [1] do
  x
end
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestAnalyzeMutualRecursion(t *testing.T) {
	_, errs, _ := analyzeScript(t, `
function even(n) if n == 0 then return true end return odd(n - 1) end
function odd(n) if n == 0 then return false end return even(n - 1) end
`)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestAnalyzeElseIfIsNested(t *testing.T) {
	prog, errs, _ := analyzeScript(t, "if false then 1 elseif true then 2 else 3 end")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	outer := prog.Root.Body[0].(*program.If)
	inner, ok := outer.Else[0].(*program.If)
	if !ok {
		t.Fatalf("expected nested if, got %T", outer.Else[0])
	}
	if len(inner.Else) != 1 {
		t.Fatalf("expected else branch on the nested if")
	}
}

func TestAnalyzerKeepsRootScopeAcrossCalls(t *testing.T) {
	in := symbol.NewInterner()
	a := New(in)

	if _, errs := a.Analyze(parseScript(t, in, "let x = 1")); len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, errs := a.Analyze(parseScript(t, in, "let y = 2\nz")); len(errs) != 1 {
		t.Fatalf("expected the failing chunk to be rejected, got %v", errs)
	}
	prog, errs := a.Analyze(parseScript(t, in, "let y = x"))
	if len(errs) > 0 {
		t.Fatalf("y should be declarable after rollback: %v", errs)
	}
	let := prog.Root.Body[0].(*program.Let)
	if let.Index != 2 || prog.Root.FrameSize != 3 {
		t.Fatalf("unexpected slot %d / frame %d", let.Index, prog.Root.FrameSize)
	}
}

func TestFormatProgram(t *testing.T) {
	prog, errs, in := analyzeScript(t, "let a = [1]\na[0] = 2")
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := strings.Join([]string{
		"function <anonymous> (params 0, frame 2)",
		"  let [1]",
		"    array",
		"      int 1",
		"  assign index",
		"    var a [0:1]",
		"    int 0",
		"    int 2",
	}, "\n")
	if got := program.Format(prog, in); got != want {
		t.Fatalf("format mismatch:\n%s\nwant\n%s", got, want)
	}
}
