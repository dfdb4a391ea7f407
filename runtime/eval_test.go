package runtime

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/gahag/hush/semantic"
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
	"github.com/gahag/hush/syntax"
)

type harness struct {
	t        *testing.T
	in       *symbol.Interner
	analyzer *semantic.Analyzer
	rt       *Runtime
	stdout   *bytes.Buffer
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	in := symbol.NewInterner()
	stdout := &bytes.Buffer{}
	cfg.Stdout = stdout
	cfg.Stderr = &bytes.Buffer{}
	return &harness{t: t, in: in, analyzer: semantic.New(in), rt: New(in, cfg), stdout: stdout}
}

func (h *harness) eval(script string) (Value, error) {
	h.t.Helper()
	analysis := syntax.Analyze(source.FromString(h.in.GetOrIntern("<test>"), script), h.in)
	if len(analysis.Errors) > 0 {
		h.t.Fatalf("unexpected syntax errors: %v", analysis.Errors)
	}
	prog, errs := h.analyzer.Analyze(analysis.AST)
	if len(errs) > 0 {
		h.t.Fatalf("unexpected semantic errors: %v", errs)
	}
	return h.rt.Eval(prog)
}

func (h *harness) mustEval(script string) Value {
	h.t.Helper()
	value, err := h.eval(script)
	if err != nil {
		h.t.Fatalf("unexpected panic: %v", err)
	}
	return value
}

func (h *harness) mustPanic(script string, kind PanicKind) *Panic {
	h.t.Helper()
	_, err := h.eval(script)
	var p *Panic
	if !errors.As(err, &p) {
		h.t.Fatalf("expected a panic, got %v", err)
	}
	if p.Kind != kind {
		h.t.Fatalf("expected %s panic, got %s", kind, p.Show(h.in))
	}
	return p
}

func evalScript(t *testing.T, script string) Value {
	t.Helper()
	return newHarness(t, Config{}).mustEval(script)
}

func TestEvalEmptyProgramIsNil(t *testing.T) {
	if v := evalScript(t, ""); !v.IsNil() {
		t.Fatalf("expected nil, got %s", v.Inspect())
	}
}

func TestEvalScripts(t *testing.T) {
	cases := []struct {
		name   string
		script string
		want   string
	}{
		{"arithmetic", "1 + 2 * 3 - 4 / 2 % 3", "5"},
		{"float arithmetic", "1.5 * 2.0", "3.0"},
		{"float division by zero", "1.0 / 0.0", "inf"},
		{"concat strings", `"ab" ++ "cd"`, `"abcd"`},
		{"concat arrays", "[1] ++ [2, 3]", "[1, 2, 3]"},
		{"comparison", `"a" < "b" and 2 >= 2 and not (1 > 2)`, "true"},
		{"equality across kinds", `1 == 1.0`, "false"},
		{"short circuit", "false and (1 / 0 == 1)", "false"},
		{"string index", `"abc"[1]`, "'b'"},
		{"if chain", "let x = 2\nif x == 1 then \"one\" elseif x == 2 then \"two\" else \"many\" end", `"two"`},
		{"while break", "let i = 0\nwhile true do\n i = i + 1\n if i == 3 then break end\nend\ni", "3"},
		{"for array", "let sum = 0\nfor x in [1, 2, 3] do sum = sum + x end\nsum", "6"},
		{"for string", "let n = 0\nfor b in \"hey\" do n = n + 1 end\nn", "3"},
		{"for dict keys", "let ks = []\nfor k in @[ b: 1, a: 2 ] do std.push(ks, k) end\nks", `["b", "a"]`},
		{"for range", "let total = 0\nfor i in std.range(0, 5) do total = total + i end\ntotal", "10"},
		{"range step", "let xs = []\nfor i in std.range(10, 0, -3) do std.push(xs, i) end\nxs", "[10, 7, 4, 1]"},
		{"iter", "let xs = []\nfor i in std.iter([4, 5]) do std.push(xs, i) end\nxs", "[4, 5]"},
		{"deep arrays differ", "let b = 1\nlet e = 2\nlet i = 0\nwhile i < 100 do\n b = [b]\n e = [e]\n i = i + 1\nend\nb == e", "false"},
		{"cyclic dict key", "let a = []\nstd.push(a, a)\nstd.push(a, a)\nstd.push(a, a)\nlet d = @[]\nd[a] = 1\nd[a] + std.len(d)", "2"},
		{"string bytes kept", "std.len(\"\xff\")", "1"},
		{"smallest int", "-9223372036854775808", "-9223372036854775808"},
		{"bracket on new line", "let a = \"x\"\n[a, a]", `["x", "x"]`},
		{"recursion", "function fib(n) if n < 2 then return n end return fib(n - 1) + fib(n - 2) end\nfib(15)", "610"},
		{"closure counter", "function counter()\n let n = 0\n return function ()\n  n = n + 1\n  return n\n end\nend\nlet c = counter()\nc()\nc()", "2"},
		{"method self", "let obj = @[ count: 0, bump: function () self.count = self.count + 1 return self.count end ]\nobj.bump()\nobj.bump()", "2"},
		{"implicit return", "function f() 1\n2 end\nf()", "2"},
		{"dict index assign", "let d = @[]\nd[[1, 2]] = \"pair\"\nd[[1, 2]]", `"pair"`},
		{"array aliasing", "let a = [1]\nlet b = a\nstd.push(b, 2)\na", "[1, 2]"},
		{"copy", "let a = [1]\nlet b = std.copy(a)\nstd.push(b, 2)\na", "[1]"},
		{"sort", "let a = [3, 1.5, \"x\", 2, nil]\nstd.sort(a)\na", `[nil, 2, 3, 1.5, "x"]`},
		{"type", "std.type(@[])", `"dict"`},
		{"len", `std.len("four") + std.len([1]) + std.len(@[ a: 1 ])`, "6"},
		{"contains", `std.contains([1, 2], 2) and std.contains(@[ a: 1 ], "a") and std.contains("hush", "us")`, "true"},
		{"keys and values", "let d = @[ a: 1, b: 2 ]\nstd.keys(d) ++ std.values(d)", `["a", "b", 1, 2]`},
		{"remove", "let d = @[ a: 1, b: 2 ]\nstd.remove(d, \"a\")\nd", "@[ b: 2 ]"},
		{"int and float", `std.int("42") + std.int(3.9) + std.int(std.float(1))`, "46"},
		{"to_string", `std.to_string([1, "a"])`, `"[1, \"a\"]"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := evalScript(t, tc.script).Inspect(); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNativeFailuresAreErrorValues(t *testing.T) {
	cases := []struct {
		script      string
		description string
	}{
		{"std.pop([])", "empty collection"},
		{"std.get([1], 5)", "index out of bounds"},
		{`std.get(@[], "x")`, "index out of bounds"},
		{`std.remove(@[], "x")`, "index out of bounds"},
		{"std.len(1, 2)", "invalid argument"},
		{"std.len(1)", "invalid argument"},
		{"std.push(1, 2)", "invalid argument"},
		{`std.int("nope")`, `strconv.ParseInt: parsing "nope": invalid syntax`},
		{"std.range(0, 1, 0)", "invalid argument"},
	}
	for _, tc := range cases {
		v := evalScript(t, tc.script)
		if !v.IsError() {
			t.Fatalf("%s: expected an error value, got %s", tc.script, v.Inspect())
		}
		if v.Err().Description() != tc.description {
			t.Fatalf("%s: description %q, want %q", tc.script, v.Err().Description(), tc.description)
		}
	}
}

func TestErrorValues(t *testing.T) {
	h := newHarness(t, Config{})
	v := h.mustEval(`let e = std.error("boom", 42)
std.assert(std.is_error(e))
e.tag = "custom"
[e.description, e.context, e["tag"]]`)
	if got := v.Inspect(); got != `["boom", 42, "custom"]` {
		t.Fatalf("unexpected error fields: %s", got)
	}
	h.mustPanic(`std.error("boom").missing`, PanicIndexOutOfBounds)
}

func TestEvalPanics(t *testing.T) {
	cases := []struct {
		name   string
		script string
		kind   PanicKind
	}{
		{"array out of bounds", "[1, 2, 3][5]", PanicIndexOutOfBounds},
		{"negative index", "[1][-1]", PanicIndexOutOfBounds},
		{"missing dict key", `@[ a: 1 ]["b"]`, PanicIndexOutOfBounds},
		{"assign out of bounds", "let a = []\na[0] = 1", PanicIndexOutOfBounds},
		{"integer overflow", "9223372036854775807 + 1", PanicIntegerOverflow},
		{"negate overflow", "-(-9223372036854775807 - 1)", PanicIntegerOverflow},
		{"division by zero", "1 / 0", PanicDivisionByZero},
		{"modulo by zero", "1 % 0", PanicDivisionByZero},
		{"condition type", "if 1 then 2 end", PanicTypeError},
		{"logical operand", "1 and true", PanicTypeError},
		{"index non container", "1[0]", PanicTypeError},
		{"iterate int", "for x in 1 do x end", PanicTypeError},
		{"mixed arithmetic", "1 + 1.0", PanicInvalidOperand},
		{"byte arithmetic", "'a' + 'b'", PanicInvalidOperand},
		{"call non function", "let x = 1\nx()", PanicInvalidCall},
		{"closure arity", "function f(a) a end\nf()", PanicInvalidCall},
		{"assert", "std.assert(1 == 2, \"math\")", PanicAssertionFailed},
		{"user panic", `std.panic("bail")`, PanicUser},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			newHarness(t, Config{}).mustPanic(tc.script, tc.kind)
		})
	}
}

func TestPanicCarriesIndexPosition(t *testing.T) {
	h := newHarness(t, Config{})
	p := h.mustPanic("let a = [1, 2, 3]\na[5]", PanicIndexOutOfBounds)
	if p.Pos.Line != 2 || p.Pos.Column != 2 {
		t.Fatalf("unexpected panic position %s", p.Pos)
	}
	shown := p.Show(h.in)
	if !strings.Contains(shown, "<test> (line 2, column 2)") || !strings.Contains(shown, "index 5 out of bounds for array of length 3") {
		t.Fatalf("unexpected rendering: %s", shown)
	}
}

func TestRecursionLimit(t *testing.T) {
	h := newHarness(t, Config{RecursionLimit: 50})
	h.mustPanic("function f(n) return f(n + 1) end\nf(0)", PanicStackOverflow)

	// The depth counter must be reset for later evaluations.
	if v := h.mustEval("function g(n) if n == 0 then return 0 end return g(n - 1) end\ng(40)"); v.Int() != 0 {
		t.Fatalf("unexpected result %s", v.Inspect())
	}
}

func TestPrintWritesToStdout(t *testing.T) {
	h := newHarness(t, Config{})
	h.mustEval(`std.print("hello", 1, [1, "a"], 'c')`)
	if got := h.stdout.String(); got != "hello 1 [1, \"a\"] 'c'\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRootFramePersists(t *testing.T) {
	h := newHarness(t, Config{})
	h.mustEval("let x = 41\nfunction inc() x = x + 1 end")
	h.mustEval("inc()")
	if v := h.mustEval("x"); v.Int() != 42 {
		t.Fatalf("expected 42, got %s", v.Inspect())
	}
}

func TestClosuresOutliveEval(t *testing.T) {
	h := newHarness(t, Config{})
	fn := h.mustEval("let base = 10\nfunction (n) base + n end")
	if fn.Kind() != KindFunction {
		t.Fatalf("expected a function, got %s", fn.Inspect())
	}
	v, err := h.rt.Call(fn, []Value{NewInt(5)}, source.Pos{})
	if err != nil || v.Int() != 15 {
		t.Fatalf("calling returned closure: %v %v", v.Inspect(), err)
	}
}

func TestRegisterNative(t *testing.T) {
	h := newHarness(t, Config{})
	h.rt.RegisterNative("double", func(ctx *CallContext) (Value, error) {
		if bad, ok := ExpectKind(ctx, "double", 0, KindInt); !ok {
			return bad, nil
		}
		return NewInt(ctx.Arg(0).Int() * 2), nil
	})
	if v := h.mustEval("std.double(21)"); v.Int() != 42 {
		t.Fatalf("unexpected result %s", v.Inspect())
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe gone")
}

func TestNativeErrorsBecomePanics(t *testing.T) {
	h := newHarness(t, Config{})
	h.rt.RegisterNative("quota", func(*CallContext) (Value, error) {
		return Value{}, errors.New("quota exceeded")
	})
	h.rt.RegisterNative("open", func(*CallContext) (Value, error) {
		return Value{}, &fs.PathError{Op: "open", Path: "data.txt", Err: fs.ErrNotExist}
	})
	if p := h.mustPanic("std.quota()", PanicHost); !strings.Contains(p.Show(h.in), "host error: quota exceeded") {
		t.Fatalf("unexpected rendering %s", p.Show(h.in))
	}
	if p := h.mustPanic("std.open()", PanicIo); !errors.Is(p, fs.ErrNotExist) {
		t.Fatalf("io panic should unwrap to the host error")
	}

	out := newHarness(t, Config{})
	out.rt = New(out.in, Config{Stdout: brokenWriter{}})
	out.mustPanic(`std.print("x")`, PanicIo)
}

func TestCodecs(t *testing.T) {
	cases := []struct {
		codec string
		value string
	}{
		{"json", `@[ a: [1, 2.5, "x"], b: nil, c: @[ d: true ] ]`},
		{"yaml", `@[ a: [1, 2.5, "x"], b: nil, c: @[ d: true ] ]`},
		{"toml", `@[ name: "hush", n: 3, xs: [1, 2] ]`},
		{"cbor", `@[ a: 1, b: "s", c: [-1, true] ]`},
	}
	for _, tc := range cases {
		t.Run(tc.codec, func(t *testing.T) {
			script := "let v = " + tc.value + "\nstd." + tc.codec + ".decode(std." + tc.codec + ".encode(v)) == v"
			if v := evalScript(t, script); !v.Bool() {
				t.Fatalf("%s round trip failed", tc.codec)
			}
		})
	}
}

func TestCodecFailuresAreErrorValues(t *testing.T) {
	cases := []string{
		"std.json.encode(std.print)",
		"let a = []\nstd.push(a, a)\nstd.json.encode(a)",
		`std.json.decode("{")`,
		`std.json.decode("1 2")`,
		`std.yaml.decode("a: [1")`,
		"std.toml.encode([1])",
		`std.toml.decode("= 1")`,
		`std.cbor.decode("")`,
	}
	for _, script := range cases {
		h := newHarness(t, Config{})
		v := h.mustEval(script)
		if !v.IsError() {
			t.Fatalf("%s: expected an error value, got %s", script, v.Inspect())
		}
	}
}
