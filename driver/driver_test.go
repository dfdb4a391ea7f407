package driver

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func plainConfig() Config {
	cfg := DefaultConfig()
	cfg.Diagnostics.Color = ColorNever
	return cfg
}

func runScript(t *testing.T, script string, opts Options) (ExitStatus, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	status := Run(opts, strings.NewReader(script), &stdout, &stderr)
	return status, stdout.String(), stderr.String()
}

func TestRunEmptyInput(t *testing.T) {
	status, stdout, stderr := runScript(t, "", Options{Config: plainConfig()})
	if status != ExitSuccess {
		t.Fatalf("expected success, got %v (stderr %q)", status, stderr)
	}
	if stdout != "" || stderr != "" {
		t.Fatalf("expected no output, got stdout %q stderr %q", stdout, stderr)
	}
}

func TestRunPrintsToStdout(t *testing.T) {
	status, stdout, _ := runScript(t, `std.print("hello", 1 + 2)`, Options{Config: plainConfig()})
	if status != ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	if stdout != "hello 3\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestRunUndefinedName(t *testing.T) {
	status, stdout, stderr := runScript(t, "std.print(y)", Options{Config: plainConfig()})
	if status != ExitStaticError {
		t.Fatalf("expected static error, got %v", status)
	}
	if stdout != "" {
		t.Fatalf("script must not run, got stdout %q", stdout)
	}
	if !strings.Contains(stderr, "Error: semantic error in <stdin> (line 1, column 11): undeclared variable 'y'") {
		t.Fatalf("unexpected diagnostics %q", stderr)
	}
}

func TestRunIndexOutOfBounds(t *testing.T) {
	script := "let a = [1, 2]\nstd.print(a[5])"
	status, _, stderr := runScript(t, script, Options{Config: plainConfig()})
	if status != ExitPanic {
		t.Fatalf("expected panic status, got %v", status)
	}
	if !strings.Contains(stderr, "panic in <stdin> (line 2,") {
		t.Fatalf("expected panic position, got %q", stderr)
	}
	if !strings.Contains(stderr, "index out of bounds") {
		t.Fatalf("expected panic kind, got %q", stderr)
	}
	if !strings.Contains(stderr, "--> <stdin>:2:") || !strings.Contains(stderr, "\n2 | std.print(a[5])\n") {
		t.Fatalf("expected code frame, got %q", stderr)
	}
}

func TestRunCheckHasNoSideEffects(t *testing.T) {
	opts := Options{Check: true, Config: plainConfig()}
	status, stdout, stderr := runScript(t, "std.print(\"side effect\")\nstd.panic(\"boom\")", opts)
	if status != ExitSuccess {
		t.Fatalf("expected success, got %v (stderr %q)", status, stderr)
	}
	if stdout != "" || stderr != "" {
		t.Fatalf("check must not evaluate, got stdout %q stderr %q", stdout, stderr)
	}
}

func TestRunReportsBothStages(t *testing.T) {
	status, _, stderr := runScript(t, "let = 5\nstd.print(y)", Options{Config: plainConfig()})
	if status != ExitStaticError {
		t.Fatalf("expected static error, got %v", status)
	}
	if !strings.Contains(stderr, "syntax error in <stdin> (line 1") {
		t.Fatalf("expected syntax error, got %q", stderr)
	}
	if !strings.Contains(stderr, "undeclared variable 'y'") {
		t.Fatalf("semantic analysis must still run, got %q", stderr)
	}
}

func TestRunSyntaxErrorsAloneAreStatic(t *testing.T) {
	opts := Options{Config: plainConfig()}
	status, stdout, _ := runScript(t, "std.print(1)\nlet = 5", opts)
	if status != ExitStaticError {
		t.Fatalf("expected static error, got %v", status)
	}
	if stdout != "" {
		t.Fatalf("script must not run, got %q", stdout)
	}
}

func TestRunCapsDiagnostics(t *testing.T) {
	script := strings.Repeat("y\n", 25)
	status, _, stderr := runScript(t, script, Options{Config: plainConfig()})
	if status != ExitStaticError {
		t.Fatalf("expected static error, got %v", status)
	}
	if got := strings.Count(stderr, "Error:"); got != MaxDiagnostics {
		t.Fatalf("expected %d diagnostics, got %d", MaxDiagnostics, got)
	}
	if !strings.Contains(stderr, "... and 5 more errors") {
		t.Fatalf("expected summary line, got %q", stderr)
	}

	cfg := plainConfig()
	cfg.Diagnostics.MaxErrors = 2
	_, _, stderr = runScript(t, script, Options{Config: cfg})
	if got := strings.Count(stderr, "Error:"); got != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", got)
	}
	if !strings.Contains(stderr, "... and 23 more errors") {
		t.Fatalf("expected summary line, got %q", stderr)
	}
}

func TestRunPrintTrees(t *testing.T) {
	opts := Options{Check: true, PrintAST: true, PrintProgram: true, Config: plainConfig()}
	status, stdout, _ := runScript(t, "let a = 1", opts)
	if status != ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	if !strings.Contains(stdout, "let a") {
		t.Fatalf("expected AST dump, got %q", stdout)
	}
	if !strings.Contains(stdout, "function <anonymous> (params 0, frame 2)") {
		t.Fatalf("expected program dump, got %q", stdout)
	}
}

func TestRunPrintsProgramDespiteSyntaxErrors(t *testing.T) {
	opts := Options{PrintProgram: true, Config: plainConfig()}
	status, stdout, stderr := runScript(t, "let a = 1\nlet = 2", opts)
	if status != ExitStaticError {
		t.Fatalf("expected static error, got %v", status)
	}
	if !strings.Contains(stdout, "function <anonymous>") || !strings.Contains(stdout, "let [1]") {
		t.Fatalf("expected program dump, got %q", stdout)
	}
	if !strings.Contains(stderr, "syntax error") {
		t.Fatalf("expected syntax error, got %q", stderr)
	}
}

func TestRunRecursionLimitFromConfig(t *testing.T) {
	cfg := plainConfig()
	cfg.Runtime.RecursionLimit = 10
	script := "function f(n)\n  return f(n + 1)\nend\nf(0)"
	status, _, stderr := runScript(t, script, Options{Config: cfg})
	if status != ExitPanic {
		t.Fatalf("expected panic status, got %v", status)
	}
	if !strings.Contains(stderr, "stack overflow") {
		t.Fatalf("expected stack overflow, got %q", stderr)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestRunInputFailure(t *testing.T) {
	var stdout, stderr bytes.Buffer
	status := Run(Options{Config: plainConfig()}, failingReader{}, &stdout, &stderr)
	if status != ExitPanic {
		t.Fatalf("expected panic status, got %v", status)
	}
	if !strings.Contains(stderr.String(), "panic in <stdin>: io error: disk on fire") {
		t.Fatalf("unexpected diagnostics %q", stderr.String())
	}
}

func TestRunColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Diagnostics.Color = ColorAlways
	_, _, stderr := runScript(t, "y", Options{Config: cfg})
	if !strings.Contains(stderr, "\x1b[") {
		t.Fatalf("expected escape sequences, got %q", stderr)
	}

	_, _, stderr = runScript(t, "y", Options{Config: plainConfig()})
	if strings.Contains(stderr, "\x1b[") {
		t.Fatalf("expected plain text, got %q", stderr)
	}
}

func TestExitStatusCodes(t *testing.T) {
	cases := map[ExitStatus]int{
		ExitSuccess:     0,
		ExitInvalidArgs: 1,
		ExitStaticError: 2,
		ExitPanic:       127,
	}
	for status, code := range cases {
		if int(status) != code {
			t.Fatalf("%v: expected code %d, got %d", status, code, int(status))
		}
	}
}
