package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gahag/hush/driver"
)

func runWithInput(t *testing.T, script string, args ...string) (driver.ExitStatus, string, string) {
	t.Helper()
	t.Setenv(driver.ConfigEnv, "")
	var stdout, stderr bytes.Buffer
	status := runCLI(append([]string{"hush"}, args...), strings.NewReader(script), &stdout, &stderr)
	return status, stdout.String(), stderr.String()
}

func TestRunCLIHelp(t *testing.T) {
	status, stdout, _ := runWithInput(t, "", "help")
	if status != driver.ExitSuccess {
		t.Fatalf("expected success, got %v", status)
	}
	if !strings.Contains(stdout, "Usage: hush") {
		t.Fatalf("expected usage, got %q", stdout)
	}
}

func TestRunCLIVersion(t *testing.T) {
	status, stdout, _ := runWithInput(t, "", "version")
	if status != driver.ExitSuccess || stdout != "hush "+version+"\n" {
		t.Fatalf("unexpected version output %v %q", status, stdout)
	}
}

func TestRunCLIInvalidArguments(t *testing.T) {
	cases := [][]string{
		{"-nope"},
		{"script.hsh"},
		{"-color", "sometimes"},
		{"repl", "-nope"},
	}
	for _, args := range cases {
		status, _, stderr := runWithInput(t, "", args...)
		if status != driver.ExitInvalidArgs {
			t.Fatalf("%v: expected invalid args, got %v", args, status)
		}
		if !strings.Contains(stderr, "Usage: hush") {
			t.Fatalf("%v: expected usage on stderr, got %q", args, stderr)
		}
	}
}

func TestRunCLIExecutesStdin(t *testing.T) {
	status, stdout, stderr := runWithInput(t, `std.print("hi")`)
	if status != driver.ExitSuccess {
		t.Fatalf("expected success, got %v (%s)", status, stderr)
	}
	if stdout != "hi\n" {
		t.Fatalf("unexpected stdout %q", stdout)
	}
}

func TestRunCLICheckOnly(t *testing.T) {
	status, stdout, _ := runWithInput(t, `std.print("hi")`, "-check")
	if status != driver.ExitSuccess || stdout != "" {
		t.Fatalf("expected silent success, got %v %q", status, stdout)
	}
}

func TestRunCLIStatuses(t *testing.T) {
	cases := []struct {
		script string
		want   driver.ExitStatus
	}{
		{"", driver.ExitSuccess},
		{"undefined_name", driver.ExitStaticError},
		{"let a = [1]\na[2]", driver.ExitPanic},
	}
	for _, tc := range cases {
		status, _, _ := runWithInput(t, tc.script, "-color", "never")
		if status != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.script, tc.want, status)
		}
	}
}

func TestRunCLIConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hush.toml")
	if err := os.WriteFile(path, []byte("[runtime]\nrecursion_limit = 5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	script := "function f()\n  return f()\nend\nf()"
	status, _, stderr := runWithInput(t, script, "-config", path, "-v", "-v")
	if status != driver.ExitPanic || !strings.Contains(stderr, "stack overflow") {
		t.Fatalf("expected stack overflow, got %v %q", status, stderr)
	}

	status, _, stderr = runWithInput(t, "", "-config", filepath.Join(t.TempDir(), "missing.toml"))
	if status != driver.ExitInvalidArgs || !strings.Contains(stderr, "cannot read") {
		t.Fatalf("expected config error, got %v %q", status, stderr)
	}
}

func TestVerbosityFlagCounts(t *testing.T) {
	var v verbosityFlag
	for i := 0; i < 3; i++ {
		if err := v.Set("true"); err != nil {
			t.Fatalf("set: %v", err)
		}
	}
	if err := v.Set("false"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v != 3 || v.String() != "3" {
		t.Fatalf("expected 3, got %s", v.String())
	}
}
