// Package driver runs a script through syntax analysis, semantic analysis and
// evaluation, reporting diagnostics and mapping the outcome to a process exit status.
package driver

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gahag/hush/program"
	"github.com/gahag/hush/runtime"
	"github.com/gahag/hush/semantic"
	"github.com/gahag/hush/source"
	"github.com/gahag/hush/symbol"
	"github.com/gahag/hush/syntax"
)

// ExitStatus is the process exit code of a run.
type ExitStatus int

const (
	ExitSuccess     ExitStatus = 0
	ExitInvalidArgs ExitStatus = 1
	ExitStaticError ExitStatus = 2
	ExitPanic       ExitStatus = 127
)

func (s ExitStatus) String() string {
	switch s {
	case ExitSuccess:
		return "success"
	case ExitInvalidArgs:
		return "invalid arguments"
	case ExitStaticError:
		return "static error"
	case ExitPanic:
		return "panic"
	default:
		return fmt.Sprintf("exit status %d", int(s))
	}
}

// StdinPath is the path attributed to scripts read from standard input.
const StdinPath = "<stdin>"

// Options selects what a run does besides evaluating the script.
type Options struct {
	// Check stops after analysis.
	Check bool
	// PrintAST writes the syntax tree to stdout.
	PrintAST bool
	// PrintProgram writes the resolved program to stdout.
	PrintProgram bool
	Config       Config
}

// Run reads a script from stdin and drives it through every stage. Diagnostics go
// to stderr. Script output goes to stdout and stderr through std.
func Run(opts Options, stdin io.Reader, stdout, stderr io.Writer) ExitStatus {
	log := logger()
	in := symbol.NewInterner()
	path := in.GetOrIntern(StdinPath)
	report := newReporter(stderr, in, opts.Config)

	src, err := source.FromReader(path, stdin)
	if err != nil {
		report.panic(runtime.IoPanic(err, source.File(path)))
		return ExitPanic
	}
	report.src = src

	start := time.Now()
	analysis := syntax.Analyze(src, in)
	log.Debugf("syntax analysis: %d errors in %s", len(analysis.Errors), time.Since(start))
	if len(analysis.Errors) > 0 {
		report.report(syntaxDiagnostics(analysis.Errors, in))
	}
	if opts.PrintAST {
		fmt.Fprintln(stdout, syntax.Format(analysis.AST, in))
	}

	// Semantic analysis runs on a flawed tree too, so both stages get reported at once.
	start = time.Now()
	prog, semErrs := semantic.Analyze(analysis.AST, in)
	log.Debugf("semantic analysis: %d errors in %s", len(semErrs), time.Since(start))
	if len(semErrs) > 0 {
		report.report(semanticDiagnostics(semErrs, in))
		return ExitStaticError
	}
	if opts.PrintProgram {
		fmt.Fprintln(stdout, program.Format(prog, in))
	}
	if len(analysis.Errors) > 0 {
		return ExitStaticError
	}
	if opts.Check {
		log.Infof("check passed for %s", StdinPath)
		return ExitSuccess
	}

	rt := runtime.New(in, runtime.Config{
		RecursionLimit: opts.Config.Runtime.RecursionLimit,
		Stdout:         stdout,
		Stderr:         stderr,
	})
	start = time.Now()
	_, err = rt.Eval(prog)
	log.Debugf("evaluation finished in %s", time.Since(start))
	if err != nil {
		var p *runtime.Panic
		if !errors.As(err, &p) {
			p = runtime.IoPanic(err, source.File(path))
		}
		report.panic(p)
		return ExitPanic
	}
	return ExitSuccess
}
