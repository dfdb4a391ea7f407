package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gahag/hush/driver"
)

// version is overridden at link time.
var version = "0.1.0-dev"

func main() {
	status := runCLI(os.Args, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(int(status))
}

func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) driver.ExitStatus {
	rest := args[1:]
	if len(rest) > 0 {
		switch rest[0] {
		case "help", "-h", "--help":
			printUsage(stdout)
			return driver.ExitSuccess
		case "version":
			fmt.Fprintf(stdout, "hush %s\n", version)
			return driver.ExitSuccess
		case "repl":
			return replCommand(rest[1:], stderr)
		}
	}
	return runCommand(rest, stdin, stdout, stderr)
}

func runCommand(args []string, stdin io.Reader, stdout, stderr io.Writer) driver.ExitStatus {
	fs := flag.NewFlagSet("hush", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	check := fs.Bool("check", false, "only analyze the script without executing")
	printAST := fs.Bool("print-ast", false, "print the syntax tree")
	printProgram := fs.Bool("print-program", false, "print the resolved program")
	configPath := fs.String("config", "", "read configuration from file")
	var verbosity verbosityFlag
	fs.Var(&verbosity, "v", "increase log verbosity (repeatable)")
	var color driver.ColorMode
	fs.Var(&color, "color", "colour diagnostics: auto, always or never")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout)
			return driver.ExitSuccess
		}
		return usageError(stderr, err)
	}
	if fs.NArg() > 0 {
		return usageError(stderr, fmt.Errorf("unexpected argument %q", fs.Arg(0)))
	}

	cfg, err := driver.ResolveConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "hush: %v\n", err)
		return driver.ExitInvalidArgs
	}
	if color != "" {
		cfg.Diagnostics.Color = color
	}
	driver.ConfigureLogging(cfg.Log.Verbosity + int(verbosity))

	opts := driver.Options{
		Check:        *check,
		PrintAST:     *printAST,
		PrintProgram: *printProgram,
		Config:       cfg,
	}
	return driver.Run(opts, stdin, stdout, stderr)
}

func replCommand(args []string, stderr io.Writer) driver.ExitStatus {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "", "read configuration from file")
	if err := fs.Parse(args); err != nil {
		return usageError(stderr, err)
	}
	if fs.NArg() > 0 {
		return usageError(stderr, fmt.Errorf("unexpected argument %q", fs.Arg(0)))
	}

	cfg, err := driver.ResolveConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "hush: %v\n", err)
		return driver.ExitInvalidArgs
	}
	if err := runREPL(cfg); err != nil {
		fmt.Fprintf(stderr, "hush repl: %v\n", err)
		return driver.ExitInvalidArgs
	}
	return driver.ExitSuccess
}

func usageError(w io.Writer, err error) driver.ExitStatus {
	fmt.Fprintf(w, "hush: %v\n", err)
	printUsage(w)
	return driver.ExitInvalidArgs
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hush [flags] < script")
	fmt.Fprintln(w, "       hush repl [-config file]")
	fmt.Fprintln(w, "       hush help | version")
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -check")
	fmt.Fprintln(w, "    only analyze the script without executing")
	fmt.Fprintln(w, "  -print-ast")
	fmt.Fprintln(w, "    print the syntax tree")
	fmt.Fprintln(w, "  -print-program")
	fmt.Fprintln(w, "    print the resolved program")
	fmt.Fprintln(w, "  -config <file>")
	fmt.Fprintf(w, "    read configuration from file (default $%s)\n", driver.ConfigEnv)
	fmt.Fprintln(w, "  -v")
	fmt.Fprintln(w, "    increase log verbosity (repeatable)")
	fmt.Fprintln(w, "  -color auto|always|never")
	fmt.Fprintln(w, "    colour diagnostics")
}

// verbosityFlag counts how many times -v was given.
type verbosityFlag int

func (v *verbosityFlag) String() string {
	return strconv.Itoa(int(*v))
}

func (v *verbosityFlag) Set(value string) error {
	on, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	if on {
		*v++
	}
	return nil
}

func (v *verbosityFlag) IsBoolFlag() bool { return true }
