/*
File    : mix/cmd/mix/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package main is the entry point for the Mix interpreter. It runs a source
file given on the command line, or drops into an interactive REPL when
invoked with no arguments.
*/
package main

import (
	"os"

	"github.com/akashmaji946/mix/cmd/mix/repl"
	"github.com/akashmaji946/mix/internal/diag"
	"github.com/akashmaji946/mix/internal/eval"
	"github.com/akashmaji946/mix/internal/parser"
	"github.com/fatih/color"
)

var VERSION = "v1.0.0"
var AUTHOR = "akashmaji(@iisc.ac.in)"
var LICENCE = "MIT"
var PROMPT = "mix >>> "

var BANNER = `
  ███╗   ███╗██╗██╗  ██╗
  ████╗ ████║██║╚██╗██╔╝
  ██╔████╔██║██║ ╚███╔╝
  ██║╚██╔╝██║██║ ██╔██╗
  ██║ ╚═╝ ██║██║██╔╝ ██╗
  ╚═╝     ╚═╝╚═╝╚═╝  ╚═╝
`

var LINE = "----------------------------------------------------------------"

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			showHelp()
			return
		case "--version", "-v":
			showVersion()
			return
		}
		runFile(os.Args[1])
		return
	}

	repler := repl.New(BANNER, VERSION, AUTHOR, LICENCE, PROMPT, LINE)
	repler.Start(os.Stdin, os.Stdout)
}

func showHelp() {
	cyanColor.Println("Mix - a small interpreted scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  mix                    Start interactive REPL mode")
	yellowColor.Println("  mix <source-file>      Execute a Mix source file")
	yellowColor.Println("  mix --help             Display this help message")
	yellowColor.Println("  mix --version          Display version information")
}

func showVersion() {
	cyanColor.Println("Mix - a small interpreted scripting language")
	cyanColor.Printf("Version: %s\n", VERSION)
	cyanColor.Printf("License: %s\n", LICENCE)
	cyanColor.Printf("Author : %s\n", AUTHOR)
}

// runFile reads and executes path: exit 1 on an unreadable file, lex/parse
// errors, or a fatal evaluator error; exit 0 on success. A bare recover
// guards against a host-level bug (e.g. a malformed AST) reaching the user
// as a Go panic instead of a diagnosed error.
func runFile(path string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(os.Stderr, "[RUNTIME ERROR] %v\n", r)
			os.Exit(1)
		}
	}()

	src, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Unable to resolve the path: %s\n", path)
		os.Exit(1)
	}

	par := parser.NewParser(src)
	prog := par.Parse()

	if par.HasErrors() {
		for _, d := range par.Errors() {
			redColor.Fprintln(os.Stderr, diag.FormatDiagnostic(par.Reader, d))
		}
		os.Exit(1)
	}

	interp := eval.New(os.Stdout, os.Stdin)
	if err := interp.Run(prog); err != nil {
		if fe, ok := err.(*diag.FatalError); ok {
			redColor.Fprintln(os.Stderr, diag.FormatFatal(par.Reader, fe))
		} else {
			redColor.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
