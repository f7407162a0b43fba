/*
File    : mix/cmd/mix/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package repl implements an interactive read-eval-print loop over the Mix
// interpreter, sharing one evaluator/scope across lines so earlier `let`
// bindings and function definitions stay visible to later ones.
package repl

import (
	"io"
	"strings"

	"github.com/akashmaji946/mix/internal/diag"
	"github.com/akashmaji946/mix/internal/eval"
	"github.com/akashmaji946/mix/internal/parser"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor  = color.New(color.FgBlue)
	redColor   = color.New(color.FgRed)
	greenColor = color.New(color.FgGreen)
	cyanColor  = color.New(color.FgCyan)
)

// Repl holds the display strings shown at startup; Start runs the loop.
type Repl struct {
	Banner  string
	Version string
	Author  string
	License string
	Prompt  string
	Line    string
}

func New(banner, version, author, license, prompt, line string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, License: license, Prompt: prompt, Line: line}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintln(w, "Type statements and press enter. Type '.exit' to quit.")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start prints the banner, then reads lines via readline until '.exit' or
// EOF, evaluating each line against one shared interpreter.
func (r *Repl) Start(in io.Reader, out io.Writer) {
	r.printBanner(out)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	interp := eval.New(out, in)

	for {
		line, err := rl.Readline()
		if err != nil {
			io.WriteString(out, "Good Bye!\n")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			io.WriteString(out, "Good Bye!\n")
			return
		}
		rl.SaveHistory(line)

		r.evalLine(out, line, interp)
	}
}

func (r *Repl) evalLine(out io.Writer, line string, interp *eval.Interpreter) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(out, "[RUNTIME ERROR] %v\n", rec)
		}
	}()

	par := parser.NewParser([]byte(line))
	prog := par.Parse()

	if par.HasErrors() {
		for _, d := range par.Errors() {
			redColor.Fprintln(out, diag.FormatDiagnostic(par.Reader, d))
		}
		return
	}

	if err := interp.Run(prog); err != nil {
		if fe, ok := err.(*diag.FatalError); ok {
			redColor.Fprintln(out, diag.FormatFatal(par.Reader, fe))
			return
		}
		redColor.Fprintln(out, err)
	}
}
