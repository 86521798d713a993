package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/aar10n/clc/pkg/clc/clcerr"
	"github.com/aar10n/clc/pkg/clc/config"
	"github.com/aar10n/clc/pkg/clc/history"
	"github.com/aar10n/clc/pkg/clc/parser"
	"github.com/aar10n/clc/pkg/clc/render"
	"github.com/aar10n/clc/pkg/clc/repl"
)

// Version is set at compile time via -ldflags
var Version = "1.1.0"

var (
	helpFlag        = flag.Bool("h", false, "Show help message")
	helpLongFlag    = flag.Bool("help", false, "Show help message")
	versionFlag     = flag.Bool("V", false, "Show version information")
	versionLongFlag = flag.Bool("version", false, "Show version information")

	exprFlag     = flag.String("e", "", "Expression to evaluate")
	exprLongFlag = flag.String("expr", "", "Expression to evaluate")
	fileFlag     = flag.String("f", "", "Read expressions from file")
	fileLongFlag = flag.String("file", "", "Read expressions from file")

	modeFlag        = flag.String("o", "", "Output mode: plain, hex, oct, bin, all")
	alfredFlag      = flag.Bool("alfred", false, "Emit Alfred script filter JSON")
	interactiveFlag = flag.Bool("i", false, "Start an interactive session")
	noHistoryFlag   = flag.Bool("no-history", false, "Do not load or save result history")
	configFlag      = flag.String("config", "", "Config file path")
)

func main() {
	flag.Usage = printHelp
	flag.Parse()

	if *helpFlag || *helpLongFlag {
		printHelp()
		os.Exit(0)
	}
	if *versionFlag || *versionLongFlag {
		fmt.Printf("clc version %s\n", Version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	mode, ok := render.ModeFromString(cfg.Output.Mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid output mode in config: %s\n", cfg.Output.Mode)
		os.Exit(1)
	}
	if *modeFlag != "" {
		mode, ok = render.ModeFromString(*modeFlag)
		if !ok {
			fmt.Fprintf(os.Stderr, "invalid output mode: %s\n", *modeFlag)
			os.Exit(2)
		}
	}

	buf := openHistory(cfg)
	defer buf.Close()

	if *interactiveFlag {
		repl.Start(os.Stdout, buf, mode, Version)
		saveHistory(buf)
		return
	}

	program, err := readInput()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	result, err := parser.EvaluateString(program, buf)
	if err != nil {
		outputError(err)
		os.Exit(1)
	}
	saveHistory(buf)

	if *alfredFlag {
		fmt.Println(render.Alfred(result))
	} else {
		fmt.Println(render.Render(result, mode))
	}
}

// openHistory opens the persistent buffer, falling back to a memory-only
// buffer when persistence is disabled or unavailable.
func openHistory(cfg *config.Config) *history.Buffer {
	if *noHistoryFlag {
		return history.NewMemory(cfg.History.Size)
	}
	buf, err := history.Open(config.ExpandPath(cfg.History.Path), cfg.History.Size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return history.NewMemory(cfg.History.Size)
	}
	return buf
}

func saveHistory(buf *history.Buffer) {
	if *noHistoryFlag {
		return
	}
	if err := buf.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to save history: %v\n", err)
	}
}

// readInput returns the program text: -e wins over -f, and with neither set
// the expression is read from standard input.
func readInput() (string, error) {
	expr := *exprFlag
	if expr == "" {
		expr = *exprLongFlag
	}
	if expr != "" {
		return expr, nil
	}

	file := *fileFlag
	if file == "" {
		file = *fileLongFlag
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// outputError reports an evaluation error in the requested output format.
func outputError(err error) {
	if *alfredFlag {
		fmt.Println(render.AlfredError(err))
		return
	}
	if ce, ok := err.(*clcerr.CalcError); ok {
		fmt.Fprintln(os.Stderr, ce.String())
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func printHelp() {
	fmt.Printf(`clc - command-line calculator version %s

Usage:
  clc [options]              Evaluate an expression from stdin
  clc -e "1 + 2 * 3"         Evaluate an expression argument
  clc -f FILE                Evaluate expressions from a file
  clc -i                     Start an interactive session

Options:
  -e, --expr EXPR     Expression to evaluate
  -f, --file FILE     Read expressions from file
  -o MODE             Output mode: plain, hex, oct, bin, all
  -i                  Start an interactive session
  --alfred            Emit Alfred script filter JSON
  --no-history        Do not load or save result history
  --config PATH       Config file path
  -h, --help          Show this help
  -V, --version       Show version

Expressions support C-style operators, function calls (sin, sqrt, ...),
width casts (u8..u64, i8..i64, f64), unit conversions (kilobyte, celsius,
...), constants (PI, E, MAX_U32, ...), and $N history references.
`, Version)
}
