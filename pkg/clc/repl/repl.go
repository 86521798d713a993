// Package repl implements the interactive calculator loop with line
// editing, history, and tab completion.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/aar10n/clc/pkg/clc/clcerr"
	"github.com/aar10n/clc/pkg/clc/history"
	"github.com/aar10n/clc/pkg/clc/parser"
	"github.com/aar10n/clc/pkg/clc/registry"
	"github.com/aar10n/clc/pkg/clc/render"
)

const PROMPT = ">> "

// replCommands are the ':' meta-commands, included in tab completion.
var replCommands = []string{":help", ":mode", ":history", ":clear"}

// Start runs the REPL until the user exits. Each line is evaluated as one
// expression; results print in the current output mode and are appended to
// the history buffer.
func Start(out io.Writer, buf *history.Buffer, mode render.Mode, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(filterCompletions)

	// liner's own line-recall history, separate from the result buffer
	historyFile := filepath.Join(os.TempDir(), ".clc_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "clc v%s\n", version)
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit, ':help' for commands")
	fmt.Fprintln(out, "")

	for {
		input, err := line.Prompt(PROMPT)
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Fprintln(out, "^C")
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			return
		}

		line.AppendHistory(input)

		if strings.HasPrefix(trimmed, ":") {
			mode = handleCommand(trimmed, buf, out, mode)
			continue
		}

		result, err := parser.EvaluateString(trimmed, buf)
		if err != nil {
			printError(out, err)
			continue
		}
		fmt.Fprintln(out, render.Render(result, mode))
	}
}

// handleCommand handles ':' meta-commands and returns the (possibly
// updated) output mode.
func handleCommand(cmd string, buf *history.Buffer, out io.Writer, mode render.Mode) render.Mode {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":help", ":h", ":?":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  :help, :h, :?          Show this help")
		fmt.Fprintln(out, "  :mode [plain|hex|oct|bin|all]")
		fmt.Fprintln(out, "                         Show or set the output mode")
		fmt.Fprintln(out, "  :history               List previous results ($1 is most recent)")
		fmt.Fprintln(out, "  :clear                 Clear the result history")
		fmt.Fprintln(out, "  exit, quit             Exit")
		return mode

	case ":mode":
		if len(fields) < 2 {
			fmt.Fprintf(out, "Output mode: %s\n", mode)
			return mode
		}
		newMode, ok := render.ModeFromString(fields[1])
		if !ok {
			fmt.Fprintf(out, "Unknown mode: %s (plain, hex, oct, bin, all)\n", fields[1])
			return mode
		}
		return newMode

	case ":history":
		if buf == nil || buf.Len() == 0 {
			fmt.Fprintln(out, "History is empty")
			return mode
		}
		for i, v := range buf.Values() {
			fmt.Fprintf(out, "  $%-3d %s\n", i+1, v)
		}
		return mode

	case ":clear":
		if buf != nil {
			buf.Clear()
		}
		fmt.Fprintln(out, "History cleared")
		return mode

	default:
		fmt.Fprintf(out, "Unknown command: %s (type :help for commands)\n", fields[0])
		return mode
	}
}

// filterCompletions completes the last word being typed against registry
// names and REPL commands.
func filterCompletions(line string) []string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}
	if line[len(line)-1] == ' ' || line[len(line)-1] == '\t' {
		return nil
	}

	words := strings.Fields(line)
	lastWord := words[len(words)-1]
	prefix := line[:len(line)-len(lastWord)]

	var matches []string
	for _, word := range append(registry.Names(), replCommands...) {
		if strings.HasPrefix(word, lastWord) {
			matches = append(matches, prefix+word)
		}
	}
	return matches
}

// printError prints a calculator error with its hints, or a plain error
// message for anything else.
func printError(out io.Writer, err error) {
	if ce, ok := err.(*clcerr.CalcError); ok {
		fmt.Fprintln(out, "Error: "+ce.Message)
		for _, hint := range ce.Hints {
			fmt.Fprintln(out, "  "+hint)
		}
		return
	}
	fmt.Fprintln(out, "Error: "+err.Error())
}
