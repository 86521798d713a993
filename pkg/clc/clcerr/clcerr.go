// Package clcerr provides structured error types for the clc calculator.
//
// Every failure from lexing through evaluation is a *CalcError carrying a
// class, a catalog code, a rendered message, optional hints, and the source
// position when one is known. Errors are recoverable at the line level: a
// bad expression reports exactly one error and never crashes the process.
package clcerr

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// ErrorClass categorizes errors for filtering and presentation.
type ErrorClass string

const (
	ClassLex       ErrorClass = "lex"       // Invalid characters, malformed literals
	ClassSyntax    ErrorClass = "syntax"    // Unmatched parentheses
	ClassUndefined ErrorClass = "undefined" // Unknown identifiers
	ClassArity     ErrorClass = "arity"     // Too few operands
	ClassArith     ErrorClass = "arith"     // Division by zero
	ClassUnit      ErrorClass = "unit"      // Incompatible unit conversions
	ClassInternal  ErrorClass = "internal"  // Invariant violations
)

// CalcError represents any error from tokenizing or evaluating an expression.
type CalcError struct {
	Class   ErrorClass     // Error category
	Code    string         // Catalog code (e.g. "LEX-0001")
	Message string         // Human-readable message
	Hints   []string       // Suggestions for fixing
	Line    int            // 1-based line (0 if unknown)
	Column  int            // 1-based column (0 if unknown)
	Data    map[string]any // Template variables
}

// Error implements the error interface.
func (e *CalcError) Error() string {
	return e.String()
}

// String returns a formatted single-line representation of the error.
func (e *CalcError) String() string {
	var sb strings.Builder
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d, column %d: ", e.Line, e.Column))
	}
	sb.WriteString(e.Message)
	for _, hint := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}
	return sb.String()
}

// WithPosition sets the source position and returns the error for chaining.
func (e *CalcError) WithPosition(line, column int) *CalcError {
	e.Line = line
	e.Column = column
	return e
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Class    ErrorClass // Error category
	Template string     // Message template with {{.placeholders}}
	Hints    []string   // Hint templates (may use {{.placeholders}})
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	// Lex errors (LEX-0xxx)
	"LEX-0001": {
		Class:    ClassLex,
		Template: "unexpected character '{{.Char}}'",
	},
	"LEX-0002": {
		Class:    ClassLex,
		Template: "invalid integer literal '{{.Literal}}'",
	},
	"LEX-0003": {
		Class:    ClassLex,
		Template: "invalid float literal '{{.Literal}}'",
	},
	"LEX-0004": {
		Class:    ClassLex,
		Template: "invalid history reference '{{.Literal}}'",
		Hints:    []string{"references are written $1, $2, ..."},
	},
	"LEX-0005": {
		Class:    ClassLex,
		Template: "invalid identifier '{{.Literal}}'",
	},

	// Name resolution errors (NAME-0xxx)
	"NAME-0001": {
		Class:    ClassUndefined,
		Template: "unknown name '{{.Name}}'",
	},

	// Syntax errors (SYNTAX-0xxx)
	"SYNTAX-0001": {
		Class:    ClassSyntax,
		Template: "encountered '(' without matching ')'",
	},
	"SYNTAX-0002": {
		Class:    ClassSyntax,
		Template: "encountered ')' without matching '('",
	},

	// Arity errors (ARITY-0xxx)
	"ARITY-0001": {
		Class:    ClassArity,
		Template: "expected {{.Want}} argument{{if ne .Want 1}}s{{end}} to '{{.Name}}', got {{.Got}}",
	},

	// Arithmetic errors (ARITH-0xxx)
	"ARITH-0001": {
		Class:    ClassArith,
		Template: "integer division by zero",
	},

	// Unit errors (UNIT-0xxx)
	"UNIT-0001": {
		Class:    ClassUnit,
		Template: "cannot convert {{.From}} to {{.To}}",
		Hints:    []string{"only units in the same group are convertible"},
	},

	// Internal errors (INTERNAL-0xxx)
	"INTERNAL-0001": {
		Class:    ClassInternal,
		Template: "expression produced {{.Count}} results, expected one",
	},
}

// New creates a CalcError from a catalog code and template data.
// Unknown codes produce an internal error rather than a panic.
func New(code string, data map[string]any) *CalcError {
	def, ok := ErrorCatalog[code]
	if !ok {
		return &CalcError{
			Class:   ClassInternal,
			Code:    code,
			Message: fmt.Sprintf("unknown error code %q", code),
			Data:    data,
		}
	}

	hints := make([]string, 0, len(def.Hints))
	for _, h := range def.Hints {
		hints = append(hints, renderTemplate(h, data))
	}

	return &CalcError{
		Class:   def.Class,
		Code:    code,
		Message: renderTemplate(def.Template, data),
		Hints:   hints,
		Data:    data,
	}
}

// NewWithPosition creates a CalcError with a source position attached.
func NewWithPosition(code string, line, column int, data map[string]any) *CalcError {
	return New(code, data).WithPosition(line, column)
}

// renderTemplate renders a message template against the data map. A broken
// template falls back to the raw template text so errors never error.
func renderTemplate(tmplStr string, data map[string]any) string {
	tmpl, err := template.New("msg").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}
	return buf.String()
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

// FindClosestMatch returns the candidate closest to input, or "" when nothing
// is near enough to be a plausible typo.
func FindClosestMatch(input string, candidates []string) string {
	best := ""
	bestDist := len(input)/2 + 1
	for _, c := range candidates {
		d := levenshteinDistance(strings.ToLower(input), strings.ToLower(c))
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// NewUnknownName creates a NAME-0001 error with a did-you-mean hint when a
// close match exists among the known names.
func NewUnknownName(name string, known []string) *CalcError {
	e := New("NAME-0001", map[string]any{"Name": name})
	sorted := make([]string, len(known))
	copy(sorted, known)
	sort.Strings(sorted)
	if match := FindClosestMatch(name, sorted); match != "" {
		e.Hints = append(e.Hints, fmt.Sprintf("did you mean '%s'?", match))
	}
	return e
}

// IsClass reports whether err is a *CalcError of the given class.
func IsClass(err error, class ErrorClass) bool {
	ce, ok := err.(*CalcError)
	return ok && ce.Class == class
}
