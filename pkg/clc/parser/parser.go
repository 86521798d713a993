// Package parser turns a token stream into a result value. It works in
// three explicit stages: identifier resolution against the registry,
// shunting-yard conversion from infix to postfix, and postfix evaluation on
// a value stack. Line breaks split the stream into independent expressions;
// each completed expression's value is appended to the history.
package parser

import (
	"github.com/aar10n/clc/pkg/clc/clcerr"
	"github.com/aar10n/clc/pkg/clc/lexer"
	"github.com/aar10n/clc/pkg/clc/registry"
	"github.com/aar10n/clc/pkg/clc/value"
)

// History supplies previously computed values for $N references and receives
// each newly computed value. A nil History resolves every reference to zero
// and discards results.
type History interface {
	// Get returns the i-th most recent value (1-based). Out-of-range
	// indices yield the zero value by convention.
	Get(i int) value.Value
	// Add appends a newly computed value.
	Add(v value.Value)
}

// tokenKind classifies resolved tokens. Once a lexer token is resolved it
// never re-enters lexing.
type tokenKind int

const (
	valueToken tokenKind = iota
	unaryToken
	binaryToken
	lparenToken
	rparenToken
	newlineToken
)

// rtoken is a resolved token: a literal value, a bound unary or binary
// operation, or residual structure (parentheses, line breaks).
type rtoken struct {
	kind   tokenKind
	name   string
	val    value.Value
	unary  registry.UnaryFunc
	binary registry.BinaryFunc
	line   int
	column int
}

// prec returns the operator precedence of a resolved token. Named functions
// bind like the parenthesis sentinel: they are only popped explicitly.
func (t rtoken) prec() int {
	switch t.kind {
	case unaryToken, binaryToken:
		return registry.Prec(t.name)
	default:
		return -1
	}
}

func (t rtoken) assoc() registry.Assoc {
	return registry.AssocOf(t.name)
}

// resolve converts lexer tokens into resolved tokens: literals become
// values, references are looked up in the history, identifiers are resolved
// against the registry, and operators are bound to their implementations.
// Runs of blank lines collapse and a trailing line break is implied.
func resolve(tokens []lexer.Token, hist History) ([]rtoken, error) {
	var out []rtoken
	nlCount := 0
	for _, tok := range tokens {
		if tok.Type == lexer.NEWLINE {
			nlCount++
		} else {
			nlCount = 0
		}

		switch tok.Type {
		case lexer.INT:
			out = append(out, rtoken{kind: valueToken, val: value.Integer(tok.Int, value.U64)})
		case lexer.FLOAT:
			out = append(out, rtoken{kind: valueToken, val: value.Float(tok.Float)})
		case lexer.REFERENCE:
			v := value.Zero()
			if hist != nil {
				v = hist.Get(int(tok.Int))
			}
			out = append(out, rtoken{kind: valueToken, val: v})
		case lexer.IDENT:
			if v, ok := registry.LookupConstant(tok.Literal); ok {
				out = append(out, rtoken{kind: valueToken, val: v})
				continue
			}
			if fn, ok := registry.LookupUnary(tok.Literal); ok {
				out = append(out, rtoken{
					kind: unaryToken, name: tok.Literal, unary: fn,
					line: tok.Line, column: tok.Column,
				})
				continue
			}
			err := clcerr.NewUnknownName(tok.Literal, registry.Names())
			return nil, err.WithPosition(tok.Line, tok.Column)
		case lexer.UNARY_OP:
			if tok.Literal == "+u" {
				// unary plus is the identity; drop it
				continue
			}
			fn, ok := registry.LookupUnary(tok.Literal)
			if !ok {
				err := clcerr.NewUnknownName(tok.Literal, nil)
				return nil, err.WithPosition(tok.Line, tok.Column)
			}
			out = append(out, rtoken{
				kind: unaryToken, name: tok.Literal, unary: fn,
				line: tok.Line, column: tok.Column,
			})
		case lexer.BINARY_OP:
			fn, ok := registry.LookupBinary(tok.Literal)
			if !ok {
				err := clcerr.NewUnknownName(tok.Literal, nil)
				return nil, err.WithPosition(tok.Line, tok.Column)
			}
			out = append(out, rtoken{
				kind: binaryToken, name: tok.Literal, binary: fn,
				line: tok.Line, column: tok.Column,
			})
		case lexer.LPAREN:
			out = append(out, rtoken{kind: lparenToken, name: "(", line: tok.Line, column: tok.Column})
		case lexer.RPAREN:
			out = append(out, rtoken{kind: rparenToken, name: ")", line: tok.Line, column: tok.Column})
		case lexer.NEWLINE:
			if nlCount > 1 {
				continue
			}
			out = append(out, rtoken{kind: newlineToken})
		}
	}

	if len(out) == 0 || out[len(out)-1].kind != newlineToken {
		out = append(out, rtoken{kind: newlineToken})
	}
	return out, nil
}

// infixToPostfix converts one expression's resolved tokens to postfix order
// using an operator stack. The input must not contain line breaks.
func infixToPostfix(tokens []rtoken) ([]rtoken, error) {
	var opStack []rtoken
	var output []rtoken

	for _, tok := range tokens {
		switch tok.kind {
		case valueToken:
			output = append(output, tok)
		case unaryToken:
			opStack = append(opStack, tok)
		case binaryToken:
			for len(opStack) > 0 {
				top := opStack[len(opStack)-1]
				if top.prec() >= tok.prec() && tok.assoc() == registry.AssocLeft {
					opStack = opStack[:len(opStack)-1]
					output = append(output, top)
				} else {
					break
				}
			}
			opStack = append(opStack, tok)
		case lparenToken:
			opStack = append(opStack, tok)
		case rparenToken:
			for len(opStack) > 0 && opStack[len(opStack)-1].kind != lparenToken {
				output = append(output, opStack[len(opStack)-1])
				opStack = opStack[:len(opStack)-1]
			}
			if len(opStack) == 0 {
				return nil, clcerr.NewWithPosition("SYNTAX-0002", tok.line, tok.column, nil)
			}
			opStack = opStack[:len(opStack)-1] // discard '('

			// function application binds tighter than any following operator
			if len(opStack) > 0 && opStack[len(opStack)-1].kind == unaryToken {
				top := opStack[len(opStack)-1]
				opStack = opStack[:len(opStack)-1]
				output = append(output, top)
			}
		}
	}

	for len(opStack) > 0 {
		top := opStack[len(opStack)-1]
		if top.kind == lparenToken {
			return nil, clcerr.NewWithPosition("SYNTAX-0001", top.line, top.column, nil)
		}
		opStack = opStack[:len(opStack)-1]
		output = append(output, top)
	}
	return output, nil
}

// evalPostfix executes a postfix token sequence on a value stack. An empty
// sequence evaluates to integer zero by convention; anything other than
// exactly one remaining value is an internal invariant violation.
func evalPostfix(tokens []rtoken) (value.Value, error) {
	if len(tokens) == 0 {
		return value.Zero(), nil
	}

	var stack []value.Value
	for _, tok := range tokens {
		switch tok.kind {
		case valueToken:
			stack = append(stack, tok.val)
		case unaryToken:
			if len(stack) < 1 {
				return value.Value{}, clcerr.NewWithPosition("ARITY-0001", tok.line, tok.column, map[string]any{
					"Name": displayName(tok.name), "Want": 1, "Got": len(stack),
				})
			}
			arg := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			res, err := tok.unary(arg)
			if err != nil {
				return value.Value{}, err
			}
			stack = append(stack, res)
		case binaryToken:
			if len(stack) < 2 {
				return value.Value{}, clcerr.NewWithPosition("ARITY-0001", tok.line, tok.column, map[string]any{
					"Name": tok.name, "Want": 2, "Got": len(stack),
				})
			}
			arg2 := stack[len(stack)-1]
			arg1 := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			res, err := tok.binary(arg1, arg2)
			if err != nil {
				return value.Value{}, err
			}
			stack = append(stack, res)
		}
	}

	if len(stack) != 1 {
		return value.Value{}, clcerr.New("INTERNAL-0001", map[string]any{"Count": len(stack)})
	}
	return stack[0], nil
}

// displayName strips the unary suffix for error messages.
func displayName(name string) string {
	if len(name) == 2 && name[1] == 'u' {
		return name[:1]
	}
	return name
}

// Evaluate resolves, converts, and evaluates a token stream. Each line's
// value is appended to hist as it completes; the final line's value is
// returned. An empty stream evaluates to integer zero.
func Evaluate(tokens []lexer.Token, hist History) (value.Value, error) {
	resolved, err := resolve(tokens, hist)
	if err != nil {
		return value.Value{}, err
	}

	result := value.Zero()
	var expr []rtoken
	for _, tok := range resolved {
		if tok.kind != newlineToken {
			expr = append(expr, tok)
			continue
		}
		if len(expr) == 0 {
			continue
		}

		postfix, err := infixToPostfix(expr)
		if err != nil {
			return value.Value{}, err
		}
		v, err := evalPostfix(postfix)
		if err != nil {
			return value.Value{}, err
		}
		result = v
		if hist != nil {
			hist.Add(v)
		}
		expr = expr[:0]
	}
	return result, nil
}

// EvaluateString tokenizes and evaluates source text in one call.
func EvaluateString(input string, hist History) (value.Value, error) {
	tokens, err := lexer.Tokenize(input)
	if err != nil {
		return value.Value{}, err
	}
	return Evaluate(tokens, hist)
}
