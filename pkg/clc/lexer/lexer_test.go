package lexer

import (
	"errors"
	"testing"

	"github.com/aar10n/clc/pkg/clc/clcerr"
)

// tok builds an expected token, ignoring position.
func tok(t TokenType, lit string) Token {
	return Token{Type: t, Literal: lit}
}

func sameTokens(t *testing.T, input string, want []Token) {
	t.Helper()
	got, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q) = %v, want %v", input, got, want)
	}
	for i := range got {
		if got[i].Type != want[i].Type || got[i].Literal != want[i].Literal {
			t.Errorf("Tokenize(%q)[%d] = %v, want %v", input, i, got[i], want[i])
		}
	}
}

func TestIntegerLiterals(t *testing.T) {
	tests := []struct {
		input string
		value uint64
	}{
		{"0", 0},
		{"42", 42},
		{"18446744073709551615", 1<<64 - 1},
		{"31", 31},
		{"0x1F", 31},
		{"0o37", 31},
		{"0b11111", 31},
		{"0xdeadbeef", 0xdeadbeef},
		{"0o777", 511},
		{"0b00101", 5},
	}
	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", tt.input, err)
			continue
		}
		if len(tokens) != 1 || tokens[0].Type != INT {
			t.Errorf("Tokenize(%q) = %v, want one INT", tt.input, tokens)
			continue
		}
		if tokens[0].Int != tt.value {
			t.Errorf("Tokenize(%q).Int = %d, want %d", tt.input, tokens[0].Int, tt.value)
		}
	}
}

func TestFloatLiterals(t *testing.T) {
	tests := []struct {
		input string
		value float64
	}{
		{"3.141", 3.141},
		{"0.0001", 0.0001},
		{".5", 0.5},
		{"2.", 2},
	}
	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Errorf("Tokenize(%q): %v", tt.input, err)
			continue
		}
		if len(tokens) != 1 || tokens[0].Type != FLOAT {
			t.Errorf("Tokenize(%q) = %v, want one FLOAT", tt.input, tokens)
			continue
		}
		if tokens[0].Float != tt.value {
			t.Errorf("Tokenize(%q).Float = %v, want %v", tt.input, tokens[0].Float, tt.value)
		}
	}
}

func TestBadLiterals(t *testing.T) {
	tests := []struct{ input, code string }{
		{"0x", "LEX-0002"},
		{"0xG1", "LEX-0002"},
		{"0o8", "LEX-0002"},
		{"0b2", "LEX-0002"},
		{"12abc", "LEX-0002"},
		{"1.5x", "LEX-0003"},
		{"$", "LEX-0004"},
		{"$01", "LEX-0004"},
		{"$1x", "LEX-0004"},
		{"@", "LEX-0001"},
		{"#", "LEX-0001"},
	}
	for _, tt := range tests {
		_, err := Tokenize(tt.input)
		if err == nil {
			t.Errorf("Tokenize(%q) succeeded, want %s", tt.input, tt.code)
			continue
		}
		var ce *clcerr.CalcError
		if !errors.As(err, &ce) {
			t.Errorf("Tokenize(%q) error %T, want *clcerr.CalcError", tt.input, err)
			continue
		}
		if ce.Code != tt.code {
			t.Errorf("Tokenize(%q) code = %s, want %s", tt.input, ce.Code, tt.code)
		}
	}
}

func TestReferences(t *testing.T) {
	tokens, err := Tokenize("$1 + $23")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[0].Type != REFERENCE || tokens[0].Int != 1 {
		t.Errorf("token 0 = %v, want REFERENCE(1)", tokens[0])
	}
	if tokens[2].Type != REFERENCE || tokens[2].Int != 23 {
		t.Errorf("token 2 = %v, want REFERENCE(23)", tokens[2])
	}
}

func TestIdentifiers(t *testing.T) {
	sameTokens(t, "sin cos2 to_signed PI u32", []Token{
		tok(IDENT, "sin"),
		tok(IDENT, "cos2"),
		tok(IDENT, "to_signed"),
		tok(IDENT, "PI"),
		tok(IDENT, "u32"),
	})
}

func TestOperatorsLongestMatch(t *testing.T) {
	sameTokens(t, "1 <= 2 << 3 == 4 != 5 >= 6", []Token{
		tok(INT, "1"), tok(BINARY_OP, "<="),
		tok(INT, "2"), tok(BINARY_OP, "<<"),
		tok(INT, "3"), tok(BINARY_OP, "=="),
		tok(INT, "4"), tok(BINARY_OP, "!="),
		tok(INT, "5"), tok(BINARY_OP, ">="),
		tok(INT, "6"),
	})
}

func TestSignDisambiguation(t *testing.T) {
	tests := []struct {
		input string
		want  []Token
	}{
		{"-5", []Token{tok(UNARY_OP, "-u"), tok(INT, "5")}},
		{"2-3", []Token{tok(INT, "2"), tok(BINARY_OP, "-"), tok(INT, "3")}},
		{"2 - -3", []Token{tok(INT, "2"), tok(BINARY_OP, "-"), tok(UNARY_OP, "-u"), tok(INT, "3")}},
		{"(-5)", []Token{tok(LPAREN, "("), tok(UNARY_OP, "-u"), tok(INT, "5"), tok(RPAREN, ")")}},
		{"2 * -3", []Token{tok(INT, "2"), tok(BINARY_OP, "*"), tok(UNARY_OP, "-u"), tok(INT, "3")}},
		{"- -5", []Token{tok(UNARY_OP, "-u"), tok(UNARY_OP, "-u"), tok(INT, "5")}},
		{"+5", []Token{tok(UNARY_OP, "+u"), tok(INT, "5")}},
		{"1\n-2", []Token{tok(INT, "1"), tok(NEWLINE, "\n"), tok(UNARY_OP, "-u"), tok(INT, "2")}},
		// after a closing parenthesis the sign is binary
		{"(1)-2", []Token{tok(LPAREN, "("), tok(INT, "1"), tok(RPAREN, ")"), tok(BINARY_OP, "-"), tok(INT, "2")}},
		// '!' and '~' are always unary
		{"!0", []Token{tok(UNARY_OP, "!u"), tok(INT, "0")}},
		{"1 ~ 2", []Token{tok(INT, "1"), tok(UNARY_OP, "~u"), tok(INT, "2")}},
	}
	for _, tt := range tests {
		sameTokens(t, tt.input, tt.want)
	}
}

func TestNewlinesAndPositions(t *testing.T) {
	tokens, err := Tokenize("1\n 2")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
	if tokens[0].Line != 1 || tokens[2].Line != 2 {
		t.Errorf("lines = %d, %d; want 1, 2", tokens[0].Line, tokens[2].Line)
	}
	if tokens[1].Type != NEWLINE {
		t.Errorf("token 1 = %v, want NEWLINE", tokens[1])
	}
}

func TestEmptyInput(t *testing.T) {
	tokens, err := Tokenize("")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want empty", tokens)
	}
}

func BenchmarkTokenize(b *testing.B) {
	input := "-(0x10 + 2.5) * sqrt(9) << 2 == $1 && kilobyte(3) != 0b101\n"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Tokenize(input); err != nil {
			b.Fatal(err)
		}
	}
}
