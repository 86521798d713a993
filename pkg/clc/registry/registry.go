// Package registry holds the static name→operation tables the parser
// resolves identifiers and operators against: nullary constants, unary
// functions (math, casts, unit conversions), binary operators, an alias
// table for alternate unit spellings, and the operator precedence table.
//
// All tables are built at process start and never mutated, so lookups are
// safe from any goroutine without locking.
package registry

import (
	"math"
	"sort"

	"github.com/aar10n/clc/pkg/clc/value"
)

// Constant produces a nullary constant value.
type Constant func() value.Value

// UnaryFunc is an operation of arity 1.
type UnaryFunc func(value.Value) (value.Value, error)

// BinaryFunc is an operation of arity 2.
type BinaryFunc func(value.Value, value.Value) (value.Value, error)

// Assoc is an operator's associativity.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

// opInfo pairs an operator's precedence with its associativity.
type opInfo struct {
	prec  int
	assoc Assoc
}

// precedenceTable orders operators highest-binding first. The parenthesis
// sentinel sits below everything so it is only ever removed by explicit ')'
// handling.
var precedenceTable = map[string]opInfo{
	"+u": {11, AssocRight}, // unary plus
	"-u": {11, AssocRight}, // unary minus
	"!u": {10, AssocRight}, // logical not
	"~u": {10, AssocRight}, // bitwise not

	"*": {9, AssocLeft}, // multiplication
	"/": {9, AssocLeft}, // division
	"%": {9, AssocLeft}, // modulo

	"+": {8, AssocLeft}, // addition
	"-": {8, AssocLeft}, // subtraction

	"<<": {7, AssocLeft}, // bitwise left shift
	">>": {7, AssocLeft}, // bitwise right shift

	">":  {6, AssocLeft}, // greater than
	"<":  {6, AssocLeft}, // less than
	">=": {6, AssocLeft}, // greater than or equal to
	"<=": {6, AssocLeft}, // less than or equal to
	"==": {5, AssocLeft}, // equal to
	"!=": {5, AssocLeft}, // not equal to

	"&": {4, AssocLeft}, // bitwise and
	"^": {3, AssocLeft}, // bitwise xor
	"|": {2, AssocLeft}, // bitwise or

	"&&": {1, AssocLeft}, // logical and
	"||": {1, AssocLeft}, // logical or

	"(": {0, AssocRight}, // parenthesis sentinel
}

// Prec returns an operator's precedence, or -1 for unknown symbols.
func Prec(op string) int {
	if info, ok := precedenceTable[op]; ok {
		return info.prec
	}
	return -1
}

// AssocOf returns an operator's associativity, defaulting to left.
func AssocOf(op string) Assoc {
	if info, ok := precedenceTable[op]; ok {
		return info.assoc
	}
	return AssocLeft
}

func unary(fn func(value.Value) value.Value) UnaryFunc {
	return func(v value.Value) (value.Value, error) {
		return fn(v), nil
	}
}

func binary(fn func(a, b value.Value) value.Value) BinaryFunc {
	return func(a, b value.Value) (value.Value, error) {
		return fn(a, b), nil
	}
}

// mathFn wraps a float math function: the operand is widened to f64, the
// function applied, and the result re-wrapped preserving the operand's unit.
func mathFn(fn func(float64) float64) UnaryFunc {
	return unary(func(v value.Value) value.Value {
		return value.With(value.NewFloat(fn(v.Number.Float64())), v.Unit)
	})
}

// castFn wraps a width cast: the unit is dropped and the number narrowed or
// reinterpreted at the target width.
func castFn(w value.Width) UnaryFunc {
	return unary(func(v value.Value) value.Value {
		return v.ToWidth(w)
	})
}

// unitFn wraps a unit conversion function: an already-unitted value converts
// between units, a raw number is normalized into the destination unit.
func unitFn(u value.Unit) UnaryFunc {
	return func(v value.Value) (value.Value, error) {
		if v.IsRaw() {
			return value.New(v.Number, u), nil
		}
		return v.Convert(u)
	}
}

var constants = map[string]Constant{
	"PI":      func() value.Value { return value.Float(math.Pi) },
	"E":       func() value.Value { return value.Float(math.E) },
	"NAN":     func() value.Value { return value.Float(math.NaN()) },
	"INF":     func() value.Value { return value.Float(math.Inf(1)) },
	"NEG_INF": func() value.Value { return value.Float(math.Inf(-1)) },

	"MIN_F64": func() value.Value { return value.Float(-math.MaxFloat64) },
	"MAX_F64": func() value.Value { return value.Float(math.MaxFloat64) },

	"MIN_U64": func() value.Value { return value.Integer(0, value.U64) },
	"MAX_U64": func() value.Value { return value.Integer(math.MaxUint64, value.U64) },
	"MIN_U32": func() value.Value { return value.Integer(0, value.U32) },
	"MAX_U32": func() value.Value { return value.Integer(math.MaxUint32, value.U32) },
	"MIN_U16": func() value.Value { return value.Integer(0, value.U16) },
	"MAX_U16": func() value.Value { return value.Integer(math.MaxUint16, value.U16) },
	"MIN_U8":  func() value.Value { return value.Integer(0, value.U8) },
	"MAX_U8":  func() value.Value { return value.Integer(math.MaxUint8, value.U8) },

	"MIN_I64": func() value.Value { return value.Integer(1<<63, value.I64) },
	"MAX_I64": func() value.Value { return value.Integer(math.MaxInt64, value.I64) },
	"MIN_I32": func() value.Value { return value.Integer(1<<31, value.I32) },
	"MAX_I32": func() value.Value { return value.Integer(math.MaxInt32, value.I32) },
	"MIN_I16": func() value.Value { return value.Integer(1<<15, value.I16) },
	"MAX_I16": func() value.Value { return value.Integer(math.MaxInt16, value.I16) },
	"MIN_I8":  func() value.Value { return value.Integer(1<<7, value.I8) },
	"MAX_I8":  func() value.Value { return value.Integer(math.MaxInt8, value.I8) },
}

var unaryFuncs = map[string]UnaryFunc{
	// operator forms
	"+u": unary(func(v value.Value) value.Value { return v }),
	"-u": unary(func(v value.Value) value.Value { return v.ToSigned().Neg() }),
	"!u": unary(func(v value.Value) value.Value { return value.FromBool(!v.Bool()) }),
	"~u": unary(func(v value.Value) value.Value { return v.Not() }),

	// math (computed in f64, unit preserved)
	"abs":   unary(func(v value.Value) value.Value { return v.Abs() }),
	"sin":   mathFn(math.Sin),
	"cos":   mathFn(math.Cos),
	"tan":   mathFn(math.Tan),
	"asin":  mathFn(math.Asin),
	"acos":  mathFn(math.Acos),
	"atan":  mathFn(math.Atan),
	"floor": mathFn(math.Floor),
	"ceil":  mathFn(math.Ceil),
	"round": mathFn(math.Round),
	"sqrt":  mathFn(math.Sqrt),
	"exp":   mathFn(math.Exp),
	"ln":    mathFn(math.Log),
	"log2":  mathFn(math.Log2),
	"log10": mathFn(math.Log10),
	"deg":   mathFn(func(f float64) float64 { return f * 180 / math.Pi }),
	"rad":   mathFn(func(f float64) float64 { return f * math.Pi / 180 }),

	// width casts (drop unit)
	"u64": castFn(value.U64),
	"u32": castFn(value.U32),
	"u16": castFn(value.U16),
	"u8":  castFn(value.U8),
	"i64": castFn(value.I64),
	"i32": castFn(value.I32),
	"i16": castFn(value.I16),
	"i8":  castFn(value.I8),
	"f64": unary(func(v value.Value) value.Value { return v.ToFloat() }),

	// unit conversions, named after the destination unit
	"byte":       unitFn(value.Byte),
	"kilobyte":   unitFn(value.Kilobyte),
	"megabyte":   unitFn(value.Megabyte),
	"gigabyte":   unitFn(value.Gigabyte),
	"terabyte":   unitFn(value.Terabyte),
	"petabyte":   unitFn(value.Petabyte),
	"celsius":    unitFn(value.Celsius),
	"fahrenheit": unitFn(value.Fahrenheit),
	"kelvin":     unitFn(value.Kelvin),
}

var binaryFuncs = map[string]BinaryFunc{
	"+": binary(func(a, b value.Value) value.Value { return a.Add(b) }),
	"-": binary(func(a, b value.Value) value.Value { return a.ToSigned().Sub(b.ToSigned()) }),
	"*": binary(func(a, b value.Value) value.Value { return a.Mul(b) }),
	"/": func(a, b value.Value) (value.Value, error) { return a.Div(b) },
	"%": func(a, b value.Value) (value.Value, error) { return a.Rem(b) },

	"&": binary(func(a, b value.Value) value.Value { return a.And(b) }),
	"|": binary(func(a, b value.Value) value.Value { return a.Or(b) }),
	"^": binary(func(a, b value.Value) value.Value { return a.Xor(b) }),

	"<<": binary(func(a, b value.Value) value.Value { return a.Shl(b) }),
	">>": binary(func(a, b value.Value) value.Value { return a.Shr(b) }),

	"<":  binary(func(a, b value.Value) value.Value { return value.FromBool(a.Cmp(b) < 0) }),
	">":  binary(func(a, b value.Value) value.Value { return value.FromBool(a.Cmp(b) > 0) }),
	"<=": binary(func(a, b value.Value) value.Value { return value.FromBool(a.Cmp(b) <= 0) }),
	">=": binary(func(a, b value.Value) value.Value { return value.FromBool(a.Cmp(b) >= 0) }),
	"==": binary(func(a, b value.Value) value.Value { return value.FromBool(a.Equal(b)) }),
	"!=": binary(func(a, b value.Value) value.Value { return value.FromBool(!a.Equal(b)) }),

	"&&": binary(func(a, b value.Value) value.Value { return value.FromBool(a.Bool() && b.Bool()) }),
	"||": binary(func(a, b value.Value) value.Value { return value.FromBool(a.Bool() || b.Bool()) }),
}

// aliases maps alternate spellings to canonical function names. Resolution
// is one hop: an alias points directly at a canonical name, never at
// another alias.
var aliases = map[string]string{
	"B":   "byte",
	"KB":  "kilobyte",
	"KiB": "kilobyte",
	"MB":  "megabyte",
	"MiB": "megabyte",
	"GB":  "gigabyte",
	"GiB": "gigabyte",
	"TB":  "terabyte",
	"TiB": "terabyte",
	"PB":  "petabyte",
	"PiB": "petabyte",
	"C":   "celsius",
	"F":   "fahrenheit",
	"K":   "kelvin",
}

// Resolve canonicalizes a name through the alias table.
func Resolve(name string) string {
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// LookupConstant returns the constant's value for a name, alias-resolved.
func LookupConstant(name string) (value.Value, bool) {
	c, ok := constants[Resolve(name)]
	if !ok {
		return value.Value{}, false
	}
	return c(), true
}

// LookupUnary returns the unary operation for a name, alias-resolved.
func LookupUnary(name string) (UnaryFunc, bool) {
	fn, ok := unaryFuncs[Resolve(name)]
	return fn, ok
}

// LookupBinary returns the binary operation for an operator symbol.
func LookupBinary(name string) (BinaryFunc, bool) {
	fn, ok := binaryFuncs[name]
	return fn, ok
}

// Names returns every resolvable identifier (constants, functions, and
// aliases), sorted. Used for completion and did-you-mean suggestions.
func Names() []string {
	names := make([]string, 0, len(constants)+len(unaryFuncs)+len(aliases))
	for name := range constants {
		names = append(names, name)
	}
	for name := range unaryFuncs {
		if Prec(name) >= 0 {
			continue // operator forms are not identifiers
		}
		names = append(names, name)
	}
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
