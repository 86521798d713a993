package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/aar10n/clc/pkg/clc/clcerr"
)

// Number is a tagged union: a fixed-width integer payload with a width tag,
// or a 64-bit float. Integer payloads are always pre-masked to their width,
// and arithmetic wraps silently at the operand's bit-length.
//
// When operand types differ the LEFT operand wins: integer OP integer keeps
// the left width, integer OP float narrows the float into the left width
// (truncating toward zero), and float OP integer widens the integer to f64.
// Casts are the only explicit promotion path.
type Number struct {
	isFloat bool
	bits    uint64
	width   Width
	fval    float64
}

// NewInteger creates an integer Number, masking bits to the width.
func NewInteger(bits uint64, w Width) Number {
	return Number{bits: w.Apply(bits), width: w}
}

// NewFloat creates a float Number.
func NewFloat(f float64) Number {
	return Number{isFloat: true, fval: f}
}

// FromInt64 creates an i64 Number.
func FromInt64(v int64) Number {
	return NewInteger(uint64(v), I64)
}

// FromUint64 creates a u64 Number.
func FromUint64(v uint64) Number {
	return NewInteger(v, U64)
}

// IsInteger reports whether the number holds a fixed-width integer.
func (n Number) IsInteger() bool { return !n.isFloat }

// IsFloat reports whether the number holds a float.
func (n Number) IsFloat() bool { return n.isFloat }

// Width returns the integer width tag. Only meaningful when IsInteger.
func (n Number) Width() Width { return n.width }

// Bits returns the raw masked integer payload. Only meaningful when IsInteger.
func (n Number) Bits() uint64 { return n.bits }

// intAt interprets bits at width w as a signed 64-bit integer, sign-extending
// signed widths and zero-extending unsigned ones. U64 reinterprets the bit
// pattern.
func intAt(bits uint64, w Width) int64 {
	switch w {
	case U8:
		return int64(uint8(bits))
	case U16:
		return int64(uint16(bits))
	case U32:
		return int64(uint32(bits))
	case U64:
		return int64(bits)
	case I8:
		return int64(int8(bits))
	case I16:
		return int64(int16(bits))
	case I32:
		return int64(int32(bits))
	default:
		return int64(bits)
	}
}

// floatAt interprets bits at width w as a float64.
func floatAt(bits uint64, w Width) float64 {
	if w == U64 {
		return float64(bits)
	}
	return float64(intAt(bits, w))
}

// truncBits truncates a float toward zero and returns the two's-complement
// bit pattern of the result. NaN maps to zero.
func truncBits(f float64) uint64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxUint64:
		return math.MaxUint64
	case f >= 0:
		return uint64(f)
	case f <= math.MinInt64:
		return 1 << 63
	default:
		return uint64(int64(f))
	}
}

// Float64 returns the number widened to f64.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.fval
	}
	return floatAt(n.bits, n.width)
}

// Int64 returns the number narrowed or sign-extended to a signed 64-bit value.
func (n Number) Int64() int64 {
	if n.isFloat {
		return int64(truncBits(n.fval))
	}
	return intAt(n.bits, n.width)
}

// Uint64 returns the number's bit pattern widened to 64 bits.
func (n Number) Uint64() uint64 {
	if n.isFloat {
		return truncBits(n.fval)
	}
	return uint64(intAt(n.bits, n.width))
}

// Bool reports whether the number is non-zero.
func (n Number) Bool() bool {
	if n.isFloat {
		return n.fval != 0
	}
	return n.bits != 0
}

// rhsBits narrows rhs into the left operand's integer representation,
// truncating floats toward zero, then masks to the left width.
func (n Number) rhsBits(rhs Number) uint64 {
	if rhs.isFloat {
		return n.width.Apply(truncBits(rhs.fval))
	}
	return n.width.Apply(rhs.bits)
}

// Add returns n + rhs.
func (n Number) Add(rhs Number) Number {
	if n.isFloat {
		return NewFloat(n.fval + rhs.Float64())
	}
	return NewInteger(n.bits+n.rhsBits(rhs), n.width)
}

// Sub returns n - rhs.
func (n Number) Sub(rhs Number) Number {
	if n.isFloat {
		return NewFloat(n.fval - rhs.Float64())
	}
	return NewInteger(n.bits-n.rhsBits(rhs), n.width)
}

// Mul returns n * rhs.
func (n Number) Mul(rhs Number) Number {
	if n.isFloat {
		return NewFloat(n.fval * rhs.Float64())
	}
	return NewInteger(n.bits*n.rhsBits(rhs), n.width)
}

// Div returns n / rhs. Integer division by zero is an error; float division
// by zero follows IEEE 754.
func (n Number) Div(rhs Number) (Number, error) {
	if n.isFloat {
		return NewFloat(n.fval / rhs.Float64()), nil
	}
	r := n.rhsBits(rhs)
	if r == 0 {
		return Number{}, clcerr.New("ARITH-0001", nil)
	}
	if n.width.Signed() {
		q := intAt(n.bits, n.width) / intAt(r, n.width)
		return NewInteger(uint64(q), n.width), nil
	}
	return NewInteger(n.bits/r, n.width), nil
}

// Rem returns n % rhs. Integer remainder by zero is an error.
func (n Number) Rem(rhs Number) (Number, error) {
	if n.isFloat {
		return NewFloat(math.Mod(n.fval, rhs.Float64())), nil
	}
	r := n.rhsBits(rhs)
	if r == 0 {
		return Number{}, clcerr.New("ARITH-0001", nil)
	}
	if n.width.Signed() {
		q := intAt(n.bits, n.width) % intAt(r, n.width)
		return NewInteger(uint64(q), n.width), nil
	}
	return NewInteger(n.bits%r, n.width), nil
}

// And returns n & rhs. A float left operand yields NaN.
func (n Number) And(rhs Number) Number {
	if n.isFloat {
		return NewFloat(math.NaN())
	}
	return NewInteger(n.bits&n.rhsBits(rhs), n.width)
}

// Or returns n | rhs. A float left operand yields NaN.
func (n Number) Or(rhs Number) Number {
	if n.isFloat {
		return NewFloat(math.NaN())
	}
	return NewInteger(n.bits|n.rhsBits(rhs), n.width)
}

// Xor returns n ^ rhs. A float left operand yields NaN.
func (n Number) Xor(rhs Number) Number {
	if n.isFloat {
		return NewFloat(math.NaN())
	}
	return NewInteger(n.bits^n.rhsBits(rhs), n.width)
}

// Shl returns n << rhs. Shift counts at or beyond the bit-length produce zero.
func (n Number) Shl(rhs Number) Number {
	if n.isFloat {
		return NewFloat(math.NaN())
	}
	count := shiftCount(rhs)
	return NewInteger(n.bits<<count, n.width)
}

// Shr returns n >> rhs. The shift is logical on the stored bit pattern.
func (n Number) Shr(rhs Number) Number {
	if n.isFloat {
		return NewFloat(math.NaN())
	}
	count := shiftCount(rhs)
	return NewInteger(n.bits>>count, n.width)
}

func shiftCount(rhs Number) uint64 {
	if rhs.isFloat {
		return truncBits(rhs.fval)
	}
	return rhs.bits
}

// Neg returns -n, wrapping at the integer's width.
func (n Number) Neg() Number {
	if n.isFloat {
		return NewFloat(-n.fval)
	}
	return NewInteger(-n.bits, n.width)
}

// Not returns ^n on integers. A float operand yields NaN.
func (n Number) Not() Number {
	if n.isFloat {
		return NewFloat(math.NaN())
	}
	return NewInteger(^n.bits, n.width)
}

// Abs returns the absolute value.
func (n Number) Abs() Number {
	if n.isFloat {
		return NewFloat(math.Abs(n.fval))
	}
	if n.width.Signed() && intAt(n.bits, n.width) < 0 {
		return NewInteger(-n.bits, n.width)
	}
	return n
}

// Cmp compares two numbers and returns -1, 0, or 1.
//
// An integer left operand compares at its own width, narrowing a float right
// operand into that width first. A float left operand compares in f64 with
// epsilon-tolerant equality; strict ordering stays exact once equality has
// been ruled out.
func (n Number) Cmp(rhs Number) int {
	if !n.isFloat {
		l := n.bits
		r := n.rhsBits(rhs)
		if n.width.Signed() {
			return cmpInt64(intAt(l, n.width), intAt(r, n.width))
		}
		return cmpUint64(l, r)
	}

	rf := rhs.Float64()
	if approxEqual(n.fval, rf) {
		return 0
	}
	if n.fval < rf {
		return -1
	}
	return 1
}

// Equal reports epsilon-tolerant equality.
func (n Number) Equal(rhs Number) bool {
	return n.Cmp(rhs) == 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// approxEqual reports whether two floats are equal within machine epsilon or
// four ULPs. This trades bit-exactness for robustness against binary rounding
// in mixed float/integer comparisons.
func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	if math.Abs(a-b) <= epsilonFor(a, b) {
		return true
	}
	return ulpsApart(a, b) <= 4
}

const f64Epsilon = 2.220446049250313e-16

func epsilonFor(a, b float64) float64 {
	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest < 1 {
		largest = 1
	}
	return largest * f64Epsilon
}

// ulpsApart returns the distance between two floats in units of least
// precision, or a large value when signs differ.
func ulpsApart(a, b float64) uint64 {
	ab := int64(math.Float64bits(a))
	bb := int64(math.Float64bits(b))
	if (ab < 0) != (bb < 0) {
		return math.MaxUint64
	}
	d := ab - bb
	if d < 0 {
		d = -d
	}
	return uint64(d)
}

// ToSigned reinterprets the bit pattern under the signed width of the same
// bit-length. Floats truncate into i64.
func (n Number) ToSigned() Number {
	if n.isFloat {
		return NewInteger(truncBits(n.fval), I64)
	}
	switch n.width {
	case U8:
		return NewInteger(n.bits, I8)
	case U16:
		return NewInteger(n.bits, I16)
	case U32:
		return NewInteger(n.bits, I32)
	case U64:
		return NewInteger(n.bits, I64)
	default:
		return n
	}
}

// ToUnsigned reinterprets the bit pattern under the unsigned width of the
// same bit-length. Floats truncate into u64.
func (n Number) ToUnsigned() Number {
	if n.isFloat {
		return NewInteger(truncBits(n.fval), U64)
	}
	switch n.width {
	case I8:
		return NewInteger(n.bits, U8)
	case I16:
		return NewInteger(n.bits, U16)
	case I32:
		return NewInteger(n.bits, U32)
	case I64:
		return NewInteger(n.bits, U64)
	default:
		return n
	}
}

// ToFloat explicitly promotes the number to f64.
func (n Number) ToFloat() Number {
	return NewFloat(n.Float64())
}

// ToWidth casts the number to the target width, truncating as needed.
func (n Number) ToWidth(w Width) Number {
	if n.isFloat {
		return NewInteger(truncBits(n.fval), w)
	}
	return NewInteger(n.bits, w)
}

// String renders the number in its natural decimal form.
func (n Number) String() string {
	if n.isFloat {
		return formatFloat(n.fval)
	}
	if n.width.Signed() {
		return strconv.FormatInt(intAt(n.bits, n.width), 10)
	}
	return strconv.FormatUint(n.bits, 10)
}

// PrettyString renders the number for summary output; integral floats print
// without a decimal point, other floats print to two decimal places.
func (n Number) PrettyString() string {
	if !n.isFloat {
		return n.String()
	}
	if math.IsInf(n.fval, 0) || math.IsNaN(n.fval) {
		return formatFloat(n.fval)
	}
	if n.fval == math.Trunc(n.fval) {
		return formatFloat(n.fval)
	}
	return strconv.FormatFloat(n.fval, 'f', 2, 64)
}

// HexString renders an integer as 0x-prefixed hex of its masked payload.
// Floats pass through unchanged.
func (n Number) HexString() string {
	if n.isFloat {
		return n.String()
	}
	return fmt.Sprintf("%#x", n.bits)
}

// OctalString renders an integer as 0o-prefixed octal. Floats pass through.
func (n Number) OctalString() string {
	if n.isFloat {
		return n.String()
	}
	return fmt.Sprintf("0o%o", n.bits)
}

// BinaryString renders an integer as 0b-prefixed binary. Floats pass through.
func (n Number) BinaryString() string {
	if n.isFloat {
		return n.String()
	}
	return fmt.Sprintf("0b%b", n.bits)
}

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
