package value

// Value pairs a Number with a Unit. Constructing a Value through New
// normalizes the number into the unit's base scale (3 kilobytes is stored as
// 3072 bytes); a Raw value never undergoes normalization. Display re-derives
// the unit-scaled form from the stored base value.
type Value struct {
	Number Number
	Unit   Unit
}

// New creates a Value, normalizing the number into the unit's base scale.
func New(n Number, u Unit) Value {
	return Value{Number: Normalize(n, u), Unit: u}
}

// With pairs an already base-scale number with a unit without renormalizing.
func With(n Number, u Unit) Value {
	return Value{Number: n, Unit: u}
}

// NewRaw creates an unitless Value.
func NewRaw(n Number) Value {
	return Value{Number: n}
}

// Integer creates a raw integer Value.
func Integer(bits uint64, w Width) Value {
	return Value{Number: NewInteger(bits, w)}
}

// Float creates a raw float Value.
func Float(f float64) Value {
	return Value{Number: NewFloat(f)}
}

// FromBool creates the u8 integer 1 or 0.
func FromBool(b bool) Value {
	if b {
		return Integer(1, U8)
	}
	return Integer(0, U8)
}

// Zero returns the conventional zero value: integer 0 at width u64.
func Zero() Value {
	return Integer(0, U64)
}

// IsInteger reports whether the value holds a fixed-width integer.
func (v Value) IsInteger() bool { return v.Number.IsInteger() }

// IsRaw reports whether the value carries no unit.
func (v Value) IsRaw() bool { return v.Unit.IsRaw() }

// Bool reports whether the value is non-zero.
func (v Value) Bool() bool { return v.Number.Bool() }

// Convert converts the value to another unit.
func (v Value) Convert(u Unit) (Value, error) {
	n, err := ConvertNumber(v.Number, v.Unit, u)
	if err != nil {
		return Value{}, err
	}
	return Value{Number: n, Unit: u}, nil
}

// resultUnit picks the unit a binary operation's result carries: the left
// operand's unit unless the left is raw.
func resultUnit(a, b Value) Unit {
	if !a.Unit.IsRaw() {
		return a.Unit
	}
	return b.Unit
}

// Add returns v + rhs.
func (v Value) Add(rhs Value) Value {
	return With(v.Number.Add(rhs.Number), resultUnit(v, rhs))
}

// Sub returns v - rhs.
func (v Value) Sub(rhs Value) Value {
	return With(v.Number.Sub(rhs.Number), resultUnit(v, rhs))
}

// Mul returns v * rhs.
func (v Value) Mul(rhs Value) Value {
	return With(v.Number.Mul(rhs.Number), resultUnit(v, rhs))
}

// Div returns v / rhs.
func (v Value) Div(rhs Value) (Value, error) {
	n, err := v.Number.Div(rhs.Number)
	if err != nil {
		return Value{}, err
	}
	return With(n, resultUnit(v, rhs)), nil
}

// Rem returns v % rhs.
func (v Value) Rem(rhs Value) (Value, error) {
	n, err := v.Number.Rem(rhs.Number)
	if err != nil {
		return Value{}, err
	}
	return With(n, resultUnit(v, rhs)), nil
}

// And returns v & rhs.
func (v Value) And(rhs Value) Value {
	return With(v.Number.And(rhs.Number), resultUnit(v, rhs))
}

// Or returns v | rhs.
func (v Value) Or(rhs Value) Value {
	return With(v.Number.Or(rhs.Number), resultUnit(v, rhs))
}

// Xor returns v ^ rhs.
func (v Value) Xor(rhs Value) Value {
	return With(v.Number.Xor(rhs.Number), resultUnit(v, rhs))
}

// Shl returns v << rhs.
func (v Value) Shl(rhs Value) Value {
	return With(v.Number.Shl(rhs.Number), v.Unit)
}

// Shr returns v >> rhs.
func (v Value) Shr(rhs Value) Value {
	return With(v.Number.Shr(rhs.Number), v.Unit)
}

// Neg returns -v.
func (v Value) Neg() Value {
	return With(v.Number.Neg(), v.Unit)
}

// Not returns ^v.
func (v Value) Not() Value {
	return With(v.Number.Not(), v.Unit)
}

// Abs returns |v|.
func (v Value) Abs() Value {
	return With(v.Number.Abs(), v.Unit)
}

// Cmp compares two values numerically, ignoring units.
func (v Value) Cmp(rhs Value) int {
	return v.Number.Cmp(rhs.Number)
}

// Equal reports numeric equality (epsilon-tolerant for floats).
func (v Value) Equal(rhs Value) bool {
	return v.Number.Equal(rhs.Number)
}

// ToSigned reinterprets the number under its signed width, keeping the unit.
func (v Value) ToSigned() Value {
	return With(v.Number.ToSigned(), v.Unit)
}

// ToUnsigned reinterprets the number under its unsigned width, keeping the unit.
func (v Value) ToUnsigned() Value {
	return With(v.Number.ToUnsigned(), v.Unit)
}

// ToFloat promotes the number to f64, dropping the unit.
func (v Value) ToFloat() Value {
	return NewRaw(v.Number.ToFloat())
}

// ToWidth casts the number to the target width, dropping the unit.
func (v Value) ToWidth(w Width) Value {
	return NewRaw(v.Number.ToWidth(w))
}

// String renders the value in its display scale with its unit suffix.
func (v Value) String() string {
	n := Specialize(v.Number, v.Unit)
	return n.PrettyString() + v.Unit.String()
}
