package value

// Width is a fixed bit-length plus signedness tag for integer storage.
type Width uint8

const (
	U8 Width = iota
	U16
	U32
	U64
	I8
	I16
	I32
	I64
)

// Bits returns the bit-length of the width.
func (w Width) Bits() int {
	switch w {
	case U8, I8:
		return 8
	case U16, I16:
		return 16
	case U32, I32:
		return 32
	default:
		return 64
	}
}

// Signed reports whether the width is a signed integer type.
func (w Width) Signed() bool {
	switch w {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// Mask returns the all-ones bit mask for the width.
func (w Width) Mask() uint64 {
	switch w {
	case U8, I8:
		return 0xFF
	case U16, I16:
		return 0xFFFF
	case U32, I32:
		return 0xFFFFFFFF
	default:
		return 0xFFFFFFFFFFFFFFFF
	}
}

// Apply truncates v to the width's bit-length. Stored integer payloads are
// always masked so bits never exceed the width.
func (w Width) Apply(v uint64) uint64 {
	return v & w.Mask()
}

// String returns the display name of the width ("u32", "i8", ...).
func (w Width) String() string {
	switch w {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	case I8:
		return "i8"
	case I16:
		return "i16"
	case I32:
		return "i32"
	default:
		return "i64"
	}
}

// WidthFromString parses a width display name.
func WidthFromString(s string) (Width, bool) {
	switch s {
	case "u8":
		return U8, true
	case "u16":
		return U16, true
	case "u32":
		return U32, true
	case "u64":
		return U64, true
	case "i8":
		return I8, true
	case "i16":
		return I16, true
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	}
	return U64, false
}

// Widths lists every width, unsigned first.
func Widths() []Width {
	return []Width{U8, U16, U32, U64, I8, I16, I32, I64}
}
