package value

import (
	"github.com/aar10n/clc/pkg/clc/clcerr"
)

// Unit tags a number with a physical unit. Raw means no unit. Size units are
// powers of 1024 sharing bytes as their base representation; temperature
// units have no common base and convert via per-pair affine formulas.
type Unit uint8

const (
	Raw Unit = iota
	// digital size
	Byte
	Kilobyte
	Megabyte
	Gigabyte
	Terabyte
	Petabyte
	// temperature
	Celsius
	Fahrenheit
	Kelvin
)

// Group identifies which conversions are legal between units.
type Group string

const (
	GroupRaw         Group = "raw"
	GroupSize        Group = "size"
	GroupTemperature Group = "temperature"
)

// IsRaw reports whether the unit is Raw.
func (u Unit) IsRaw() bool { return u == Raw }

// IsSize reports whether the unit belongs to the digital size group.
func (u Unit) IsSize() bool {
	return u >= Byte && u <= Petabyte
}

// IsTemperature reports whether the unit belongs to the temperature group.
func (u Unit) IsTemperature() bool {
	return u >= Celsius && u <= Kelvin
}

// Group returns the unit's group. Every unit belongs to exactly one.
func (u Unit) Group() Group {
	switch {
	case u.IsSize():
		return GroupSize
	case u.IsTemperature():
		return GroupTemperature
	default:
		return GroupRaw
	}
}

// sizeScale returns the unit's multiplier over bytes.
func sizeScale(u Unit) uint64 {
	switch u {
	case Kilobyte:
		return 1024
	case Megabyte:
		return 1024 * 1024
	case Gigabyte:
		return 1024 * 1024 * 1024
	case Terabyte:
		return 1024 * 1024 * 1024 * 1024
	case Petabyte:
		return 1024 * 1024 * 1024 * 1024 * 1024
	default:
		return 1
	}
}

// Normalize converts a unit-scaled number into its group's base
// representation: sizes scale into unsigned bytes, temperatures become
// floats, raw numbers are untouched.
func Normalize(n Number, from Unit) Number {
	switch {
	case from == Byte:
		return n.ToUnsigned()
	case from.IsSize():
		return n.Mul(FromUint64(sizeScale(from))).ToUnsigned()
	case from.IsTemperature():
		return n.ToFloat()
	default:
		return n
	}
}

// Specialize converts a base-scale number back into a display-appropriate
// scale for the given unit (e.g. 3072 bytes -> 3 kilobytes).
func Specialize(n Number, to Unit) Number {
	switch {
	case to == Byte:
		return n.ToUnsigned()
	case to.IsSize():
		return NewFloat(n.Float64() / float64(sizeScale(to)))
	default:
		return n
	}
}

// ConvertNumber converts a base-scale number between units. Conversion is
// legal when the units match, one side is Raw, or both units share a group.
func ConvertNumber(n Number, from, to Unit) (Number, error) {
	switch {
	case from == Raw && to == Raw:
		return n, nil
	case from == Raw:
		return Normalize(n, to), nil
	case to == Raw:
		return Normalize(n, from), nil
	case from == to:
		return n, nil
	case from.IsSize() && to.IsSize():
		// sizes share a base; only the display scale differs
		return n, nil
	}

	f := n.Float64()
	switch {
	case from == Celsius && to == Fahrenheit:
		return NewFloat(f*9/5 + 32), nil
	case from == Celsius && to == Kelvin:
		return NewFloat(f + 273.15), nil
	case from == Fahrenheit && to == Celsius:
		return NewFloat((f - 32) * 5 / 9), nil
	case from == Fahrenheit && to == Kelvin:
		return NewFloat((f-32)*5/9 + 273.15), nil
	case from == Kelvin && to == Celsius:
		return NewFloat(f - 273.15), nil
	case from == Kelvin && to == Fahrenheit:
		return NewFloat((f-273.15)*9/5 + 32), nil
	}

	return Number{}, clcerr.New("UNIT-0001", map[string]any{
		"From": from.Name(),
		"To":   to.Name(),
	})
}

// String returns the unit's display suffix.
func (u Unit) String() string {
	switch u {
	case Byte:
		return "B"
	case Kilobyte:
		return "K"
	case Megabyte:
		return "M"
	case Gigabyte:
		return "G"
	case Terabyte:
		return "T"
	case Petabyte:
		return "P"
	case Celsius:
		return "°C"
	case Fahrenheit:
		return "°F"
	case Kelvin:
		return "°K"
	default:
		return ""
	}
}

// Name returns the unit's canonical registry name.
func (u Unit) Name() string {
	switch u {
	case Byte:
		return "byte"
	case Kilobyte:
		return "kilobyte"
	case Megabyte:
		return "megabyte"
	case Gigabyte:
		return "gigabyte"
	case Terabyte:
		return "terabyte"
	case Petabyte:
		return "petabyte"
	case Celsius:
		return "celsius"
	case Fahrenheit:
		return "fahrenheit"
	case Kelvin:
		return "kelvin"
	default:
		return "raw"
	}
}

// UnitFromName parses a canonical unit name.
func UnitFromName(s string) (Unit, bool) {
	switch s {
	case "raw", "":
		return Raw, true
	case "byte":
		return Byte, true
	case "kilobyte":
		return Kilobyte, true
	case "megabyte":
		return Megabyte, true
	case "gigabyte":
		return Gigabyte, true
	case "terabyte":
		return Terabyte, true
	case "petabyte":
		return Petabyte, true
	case "celsius":
		return Celsius, true
	case "fahrenheit":
		return Fahrenheit, true
	case "kelvin":
		return Kelvin, true
	}
	return Raw, false
}

// UnitsForGroup lists the units belonging to a group, smallest first.
func UnitsForGroup(g Group) []Unit {
	switch g {
	case GroupRaw:
		return []Unit{Raw}
	case GroupSize:
		return []Unit{Byte, Kilobyte, Megabyte, Gigabyte, Terabyte, Petabyte}
	case GroupTemperature:
		return []Unit{Celsius, Fahrenheit, Kelvin}
	default:
		return nil
	}
}
