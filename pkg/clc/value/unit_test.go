package value

import (
	"math"
	"testing"

	"github.com/aar10n/clc/pkg/clc/clcerr"
)

func TestUnitGroups(t *testing.T) {
	tests := []struct {
		unit  Unit
		group Group
	}{
		{Raw, GroupRaw},
		{Byte, GroupSize},
		{Kilobyte, GroupSize},
		{Petabyte, GroupSize},
		{Celsius, GroupTemperature},
		{Fahrenheit, GroupTemperature},
		{Kelvin, GroupTemperature},
	}
	for _, tt := range tests {
		if got := tt.unit.Group(); got != tt.group {
			t.Errorf("%s.Group() = %s, want %s", tt.unit.Name(), got, tt.group)
		}
	}
}

func TestNormalizeSize(t *testing.T) {
	n := Normalize(NewInteger(3, U64), Kilobyte)
	if n.Bits() != 3072 {
		t.Errorf("3 kilobytes = %d bytes, want 3072", n.Bits())
	}
	n = Normalize(NewInteger(2, U64), Megabyte)
	if n.Bits() != 2*1024*1024 {
		t.Errorf("2 megabytes = %d bytes, want %d", n.Bits(), 2*1024*1024)
	}
	// fractional sizes normalize through floats
	n = Normalize(NewFloat(1.5), Kilobyte)
	if n.Bits() != 1536 {
		t.Errorf("1.5 kilobytes = %d bytes, want 1536", n.Bits())
	}
}

func TestSpecializeSize(t *testing.T) {
	n := Specialize(NewInteger(3072, U64), Kilobyte)
	if n.Float64() != 3 {
		t.Errorf("3072 bytes as kilobytes = %v, want 3", n.Float64())
	}
}

func TestSizeRoundTrip(t *testing.T) {
	// converting a size value across units and back preserves the number
	v := New(NewInteger(5, U64), Gigabyte)
	mb, err := v.Convert(Megabyte)
	if err != nil {
		t.Fatalf("gigabyte -> megabyte: %v", err)
	}
	back, err := mb.Convert(Gigabyte)
	if err != nil {
		t.Fatalf("megabyte -> gigabyte: %v", err)
	}
	if !back.Number.Equal(v.Number) {
		t.Errorf("round trip = %v, want %v", back.Number, v.Number)
	}
}

func TestTemperatureConversions(t *testing.T) {
	tests := []struct {
		name     string
		from, to Unit
		in, want float64
	}{
		{"C to F", Celsius, Fahrenheit, 100, 212},
		{"C to K", Celsius, Kelvin, 0, 273.15},
		{"F to C", Fahrenheit, Celsius, 32, 0},
		{"F to K", Fahrenheit, Kelvin, 32, 273.15},
		{"K to C", Kelvin, Celsius, 273.15, 0},
		{"K to F", Kelvin, Fahrenheit, 273.15, 32},
	}

	for _, tt := range tests {
		n, err := ConvertNumber(NewFloat(tt.in), tt.from, tt.to)
		if err != nil {
			t.Errorf("%s: %v", tt.name, err)
			continue
		}
		if math.Abs(n.Float64()-tt.want) > 1e-9 {
			t.Errorf("%s: got %v, want %v", tt.name, n.Float64(), tt.want)
		}
	}
}

func TestIncompatibleUnits(t *testing.T) {
	_, err := ConvertNumber(NewInteger(1, U64), Kilobyte, Celsius)
	if !clcerr.IsClass(err, clcerr.ClassUnit) {
		t.Fatalf("kilobyte -> celsius error = %v, want unit error", err)
	}
}

func TestUnitNames(t *testing.T) {
	units := append(UnitsForGroup(GroupSize), UnitsForGroup(GroupTemperature)...)
	for _, u := range units {
		got, ok := UnitFromName(u.Name())
		if !ok || got != u {
			t.Errorf("UnitFromName(%q) = %v, %v", u.Name(), got, ok)
		}
	}
	if _, ok := UnitFromName("furlong"); ok {
		t.Error("UnitFromName accepted furlong")
	}
}
