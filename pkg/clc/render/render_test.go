package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aar10n/clc/pkg/clc/value"
)

func TestModeFromString(t *testing.T) {
	tests := []struct {
		input string
		want  Mode
		ok    bool
	}{
		{"plain", Plain, true},
		{"dec", Plain, true},
		{"", Plain, true},
		{"hex", Hex, true},
		{"HEX", Hex, true},
		{"oct", Octal, true},
		{"octal", Octal, true},
		{"bin", Binary, true},
		{"binary", Binary, true},
		{"all", AllBases, true},
		{"all-bases", AllBases, true},
		{"roman", Plain, false},
	}
	for _, tt := range tests {
		got, ok := ModeFromString(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ModeFromString(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestRenderModes(t *testing.T) {
	v := value.Integer(31, value.U64)
	tests := []struct {
		mode Mode
		want string
	}{
		{Plain, "31"},
		{Hex, "0x1f"},
		{Octal, "0o37"},
		{Binary, "0b11111"},
		{AllBases, "31\n0x1f\n0o37\n0b11111"},
	}
	for _, tt := range tests {
		if got := Render(v, tt.mode); got != tt.want {
			t.Errorf("Render(31, %s) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestRenderFloatPassesThrough(t *testing.T) {
	v := value.Float(2.5)
	for _, m := range []Mode{Hex, Octal, Binary} {
		if got := Render(v, m); got != "2.5" {
			t.Errorf("Render(2.5, %s) = %q, want 2.5", m, got)
		}
	}
	if got := Render(v, AllBases); got != "2.50" {
		t.Errorf("Render(2.5, all) = %q, want 2.50", got)
	}
}

func TestRenderUnitted(t *testing.T) {
	v := value.New(value.NewInteger(3, value.U64), value.Kilobyte)
	if got := Render(v, Plain); got != "3K" {
		t.Errorf("plain = %q, want 3K", got)
	}
	// base modes show the stored byte-scale payload
	if got := Render(v, Hex); got != "0xc00" {
		t.Errorf("hex = %q, want 0xc00", got)
	}
}

func TestCandidatesRawInt(t *testing.T) {
	got := Candidates(value.Integer(255, value.U64))
	want := []string{"255", "0xff", "0o377", "0b11111111"}
	if len(got) != len(want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCandidatesFloat(t *testing.T) {
	got := Candidates(value.Float(2.5))
	if len(got) != 1 || got[0] != "2.50" {
		t.Errorf("Candidates(2.5) = %v", got)
	}
}

func TestCandidatesUnitted(t *testing.T) {
	v := value.New(value.NewInteger(3, value.U64), value.Kilobyte)
	got := Candidates(v)
	if len(got) != 4 {
		t.Fatalf("Candidates(3K) = %v, want 4 entries", got)
	}
	if got[0] != "3072B" || got[1] != "3K" {
		t.Errorf("candidates = %v", got)
	}

	v = value.New(value.NewFloat(0), value.Celsius)
	got = Candidates(v)
	if len(got) != 3 {
		t.Fatalf("Candidates(0°C) = %v, want 3 entries", got)
	}
	if got[0] != "0°C" || got[1] != "32°F" || got[2] != "273.15°K" {
		t.Errorf("candidates = %v", got)
	}
}

func TestAlfred(t *testing.T) {
	out := Alfred(value.Integer(255, value.U64))
	var doc struct {
		Items []struct {
			Arg   string `json:"arg"`
			Valid string `json:"valid"`
			Title string `json:"title"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Alfred output not JSON: %v\n%s", err, out)
	}
	if len(doc.Items) != 4 {
		t.Fatalf("Alfred items = %d, want 4", len(doc.Items))
	}
	if doc.Items[0].Arg != "255" || doc.Items[0].Valid != "YES" {
		t.Errorf("item 0 = %+v", doc.Items[0])
	}
	if doc.Items[1].Title != "0xff" {
		t.Errorf("item 1 title = %q", doc.Items[1].Title)
	}
}

func TestAlfredError(t *testing.T) {
	out := AlfredError(errors.New("integer division by zero"))
	var doc struct {
		Items []struct {
			Valid string `json:"valid"`
			Title string `json:"title"`
		} `json:"items"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("AlfredError output not JSON: %v", err)
	}
	if len(doc.Items) != 1 || doc.Items[0].Valid != "NO" {
		t.Fatalf("items = %+v", doc.Items)
	}
	if !strings.Contains(doc.Items[0].Title, "division by zero") {
		t.Errorf("title = %q", doc.Items[0].Title)
	}
}
