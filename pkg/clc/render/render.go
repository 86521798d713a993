// Package render turns computed values into presentation strings: plain
// text, hex/octal/binary dumps, a multi-base listing, and the structured
// JSON item list consumed by the Alfred launcher.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aar10n/clc/pkg/clc/value"
)

// Mode selects how an integer result is rendered. Floats always render in
// plain form; non-plain modes pass them through unchanged.
type Mode int

const (
	Plain Mode = iota
	Hex
	Octal
	Binary
	AllBases
)

// ModeFromString parses a mode name as accepted by the CLI and REPL.
func ModeFromString(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "plain", "dec", "":
		return Plain, true
	case "hex":
		return Hex, true
	case "oct", "octal":
		return Octal, true
	case "bin", "binary":
		return Binary, true
	case "all", "all-bases":
		return AllBases, true
	}
	return Plain, false
}

// String returns the mode's CLI name.
func (m Mode) String() string {
	switch m {
	case Hex:
		return "hex"
	case Octal:
		return "oct"
	case Binary:
		return "bin"
	case AllBases:
		return "all"
	default:
		return "plain"
	}
}

// Render formats a value in the requested mode. Base modes format the
// stored base-scale number; plain mode uses the unit-specialized pretty
// form.
func Render(v value.Value, m Mode) string {
	switch m {
	case Hex:
		return v.Number.HexString()
	case Octal:
		return v.Number.OctalString()
	case Binary:
		return v.Number.BinaryString()
	case AllBases:
		return strings.Join(baseForms(v.Number), "\n")
	default:
		return v.String()
	}
}

// baseForms lists an integer's decimal, hex, octal, and binary forms.
// Floats produce their single plain form.
func baseForms(n value.Number) []string {
	if !n.IsInteger() {
		return []string{n.PrettyString()}
	}
	return []string{n.String(), n.HexString(), n.OctalString(), n.BinaryString()}
}

// Candidates returns the structured multi-candidate listing for a value:
// all four bases for raw integers, a single pretty entry for floats, and up
// to four unit-converted forms for unitted values.
func Candidates(v value.Value) []string {
	if v.IsRaw() {
		return baseForms(v.Number)
	}

	units := value.UnitsForGroup(v.Unit.Group())
	if len(units) > 4 {
		units = units[:4]
	}
	out := make([]string, 0, len(units))
	for _, u := range units {
		conv, err := v.Convert(u)
		if err != nil {
			continue
		}
		out = append(out, conv.String())
	}
	return out
}

// alfredItem is one entry in an Alfred script filter result list.
type alfredItem struct {
	Arg          string `json:"arg"`
	Valid        string `json:"valid"`
	Autocomplete string `json:"autocomplete"`
	Type         string `json:"type"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
}

type alfredList struct {
	Items []alfredItem `json:"items"`
}

// Alfred renders a value as an Alfred script filter JSON document, one item
// per candidate form.
func Alfred(v value.Value) string {
	items := make([]alfredItem, 0, 4)
	for _, candidate := range Candidates(v) {
		items = append(items, alfredItem{
			Arg:          candidate,
			Valid:        "YES",
			Autocomplete: candidate,
			Type:         "default",
			Title:        candidate,
			Subtitle:     fmt.Sprintf("copy+paste as %q", candidate),
		})
	}
	return marshalAlfred(alfredList{Items: items})
}

// AlfredError renders an error as a single invalid Alfred item.
func AlfredError(err error) string {
	return marshalAlfred(alfredList{Items: []alfredItem{{
		Arg:          "...",
		Valid:        "NO",
		Autocomplete: "...",
		Type:         "default",
		Title:        err.Error(),
		Subtitle:     "...",
	}}})
}

func marshalAlfred(list alfredList) string {
	data, err := json.Marshal(list)
	if err != nil {
		// the item list is plain strings; marshaling cannot fail in practice
		return `{"items":[]}`
	}
	return string(data)
}
