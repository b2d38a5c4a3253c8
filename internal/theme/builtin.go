// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"slices"
	"strings"
)

// DefaultName is the theme used when none is configured or the configured
// one cannot be found.
const DefaultName = "Hydrogen"

func ptr[T any](v T) *T { return &v }

// builtins are the themes compiled into the binary.
var builtins = map[string]File{
	"Hydrogen": {
		KeyColor:       "blue",
		SeparatorColor: "white",
		Separator:      ptr("-"),
		Spacing:        ptr(2),
		Padding:        ptr(2),
		Box: BoxFile{
			Title:       ptr(" Hydrogen "),
			Border:      "rounded",
			Visible:     ptr(true),
			InnerMargin: &MarginFile{X: 1, Y: 1},
		},
		Bar: BarFile{Glyph: "●", SymbolOpen: "(", SymbolClose: ")"},
	},
	"Helium": {
		KeyColor:       "lightmagenta",
		SeparatorColor: "white",
		Separator:      ptr("•"),
		Spacing:        ptr(1),
		Padding:        ptr(2),
		Box: BoxFile{
			Title:       ptr(" Helium "),
			Border:      "plain",
			Visible:     ptr(true),
			InnerMargin: &MarginFile{X: 1, Y: 0},
		},
		Bar: BarFile{Glyph: "■", SymbolOpen: "[", SymbolClose: "]"},
	},
	"Lithium": {
		KeyColor:       "yellow",
		SeparatorColor: "darkgray",
		Separator:      ptr("→"),
		Spacing:        ptr(1),
		Padding:        ptr(3),
		Box:            BoxFile{Visible: ptr(false)},
		Bar:            BarFile{Visible: true, Glyph: "━", HideDelimiters: true},
	},
	"Beryllium": {
		KeyColor:       "green",
		SeparatorColor: "green",
		Separator:      ptr("│"),
		Spacing:        ptr(2),
		Padding:        ptr(2),
		Box: BoxFile{
			Title:       ptr(" Beryllium "),
			Border:      "double",
			Visible:     ptr(true),
			InnerMargin: &MarginFile{X: 2, Y: 1},
		},
		Palette: PaletteFile{Type: "dark"},
	},
	"Boron": {
		Separator: ptr(":"),
		Spacing:   ptr(1),
		Padding:   ptr(2),
		Randomize: RandomizeFile{KeyColor: true, SeparatorColor: true, Pool: "base"},
		Box: BoxFile{
			Title:       ptr(" Boron "),
			Border:      "thick",
			Visible:     ptr(true),
			InnerMargin: &MarginFile{X: 1, Y: 1},
		},
		Palette: PaletteFile{Type: "full", Glyph: "●"},
	},
}

// Builtin returns the built-in theme called name, matched case-insensitively.
func Builtin(name string) (File, bool) {
	for n, f := range builtins {
		if strings.EqualFold(n, name) {
			f.Name = n
			return f, true
		}
	}
	return File{}, false
}

// BuiltinNames returns the built-in theme names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
