// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// MODIFIERS
// =============================================================================

// Modifier is a bitmask of text attributes applied to a cell.
type Modifier uint16

const (
	Bold Modifier = 1 << iota
	Dim
	Italic
	Underline
	Blink
	Reversed
	CrossedOut
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{Bold, "bold"},
	{Dim, "dim"},
	{Italic, "italic"},
	{Underline, "underline"},
	{Blink, "blink"},
	{Reversed, "reversed"},
	{CrossedOut, "crossed_out"},
}

// Has reports whether every bit of other is set.
func (m Modifier) Has(other Modifier) bool {
	return m&other == other
}

func (m Modifier) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, n := range modifierNames {
		if m.Has(n.mod) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseModifier maps a modifier name such as "bold" to its bit.
func ParseModifier(name string) (Modifier, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range modifierNames {
		if n.name == name {
			return n.mod, true
		}
	}
	return 0, false
}

// =============================================================================
// CELL
// =============================================================================

// Cell is a single column of the grid. Fg and Bg use lipgloss color strings;
// the empty string means the terminal default.
type Cell struct {
	Symbol string
	Fg     lipgloss.Color
	Bg     lipgloss.Color
	Mod    Modifier
}

// EmptyCell returns a blank cell with default colors and no modifiers.
func EmptyCell() Cell {
	return Cell{Symbol: " "}
}

// IsEmpty reports whether the cell is indistinguishable from EmptyCell.
// A styled space is not empty.
func (c Cell) IsEmpty() bool {
	return c == EmptyCell()
}

// Apply returns c with s patched over its colors and modifiers.
func (c Cell) Apply(s Style) Cell {
	if s.Fg != "" {
		c.Fg = s.Fg
	}
	if s.Bg != "" {
		c.Bg = s.Bg
	}
	c.Mod = (c.Mod | s.Add) &^ s.Sub
	return c
}

// =============================================================================
// STYLE
// =============================================================================

// Style is a patch applied on top of a cell. Empty colors leave the
// existing color alone. Add and Sub set and clear modifier bits.
type Style struct {
	Fg  lipgloss.Color
	Bg  lipgloss.Color
	Add Modifier
	Sub Modifier
}

// Patch layers other over s, with other winning on every field it sets.
func (s Style) Patch(other Style) Style {
	if other.Fg != "" {
		s.Fg = other.Fg
	}
	if other.Bg != "" {
		s.Bg = other.Bg
	}
	s.Add = (s.Add &^ other.Sub) | other.Add
	s.Sub = (s.Sub &^ other.Add) | other.Sub
	return s
}

// Foreground returns a copy of s with the foreground set.
func (s Style) Foreground(c lipgloss.Color) Style {
	s.Fg = c
	return s
}

// With returns a copy of s that also sets the given modifiers.
func (s Style) With(m Modifier) Style {
	s.Add |= m
	s.Sub &^= m
	return s
}
