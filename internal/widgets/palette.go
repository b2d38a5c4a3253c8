// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sysview/internal/grid"
)

// PaletteType selects which ANSI colors a Palette shows.
type PaletteType int

const (
	PaletteNone PaletteType = iota
	PaletteDark
	PaletteLight
	PaletteFull
)

// ParsePaletteType accepts "none", "dark", "light" and "full".
func ParsePaletteType(s string) (PaletteType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PaletteNone, nil
	case "dark":
		return PaletteDark, nil
	case "light":
		return PaletteLight, nil
	case "full":
		return PaletteFull, nil
	default:
		return PaletteNone, fmt.Errorf("unknown palette type %q", s)
	}
}

func (p PaletteType) String() string {
	switch p {
	case PaletteDark:
		return "dark"
	case PaletteLight:
		return "light"
	case PaletteFull:
		return "full"
	default:
		return "none"
	}
}

// Palette shows the terminal's first sixteen colors as swatches.
// An empty Glyph draws background-colored blocks of three spaces.
type Palette struct {
	Type  PaletteType
	Glyph string
}

// Lines returns one line per color row.
func (p Palette) Lines() []Line {
	switch p.Type {
	case PaletteDark:
		return []Line{p.row(0)}
	case PaletteLight:
		return []Line{p.row(8)}
	case PaletteFull:
		return []Line{p.row(0), p.row(8)}
	default:
		return nil
	}
}

func (p Palette) row(base int) Line {
	l := make(Line, 0, 8)
	for i := base; i < base+8; i++ {
		c := lipgloss.Color(strconv.Itoa(i))
		if p.Glyph == "" {
			l = append(l, Span{Content: "   ", Style: grid.Style{Bg: c}})
			continue
		}
		l = append(l, Span{Content: p.Glyph, Style: grid.Style{Fg: c}})
	}
	return l
}
