// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sysview/internal/grid"
)

// BorderType selects the glyph set used to draw a Block.
type BorderType int

const (
	BorderRounded BorderType = iota
	BorderPlain
	BorderDouble
	BorderThick
)

func (b BorderType) String() string {
	switch b {
	case BorderPlain:
		return "plain"
	case BorderDouble:
		return "double"
	case BorderThick:
		return "thick"
	default:
		return "rounded"
	}
}

// ParseBorderType accepts the names produced by BorderType.String.
func ParseBorderType(s string) (BorderType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rounded":
		return BorderRounded, nil
	case "plain", "normal":
		return BorderPlain, nil
	case "double":
		return BorderDouble, nil
	case "thick":
		return BorderThick, nil
	default:
		return BorderRounded, fmt.Errorf("unknown border type %q", s)
	}
}

// Glyphs returns the lipgloss border definition for b.
func (b BorderType) Glyphs() lipgloss.Border {
	switch b {
	case BorderPlain:
		return lipgloss.NormalBorder()
	case BorderDouble:
		return lipgloss.DoubleBorder()
	case BorderThick:
		return lipgloss.ThickBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// Block draws a one-cell border around its area with an optional title
// embedded in the top edge. With Borders false only the title is drawn.
type Block struct {
	Borders     bool
	Type        BorderType
	BorderStyle grid.Style
	Title       string
	TitleStyle  grid.Style
}

// Inner returns the part of area left for content.
func (b Block) Inner(area grid.Rect) grid.Rect {
	if !b.Borders {
		if b.Title != "" && area.Height > 0 {
			return grid.Rect{X: area.X, Y: area.Y + 1, Width: area.Width, Height: area.Height - 1}
		}
		return area
	}
	return area.Inner(grid.Margin{Horizontal: 1, Vertical: 1})
}

// Chrome returns the columns and rows the block adds around its content.
func (b Block) Chrome() (w, h int) {
	if b.Borders {
		return 2, 2
	}
	if b.Title != "" {
		return 0, 1
	}
	return 0, 0
}

// Render draws the border and title into g, clipped to area.
func (b Block) Render(area grid.Rect, g *grid.Grid) {
	area = area.Intersect(g.Area)
	if area.Empty() {
		return
	}

	if b.Borders {
		b.renderBorder(area, g)
	}

	if b.Title == "" {
		return
	}
	x, w := area.X, area.Width
	if b.Borders {
		x, w = area.X+1, area.Width-2
	}
	if w > 0 {
		g.SetString(x, area.Y, b.Title, b.BorderStyle.Patch(b.TitleStyle), w)
	}
}

func (b Block) renderBorder(area grid.Rect, g *grid.Grid) {
	glyphs := b.Type.Glyphs()
	left, right := area.Left(), area.Right()-1
	top, bottom := area.Top(), area.Bottom()-1

	for x := left; x <= right; x++ {
		g.SetSymbol(x, top, glyphs.Top, b.BorderStyle)
		g.SetSymbol(x, bottom, glyphs.Bottom, b.BorderStyle)
	}
	for y := top; y <= bottom; y++ {
		g.SetSymbol(left, y, glyphs.Left, b.BorderStyle)
		g.SetSymbol(right, y, glyphs.Right, b.BorderStyle)
	}

	if area.Width >= 2 && area.Height >= 2 {
		g.SetSymbol(left, top, glyphs.TopLeft, b.BorderStyle)
		g.SetSymbol(right, top, glyphs.TopRight, b.BorderStyle)
		g.SetSymbol(left, bottom, glyphs.BottomLeft, b.BorderStyle)
		g.SetSymbol(right, bottom, glyphs.BottomRight, b.BorderStyle)
	}
}
