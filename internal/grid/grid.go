// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import (
	"iter"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Grid is a rectangular array of cells stored row-major.
// len(Cells) is always Area.Width * Area.Height.
type Grid struct {
	Area  Rect
	Cells []Cell
}

// Empty returns a grid covering area with every cell set to EmptyCell.
func Empty(area Rect) *Grid {
	return Filled(area, EmptyCell())
}

// Filled returns a grid covering area with every cell set to c.
func Filled(area Rect, c Cell) *Grid {
	area.Width = max(area.Width, 0)
	area.Height = max(area.Height, 0)
	cells := make([]Cell, area.Area())
	for i := range cells {
		cells[i] = c
	}
	return &Grid{Area: area, Cells: cells}
}

// Reset sets every cell back to EmptyCell.
func (g *Grid) Reset() {
	for i := range g.Cells {
		g.Cells[i] = EmptyCell()
	}
}

// IndexOf converts absolute coordinates into a slice index.
// The caller guarantees (x, y) lies inside g.Area.
func (g *Grid) IndexOf(x, y int) int {
	return (y-g.Area.Y)*g.Area.Width + (x - g.Area.X)
}

// PositionOf is the inverse of IndexOf.
func (g *Grid) PositionOf(i int) (x, y int) {
	return g.Area.X + i%g.Area.Width, g.Area.Y + i/g.Area.Width
}

// Get returns the cell at (x, y), or EmptyCell when out of bounds.
func (g *Grid) Get(x, y int) Cell {
	if !g.Area.Contains(x, y) {
		return EmptyCell()
	}
	return g.Cells[g.IndexOf(x, y)]
}

// Set replaces the cell at (x, y). Out of bounds writes are dropped.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.Area.Contains(x, y) {
		return
	}
	g.Cells[g.IndexOf(x, y)] = c
}

// SetSymbol writes sym at (x, y) with s patched over the existing style.
func (g *Grid) SetSymbol(x, y int, sym string, s Style) {
	if !g.Area.Contains(x, y) {
		return
	}
	i := g.IndexOf(x, y)
	c := g.Cells[i]
	c.Symbol = sym
	g.Cells[i] = c.Apply(s)
}

// SetString writes s starting at (x, y), using at most maxWidth columns and
// never crossing the right edge of the grid. A negative maxWidth means no
// limit other than the grid edge. Wide graphemes are never split: if one
// does not fit, writing stops before it. Zero-width graphemes are dropped.
// It returns the column after the last written grapheme.
func (g *Grid) SetString(x, y int, s string, style Style, maxWidth int) int {
	if !g.Area.Contains(x, y) {
		return x
	}
	limit := g.Area.Right()
	if maxWidth >= 0 {
		limit = min(limit, x+maxWidth)
	}

	col := x
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		sym := gr.Str()
		w := runewidth.StringWidth(sym)
		if w == 0 {
			continue
		}
		if col+w > limit {
			break
		}
		if col == x {
			g.clearOverlap(x, y)
		}
		g.SetSymbol(col, y, sym, style)
		// Continuation cells are reset so they scan as empty.
		for i := 1; i < w; i++ {
			g.Cells[g.IndexOf(col+i, y)] = EmptyCell()
		}
		col += w
	}
	return col
}

// clearOverlap resets a wide glyph that starts left of (x, y) and covers
// that column, so writing there does not leave half a glyph behind.
func (g *Grid) clearOverlap(x, y int) {
	for left := x - 1; left >= g.Area.Left() && x-left < maxGlyphWidth; left-- {
		i := g.IndexOf(left, y)
		if SymbolWidth(g.Cells[i].Symbol) > x-left {
			g.Cells[i] = EmptyCell()
			return
		}
	}
}

// maxGlyphWidth bounds how far left clearOverlap looks.
const maxGlyphWidth = 4

// SetStyle patches s over every cell of area that lies inside the grid.
func (g *Grid) SetStyle(area Rect, s Style) {
	area = area.Intersect(g.Area)
	for y := area.Top(); y < area.Bottom(); y++ {
		for x := area.Left(); x < area.Right(); x++ {
			i := g.IndexOf(x, y)
			g.Cells[i] = g.Cells[i].Apply(s)
		}
	}
}

// =============================================================================
// PRIMARY CELL ITERATION
// =============================================================================

// Placed is a cell with its absolute grid position.
type Placed struct {
	X    int
	Y    int
	Cell Cell
}

// Width returns the number of terminal columns the cell's symbol occupies.
func (p Placed) Width() int {
	return SymbolWidth(p.Cell.Symbol)
}

// SymbolWidth returns the display width of sym.
func SymbolWidth(sym string) int {
	return runewidth.StringWidth(sym)
}

// Primaries yields every drawable cell of g in row-major order. The cells
// that follow a wide glyph on the same row are skipped so the glyph is
// produced exactly once. Cells with no visible symbol are dropped.
func (g *Grid) Primaries() iter.Seq[Placed] {
	return func(yield func(Placed) bool) {
		for y := g.Area.Top(); y < g.Area.Bottom(); y++ {
			skip := 0
			for x := g.Area.Left(); x < g.Area.Right(); x++ {
				if skip > 0 {
					skip--
					continue
				}
				c := g.Cells[g.IndexOf(x, y)]
				w := SymbolWidth(c.Symbol)
				if w == 0 {
					continue
				}
				skip = w - 1
				if !yield(Placed{X: x, Y: y, Cell: c}) {
					return
				}
			}
		}
	}
}
