// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import "errors"

// ErrNothingDrawn is returned when a grid holds no non-empty cell.
var ErrNothingDrawn = errors.New("nothing was rendered")

// LastOccupied returns the position of the last non-empty cell in row-major
// order. ok is false when every cell is empty.
func LastOccupied(g *Grid) (x, y int, ok bool) {
	for i := len(g.Cells) - 1; i >= 0; i-- {
		if !g.Cells[i].IsEmpty() {
			x, y = g.PositionOf(i)
			return x, y, true
		}
	}
	return 0, 0, false
}

// WidestColumn scans rows from the top of g through lastY inclusive and
// returns one past the rightmost column covered by a non-empty cell,
// relative to the grid's left edge. A wide glyph covers its continuation
// columns too. The result is at least 1.
func WidestColumn(g *Grid, lastY int) int {
	widest := 0
	bottom := min(lastY, g.Area.Bottom()-1)
	for y := g.Area.Top(); y <= bottom; y++ {
		for x := g.Area.Right() - 1; x >= g.Area.Left(); x-- {
			c := g.Cells[g.IndexOf(x, y)]
			if c.IsEmpty() {
				continue
			}
			widest = max(widest, x-g.Area.X+max(SymbolWidth(c.Symbol), 1))
			break
		}
	}
	return max(widest, 1)
}

// ContentBounds returns the smallest rect anchored at the grid origin that
// holds every drawn cell. It returns ErrNothingDrawn for an empty grid.
func ContentBounds(g *Grid) (Rect, error) {
	_, lastY, ok := LastOccupied(g)
	if !ok {
		return Rect{}, ErrNothingDrawn
	}
	return Rect{
		X:      g.Area.X,
		Y:      g.Area.Y,
		Width:  WidestColumn(g, lastY),
		Height: lastY - g.Area.Y + 1,
	}, nil
}
