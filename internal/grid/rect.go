// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

import "fmt"

// Rect describes a rectangular region in grid coordinates. A Rect is only a
// view; callers intersect it with the target grid before writing.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Margin is the gap kept between a rect's edge and its inner content.
type Margin struct {
	Horizontal int
	Vertical   int
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Area returns the number of cells covered by r.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool {
	return r.Area() == 0
}

// Left, Right, Top and Bottom return the half-open edges of r.
func (r Rect) Left() int   { return r.X }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left() && x < r.Right() && y >= r.Top() && y < r.Bottom()
}

// Inner shrinks r by m on each side, clamping to a zero-size rect.
func (r Rect) Inner(m Margin) Rect {
	if r.Width < 2*m.Horizontal || r.Height < 2*m.Vertical {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{
		X:      r.X + m.Horizontal,
		Y:      r.Y + m.Vertical,
		Width:  r.Width - 2*m.Horizontal,
		Height: r.Height - 2*m.Vertical,
	}
}

// Intersect returns the overlap of r and other. Rects that do not overlap
// produce a zero-size rect positioned at the clamped origin.
func (r Rect) Intersect(other Rect) Rect {
	x1 := max(r.Left(), other.Left())
	y1 := max(r.Top(), other.Top())
	x2 := min(r.Right(), other.Right())
	y2 := min(r.Bottom(), other.Bottom())
	return Rect{X: x1, Y: y1, Width: max(x2-x1, 0), Height: max(y2-y1, 0)}
}
