// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/sysview/internal/grid"
)

// Row is one key/value pair of a ReadoutList. When ShowBar is set the
// value is replaced by a Bar filled to Ratio.
type Row struct {
	Label   string
	Value   string
	Ratio   float64
	ShowBar bool
	Failed  bool
}

// ReadoutList renders rows as "label<spacing>separator<spacing>value" with
// every label padded to the widest one. The list shrink-wraps: it only
// takes as much of its area as its content needs.
type ReadoutList struct {
	Rows []Row

	// Block is drawn around the rows when non-nil; InnerMargin separates
	// the block from the rows.
	Block       *Block
	InnerMargin grid.Margin

	Separator string
	Spacing   int

	KeyStyle       grid.Style
	SeparatorStyle grid.Style
	ValueStyle     grid.Style
	FailedStyle    grid.Style

	Bar     Bar
	Palette Palette
}

func (l ReadoutList) labelWidth() int {
	w := 0
	for _, r := range l.Rows {
		w = max(w, runewidth.StringWidth(r.Label))
	}
	return w
}

// Lines returns the styled content rows, palette included, without any
// block or margin.
func (l ReadoutList) Lines() []Line {
	labelW := l.labelWidth()
	gap := strings.Repeat(" ", max(l.Spacing, 0))

	lines := make([]Line, 0, len(l.Rows)+3)
	for _, r := range l.Rows {
		pad := labelW - runewidth.StringWidth(r.Label)
		line := Line{{Content: r.Label + strings.Repeat(" ", pad), Style: l.KeyStyle}}
		if l.Separator != "" {
			line = append(line,
				Span{Content: gap},
				Span{Content: l.Separator, Style: l.SeparatorStyle},
			)
		}
		line = append(line, Span{Content: gap})

		switch {
		case r.ShowBar && !r.Failed:
			line = append(line, l.Bar.Line(r.Ratio)...)
		case r.Failed:
			line = append(line, Span{Content: r.Value, Style: l.ValueStyle.Patch(l.FailedStyle)})
		default:
			line = append(line, Span{Content: r.Value, Style: l.ValueStyle})
		}
		lines = append(lines, line)
	}

	if swatches := l.Palette.Lines(); len(swatches) > 0 && len(lines) > 0 {
		lines = append(lines, Line{})
		lines = append(lines, swatches...)
	}
	return lines
}

// Size returns the full width and height the list wants, including the
// block and its inner margin.
func (l ReadoutList) Size() (w, h int) {
	lines := l.Lines()
	for _, line := range lines {
		w = max(w, line.Width())
	}
	h = len(lines)
	if l.Block != nil {
		cw, ch := l.Block.Chrome()
		w += cw + 2*l.InnerMargin.Horizontal
		h += ch + 2*l.InnerMargin.Vertical
	}
	return w, h
}

// Render draws the list at the top-left of area and returns the rect it
// actually used.
func (l ReadoutList) Render(area grid.Rect, g *grid.Grid) grid.Rect {
	area = area.Intersect(g.Area)
	if area.Empty() {
		return grid.Rect{X: area.X, Y: area.Y}
	}

	w, h := l.Size()
	used := grid.Rect{X: area.X, Y: area.Y, Width: min(w, area.Width), Height: min(h, area.Height)}

	inner := used
	if l.Block != nil {
		l.Block.Render(used, g)
		inner = l.Block.Inner(used).Inner(l.InnerMargin)
	}

	for i, line := range l.Lines() {
		if i >= inner.Height {
			break
		}
		renderLine(g, inner.X, inner.Y+i, inner.Right(), line, grid.Style{})
	}
	return used
}
