// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/sysview/internal/grid"
)

// Span is a run of text sharing one style.
type Span struct {
	Content string
	Style   grid.Style
}

// Width returns the display width of the span.
func (s Span) Width() int {
	return runewidth.StringWidth(s.Content)
}

// Line is one row of spans.
type Line []Span

// Width returns the summed display width of the line's spans.
func (l Line) Width() int {
	w := 0
	for _, s := range l {
		w += s.Width()
	}
	return w
}

// Text is a block of lines.
type Text struct {
	Lines []Line
}

// Raw splits s on newlines into unstyled lines.
func Raw(s string) Text {
	return Styled(s, grid.Style{})
}

// Styled splits s on newlines and gives every line the same style.
// A single trailing newline does not produce an empty last line.
func Styled(s string, style grid.Style) Text {
	s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if s == "" {
		return Text{}
	}
	parts := strings.Split(s, "\n")
	t := Text{Lines: make([]Line, len(parts))}
	for i, p := range parts {
		t.Lines[i] = Line{{Content: p, Style: style}}
	}
	return t
}

// Width returns the width of the widest line.
func (t Text) Width() int {
	w := 0
	for _, l := range t.Lines {
		w = max(w, l.Width())
	}
	return w
}

// Height returns the number of lines.
func (t Text) Height() int {
	return len(t.Lines)
}

// Paragraph renders Text from the top-left corner of its area. Style is
// applied under every span.
type Paragraph struct {
	Text  Text
	Style grid.Style
}

// Render writes the paragraph into g, clipped to area.
func (p Paragraph) Render(area grid.Rect, g *grid.Grid) {
	area = area.Intersect(g.Area)
	if area.Empty() {
		return
	}
	for i, line := range p.Text.Lines {
		if i >= area.Height {
			break
		}
		renderLine(g, area.X, area.Y+i, area.Right(), line, p.Style)
	}
}

// renderLine writes line at (x, y) without crossing right. It returns the
// column after the last written grapheme.
func renderLine(g *grid.Grid, x, y, right int, line Line, base grid.Style) int {
	for _, span := range line {
		if x >= right {
			break
		}
		x = g.SetString(x, y, span.Content, base.Patch(span.Style), right-x)
	}
	return x
}
