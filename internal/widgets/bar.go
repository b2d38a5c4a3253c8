// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"math"
	"strings"

	"github.com/jeranaias/sysview/internal/grid"
)

// BarSegments is the number of glyphs in a full bar.
const BarSegments = 10

// Bar renders a usage ratio as a fixed run of glyphs between delimiters.
type Bar struct {
	Glyph       string
	Open, Close string
	Filled      grid.Style
	Unfilled    grid.Style
	Delimiter   grid.Style
}

// DefaultBar returns the bar used when a theme does not override it.
func DefaultBar() Bar {
	return Bar{
		Glyph:    "●",
		Open:     "(",
		Close:    ")",
		Unfilled: grid.Style{Add: grid.Dim},
	}
}

// FilledSegments maps ratio onto [0, BarSegments], rounding to nearest.
func FilledSegments(ratio float64) int {
	if math.IsNaN(ratio) || ratio <= 0 {
		return 0
	}
	if ratio >= 1 {
		return BarSegments
	}
	return int(math.Round(ratio * BarSegments))
}

// Line renders the bar for ratio.
func (b Bar) Line(ratio float64) Line {
	glyph := b.Glyph
	if glyph == "" {
		glyph = DefaultBar().Glyph
	}
	n := FilledSegments(ratio)

	var l Line
	if b.Open != "" {
		l = append(l, Span{Content: b.Open, Style: b.Delimiter})
	}
	if n > 0 {
		l = append(l, Span{Content: strings.Repeat(glyph, n), Style: b.Filled})
	}
	if n < BarSegments {
		l = append(l, Span{Content: strings.Repeat(glyph, BarSegments-n), Style: b.Unfilled})
	}
	if b.Close != "" {
		l = append(l, Span{Content: b.Close, Style: b.Delimiter})
	}
	return l
}
