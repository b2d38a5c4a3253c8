// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/sysview/internal/grid"
)

// rowString reads back the symbols of row y between x0 and x1.
func rowString(g *grid.Grid, y, x0, x1 int) string {
	s := ""
	for x := x0; x < x1; x++ {
		s += g.Get(x, y).Symbol
	}
	return s
}

// =============================================================================
// TEXT TESTS
// =============================================================================

func TestText_Dimensions(t *testing.T) {
	txt := Raw("ab\nabcd\n日本\n")
	assert.Equal(t, 3, txt.Height())
	assert.Equal(t, 4, txt.Width())

	assert.Zero(t, Raw("").Height())
	assert.Zero(t, Raw("").Width())
}

func TestParagraph_TruncatesInsteadOfWrapping(t *testing.T) {
	g := grid.Empty(grid.Rect{Width: 10, Height: 4})
	p := Paragraph{Text: Raw("abcdef\nxyz\nhidden")}
	p.Render(grid.Rect{X: 1, Y: 1, Width: 3, Height: 2}, g)

	assert.Equal(t, "abc", rowString(g, 1, 1, 4))
	assert.True(t, g.Get(4, 1).IsEmpty())
	assert.Equal(t, "xyz", rowString(g, 2, 1, 4))
	assert.True(t, g.Get(1, 3).IsEmpty())
}

func TestParagraph_OutOfRangeIsNoop(t *testing.T) {
	g := grid.Empty(grid.Rect{Width: 4, Height: 4})
	Paragraph{Text: Raw("abc")}.Render(grid.Rect{X: 10, Y: 10, Width: 3, Height: 1}, g)
	_, _, ok := grid.LastOccupied(g)
	assert.False(t, ok)
}

func TestParagraph_StyleLayers(t *testing.T) {
	g := grid.Empty(grid.Rect{Width: 4, Height: 1})
	txt := Text{Lines: []Line{{
		{Content: "a", Style: grid.Style{Fg: "2"}},
		{Content: "b"},
	}}}
	Paragraph{Text: txt, Style: grid.Style{Fg: "9", Add: grid.Bold}}.Render(g.Area, g)

	assert.Equal(t, "2", string(g.Get(0, 0).Fg))
	assert.Equal(t, "9", string(g.Get(1, 0).Fg))
	assert.True(t, g.Get(0, 0).Mod.Has(grid.Bold))
}

// =============================================================================
// BLOCK TESTS
// =============================================================================

func TestBlock_RoundedCornersAndTitle(t *testing.T) {
	g := grid.Empty(grid.Rect{Width: 12, Height: 5})
	b := Block{Borders: true, Title: "Sys"}
	b.Render(grid.Rect{X: 1, Y: 0, Width: 8, Height: 4}, g)

	assert.Equal(t, "╭", g.Get(1, 0).Symbol)
	assert.Equal(t, "╮", g.Get(8, 0).Symbol)
	assert.Equal(t, "╰", g.Get(1, 3).Symbol)
	assert.Equal(t, "╯", g.Get(8, 3).Symbol)
	assert.Equal(t, "Sys", rowString(g, 0, 2, 5))
	assert.Equal(t, "│", g.Get(1, 2).Symbol)
	assert.True(t, g.Get(4, 2).IsEmpty())
	assert.Equal(t, grid.Rect{X: 2, Y: 1, Width: 6, Height: 2}, b.Inner(grid.Rect{X: 1, Y: 0, Width: 8, Height: 4}))
}

func TestBlock_TitleClippedToBorder(t *testing.T) {
	g := grid.Empty(grid.Rect{Width: 6, Height: 3})
	Block{Borders: true, Title: "long title"}.Render(g.Area, g)
	assert.Equal(t, "long", rowString(g, 0, 1, 5))
	assert.Equal(t, "╮", g.Get(5, 0).Symbol)
}

func TestParseBorderType(t *testing.T) {
	for _, bt := range []BorderType{BorderRounded, BorderPlain, BorderDouble, BorderThick} {
		got, err := ParseBorderType(bt.String())
		require.NoError(t, err)
		assert.Equal(t, bt, got)
	}
	_, err := ParseBorderType("wavy")
	assert.Error(t, err)
}

// =============================================================================
// BAR AND PALETTE TESTS
// =============================================================================

func TestFilledSegments(t *testing.T) {
	tests := []struct {
		ratio float64
		want  int
	}{
		{-1, 0},
		{0, 0},
		{0.04, 0},
		{0.05, 1},
		{0.5, 5},
		{0.96, 10},
		{1.5, 10},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FilledSegments(tc.ratio), "ratio %v", tc.ratio)
	}
}

func TestBar_LineWidth(t *testing.T) {
	b := Bar{Glyph: "#", Open: "[", Close: "]"}
	l := b.Line(0.3)
	assert.Equal(t, BarSegments+2, l.Width())
	require.Len(t, l, 4)
	assert.Equal(t, "###", l[1].Content)
	assert.Equal(t, "#######", l[2].Content)
}

func TestPalette_Lines(t *testing.T) {
	assert.Empty(t, Palette{}.Lines())
	assert.Len(t, Palette{Type: PaletteFull}.Lines(), 2)

	dark := Palette{Type: PaletteDark}.Lines()
	require.Len(t, dark, 1)
	assert.Equal(t, 24, dark[0].Width())
	assert.Equal(t, "0", string(dark[0][0].Style.Bg))

	light := Palette{Type: PaletteLight, Glyph: "●"}.Lines()
	assert.Equal(t, "15", string(light[0][7].Style.Fg))
}

// =============================================================================
// READOUT LIST TESTS
// =============================================================================

func sampleList() ReadoutList {
	return ReadoutList{
		Rows: []Row{
			{Label: "Host", Value: "box"},
			{Label: "Kernel", Value: "6.1"},
			{Label: "Uptime", Value: "2h"},
		},
		Block:       &Block{Borders: true, Title: "sysview"},
		InnerMargin: grid.Margin{Horizontal: 1},
		Separator:   "-",
		Spacing:     1,
		KeyStyle:    grid.Style{Fg: "4"},
	}
}

func TestReadoutList_SizeShrinkWraps(t *testing.T) {
	w, h := sampleList().Size()
	assert.Equal(t, 16, w)
	assert.Equal(t, 5, h)

	l := sampleList()
	l.Block = nil
	w, h = l.Size()
	assert.Equal(t, 12, w)
	assert.Equal(t, 3, h)
}

func TestReadoutList_BorderedRender(t *testing.T) {
	g := grid.Empty(grid.Rect{Width: 50, Height: 10})
	used := sampleList().Render(grid.Rect{X: 2, Y: 1, Width: 40, Height: 8}, g)

	assert.Equal(t, grid.Rect{X: 2, Y: 1, Width: 16, Height: 5}, used)
	assert.False(t, g.Get(2, 1).IsEmpty(), "top-left corner")
	assert.False(t, g.Get(17, 5).IsEmpty(), "bottom-right corner")
	assert.Equal(t, "sysview", rowString(g, 1, 3, 10))

	assert.Equal(t, "Host   - box", rowString(g, 2, 4, 16))
	assert.Equal(t, "Kernel - 6.1", rowString(g, 3, 4, 16))
	assert.Equal(t, "4", string(g.Get(4, 2).Fg))

	bounds, err := grid.ContentBounds(g)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bounds.Right(), used.Right())
	assert.GreaterOrEqual(t, bounds.Bottom(), used.Bottom())
}

func TestReadoutList_ClippedToArea(t *testing.T) {
	g := grid.Empty(grid.Rect{Width: 50, Height: 10})
	used := sampleList().Render(grid.Rect{X: 0, Y: 0, Width: 10, Height: 3}, g)
	assert.Equal(t, grid.Rect{Width: 10, Height: 3}, used)
	assert.True(t, g.Get(10, 0).IsEmpty())
	assert.True(t, g.Get(0, 3).IsEmpty())
}

func TestReadoutList_ZeroWidthAreaDrawsNothing(t *testing.T) {
	g := grid.Empty(grid.Rect{Width: 10, Height: 5})
	sampleList().Render(grid.Rect{X: 9, Y: 1, Width: 0, Height: 4}, g)
	_, _, ok := grid.LastOccupied(g)
	assert.False(t, ok)
}

func TestReadoutList_BarsAndFailures(t *testing.T) {
	l := ReadoutList{
		Rows: []Row{
			{Label: "Memory", Value: "50%", Ratio: 0.5, ShowBar: true},
			{Label: "Battery", Value: "unavailable", ShowBar: true, Failed: true},
		},
		Spacing:     1,
		Bar:         Bar{Glyph: "=", Open: "[", Close: "]"},
		FailedStyle: grid.Style{Add: grid.Dim},
	}
	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, 8+BarSegments+2, lines[0].Width())

	last := lines[1][len(lines[1])-1]
	assert.Equal(t, "unavailable", last.Content)
	assert.Equal(t, grid.Dim, last.Style.Add)
}

func TestReadoutList_PaletteAppendsRows(t *testing.T) {
	l := sampleList()
	l.Palette = Palette{Type: PaletteFull}
	lines := l.Lines()
	assert.Len(t, lines, 6)
	assert.Empty(t, lines[3])
}
