// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package grid provides the off-screen cell grid that sysview composes its
// report into before anything touches the terminal.
//
// # Key Types
//
//   - Cell: one terminal column holding a grapheme, colors and modifiers
//   - Rect: a view onto part of a grid
//   - Grid: a rectangular, row-major array of cells
//   - Placed: a primary cell together with its absolute position
//
// Wide glyphs occupy one primary cell followed by continuation cells. The
// continuation cells hold the empty cell, so scanning treats them as blank
// and Primaries never yields them.
//
// # Usage
//
//	g := grid.Empty(grid.Rect{Width: 500, Height: 50})
//	g.SetString(1, 1, "hello", grid.Style{Fg: "12"}, 80)
//	bounds, err := grid.ContentBounds(g)
package grid
