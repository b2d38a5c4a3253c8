// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout splits the scratch grid into the ascii and data regions.
package layout

import "github.com/jeranaias/sysview/internal/grid"

const (
	// DataMargin is the number of columns the data region gives up on top
	// of the ascii width.
	DataMargin = 4

	// DefaultPadding separates the ascii region from the data region.
	DefaultPadding = 2
)

// Plan places the ascii region one cell in from the top-left corner and the
// data region to its right, padding columns further along. When showASCII
// is false the ascii region collapses to zero width at (0, 1).
//
// No returned dimension is ever negative.
func Plan(asciiW, asciiH, gridW, gridH, padding int, showASCII bool) (ascii, data grid.Rect) {
	asciiW, asciiH = max(asciiW, 0), max(asciiH, 0)
	gridW, gridH = max(gridW, 0), max(gridH, 0)
	padding = max(padding, 0)

	if showASCII && asciiW > 0 && asciiH > 0 {
		ascii = grid.Rect{X: 1, Y: 1, Width: asciiW, Height: min(asciiH, max(gridH-1, 0))}
	} else {
		ascii = grid.Rect{X: 0, Y: 1, Width: 0, Height: max(gridH-1, 0)}
	}

	data = grid.Rect{
		X:      ascii.X + ascii.Width + padding,
		Y:      ascii.Y,
		Width:  max(gridW-ascii.Width-DataMargin, 0),
		Height: ascii.Height,
	}
	return ascii, data
}
