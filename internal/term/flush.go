// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package term

import (
	"bytes"
	"fmt"
	"iter"
	"log"

	"github.com/jeranaias/sysview/internal/grid"
)

const (
	// DefaultWidth and DefaultHeight are used when the backend cannot
	// report a size.
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Flusher copies the occupied part of a scratch grid onto a Backend.
type Flusher struct {
	Backend Backend
}

// Result describes what a flush did.
type Result struct {
	Bounds   grid.Rect
	CursorY  int
	StartRow int
	Width    int
	Height   int
	Cells    int
}

// NewFlusher returns a Flusher drawing to b.
func NewFlusher(b Backend) *Flusher {
	return &Flusher{Backend: b}
}

// StartRow returns the first terminal row of a render whose last source
// row is lastY, given the cursor sits on cursorY after lastY+1 newlines.
// Both subtractions saturate at zero.
func StartRow(cursorY, lastY int) int {
	return satSub(satSub(cursorY, lastY), 1)
}

func satSub(a, b int) int {
	if b >= a {
		return 0
	}
	return a - b
}

// Flush reserves room for scratch's content below the cursor and draws it
// there in one backend call. An empty scratch grid yields
// grid.ErrNothingDrawn. Backend query failures fall back to defaults;
// write failures are returned.
func (f *Flusher) Flush(scratch *grid.Grid) (Result, error) {
	bounds, err := grid.ContentBounds(scratch)
	if err != nil {
		return Result{}, err
	}
	lastY := bounds.Height - 1
	lastX := bounds.Width

	if _, err := f.Backend.Write(bytes.Repeat([]byte{'\n'}, lastY+1)); err != nil {
		return Result{}, fmt.Errorf("reserving rows: %w", err)
	}

	cursorY := 0
	if f.Backend.IsTerminal() {
		row, err := f.Backend.CursorRow()
		if err != nil {
			log.Printf("CURSOR_QUERY_FAILED | error=%v fallback_row=0", err)
		} else {
			cursorY = max(row, 0)
		}
	}

	width, height, err := f.Backend.Size()
	if err != nil || width <= 0 || height <= 0 {
		log.Printf("TERM_SIZE_FAILED | error=%v fallback=%dx%d", err, DefaultWidth, DefaultHeight)
		width, height = DefaultWidth, DefaultHeight
	}

	res := Result{
		Bounds:   bounds,
		CursorY:  cursorY,
		StartRow: StartRow(cursorY, lastY),
		Width:    width,
		Height:   height,
	}

	cells := visible(scratch, bounds, res.StartRow, min(lastX, width), height)
	counted := func(yield func(grid.Placed) bool) {
		for p := range cells {
			res.Cells++
			if !yield(p) {
				return
			}
		}
	}
	if err := f.Backend.Draw(counted); err != nil {
		return res, fmt.Errorf("drawing: %w", err)
	}
	if err := f.Backend.Flush(); err != nil {
		return res, fmt.Errorf("flushing: %w", err)
	}

	log.Printf("FLUSH | last_y=%d last_x=%d cursor_y=%d start_row=%d term=%dx%d cells=%d",
		lastY, lastX, cursorY, res.StartRow, width, height, res.Cells)
	return res, nil
}

// visible yields the primary cells of scratch inside bounds, translated to
// terminal coordinates starting at startRow. Cells are dropped when any
// column they cover is at or past right, and rows stop at the terminal's
// bottom edge.
func visible(scratch *grid.Grid, bounds grid.Rect, startRow, right, termHeight int) iter.Seq[grid.Placed] {
	return func(yield func(grid.Placed) bool) {
		for p := range scratch.Primaries() {
			y := p.Y - bounds.Y
			if y >= bounds.Height {
				return
			}
			row := startRow + y
			if row >= termHeight {
				return
			}
			x := p.X - bounds.X
			if x+max(p.Width(), 1) > right {
				continue
			}
			if !yield(grid.Placed{X: x, Y: row, Cell: p.Cell}) {
				return
			}
		}
	}
}

// Finish parks the cursor at the start of the last row res drew on and
// writes two newlines, leaving one blank line under the render.
func (f *Flusher) Finish(res Result) error {
	last := min(res.StartRow+res.Bounds.Height, res.Height) - 1
	if err := f.Backend.SetCursor(0, max(last, 0)); err != nil {
		return fmt.Errorf("finishing output: %w", err)
	}
	if _, err := f.Backend.Write([]byte("\n\n")); err != nil {
		return fmt.Errorf("finishing output: %w", err)
	}
	if err := f.Backend.Flush(); err != nil {
		return fmt.Errorf("finishing output: %w", err)
	}
	return nil
}
