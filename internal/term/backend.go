// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package term

import (
	"bufio"
	"errors"
	"iter"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/sysview/internal/grid"
)

// DefaultCursorTimeout bounds how long a cursor position report may take.
const DefaultCursorTimeout = 200 * time.Millisecond

// ErrNotTerminal is returned by operations that need an interactive terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Backend is the set of terminal operations used by Flusher. Coordinates
// passed to Draw are zero-based terminal columns and rows.
type Backend interface {
	IsTerminal() bool
	Size() (width, height int, err error)
	CursorRow() (int, error)
	Write(p []byte) (int, error)
	Draw(cells iter.Seq[grid.Placed]) error
	SetCursor(x, y int) error
	Flush() error
}

// =============================================================================
// ANSI BACKEND
// =============================================================================

// ANSI draws with absolute cursor positioning and SGR attributes rendered
// by termenv for the configured color profile. Output is buffered until
// Flush.
type ANSI struct {
	in      *os.File
	out     *os.File
	buf     *bufio.Writer
	output  *termenv.Output
	timeout time.Duration
}

// NewANSI returns a backend writing to out. in is used for cursor
// position reports and may be nil.
func NewANSI(out, in *os.File, profile termenv.Profile) *ANSI {
	buf := bufio.NewWriterSize(out, 32*1024)
	return &ANSI{
		in:      in,
		out:     out,
		buf:     buf,
		output:  termenv.NewOutput(buf, termenv.WithProfile(profile)),
		timeout: DefaultCursorTimeout,
	}
}

// IsTerminal reports whether the output file is a terminal.
func (a *ANSI) IsTerminal() bool {
	return term.IsTerminal(int(a.out.Fd()))
}

// Size returns the terminal dimensions of the output file.
func (a *ANSI) Size() (int, int, error) {
	return term.GetSize(int(a.out.Fd()))
}

// CursorRow flushes pending output, then asks the terminal for the
// zero-based cursor row.
func (a *ANSI) CursorRow() (int, error) {
	if a.in == nil {
		return 0, ErrNotTerminal
	}
	if err := a.buf.Flush(); err != nil {
		return 0, err
	}
	return queryCursorRow(a.in, a.out, a.timeout)
}

func (a *ANSI) Write(p []byte) (int, error) {
	return a.buf.Write(p)
}

// Draw writes cells, coalescing horizontal runs that share a style into a
// single cursor move and SGR sequence.
func (a *ANSI) Draw(cells iter.Seq[grid.Placed]) error {
	var (
		run     strings.Builder
		head    grid.Placed
		next    int
		pending bool
	)
	emit := func() {
		if !pending {
			return
		}
		a.output.MoveCursor(head.Y+1, head.X+1)
		a.buf.WriteString(a.styled(run.String(), head.Cell))
		run.Reset()
		pending = false
	}

	for p := range cells {
		w := max(p.Width(), 1)
		if pending && p.Y == head.Y && p.X == next && sameStyle(p.Cell, head.Cell) {
			run.WriteString(p.Cell.Symbol)
			next += w
			continue
		}
		emit()
		head, next, pending = p, p.X+w, true
		run.WriteString(p.Cell.Symbol)
	}
	emit()
	return nil
}

// SetCursor moves the cursor to column x of row y.
func (a *ANSI) SetCursor(x, y int) error {
	a.output.MoveCursor(y+1, x+1)
	return nil
}

// Flush writes everything buffered so far.
func (a *ANSI) Flush() error {
	return a.buf.Flush()
}

func (a *ANSI) styled(s string, c grid.Cell) string {
	st := a.output.String(s)
	if c.Fg != "" {
		st = st.Foreground(a.output.Color(string(c.Fg)))
	}
	if c.Bg != "" {
		st = st.Background(a.output.Color(string(c.Bg)))
	}
	if c.Mod.Has(grid.Bold) {
		st = st.Bold()
	}
	if c.Mod.Has(grid.Dim) {
		st = st.Faint()
	}
	if c.Mod.Has(grid.Italic) {
		st = st.Italic()
	}
	if c.Mod.Has(grid.Underline) {
		st = st.Underline()
	}
	if c.Mod.Has(grid.Blink) {
		st = st.Blink()
	}
	if c.Mod.Has(grid.Reversed) {
		st = st.Reverse()
	}
	if c.Mod.Has(grid.CrossedOut) {
		st = st.CrossOut()
	}
	return st.String()
}

func sameStyle(a, b grid.Cell) bool {
	return a.Fg == b.Fg && a.Bg == b.Bg && a.Mod == b.Mod
}
