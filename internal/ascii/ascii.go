// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ascii provides the logo drawn to the left of the readouts.
//
// Every supported operating system has a big and a small built-in
// rendition. Users may replace the logo with a text file of their own;
// any ANSI escape sequences in it are stripped before it is measured.
package ascii

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/sysview/internal/grid"
	"github.com/jeranaias/sysview/internal/widgets"
)

// SmallThreshold is the readout count at or below which the small art is
// preferred, so the logo does not dwarf a short list.
const SmallThreshold = 6

// ErrEmptyArt is returned for an ascii file with no visible content.
var ErrEmptyArt = errors.New("ascii art is empty")

// Art is a block of text drawn in a single color.
type Art struct {
	Lines []string
	Color lipgloss.Color
}

// Width is the display width of the widest line.
func (a Art) Width() int {
	w := 0
	for _, l := range a.Lines {
		w = max(w, runewidth.StringWidth(l))
	}
	return w
}

// Height is the number of lines.
func (a Art) Height() int { return len(a.Lines) }

// Empty reports whether the art has nothing to draw.
func (a Art) Empty() bool { return a.Width() == 0 }

// Text converts the art into widget text.
func (a Art) Text() widgets.Text {
	return widgets.Styled(strings.Join(a.Lines, "\n"), grid.Style{Fg: a.Color, Add: grid.Bold})
}

// Options select which art to use.
type Options struct {
	// GOOS picks the built-in art; empty means the running system.
	GOOS  string
	Small bool
	// Path replaces the built-in art with a file.
	Path string
	// Color overrides the art's color when non-empty.
	Color lipgloss.Color
}

// UseSmall reports whether the small art should be used for a list of
// readoutCount rows.
func UseSmall(readoutCount int, prefer bool) bool {
	return prefer || readoutCount <= SmallThreshold
}

// Select returns the art described by opts.
func Select(opts Options) (Art, error) {
	var art Art
	if opts.Path != "" {
		a, err := LoadFile(opts.Path)
		if err != nil {
			return Art{}, err
		}
		art = a
	} else {
		art = Builtin(opts.GOOS, opts.Small)
	}
	if opts.Color != "" {
		art.Color = opts.Color
	}
	return art, nil
}

// Builtin returns the built-in art for goos, falling back to a generic
// logo for systems without one.
func Builtin(goos string, small bool) Art {
	if goos == "" {
		goos = runtime.GOOS
	}
	b, ok := arts[goos]
	if !ok {
		b = arts["generic"]
	}
	lines := b.big
	if small {
		lines = b.small
	}
	return Art{Lines: lines, Color: b.color}
}

// LoadFile reads custom art from path.
func LoadFile(path string) (Art, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Art{}, fmt.Errorf("failed to read ascii art: %w", err)
	}
	art := Parse(string(data))
	if art.Empty() {
		return Art{}, fmt.Errorf("%s: %w", path, ErrEmptyArt)
	}
	return art, nil
}

// Parse splits s into art lines. Escape sequences are removed, tabs are
// expanded and trailing blank lines are dropped.
func Parse(s string) Art {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\t", "    ")

	lines := strings.Split(s, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return Art{Lines: lines}
}
