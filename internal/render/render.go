// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render composes the ascii art and readout list into a scratch
// grid and flushes it below the cursor.
//
// A render happens in three steps:
//
//	Compose  resolve the theme, probe readouts, plan and draw regions
//	Flush    copy the occupied part of the grid to the terminal
//	Finish   leave the cursor two lines under the output
package render

import (
	"context"
	"log"
	"math/rand/v2"

	"github.com/jeranaias/sysview/internal/ascii"
	"github.com/jeranaias/sysview/internal/config"
	"github.com/jeranaias/sysview/internal/grid"
	"github.com/jeranaias/sysview/internal/layout"
	"github.com/jeranaias/sysview/internal/readout"
	"github.com/jeranaias/sysview/internal/term"
	"github.com/jeranaias/sysview/internal/theme"
	"github.com/jeranaias/sysview/internal/widgets"
)

// Scratch grid dimensions. Everything is drawn here first and only the
// occupied part reaches the terminal.
const (
	ScratchWidth  = 500
	ScratchHeight = 50
)

// Collector probes readouts. *readout.Collector satisfies it.
type Collector interface {
	Collect(ctx context.Context, keys []readout.Key) []readout.Readout
}

// Renderer draws one frame.
type Renderer struct {
	Config    *config.Config
	Overrides theme.Overrides
	ThemeDirs []string
	// GOOS picks the built-in ascii art; empty means the running system.
	GOOS      string
	Collector Collector
	// Rand supplies randomized theme colors. Nil seeds a new source.
	Rand *rand.Rand
}

// Frame is a composed scratch grid and what went into it.
type Frame struct {
	Grid  *grid.Grid
	Theme theme.Theme
	// ThemeFallback is set when the configured theme was not found and
	// the default theme was used instead.
	ThemeFallback bool
	Readouts      []readout.Readout
	ASCII         grid.Rect
	Data          grid.Rect
	// List is the part of Data the readout list actually used.
	List grid.Rect
}

// Theme resolves and builds the configured theme.
func (r *Renderer) Theme() (theme.Theme, bool, error) {
	f, fellBack, err := theme.ResolveOrDefault(r.Config.Theme, r.ThemeDirs)
	if err != nil {
		return theme.Theme{}, false, err
	}
	th, err := theme.Build(f, r.Overrides, r.Rand)
	if err != nil {
		return theme.Theme{}, false, err
	}
	return th, fellBack, nil
}

// Compose probes the configured readouts and draws them next to the ascii
// art in a fresh scratch grid.
func (r *Renderer) Compose(ctx context.Context) (*Frame, error) {
	th, fellBack, err := r.Theme()
	if err != nil {
		return nil, err
	}

	readouts := r.Collector.Collect(ctx, r.Config.Keys())
	list := List(th, readouts)
	_, listH := list.Size()

	g := grid.Empty(grid.Rect{Width: ScratchWidth, Height: ScratchHeight})
	art, showASCII := r.art(th, len(readouts))

	asciiRect, dataRect := layout.Plan(art.Width(), max(art.Height(), listH),
		g.Area.Width, g.Area.Height, th.Padding, showASCII)
	if showASCII {
		widgets.Paragraph{Text: art.Text()}.Render(asciiRect, g)
	}
	used := list.Render(dataRect, g)

	log.Printf("LAYOUT | theme=%s readouts=%d ascii=%s data=%s list=%s",
		th.Name, len(readouts), asciiRect, dataRect, used)

	return &Frame{
		Grid:          g,
		Theme:         th,
		ThemeFallback: fellBack,
		Readouts:      readouts,
		ASCII:         asciiRect,
		Data:          dataRect,
		List:          used,
	}, nil
}

// art picks the ascii art for th. The region is disabled when the theme
// hides it, the art cannot be loaded, or the art would not fit.
func (r *Renderer) art(th theme.Theme, rows int) (ascii.Art, bool) {
	if th.HideASCII {
		return ascii.Art{}, false
	}
	art, err := ascii.Select(ascii.Options{
		GOOS:  r.GOOS,
		Small: ascii.UseSmall(rows, th.PreferSmallASCII),
		Path:  th.ASCIIPath,
		Color: th.ASCIIColor,
	})
	if err != nil {
		log.Printf("ASCII_DISABLED | path=%s error=%v", th.ASCIIPath, err)
		return ascii.Art{}, false
	}
	if art.Empty() || art.Height() >= ScratchHeight {
		log.Printf("ASCII_DISABLED | width=%d height=%d", art.Width(), art.Height())
		return ascii.Art{}, false
	}
	return art, true
}

// List turns readouts into the themed list widget.
func List(th theme.Theme, readouts []readout.Readout) widgets.ReadoutList {
	rows := make([]widgets.Row, len(readouts))
	for i, ro := range readouts {
		rows[i] = widgets.Row{
			Label:   th.Label(ro.Key.String(), ro.Key.Label()),
			Value:   ro.Text(),
			Ratio:   ro.Value.Ratio,
			ShowBar: th.Bar.Visible && ro.Value.HasRatio,
			Failed:  !ro.OK(),
		}
	}
	return widgets.ReadoutList{
		Rows:           rows,
		Block:          th.Block(),
		InnerMargin:    th.Box.InnerMargin,
		Separator:      th.Separator,
		Spacing:        th.Spacing,
		KeyStyle:       th.KeyStyle(),
		SeparatorStyle: th.SeparatorStyle(),
		FailedStyle:    grid.Style{Add: grid.Dim},
		Bar:            th.BarWidget(),
		Palette:        th.Palette,
	}
}

// Flush draws frame onto b and leaves the cursor two lines below it.
func Flush(frame *Frame, b term.Backend) (term.Result, error) {
	f := term.NewFlusher(b)
	res, err := f.Flush(frame.Grid)
	if err != nil {
		return res, err
	}
	return res, f.Finish(res)
}

// Run composes a frame and flushes it to b.
func (r *Renderer) Run(ctx context.Context, b term.Backend) (*Frame, error) {
	frame, err := r.Compose(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := Flush(frame, b); err != nil {
		return frame, err
	}
	return frame, nil
}
