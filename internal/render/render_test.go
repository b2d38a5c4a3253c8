// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"bytes"
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/sysview/internal/ascii"
	"github.com/jeranaias/sysview/internal/config"
	"github.com/jeranaias/sysview/internal/grid"
	"github.com/jeranaias/sysview/internal/readout"
	"github.com/jeranaias/sysview/internal/theme"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeCollector map[readout.Key]readout.Readout

func (f fakeCollector) Collect(_ context.Context, keys []readout.Key) []readout.Readout {
	out := make([]readout.Readout, len(keys))
	for i, k := range keys {
		ro, ok := f[k]
		if !ok {
			ro = readout.Readout{Err: readout.ErrUnsupported}
		}
		ro.Key = k
		out[i] = ro
	}
	return out
}

type fakeBackend struct {
	written bytes.Buffer
	drawn   []grid.Placed
	draws   int
	cursor  [2]int
}

func (b *fakeBackend) IsTerminal() bool            { return false }
func (b *fakeBackend) Size() (int, int, error)     { return 80, 24, nil }
func (b *fakeBackend) CursorRow() (int, error)     { return 0, errors.New("not a terminal") }
func (b *fakeBackend) Write(p []byte) (int, error) { return b.written.Write(p) }
func (b *fakeBackend) Flush() error                { return nil }

func (b *fakeBackend) SetCursor(x, y int) error {
	b.cursor = [2]int{x, y}
	return nil
}

func (b *fakeBackend) Draw(cells iter.Seq[grid.Placed]) error {
	b.draws++
	for p := range cells {
		b.drawn = append(b.drawn, p)
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

// row reads back row y of g with trailing blanks removed.
func row(g *grid.Grid, y int) string {
	var sb strings.Builder
	for x := g.Area.Left(); x < g.Area.Right(); x++ {
		sb.WriteString(g.Get(x, y).Symbol)
	}
	return strings.TrimRight(sb.String(), " ")
}

func text(s string) readout.Readout {
	return readout.Readout{Value: readout.Value{Text: s}}
}

// =============================================================================
// COMPOSE TESTS
// =============================================================================

func TestCompose_ListOnly(t *testing.T) {
	r := &Renderer{
		Config:    &config.Config{Theme: "Lithium", Show: []string{"host", "memory"}},
		Overrides: theme.Overrides{NoASCII: true, Padding: ptr(2)},
		Collector: fakeCollector{readout.Host: text("box")},
	}

	frame, err := r.Compose(context.Background())
	require.NoError(t, err)

	assert.False(t, frame.ThemeFallback)
	assert.Zero(t, frame.ASCII.Width)
	assert.Equal(t, 2, frame.Data.X)
	assert.Equal(t, 1, frame.Data.Y)

	assert.Equal(t, "", row(frame.Grid, 0))
	assert.Equal(t, "  Host   → box", row(frame.Grid, 1))
	assert.Equal(t, "  Memory → unavailable", row(frame.Grid, 2))
	assert.Equal(t, "", row(frame.Grid, 3))

	bounds, err := grid.ContentBounds(frame.Grid)
	require.NoError(t, err)
	assert.Equal(t, 3, bounds.Height)
	assert.Equal(t, len([]rune("  Memory → unavailable")), bounds.Width)
}

func TestCompose_ASCIIBesideList(t *testing.T) {
	r := &Renderer{
		Config:    &config.Config{Theme: "Hydrogen", Show: []string{"host"}},
		GOOS:      "linux",
		Collector: fakeCollector{readout.Host: text("me@box")},
	}

	frame, err := r.Compose(context.Background())
	require.NoError(t, err)

	art := ascii.Builtin("linux", true)
	_, listH := List(frame.Theme, frame.Readouts).Size()
	assert.Equal(t, grid.Rect{X: 1, Y: 1, Width: art.Width(), Height: max(art.Height(), listH)}, frame.ASCII)
	assert.Equal(t, 1+art.Width()+2, frame.Data.X)

	// Rounded box around the list, starting at the data region origin.
	assert.Equal(t, "╭", frame.Grid.Get(frame.Data.X, 1).Symbol)
	assert.Equal(t, frame.Data.X, frame.List.X)
	assert.Equal(t, listH, frame.List.Height)
	assert.Contains(t, row(frame.Grid, 3), "me@box")
}

func TestCompose_UnknownThemeFallsBack(t *testing.T) {
	r := &Renderer{
		Config:    &config.Config{Theme: "NoSuchTheme", Show: []string{"host"}},
		Overrides: theme.Overrides{NoASCII: true},
		Collector: fakeCollector{readout.Host: text("box")},
	}

	frame, err := r.Compose(context.Background())
	require.NoError(t, err)
	assert.True(t, frame.ThemeFallback)
	assert.Equal(t, theme.DefaultName, frame.Theme.Name)
}

func TestCompose_ThemeConflictIsError(t *testing.T) {
	r := &Renderer{
		Config:    &config.Config{Theme: "Hydrogen"},
		Overrides: theme.Overrides{KeyColor: "red", RandomKeyColor: true},
		Collector: fakeCollector{},
	}

	_, err := r.Compose(context.Background())
	var cfgErr *theme.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "color", cfgErr.Field)
}

func TestCompose_MissingCustomASCIIDisablesRegion(t *testing.T) {
	dir := t.TempDir()
	body := "[custom_ascii]\npath = \"missing.txt\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Custom.toml"), []byte(body), 0o644))

	r := &Renderer{
		Config:    &config.Config{Theme: "custom", Show: []string{"host"}},
		ThemeDirs: []string{dir},
		Collector: fakeCollector{readout.Host: text("box")},
	}

	frame, err := r.Compose(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Custom", frame.Theme.Name)
	assert.Zero(t, frame.ASCII.Width)
	assert.Equal(t, frame.Theme.Padding, frame.Data.X)
}

func TestCompose_CustomASCII(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.txt"), []byte("\x1b[31m/\\\\\x1b[0m\n\\//\n"), 0o644))
	body := "[custom_ascii]\npath = \"logo.txt\"\n[box]\nvisible = false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Logo.toml"), []byte(body), 0o644))

	r := &Renderer{
		Config:    &config.Config{Theme: "logo", Show: []string{"host"}},
		ThemeDirs: []string{dir},
		Collector: fakeCollector{readout.Host: text("box")},
	}

	frame, err := r.Compose(context.Background())
	require.NoError(t, err)
	assert.Equal(t, grid.Rect{X: 1, Y: 1, Width: 3, Height: 2}, frame.ASCII)
	assert.True(t, strings.HasPrefix(row(frame.Grid, 1), " /\\\\"))
	assert.True(t, strings.HasPrefix(row(frame.Grid, 2), " \\//"))
}

// =============================================================================
// LIST TESTS
// =============================================================================

func TestList_Rows(t *testing.T) {
	th, err := theme.Build(theme.File{
		Name: "t",
		Keys: map[string]string{"memory": "RAM"},
	}, theme.Overrides{Bar: true}, nil)
	require.NoError(t, err)

	list := List(th, []readout.Readout{
		{Key: readout.Memory, Value: readout.Value{Text: "1 GiB / 4 GiB", Ratio: 0.25, HasRatio: true}},
		{Key: readout.Battery, Err: readout.ErrUnsupported},
		{Key: readout.Host, Value: readout.Value{Text: "box"}},
	})

	require.Len(t, list.Rows, 3)
	assert.Equal(t, "RAM", list.Rows[0].Label)
	assert.True(t, list.Rows[0].ShowBar)
	assert.InDelta(t, 0.25, list.Rows[0].Ratio, 1e-9)

	assert.Equal(t, "Battery", list.Rows[1].Label)
	assert.True(t, list.Rows[1].Failed)
	assert.Equal(t, readout.Unavailable, list.Rows[1].Value)

	assert.False(t, list.Rows[2].ShowBar)
	assert.NotNil(t, list.Block)
	assert.Equal(t, th.Separator, list.Separator)
}

// =============================================================================
// RUN TESTS
// =============================================================================

func TestRun_FlushesAndFinishes(t *testing.T) {
	r := &Renderer{
		Config:    &config.Config{Theme: "Lithium", Show: []string{"host"}},
		Overrides: theme.Overrides{NoASCII: true, Padding: ptr(0)},
		Collector: fakeCollector{readout.Host: text("box")},
	}
	b := &fakeBackend{}

	frame, err := r.Run(context.Background(), b)
	require.NoError(t, err)
	require.NotNil(t, frame)

	// Two reserved rows, then the closing two newlines.
	assert.Equal(t, "\n\n\n\n", b.written.String())
	assert.Equal(t, 1, b.draws)
	assert.Equal(t, [2]int{0, 1}, b.cursor)

	var got strings.Builder
	for _, p := range b.drawn {
		if p.Y == 1 {
			got.WriteString(p.Cell.Symbol)
		}
	}
	assert.Equal(t, "Host → box", strings.TrimRight(got.String(), " "))
}
