// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme resolves how a report looks: colors, spacing, border,
// bars, palette and ascii preferences.
//
// Themes are described by File values, either built in or decoded from
// TOML. Build validates a File together with command-line Overrides and
// produces an immutable Theme. Invalid combinations are rejected with a
// *ConfigError rather than letting one flag silently win.
package theme

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sysview/internal/grid"
	"github.com/jeranaias/sysview/internal/widgets"
)

// =============================================================================
// THEME FILE
// =============================================================================

// File is the on-disk shape of a theme. Pointer fields distinguish "not
// set" from a zero value.
type File struct {
	Name             string  `toml:"-"`
	Path             string  `toml:"-"`
	KeyColor         string  `toml:"key_color"`
	SeparatorColor   string  `toml:"separator_color"`
	Separator        *string `toml:"separator"`
	Spacing          *int    `toml:"spacing"`
	Padding          *int    `toml:"padding"`
	HideASCII        bool    `toml:"hide_ascii"`
	PreferSmallASCII bool    `toml:"prefer_small_ascii"`

	Randomize   RandomizeFile     `toml:"randomize"`
	Box         BoxFile           `toml:"box"`
	Bar         BarFile           `toml:"bar"`
	Palette     PaletteFile       `toml:"palette"`
	CustomASCII CustomASCIIFile   `toml:"custom_ascii"`
	Keys        map[string]string `toml:"keys"`
}

// RandomizeFile asks for colors to be drawn at render time.
type RandomizeFile struct {
	KeyColor       bool   `toml:"key_color"`
	SeparatorColor bool   `toml:"separator_color"`
	Pool           string `toml:"pool"`
}

// BoxFile configures the border drawn around the readouts.
type BoxFile struct {
	Title       *string     `toml:"title"`
	Border      string      `toml:"border"`
	Visible     *bool       `toml:"visible"`
	InnerMargin *MarginFile `toml:"inner_margin"`
}

// MarginFile is a horizontal and vertical margin.
type MarginFile struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// BarFile configures usage bars for percentage readouts.
type BarFile struct {
	Visible        bool   `toml:"visible"`
	Glyph          string `toml:"glyph"`
	SymbolOpen     string `toml:"symbol_open"`
	SymbolClose    string `toml:"symbol_close"`
	HideDelimiters bool   `toml:"hide_delimiters"`
}

// PaletteFile configures the color swatch rows.
type PaletteFile struct {
	Type  string `toml:"type"`
	Glyph string `toml:"glyph"`
}

// CustomASCIIFile points at an ascii art file and its color.
type CustomASCIIFile struct {
	Path  string `toml:"path"`
	Color string `toml:"color"`
}

// =============================================================================
// RESOLVED THEME
// =============================================================================

// Theme is a fully resolved, validated theme. It is passed by value and
// never modified after Build.
type Theme struct {
	Name             string
	KeyColor         lipgloss.Color
	SeparatorColor   lipgloss.Color
	Separator        string
	Spacing          int
	Padding          int
	HideASCII        bool
	PreferSmallASCII bool

	Box     Box
	Bar     Bar
	Palette widgets.Palette

	ASCIIPath  string
	ASCIIColor lipgloss.Color

	keys map[string]string
}

// Box is the resolved border configuration.
type Box struct {
	Visible     bool
	Title       string
	Border      widgets.BorderType
	InnerMargin grid.Margin
}

// Bar is the resolved bar configuration.
type Bar struct {
	Visible bool
	Glyph   string
	Open    string
	Close   string
}

// Label returns the display label for a readout key, honoring [keys]
// overrides. fallback is returned when no override exists.
func (t Theme) Label(key, fallback string) string {
	if l, ok := t.keys[key]; ok && l != "" {
		return l
	}
	return fallback
}

// KeyStyle is the style of readout labels.
func (t Theme) KeyStyle() grid.Style {
	return grid.Style{Fg: t.KeyColor, Add: grid.Bold}
}

func (t Theme) SeparatorStyle() grid.Style {
	return grid.Style{Fg: t.SeparatorColor}
}

// BarWidget returns the usage bar in theme colors.
func (t Theme) BarWidget() widgets.Bar {
	return widgets.Bar{
		Glyph:     t.Bar.Glyph,
		Open:      t.Bar.Open,
		Close:     t.Bar.Close,
		Filled:    grid.Style{Fg: t.KeyColor},
		Unfilled:  grid.Style{Add: grid.Dim},
		Delimiter: grid.Style{Fg: t.SeparatorColor},
	}
}

// Block returns the border widget, or nil when the box is hidden.
func (t Theme) Block() *widgets.Block {
	if !t.Box.Visible {
		return nil
	}
	return &widgets.Block{
		Borders:    true,
		Type:       t.Box.Border,
		Title:      t.Box.Title,
		TitleStyle: grid.Style{Add: grid.Bold},
	}
}

// =============================================================================
// OVERRIDES AND ERRORS
// =============================================================================

// Overrides are command-line adjustments layered over a theme file.
type Overrides struct {
	KeyColor             string
	SeparatorColor       string
	RandomKeyColor       bool
	RandomSeparatorColor bool
	NoColor              bool
	BoxTitle             *string
	NoBox                bool
	NoASCII              bool
	SmallASCII           bool
	Bar                  bool
	Palette              string
	Spacing              *int
	Padding              *int
}

// ConfigError reports an invalid theme setting or combination.
type ConfigError struct {
	Theme  string
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Theme != "" {
		return fmt.Sprintf("theme %s: %s: %s", e.Theme, e.Field, e.Reason)
	}
	return fmt.Sprintf("theme: %s: %s", e.Field, e.Reason)
}

// =============================================================================
// BUILD
// =============================================================================

const (
	defaultSeparator = "-"
	defaultSpacing   = 2
	defaultPadding   = 2
	defaultBoxTitle  = " sysview "
)

// Build validates f and o and resolves them into a Theme. rng supplies
// random colors; it may be nil when nothing is randomized.
func Build(f File, o Overrides, rng *rand.Rand) (Theme, error) {
	fail := func(field, format string, args ...any) (Theme, error) {
		return Theme{}, &ConfigError{Theme: f.Name, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	// Conflicts are only checked within one layer. An explicit color on
	// the command line replaces a randomized color from the file.
	if f.KeyColor != "" && f.Randomize.KeyColor {
		return fail("key_color", "cannot be set together with randomize.key_color")
	}
	if f.SeparatorColor != "" && f.Randomize.SeparatorColor {
		return fail("separator_color", "cannot be set together with randomize.separator_color")
	}
	if o.KeyColor != "" && o.RandomKeyColor {
		return fail("color", "--color and --random-color are mutually exclusive")
	}
	if o.SeparatorColor != "" && o.RandomSeparatorColor {
		return fail("separator-color", "--separator-color and --random-sep-color are mutually exclusive")
	}
	if o.NoColor && (o.KeyColor != "" || o.SeparatorColor != "" || o.RandomKeyColor || o.RandomSeparatorColor) {
		return fail("no-color", "cannot be combined with explicit or random colors")
	}

	pool, err := ParsePool(f.Randomize.Pool)
	if err != nil {
		return fail("randomize.pool", "%v", err)
	}

	t := Theme{
		Name:             f.Name,
		Separator:        defaultSeparator,
		Spacing:          defaultSpacing,
		Padding:          defaultPadding,
		HideASCII:        f.HideASCII || o.NoASCII,
		PreferSmallASCII: f.PreferSmallASCII || o.SmallASCII,
		ASCIIPath:        f.CustomASCII.Path,
		keys:             maps.Clone(f.Keys),
	}
	if f.Separator != nil {
		t.Separator = *f.Separator
	}

	spacing, padding := f.Spacing, f.Padding
	if o.Spacing != nil {
		spacing = o.Spacing
	}
	if o.Padding != nil {
		padding = o.Padding
	}
	if spacing != nil {
		if *spacing < 0 {
			return fail("spacing", "must not be negative (got %d)", *spacing)
		}
		t.Spacing = *spacing
	}
	if padding != nil {
		if *padding < 0 {
			return fail("padding", "must not be negative (got %d)", *padding)
		}
		t.Padding = *padding
	}

	// Colors
	keyColor, sepColor := f.KeyColor, f.SeparatorColor
	randKey, randSep := f.Randomize.KeyColor, f.Randomize.SeparatorColor
	if o.KeyColor != "" {
		keyColor, randKey = o.KeyColor, false
	}
	if o.SeparatorColor != "" {
		sepColor, randSep = o.SeparatorColor, false
	}
	randKey = randKey || o.RandomKeyColor
	randSep = randSep || o.RandomSeparatorColor

	if t.KeyColor, err = ParseColor(keyColor); err != nil {
		return fail("key_color", "%v", err)
	}
	if t.SeparatorColor, err = ParseColor(sepColor); err != nil {
		return fail("separator_color", "%v", err)
	}
	if t.ASCIIColor, err = ParseColor(f.CustomASCII.Color); err != nil {
		return fail("custom_ascii.color", "%v", err)
	}
	if (randKey || randSep) && rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if randKey {
		t.KeyColor = RandomColor(rng, pool)
	}
	if randSep {
		t.SeparatorColor = RandomColor(rng, pool)
	}
	if o.NoColor {
		t.KeyColor, t.SeparatorColor, t.ASCIIColor = "", "", ""
	}

	// Box
	border, err := widgets.ParseBorderType(f.Box.Border)
	if err != nil {
		return fail("box.border", "%v", err)
	}
	t.Box = Box{
		Visible:     true,
		Title:       defaultBoxTitle,
		Border:      border,
		InnerMargin: grid.Margin{Horizontal: 1, Vertical: 1},
	}
	if f.Box.Visible != nil {
		t.Box.Visible = *f.Box.Visible
	}
	if f.Box.Title != nil {
		t.Box.Title = *f.Box.Title
	}
	if o.BoxTitle != nil {
		t.Box.Title = *o.BoxTitle
	}
	if o.NoBox {
		t.Box.Visible = false
	}
	if m := f.Box.InnerMargin; m != nil {
		if m.X < 0 || m.Y < 0 {
			return fail("box.inner_margin", "must not be negative (got x=%d y=%d)", m.X, m.Y)
		}
		t.Box.InnerMargin = grid.Margin{Horizontal: m.X, Vertical: m.Y}
	}

	// Bar
	t.Bar = Bar{
		Visible: f.Bar.Visible || o.Bar,
		Glyph:   f.Bar.Glyph,
		Open:    f.Bar.SymbolOpen,
		Close:   f.Bar.SymbolClose,
	}
	def := widgets.DefaultBar()
	if t.Bar.Glyph == "" {
		t.Bar.Glyph = def.Glyph
	}
	if t.Bar.Open == "" {
		t.Bar.Open = def.Open
	}
	if t.Bar.Close == "" {
		t.Bar.Close = def.Close
	}
	if f.Bar.HideDelimiters {
		t.Bar.Open, t.Bar.Close = "", ""
	}

	// Palette
	paletteName := f.Palette.Type
	if o.Palette != "" {
		paletteName = o.Palette
	}
	pt, err := widgets.ParsePaletteType(paletteName)
	if err != nil {
		return fail("palette.type", "%v", err)
	}
	t.Palette = widgets.Palette{Type: pt, Glyph: f.Palette.Glyph}

	for k := range t.keys {
		if strings.TrimSpace(k) == "" {
			return fail("keys", "empty key name")
		}
	}
	return t, nil
}
