// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colorNames maps the accepted color names onto ANSI color numbers.
var colorNames = map[string]string{
	"black":        "0",
	"red":          "1",
	"green":        "2",
	"yellow":       "3",
	"blue":         "4",
	"magenta":      "5",
	"cyan":         "6",
	"gray":         "7",
	"grey":         "7",
	"darkgray":     "8",
	"darkgrey":     "8",
	"lightred":     "9",
	"lightgreen":   "10",
	"lightyellow":  "11",
	"lightblue":    "12",
	"lightmagenta": "13",
	"lightcyan":    "14",
	"white":        "15",
}

// ColorNames returns the accepted color names in ANSI order.
func ColorNames() []string {
	return []string{
		"black", "red", "green", "yellow", "blue", "magenta", "cyan", "gray",
		"darkgray", "lightred", "lightgreen", "lightyellow", "lightblue",
		"lightmagenta", "lightcyan", "white",
	}
}

// ParseColor accepts a color name, an ANSI number from 0 to 255, or a
// "#rrggbb" hex triplet. "", "reset" and "default" yield the terminal
// default color.
func ParseColor(s string) (lipgloss.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)

	switch key {
	case "", "reset", "default", "none":
		return "", nil
	}
	if n, ok := colorNames[key]; ok {
		return lipgloss.Color(n), nil
	}
	if strings.HasPrefix(key, "#") {
		if !isHexColor(key) {
			return "", fmt.Errorf("invalid hex color %q", s)
		}
		return lipgloss.Color(key), nil
	}
	if n, err := strconv.Atoi(key); err == nil {
		if n < 0 || n > 255 {
			return "", fmt.Errorf("color number %d out of range 0-255", n)
		}
		return lipgloss.Color(strconv.Itoa(n)), nil
	}
	return "", fmt.Errorf("unknown color %q", s)
}

func isHexColor(s string) bool {
	if len(s) != 7 {
		return false
	}
	_, err := strconv.ParseUint(s[1:], 16, 32)
	return err == nil
}

// Pool selects where random colors are drawn from.
type Pool int

const (
	// PoolBase draws from the sixteen named ANSI colors, black excluded.
	PoolBase Pool = iota
	// PoolHex draws any 24-bit color.
	PoolHex
)

// ParsePool accepts "base" and "hexadecimal".
func ParsePool(s string) (Pool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "base":
		return PoolBase, nil
	case "hex", "hexadecimal":
		return PoolHex, nil
	default:
		return PoolBase, fmt.Errorf("unknown color pool %q", s)
	}
}

// RandomColor draws one color from pool.
func RandomColor(rng *rand.Rand, pool Pool) lipgloss.Color {
	if pool == PoolHex {
		return lipgloss.Color(fmt.Sprintf("#%06x", rng.IntN(1<<24)))
	}
	return lipgloss.Color(strconv.Itoa(1 + rng.IntN(15)))
}
