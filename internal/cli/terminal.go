// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for sysview.
//
// Rendering positions cells relative to the cursor, so it needs to know
// whether stdout is a terminal and which color profile it supports:
// - Interactive terminals (full colors, cursor query)
// - Piped output (no colors, no cursor query)
// - CI/CD environments (respects NO_COLOR)

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80
	// DefaultTerminalHeight is the fallback height when detection fails
	DefaultTerminalHeight = 24
)

// GetTerminalSize returns both width and height of the terminal.
// Returns defaults (80x24) if size cannot be determined.
func GetTerminalSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultTerminalWidth, DefaultTerminalHeight
	}
	return w, h
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	// colorsEnabled caches the color support decision
	colorsEnabled     bool
	colorsEnabledOnce sync.Once
)

// ColorsEnabled returns true if colored output should be used.
// Respects NO_COLOR environment variable and TTY detection.
// See https://no-color.org/ for the NO_COLOR specification.
func ColorsEnabled() bool {
	colorsEnabledOnce.Do(func() {
		colorsEnabled = colorsFromEnv(os.Getenv, IsStdoutTTY())
	})
	return colorsEnabled
}

// colorsFromEnv decides color support. NO_COLOR wins over FORCE_COLOR,
// which wins over TTY detection.
func colorsFromEnv(getenv func(string) string, tty bool) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	if getenv("FORCE_COLOR") != "" {
		return true
	}
	return tty
}

// GetColorProfile returns the appropriate termenv color profile.
// Returns Ascii (no colors) for non-TTY or when NO_COLOR is set.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	// Let termenv auto-detect the best profile for this terminal
	profile := termenv.ColorProfile()
	if profile == termenv.Ascii && os.Getenv("FORCE_COLOR") != "" {
		// termenv reports Ascii for pipes even when colors are forced.
		return termenv.ANSI256
	}
	return profile
}

// TerminalCapabilities describes what the current terminal supports.
type TerminalCapabilities struct {
	IsTTY         bool   `json:"stdin_tty"`
	IsStdoutTTY   bool   `json:"stdout_tty"`
	ColorsEnabled bool   `json:"colors_enabled"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	ColorProfile  string `json:"color_profile"`
}

// GetTerminalCapabilities returns information about the current terminal.
func GetTerminalCapabilities() TerminalCapabilities {
	width, height := GetTerminalSize()
	return TerminalCapabilities{
		IsTTY:         IsTTY(),
		IsStdoutTTY:   IsStdoutTTY(),
		ColorsEnabled: ColorsEnabled(),
		Width:         width,
		Height:        height,
		ColorProfile:  profileName(GetColorProfile()),
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}
