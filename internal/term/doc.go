// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package term copies a composed grid onto the real terminal.
//
// The Flusher reserves rows by printing newlines, asks the backend where
// the cursor ended up, and draws only the occupied part of the scratch grid
// so that scrollback above the render is left untouched.
//
// # Key Types
//
//   - Backend: the terminal operations the flusher needs
//   - ANSI: a Backend that writes cursor moves and SGR sequences via termenv
//   - Flusher: the flush algorithm
//
// # Degraded Terminals
//
// When stdout is not a terminal the cursor is never queried and row 0 is
// used. A failed size query falls back to 80x24.
package term
