// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !unix

package term

import (
	"os"
	"time"
)

// queryCursorRow is unsupported without termios; callers fall back to row 0.
func queryCursorRow(in, out *os.File, timeout time.Duration) (int, error) {
	return 0, ErrNotTerminal
}
