// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package term

import (
	"bytes"
	"errors"
	"fmt"
)

// cursorQuery asks the terminal for a cursor position report (DSR).
const cursorQuery = "\x1b[6n"

var errNoCursorReport = errors.New("no cursor position report")

// parseCursorReport extracts the one-based row and column from the last
// "ESC [ row ; col R" sequence in b.
func parseCursorReport(b []byte) (row, col int, err error) {
	end := bytes.LastIndexByte(b, 'R')
	if end < 0 {
		return 0, 0, errNoCursorReport
	}
	start := bytes.LastIndex(b[:end], []byte("\x1b["))
	if start < 0 {
		return 0, 0, errNoCursorReport
	}
	if _, err := fmt.Sscanf(string(b[start+2:end+1]), "%d;%dR", &row, &col); err != nil {
		return 0, 0, fmt.Errorf("malformed cursor report %q: %w", b[start:end+1], err)
	}
	if row < 1 || col < 1 {
		return 0, 0, fmt.Errorf("cursor report out of range: row=%d col=%d", row, col)
	}
	return row, col, nil
}
