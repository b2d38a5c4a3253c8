// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build unix

package term

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// queryCursorRow puts in into raw mode, sends a DSR query on out and waits
// up to timeout for the reply. The returned row is zero-based.
func queryCursorRow(in, out *os.File, timeout time.Duration) (int, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return 0, ErrNotTerminal
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return 0, fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(fd, old)

	if _, err := out.WriteString(cursorQuery); err != nil {
		return 0, err
	}

	deadline := time.Now().Add(timeout)
	var reply []byte
	buf := make([]byte, 64)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return 0, errNoCursorReport
		}

		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, int(remaining/time.Millisecond)+1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, err
		}
		if n == 0 {
			continue
		}

		rn, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return 0, err
		}
		if rn == 0 {
			return 0, errNoCursorReport
		}
		reply = append(reply, buf[:rn]...)
		if bytes.IndexByte(reply, 'R') >= 0 {
			row, _, err := parseCursorReport(reply)
			if err != nil {
				return 0, err
			}
			return row - 1, nil
		}
	}
}
