// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build unix

package readout

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

func (s *System) kernel(_ context.Context, opts Options) (Value, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return Value{}, fmt.Errorf("uname: %w", err)
	}
	release := unix.ByteSliceToString(uts.Release[:])
	if !opts.LongKernel {
		return text(release), nil
	}
	return text(unix.ByteSliceToString(uts.Sysname[:]) + " " + release), nil
}
