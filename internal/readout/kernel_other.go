// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !unix

package readout

import (
	"context"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func (s *System) kernel(ctx context.Context, opts Options) (Value, error) {
	version, err := host.KernelVersionWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	if !opts.LongKernel {
		return text(version), nil
	}
	return text(cases.Title(language.English).String(s.GOOS) + " " + version), nil
}
