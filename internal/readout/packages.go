// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package readout

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// packageManager lists installed packages, one per line after skip
// header lines.
type packageManager struct {
	name string
	cmd  string
	args []string
	skip int
	// goos restricts the manager to one system when non-empty.
	goos string
}

var packageManagers = []packageManager{
	{name: "pacman", cmd: "pacman", args: []string{"-Qq"}, goos: "linux"},
	{name: "dpkg", cmd: "dpkg-query", args: []string{"-f", ".\n", "-W"}, goos: "linux"},
	{name: "rpm", cmd: "rpm", args: []string{"-qa"}, goos: "linux"},
	{name: "apk", cmd: "apk", args: []string{"info"}, goos: "linux"},
	{name: "xbps", cmd: "xbps-query", args: []string{"-l"}, goos: "linux"},
	{name: "pkg", cmd: "pkg", args: []string{"info"}, goos: "freebsd"},
	{name: "brew", cmd: "brew", args: []string{"list", "--formula", "-1"}},
	{name: "port", cmd: "port", args: []string{"installed"}, skip: 1, goos: "darwin"},
	{name: "flatpak", cmd: "flatpak", args: []string{"list"}, goos: "linux"},
	{name: "snap", cmd: "snap", args: []string{"list"}, skip: 1, goos: "linux"},
	{name: "scoop", cmd: "scoop", args: []string{"list"}, skip: 4, goos: "windows"},
}

func (s *System) packages(ctx context.Context, _ Options) (Value, error) {
	var available []packageManager
	for _, pm := range packageManagers {
		if pm.goos != "" && pm.goos != s.GOOS {
			continue
		}
		if _, err := s.LookPath(pm.cmd); err != nil {
			continue
		}
		available = append(available, pm)
	}
	if len(available) == 0 {
		return Value{}, errors.New("no supported package manager found")
	}

	counts := make([]int, len(available))
	var g errgroup.Group
	for i, pm := range available {
		g.Go(func() error {
			out, err := s.Run(ctx, pm.cmd, pm.args...)
			if err == nil {
				counts[i] = countLines(out, pm.skip)
			}
			return nil
		})
	}
	_ = g.Wait()

	var found []PackageCount
	for i, pm := range available {
		if counts[i] > 0 {
			found = append(found, PackageCount{Manager: pm.name, Count: counts[i]})
		}
	}
	if len(found) == 0 {
		return Value{}, errors.New("package managers reported no packages")
	}
	return text(FormatPackages(found)), nil
}
