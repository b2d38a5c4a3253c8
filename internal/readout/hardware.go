// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package readout

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// loadSampleInterval is how long processor_load samples CPU times.
const loadSampleInterval = 250 * time.Millisecond

func (s *System) processor(ctx context.Context, opts Options) (Value, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	if len(infos) == 0 || infos[0].ModelName == "" {
		return Value{}, errors.New("no processor model reported")
	}
	model := squash(infos[0].ModelName)

	n, err := cpu.CountsWithContext(ctx, !opts.PhysicalCores)
	if err != nil || n == 0 {
		return text(model), nil
	}
	return text(fmt.Sprintf("%s (%d)", model, n)), nil
}

func (s *System) processorLoad(ctx context.Context, _ Options) (Value, error) {
	pct, err := cpu.PercentWithContext(ctx, loadSampleInterval, false)
	if err != nil {
		return Value{}, err
	}
	if len(pct) == 0 {
		return Value{}, errors.New("no processor load sample")
	}
	return Value{
		Text:     fmt.Sprintf("%d%%", int(pct[0]+0.5)),
		Ratio:    pct[0] / 100,
		HasRatio: true,
	}, nil
}

func (s *System) memory(ctx context.Context, opts Options) (Value, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	used := vm.Total - min(vm.Available, vm.Total)
	return Value{
		Text:     FormatUsage(used, vm.Total, opts.MemoryPercentage),
		Ratio:    ratio(used, vm.Total),
		HasRatio: true,
	}, nil
}

func (s *System) diskSpace(ctx context.Context, opts Options) (Value, error) {
	paths := opts.Disks
	if len(paths) == 0 {
		paths = []string{"/"}
		if s.GOOS == "windows" {
			paths = []string{`C:\`}
		}
	}

	var used, total uint64
	for _, p := range paths {
		u, err := disk.UsageWithContext(ctx, p)
		if err != nil {
			return Value{}, fmt.Errorf("disk %s: %w", p, err)
		}
		used += u.Used
		total += u.Total
	}
	return Value{
		Text:     FormatUsage(used, total, opts.DiskPercentage),
		Ratio:    ratio(used, total),
		HasRatio: true,
	}, nil
}

func (s *System) gpu(ctx context.Context, _ Options) (Value, error) {
	if s.GPU == nil {
		return Value{}, ErrUnsupported
	}
	info, err := s.GPU.Detect(ctx)
	if err != nil {
		return Value{}, err
	}
	return text(info.String()), nil
}

// =============================================================================
// NETWORK
// =============================================================================

func (s *System) localIP(ctx context.Context, opts Options) (Value, error) {
	ifaces, err := psnet.InterfacesWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	addr, err := pickAddress(ifaces, opts.Interface)
	if err != nil {
		return Value{}, err
	}
	return text(addr), nil
}

// pickAddress returns the first IPv4 address of the named interface, or
// of the first interface that is up and not a loopback.
func pickAddress(ifaces psnet.InterfaceStatList, name string) (string, error) {
	for _, iface := range ifaces {
		if name != "" && iface.Name != name {
			continue
		}
		if name == "" && (!slices.Contains(iface.Flags, "up") || slices.Contains(iface.Flags, "loopback")) {
			continue
		}
		for _, a := range iface.Addrs {
			prefix, err := netip.ParsePrefix(a.Addr)
			if err != nil {
				continue
			}
			if ip := prefix.Addr(); ip.Is4() && !ip.IsLoopback() {
				return ip.String(), nil
			}
		}
	}
	if name != "" {
		return "", fmt.Errorf("interface %s has no IPv4 address", name)
	}
	return "", errors.New("no active network interface")
}

// =============================================================================
// BATTERY
// =============================================================================

func (s *System) battery(ctx context.Context, _ Options) (Value, error) {
	switch s.GOOS {
	case "linux":
		return s.batteryLinux()
	case "darwin":
		out, err := s.Run(ctx, "pmset", "-g", "batt")
		if err != nil {
			return Value{}, err
		}
		return parsePmset(string(out))
	default:
		return Value{}, ErrUnsupported
	}
}

func (s *System) batteryLinux() (Value, error) {
	dirs, err := s.Glob("/sys/class/power_supply/BAT*")
	if err != nil || len(dirs) == 0 {
		return Value{}, errors.New("no battery found")
	}
	slices.Sort(dirs)

	capData, err := s.ReadFile(filepath.Join(dirs[0], "capacity"))
	if err != nil {
		return Value{}, err
	}
	pct, err := strconv.Atoi(strings.TrimSpace(string(capData)))
	if err != nil {
		return Value{}, fmt.Errorf("bad battery capacity: %w", err)
	}
	status := ""
	if data, err := s.ReadFile(filepath.Join(dirs[0], "status")); err == nil {
		status = strings.TrimSpace(string(data))
	}
	return batteryValue(pct, status), nil
}

var pmsetRegex = regexp.MustCompile(`(\d+)%;\s*([A-Za-z ]+?);`)

func parsePmset(out string) (Value, error) {
	m := pmsetRegex.FindStringSubmatch(out)
	if m == nil {
		return Value{}, errors.New("no battery found")
	}
	pct, _ := strconv.Atoi(m[1])
	return batteryValue(pct, m[2]), nil
}

func batteryValue(pct int, status string) Value {
	pct = min(max(pct, 0), 100)
	v := Value{Text: fmt.Sprintf("%d%%", pct), Ratio: float64(pct) / 100, HasRatio: true}
	if status != "" && !strings.EqualFold(status, "unknown") {
		v.Text += " (" + strings.ToLower(status) + ")"
	}
	return v
}
