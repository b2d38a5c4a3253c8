// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detect

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// gpuDetectTimeout bounds a whole Detect call when the caller's context
// has no deadline.
const gpuDetectTimeout = 10 * time.Second

// ErrNoGPU is returned when no tool reports a graphics adapter.
var ErrNoGPU = errors.New("no graphics adapter found")

// =============================================================================
// GPU TYPE DEFINITIONS
// =============================================================================

// GpuType represents the vendor family of a detected adapter.
type GpuType int

const (
	GpuTypeUnknown GpuType = iota
	GpuTypeNvidia
	GpuTypeAmd
	GpuTypeAppleSilicon
	GpuTypeIntel
)

// String returns the string representation of the GPU type.
func (t GpuType) String() string {
	switch t {
	case GpuTypeNvidia:
		return "NVIDIA"
	case GpuTypeAmd:
		return "AMD"
	case GpuTypeAppleSilicon:
		return "Apple Silicon"
	case GpuTypeIntel:
		return "Intel"
	default:
		return "Unknown"
	}
}

// GpuInfo contains information about a detected GPU.
type GpuInfo struct {
	// Name of the GPU (e.g., "NVIDIA RTX 4090")
	Name string
	// VramGB is the dedicated memory in gigabytes, zero when unknown.
	VramGB uint32
	// Driver version if available
	Driver string
	Type   GpuType
}

// String returns the name followed by the memory size when known.
func (g *GpuInfo) String() string {
	if g.VramGB == 0 {
		return g.Name
	}
	return fmt.Sprintf("%s (%dGB)", g.Name, g.VramGB)
}

// =============================================================================
// DETECTOR
// =============================================================================

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Detector probes vendor tools and caches the first successful answer for
// the life of the process.
type Detector struct {
	Run  Runner
	GOOS string

	mu     sync.Mutex
	done   bool
	cached *GpuInfo
	err    error
}

// New returns a Detector for the running system.
func New() *Detector {
	return &Detector{Run: ExecRunner, GOOS: runtime.GOOS}
}

// Detect returns the first adapter reported by a vendor tool. Results,
// including ErrNoGPU, are cached. Context errors are not.
func (d *Detector) Detect(ctx context.Context) (*GpuInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done {
		return d.cached, d.err
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gpuDetectTimeout)
		defer cancel()
	}

	info, err := d.detect(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil && info == nil {
		return nil, fmt.Errorf("gpu detection: %w", ctxErr)
	}
	d.done, d.cached, d.err = true, info, err
	return info, err
}

func (d *Detector) detect(ctx context.Context) (*GpuInfo, error) {
	probes := []struct {
		goos  string
		name  string
		args  []string
		parse func([]byte) *GpuInfo
	}{
		{"", "nvidia-smi", []string{"--query-gpu=name,memory.total,driver_version", "--format=csv,noheader,nounits"}, parseNvidiaSmi},
		{"linux", "rocm-smi", []string{"--showproductname", "--showmeminfo", "vram"}, parseRocmSmi},
		{"darwin", "system_profiler", []string{"SPDisplaysDataType"}, parseSystemProfiler},
		{"linux", "lspci", nil, parseLspci},
		{"linux", "intel_gpu_top", []string{"-L"}, parseIntelGpuTop},
	}

	for _, p := range probes {
		if p.goos != "" && p.goos != d.GOOS {
			continue
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		out, err := d.Run(ctx, p.name, p.args...)
		if err != nil || len(out) == 0 {
			continue
		}
		if info := p.parse(out); info != nil {
			return info, nil
		}
	}
	return nil, ErrNoGPU
}

// =============================================================================
// PARSERS
// =============================================================================

// parseNvidiaSmi reads "name, memory MiB, driver" CSV lines.
func parseNvidiaSmi(out []byte) *GpuInfo {
	line := strings.TrimSpace(strings.Split(strings.TrimSpace(string(out)), "\n")[0])
	parts := strings.Split(line, ", ")
	if len(parts) < 3 {
		return nil
	}

	vramMB, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil
	}
	name := strings.TrimSpace(parts[0])
	if !strings.HasPrefix(name, "NVIDIA") {
		name = "NVIDIA " + name
	}
	return &GpuInfo{
		Name:   name,
		VramGB: uint32(vramMB/1024.0 + 0.5),
		Driver: strings.TrimSpace(parts[2]),
		Type:   GpuTypeNvidia,
	}
}

var numericRegex = regexp.MustCompile(`(\d+)\s*$`)

func parseRocmSmi(out []byte) *GpuInfo {
	info := &GpuInfo{Name: "AMD GPU", Type: GpuTypeAmd}
	named := false

	for _, line := range strings.Split(string(out), "\n") {
		switch {
		case !named && strings.Contains(line, "Card series:"):
			if _, v, ok := strings.Cut(line, "Card series:"); ok && strings.TrimSpace(v) != "" {
				info.Name = "AMD " + strings.TrimSpace(v)
				named = true
			}
		case info.VramGB == 0 && (strings.Contains(line, "Total Memory") || strings.Contains(line, "VRAM Total")):
			m := numericRegex.FindStringSubmatch(strings.TrimSpace(line))
			if len(m) < 2 {
				continue
			}
			val, err := strconv.ParseUint(m[1], 10, 64)
			if err != nil {
				continue
			}
			switch {
			case val > 1_000_000_000:
				info.VramGB = uint32(val / 1_073_741_824)
			case val > 1_000_000:
				info.VramGB = uint32(val / 1024)
			default:
				info.VramGB = uint32(val)
			}
		}
	}
	if !named && info.VramGB == 0 {
		return nil
	}
	return info
}

func parseSystemProfiler(out []byte) *GpuInfo {
	for _, line := range strings.Split(string(out), "\n") {
		_, model, ok := strings.Cut(line, "Chipset Model:")
		if !ok {
			continue
		}
		model = strings.TrimSpace(model)
		t := GpuTypeUnknown
		switch {
		case strings.HasPrefix(model, "Apple"):
			t = GpuTypeAppleSilicon
		case strings.Contains(model, "AMD") || strings.Contains(model, "Radeon"):
			t = GpuTypeAmd
		case strings.Contains(model, "Intel"):
			t = GpuTypeIntel
		case strings.Contains(model, "NVIDIA"):
			t = GpuTypeNvidia
		}
		return &GpuInfo{Name: model, Type: t}
	}
	return nil
}

// parseLspci picks the first VGA or 3D controller line.
func parseLspci(out []byte) *GpuInfo {
	for _, line := range strings.Split(string(out), "\n") {
		var desc string
		for _, class := range []string{"VGA compatible controller: ", "3D controller: ", "Display controller: "} {
			if _, v, ok := strings.Cut(line, class); ok {
				desc = v
				break
			}
		}
		if desc == "" {
			continue
		}
		// Strip the trailing "(rev xx)".
		if i := strings.LastIndex(desc, " (rev "); i > 0 {
			desc = desc[:i]
		}
		desc = strings.TrimSpace(desc)

		t := GpuTypeUnknown
		lower := strings.ToLower(desc)
		switch {
		case strings.Contains(lower, "nvidia"):
			t = GpuTypeNvidia
		case strings.Contains(lower, "amd") || strings.Contains(lower, "ati "):
			t = GpuTypeAmd
		case strings.Contains(lower, "intel"):
			t = GpuTypeIntel
		}
		return &GpuInfo{Name: desc, Type: t}
	}
	return nil
}

func parseIntelGpuTop(out []byte) *GpuInfo {
	lower := strings.ToLower(string(out))
	if !strings.Contains(lower, "arc") {
		return nil
	}
	models := []struct {
		id   string
		name string
		vram uint32
	}{
		{"a770", "Intel Arc A770", 16},
		{"a750", "Intel Arc A750", 8},
		{"a580", "Intel Arc A580", 8},
		{"a380", "Intel Arc A380", 6},
		{"a310", "Intel Arc A310", 4},
	}
	for _, m := range models {
		if strings.Contains(lower, m.id) {
			return &GpuInfo{Name: m.name, VramGB: m.vram, Type: GpuTypeIntel}
		}
	}
	return &GpuInfo{Name: "Intel Arc", Type: GpuTypeIntel}
}
