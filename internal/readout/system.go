// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package readout

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/sysview/internal/detect"
)

// System is the source of every built-in probe. Its function fields
// default to the real operating system and may be replaced in tests.
type System struct {
	GOOS     string
	Run      detect.Runner
	LookPath func(file string) (string, error)
	ReadFile func(name string) ([]byte, error)
	Glob     func(pattern string) ([]string, error)
	Getenv   func(key string) string
	GPU      *detect.Detector
}

// NewSystem returns a System reading the running machine.
func NewSystem() *System {
	return &System{
		GOOS:     runtime.GOOS,
		Run:      detect.ExecRunner,
		LookPath: exec.LookPath,
		ReadFile: os.ReadFile,
		Glob:     filepath.Glob,
		Getenv:   os.Getenv,
		GPU:      detect.New(),
	}
}

// Probes returns the probe for every key.
func (s *System) Probes() map[Key]Probe {
	return map[Key]Probe{
		Host:               s.host,
		Machine:            s.machine,
		Kernel:             s.kernel,
		Distribution:       s.distribution,
		OperatingSystem:    s.operatingSystem,
		DesktopEnvironment: s.desktopEnvironment,
		Packages:           s.packages,
		Shell:              s.shell,
		Terminal:           s.terminal,
		LocalIP:            s.localIP,
		Uptime:             s.uptime,
		Processor:          s.processor,
		ProcessorLoad:      s.processorLoad,
		Memory:             s.memory,
		Battery:            s.battery,
		DiskSpace:          s.diskSpace,
		GPU:                s.gpu,
	}
}

func text(s string) Value { return Value{Text: s} }

// =============================================================================
// IDENTITY
// =============================================================================

func (s *System) host(ctx context.Context, _ Options) (Value, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	name := s.Getenv("USER")
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	if name == "" {
		return text(info.Hostname), nil
	}
	return text(name + "@" + info.Hostname), nil
}

// dmiPlaceholders are vendor strings that carry no information.
var dmiPlaceholders = []string{
	"to be filled by o.e.m.",
	"system product name",
	"system version",
	"default string",
	"not applicable",
	"none",
}

func (s *System) machine(ctx context.Context, _ Options) (Value, error) {
	switch s.GOOS {
	case "linux":
		var parts []string
		for _, f := range []string{"sys_vendor", "product_name", "product_version"} {
			data, err := s.ReadFile("/sys/class/dmi/id/" + f)
			if err != nil {
				continue
			}
			v := strings.TrimSpace(string(data))
			if v == "" || containsFold(dmiPlaceholders, v) || containsFold(parts, v) {
				continue
			}
			parts = append(parts, v)
		}
		if len(parts) == 0 {
			return Value{}, errors.New("no DMI product information")
		}
		return text(strings.Join(parts, " ")), nil
	case "darwin", "freebsd", "openbsd", "netbsd":
		out, err := s.Run(ctx, "sysctl", "-n", "hw.model")
		if err != nil {
			return Value{}, err
		}
		return text(squash(string(out))), nil
	default:
		return Value{}, ErrUnsupported
	}
}

func containsFold(list []string, v string) bool {
	for _, l := range list {
		if strings.EqualFold(l, v) {
			return true
		}
	}
	return false
}

func (s *System) osRelease() (map[string]string, error) {
	for _, p := range []string{"/etc/os-release", "/usr/lib/os-release"} {
		if data, err := s.ReadFile(p); err == nil {
			return ParseOSRelease(string(data)), nil
		}
	}
	return nil, errors.New("no os-release file")
}

func (s *System) distribution(ctx context.Context, _ Options) (Value, error) {
	if s.GOOS == "linux" {
		rel, err := s.osRelease()
		if err != nil {
			return Value{}, err
		}
		if v := rel["PRETTY_NAME"]; v != "" {
			return text(v), nil
		}
		if v := strings.TrimSpace(rel["NAME"] + " " + rel["VERSION_ID"]); v != "" {
			return text(v), nil
		}
		return Value{}, errors.New("os-release has no name")
	}

	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	name := info.Platform
	if s.GOOS == "darwin" {
		name = "macOS"
	}
	return text(strings.TrimSpace(name + " " + info.PlatformVersion)), nil
}

func (s *System) operatingSystem(ctx context.Context, _ Options) (Value, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Value{}, err
	}

	name := cases.Title(language.English).String(info.OS)
	switch s.GOOS {
	case "darwin":
		name = "macOS"
	case "linux":
		if rel, err := s.osRelease(); err == nil && rel["NAME"] != "" {
			name = rel["NAME"]
		}
	}
	return text(strings.TrimSpace(name + " " + info.KernelArch)), nil
}

func (s *System) desktopEnvironment(_ context.Context, _ Options) (Value, error) {
	switch s.GOOS {
	case "darwin":
		return text("Aqua"), nil
	case "windows":
		return text("Fluent"), nil
	}
	for _, env := range []string{"XDG_CURRENT_DESKTOP", "XDG_SESSION_DESKTOP", "DESKTOP_SESSION"} {
		if v := s.Getenv(env); v != "" {
			// XDG_CURRENT_DESKTOP may list several, e.g. "ubuntu:GNOME".
			parts := strings.Split(v, ":")
			return text(parts[len(parts)-1]), nil
		}
	}
	return Value{}, errors.New("no desktop environment detected")
}

// =============================================================================
// SESSION
// =============================================================================

func (s *System) shell(ctx context.Context, opts Options) (Value, error) {
	if !opts.CurrentShell {
		sh := s.Getenv("SHELL")
		if sh == "" {
			return Value{}, errors.New("SHELL is not set")
		}
		if opts.LongShell {
			return text(sh), nil
		}
		return text(filepath.Base(sh)), nil
	}

	p, err := process.NewProcessWithContext(ctx, int32(os.Getppid()))
	if err != nil {
		return Value{}, err
	}
	if opts.LongShell {
		cmd, err := p.CmdlineWithContext(ctx)
		if err != nil {
			return Value{}, err
		}
		return text(cmd), nil
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	return text(name), nil
}

func (s *System) terminal(ctx context.Context, _ Options) (Value, error) {
	if v := s.Getenv("TERM_PROGRAM"); v != "" {
		return text(v), nil
	}

	// The terminal is the parent of the shell that started us.
	shell, err := process.NewProcessWithContext(ctx, int32(os.Getppid()))
	if err != nil {
		return Value{}, err
	}
	term, err := shell.ParentWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	name, err := term.NameWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	return text(name), nil
}

func (s *System) uptime(ctx context.Context, opts Options) (Value, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return Value{}, err
	}
	return text(FormatUptime(time.Duration(secs)*time.Second, opts.LongUptime)), nil
}
