// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package readout

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Key identifies one readout.
type Key int

const (
	Host Key = iota
	Machine
	Kernel
	Distribution
	OperatingSystem
	DesktopEnvironment
	Packages
	Shell
	Terminal
	LocalIP
	Uptime
	Processor
	ProcessorLoad
	Memory
	Battery
	DiskSpace
	GPU

	numKeys
)

var keyInfo = [numKeys]struct {
	name  string
	label string
}{
	Host:               {"host", "Host"},
	Machine:            {"machine", "Machine"},
	Kernel:             {"kernel", "Kernel"},
	Distribution:       {"distribution", "Distro"},
	OperatingSystem:    {"operating_system", "OS"},
	DesktopEnvironment: {"desktop_environment", "DE"},
	Packages:           {"packages", "Packages"},
	Shell:              {"shell", "Shell"},
	Terminal:           {"terminal", "Terminal"},
	LocalIP:            {"local_ip", "Local IP"},
	Uptime:             {"uptime", "Uptime"},
	Processor:          {"processor", "CPU"},
	ProcessorLoad:      {"processor_load", "CPU Load"},
	Memory:             {"memory", "Memory"},
	Battery:            {"battery", "Battery"},
	DiskSpace:          {"disk_space", "Disk"},
	GPU:                {"gpu", "GPU"},
}

// String returns the configuration name of the key, e.g. "local_ip".
func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyInfo[k].name
}

// Label is the default short label shown in the report.
func (k Key) Label() string {
	if k < 0 || k >= numKeys {
		return k.String()
	}
	return keyInfo[k].label
}

// Title is a human readable name, e.g. "Desktop Environment".
func (k Key) Title() string {
	switch k {
	case LocalIP:
		return "Local IP"
	case GPU:
		return "GPU"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(k.String(), "_", " "))
}

// ParseKey accepts a key name case-insensitively, with '-' or '_'.
func ParseKey(s string) (Key, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for k := range numKeys {
		if keyInfo[k].name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown readout %q", s)
}

// ParseKeys parses every name, reporting the first unknown one.
func ParseKeys(names []string) ([]Key, error) {
	keys := make([]Key, 0, len(names))
	for _, n := range names {
		k, err := ParseKey(n)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// All returns every key in display order.
func All() []Key {
	keys := make([]Key, numKeys)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Names returns the configuration name of every key.
func Names() []string {
	names := make([]string, numKeys)
	for i := range names {
		names[i] = keyInfo[i].name
	}
	return names
}

// Select returns the keys to display. A non-empty show list is used as
// given, in its order, without duplicates. Otherwise every key except
// those in hide is returned.
func Select(show, hide []Key) []Key {
	if len(show) > 0 {
		out := make([]Key, 0, len(show))
		for _, k := range show {
			if !slices.Contains(out, k) {
				out = append(out, k)
			}
		}
		return out
	}
	return slices.DeleteFunc(All(), func(k Key) bool {
		return slices.Contains(hide, k)
	})
}
