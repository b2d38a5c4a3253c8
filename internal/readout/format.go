// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package readout

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatUptime renders d as "1d 4h 12m", or spelled out when long is set.
// Durations under a minute are shown in seconds.
func FormatUptime(d time.Duration, long bool) string {
	if d < time.Minute {
		s := int(d.Seconds())
		if long {
			return plural(s, "second")
		}
		return fmt.Sprintf("%ds", s)
	}

	days := int(d / (24 * time.Hour))
	hours := int(d/time.Hour) % 24
	minutes := int(d/time.Minute) % 60

	var parts []string
	add := func(n int, short, unit string) {
		if n == 0 {
			return
		}
		if long {
			parts = append(parts, plural(n, unit))
		} else {
			parts = append(parts, fmt.Sprintf("%d%s", n, short))
		}
	}
	add(days, "d", "day")
	add(hours, "h", "hour")
	add(minutes, "m", "minute")

	if long {
		return strings.Join(parts, ", ")
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// FormatUsage renders "used / total" in binary units with an optional
// percentage suffix.
func FormatUsage(used, total uint64, percent bool) string {
	s := humanize.IBytes(used) + " / " + humanize.IBytes(total)
	if percent && total > 0 {
		s += fmt.Sprintf(" (%d%%)", int(ratio(used, total)*100+0.5))
	}
	return s
}

func ratio(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return min(float64(used)/float64(total), 1)
}

// ParseOSRelease reads KEY=value pairs in os-release(5) format.
func ParseOSRelease(data string) map[string]string {
	out := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if uq, err := strconv.Unquote(v); err == nil {
			v = uq
		} else {
			v = strings.Trim(v, `"'`)
		}
		out[k] = v
	}
	return out
}

// PackageCount is the number of packages one manager reports.
type PackageCount struct {
	Manager string
	Count   int
}

// FormatPackages renders "1203 (pacman), 12 (flatpak)".
func FormatPackages(counts []PackageCount) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%d (%s)", c.Count, c.Manager))
	}
	return strings.Join(parts, ", ")
}

// countLines counts non-blank lines, skipping the first skip of them.
func countLines(out []byte, skip int) int {
	n := 0
	for _, l := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	return max(n-skip, 0)
}

// squash collapses runs of whitespace, as found in CPU model strings.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
