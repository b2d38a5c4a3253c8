// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - Doctor command implementation for sysview.
//
// Command: doctor
// Short:   Probe every readout and explain what fails
// Aliases: diag, --doctor
//
// Examples:
//   sysview doctor               Run all checks
//   sysview doctor --json        Check results in JSON
//
// Checks Performed:
//   1. Config      - Where the configuration came from
//   2. Theme       - The configured theme resolves and builds
//   3. Terminal    - stdout is a terminal and which colors it supports
//   4. Readouts    - One check per readout key, with the failure reason
//
// Exit Codes:
//   0   All readouts available
//   1   One or more readouts failed

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/sysview/internal/readout"
	"github.com/jeranaias/sysview/internal/theme"
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates the check passed with warnings.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the string representation of the check status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	case CheckFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Symbol returns the styled marker for the check status.
func (s CheckStatus) Symbol() string {
	return RenderStatus(s.String())
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // Suggested fix command or instruction
}

// Render returns a formatted line for the check. nameWidth pads the name
// column.
func (c *HealthCheck) Render(nameWidth int) string {
	symbol := c.Status.Symbol()
	pad := strings.Repeat(" ", max(6-ansi.StringWidth(symbol), 0))
	result := fmt.Sprintf("%s%s %s %s", symbol, pad, RenderLabel(c.Name, nameWidth), ValueStyle.Render(c.Message))
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + strings.Repeat(" ", 7) + DimStyle.Render("-> "+c.Fix)
	}
	return result
}

// =============================================================================
// HANDLE DOCTOR
// =============================================================================

// HandleDoctor probes every readout, not only the configured ones, and
// reports each as a check. It returns an error when any readout failed.
func HandleDoctor(ctx context.Context, env *Env, args Args) error {
	checks := []*HealthCheck{
		checkConfig(env),
		checkTheme(env, args),
		checkTerminal(env),
	}
	readouts := env.Collector.Collect(ctx, readout.All())
	for _, ro := range readouts {
		checks = append(checks, checkReadout(ro))
	}

	var summary DoctorSummary
	for _, check := range checks {
		switch check.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarn:
			summary.Warned++
		case CheckFail:
			summary.Failed++
		}
	}
	summary.Healthy = summary.Failed == 0

	var failure error
	if summary.Failed > 0 {
		failure = NewCommandError("doctor", "check",
			fmt.Sprintf("%d check(s) failed", summary.Failed), nil)
	}

	if args.JSON {
		if err := writeDoctorJSON(env.Stdout, checks, summary, env.Terminal); err != nil {
			return err
		}
		if failure != nil {
			return &ReportedError{Err: failure}
		}
		return nil
	}

	writeDoctor(env.Stdout, checks, summary)
	return failure
}

func writeDoctor(w io.Writer, checks []*HealthCheck, summary DoctorSummary) {
	nameWidth := 0
	for _, c := range checks {
		nameWidth = max(nameWidth, runewidth.StringWidth(c.Name))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, TitleStyle.Render("sysview Doctor"))
	fmt.Fprintln(w, RenderSeparator(41))
	for _, check := range checks {
		fmt.Fprintln(w, check.Render(nameWidth))
	}
	fmt.Fprintln(w, RenderSeparator(41))

	parts := []string{fmt.Sprintf("%d passed", summary.Passed)}
	if summary.Warned > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d warning", summary.Warned)))
	}
	if summary.Failed > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d failed", summary.Failed)))
	}
	fmt.Fprintln(w, DimStyle.Render(strings.Join(parts, ", ")))
	fmt.Fprintln(w)
}

// writeDoctorJSON outputs doctor results in the JSON envelope.
func writeDoctorJSON(w io.Writer, checks []*HealthCheck, summary DoctorSummary, term TerminalCapabilities) error {
	jsonChecks := make([]DoctorCheck, 0, len(checks))
	for _, check := range checks {
		jsonChecks = append(jsonChecks, DoctorCheck{
			Name:    check.Name,
			Status:  check.Status.String(),
			Message: check.Message,
			Fix:     check.Fix,
		})
	}

	resp := NewJSONResponse("doctor", DoctorData{
		Checks:   jsonChecks,
		Summary:  summary,
		Terminal: term,
	})

	// Failures still carry the data.
	if summary.Failed > 0 {
		errMsg := fmt.Sprintf("%d check(s) failed", summary.Failed)
		resp.Success = false
		resp.Error = &errMsg
	}
	return resp.Write(w)
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

func checkConfig(env *Env) *HealthCheck {
	check := &HealthCheck{Name: "Config", Status: CheckPass}
	if env.ConfigPath == "" {
		check.Message = "No configuration file, using defaults"
		return check
	}
	check.Message = "Loaded " + env.ConfigPath
	return check
}

func checkTheme(env *Env, args Args) *HealthCheck {
	check := &HealthCheck{Name: "Theme"}

	f, err := theme.Resolve(env.Config.Theme, env.ThemeDirs)
	switch {
	case errors.Is(err, theme.ErrThemeNotFound):
		check.Status = CheckWarn
		check.Message = fmt.Sprintf("Theme %q not found, %s is used instead", env.Config.Theme, theme.DefaultName)
		check.Fix = "Run: sysview themes"
		return check
	case err != nil:
		check.Status = CheckFail
		check.Message = err.Error()
		check.Fix = "Fix the theme file or choose another theme"
		return check
	}

	if _, err := theme.Build(f, args.ThemeOverrides(), nil); err != nil {
		check.Status = CheckFail
		check.Message = err.Error()
		return check
	}

	check.Status = CheckPass
	if f.Path != "" {
		check.Message = fmt.Sprintf("%s (%s)", f.Name, f.Path)
	} else {
		check.Message = f.Name + " (built-in)"
	}
	return check
}

func checkTerminal(env *Env) *HealthCheck {
	caps := env.Terminal
	check := &HealthCheck{Name: "Terminal"}
	if !caps.IsStdoutTTY {
		check.Status = CheckWarn
		check.Message = "stdout is not a terminal, the panel is drawn at the top of the output"
		return check
	}
	check.Status = CheckPass
	check.Message = fmt.Sprintf("%dx%d, %s colors", caps.Width, caps.Height, caps.ColorProfile)
	return check
}

func checkReadout(ro readout.Readout) *HealthCheck {
	check := &HealthCheck{Name: ro.Key.Title()}
	if ro.OK() {
		check.Status = CheckPass
		check.Message = ro.Value.Text
		return check
	}
	check.Status = CheckFail
	check.Message = fmt.Sprintf("%s: %v", readout.Unavailable, ro.Err)
	check.Fix = "Hide it with: sysview --hide " + ro.Key.String()
	return check
}
