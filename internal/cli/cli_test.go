// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/sysview/internal/ascii"
	"github.com/jeranaias/sysview/internal/config"
	"github.com/jeranaias/sysview/internal/readout"
	"github.com/jeranaias/sysview/internal/theme"
)

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		boolNames []string
		wantSub   string
		validate  func(t *testing.T, p *ArgParser)
	}{
		{
			name:    "subcommand only",
			args:    []string{"doctor"},
			wantSub: "doctor",
		},
		{
			name:    "flag with separate value",
			args:    []string{"--theme", "Helium"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "Helium", p.Flag("theme"))
				assert.True(t, p.HasValue("theme"))
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"--show=host,kernel"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "host,kernel", p.Flag("show"))
			},
		},
		{
			name:      "bool flag does not consume command",
			args:      []string{"--no-box", "doctor"},
			boolNames: []string{"no-box"},
			wantSub:   "doctor",
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("no-box"))
				assert.False(t, p.HasValue("no-box"))
			},
		},
		{
			name:      "explicit bool value",
			args:      []string{"--json=false"},
			boolNames: []string{"json"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("json"))
				assert.True(t, p.HasFlag("json"))
				assert.False(t, p.HasValue("json"))
			},
		},
		{
			name:      "invalid bool value is kept as a value",
			args:      []string{"--json=maybe"},
			boolNames: []string{"json"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.HasValue("json"))
				assert.Equal(t, "maybe", p.Flag("json"))
			},
		},
		{
			name: "negative number is a value",
			args: []string{"--spacing", "-1"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "-1", p.Flag("spacing"))
			},
		},
		{
			name: "value flag followed by flag is boolean",
			args: []string{"--theme", "--json"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.HasValue("theme"))
				assert.True(t, p.BoolFlag("theme"))
			},
		},
		{
			name:    "terminator makes the rest positional",
			args:    []string{"render", "--", "--json", "x"},
			wantSub: "render",
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.HasFlag("json"))
				assert.Equal(t, []string{"--json", "x"}, p.PositionalFrom(1))
				assert.Equal(t, 3, p.PositionalCount())
			},
		},
		{
			name: "names are ordered without duplicates",
			args: []string{"--theme", "a", "--json", "--theme", "b"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, []string{"theme", "json"}, p.Names())
				assert.Equal(t, "b", p.Flag("theme"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewArgParser(tt.args, tt.boolNames...)
			assert.Equal(t, tt.wantSub, parser.Subcommand())
			if tt.validate != nil {
				tt.validate(t, parser)
			}
		})
	}
}

func TestArgParser_EmptyArgs(t *testing.T) {
	p := NewArgParser([]string{})
	assert.Equal(t, "", p.Subcommand())
	assert.Equal(t, 0, p.PositionalCount())
	assert.Equal(t, "", p.Positional(0))
	assert.Empty(t, p.PositionalFrom(1))
	assert.Empty(t, p.Names())
}

func TestArgParser_FlagOrDefault(t *testing.T) {
	p := NewArgParser([]string{"--palette", "dark"})
	assert.Equal(t, "dark", p.FlagOrDefault("palette", "none"))
	assert.Equal(t, "Hydrogen", p.FlagOrDefault("theme", "Hydrogen"))
}

func TestArgParser_FlagInt(t *testing.T) {
	p := NewArgParser([]string{"--padding", "3", "--spacing", "abc"})

	n, err := p.FlagInt("padding")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = p.FlagInt("spacing")
	assert.Error(t, err)

	_, err = p.FlagInt("missing")
	assert.Error(t, err)
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"YES", true, false},
		{" on ", true, false},
		{"1", true, false},
		{"false", false, false},
		{"n", false, false},
		{"off", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntWithValidation(t *testing.T) {
	n, err := ParseIntWithValidation("4", "spacing")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = ParseIntWithValidation("0", "spacing")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, bad := range []string{"", "x", "-2"} {
		_, err := ParseIntWithValidation(bad, "spacing")
		assert.Error(t, err, "input %q", bad)
	}
}

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{nil, CmdRender},
		{[]string{"render"}, CmdRender},
		{[]string{"show"}, CmdRender},
		{[]string{"doctor"}, CmdDoctor},
		{[]string{"diag"}, CmdDoctor},
		{[]string{"THEMES"}, CmdThemes},
		{[]string{"keys"}, CmdReadouts},
		{[]string{"config"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"-h"}, CmdHelp},
		{[]string{"-v"}, CmdVersion},
		{[]string{"--doctor"}, CmdDoctor},
		{[]string{"--list-themes"}, CmdThemes},
		{[]string{"--list-readouts"}, CmdReadouts},
		{[]string{"--export-config"}, CmdConfig},
		{[]string{"--ascii-artists"}, CmdArtists},
		{[]string{"artists"}, CmdArtists},
		{[]string{"--no-box", "doctor"}, CmdDoctor},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cmd, _, err := ParseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd, "got %s", cmd)
		})
	}
}

func TestParseArgs_Flags(t *testing.T) {
	cmd, args, err := ParseArgs([]string{
		"-t", "Helium",
		"--show", "host, kernel,memory",
		"--memory-percentage",
		"--disks=/,/home",
		"--interface", "eth0",
		"--color", "#ff00ff",
		"--separator-color", "red",
		"--no-ascii",
		"--bar",
		"--palette", "dark",
		"--spacing", "0",
		"--padding=4",
		"--box-title", "",
		"--json",
		"--config", "/tmp/sysview.toml",
		"--write",
	})
	require.NoError(t, err)
	assert.Equal(t, CmdRender, cmd)

	assert.Equal(t, "Helium", args.Theme)
	assert.Equal(t, []string{"host", "kernel", "memory"}, args.Show)
	assert.True(t, args.MemoryPercentage)
	assert.False(t, args.DiskPercentage)
	assert.Equal(t, []string{"/", "/home"}, args.Disks)
	assert.Equal(t, "eth0", args.Interface)
	assert.Equal(t, "#ff00ff", args.KeyColor)
	assert.Equal(t, "red", args.SeparatorColor)
	assert.True(t, args.NoASCII)
	assert.True(t, args.Bar)
	assert.Equal(t, "dark", args.Palette)
	assert.True(t, args.JSON)
	assert.Equal(t, "/tmp/sysview.toml", args.ConfigPath)
	assert.True(t, args.Write)

	require.NotNil(t, args.Spacing)
	assert.Equal(t, 0, *args.Spacing)
	require.NotNil(t, args.Padding)
	assert.Equal(t, 4, *args.Padding)
	require.NotNil(t, args.BoxTitle)
	assert.Equal(t, "", *args.BoxTitle)
}

func TestParseArgs_UnsetOptionalsStayNil(t *testing.T) {
	_, args, err := ParseArgs([]string{"--no-box"})
	require.NoError(t, err)
	assert.Nil(t, args.Spacing)
	assert.Nil(t, args.Padding)
	assert.Nil(t, args.BoxTitle)
	assert.Empty(t, args.Show)
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"unknown flag", []string{"--frobnicate"}, "flag"},
		{"bool flag with value", []string{"--json=maybe"}, "--json"},
		{"value flag without value", []string{"--theme"}, "--theme"},
		{"value flag followed by flag", []string{"--palette", "--bar"}, "--palette"},
		{"negative spacing", []string{"--spacing", "-1"}, "--spacing"},
		{"non-numeric padding", []string{"--padding", "wide"}, "--padding"},
		{"unknown command", []string{"launch"}, "command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseArgs(tt.args)
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.field, valErr.Field)
			assert.Equal(t, ExitUsageError, GetExitCode(err))
		})
	}
}

func TestArgs_ConfigOverrides(t *testing.T) {
	_, args, err := ParseArgs([]string{
		"--theme", "Lithium", "--hide", "gpu", "--long-uptime",
		"--disk-percentage", "--physical-cores", "--disks", "/",
	})
	require.NoError(t, err)

	o := args.ConfigOverrides()
	assert.Equal(t, "Lithium", o.Theme)
	assert.Equal(t, []string{"gpu"}, o.Hide)
	assert.True(t, o.LongUptime)
	assert.True(t, o.DiskSpacePercentage)
	assert.True(t, o.PhysicalCores)
	assert.Equal(t, []string{"/"}, o.Disks)

	cfg := config.Default()
	cfg.Merge(o)
	assert.Equal(t, "Lithium", cfg.Theme)
	assert.True(t, cfg.LongUptime)
}

func TestArgs_ThemeOverrides(t *testing.T) {
	_, args, err := ParseArgs([]string{
		"--random-color", "--random-sep-color", "--no-color",
		"--small-ascii", "--no-box", "--box-title", " hi ", "--spacing", "3",
	})
	require.NoError(t, err)

	o := args.ThemeOverrides()
	assert.True(t, o.RandomKeyColor)
	assert.True(t, o.RandomSeparatorColor)
	assert.True(t, o.NoColor)
	assert.True(t, o.SmallASCII)
	assert.True(t, o.NoBox)
	require.NotNil(t, o.BoxTitle)
	assert.Equal(t, " hi ", *o.BoxTitle)
	require.NotNil(t, o.Spacing)
	assert.Equal(t, 3, *o.Spacing)
	assert.Nil(t, o.Padding)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "doctor", CmdDoctor.String())
	assert.Equal(t, "render", CmdRender.String())
	assert.Equal(t, "command(99)", Command(99).String())
}

func TestUsage(t *testing.T) {
	u := Usage()
	assert.Contains(t, u, "sysview doctor")
	assert.Contains(t, u, "Version: "+Version)
	assert.NotContains(t, u, "%!")
}

// =============================================================================
// ERROR TESTS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"validation", &ValidationError{Field: "flag"}, ExitUsageError},
		{"wrapped validation", fmt.Errorf("parse: %w", &ValidationError{Field: "flag"}), ExitUsageError},
		{"config validate", config.ValidateErrors{{Field: "show", Message: "x"}}, ExitConfigError},
		{"config field", config.ValidationError{Field: "show", Message: "x"}, ExitConfigError},
		{"theme conflict", &theme.ConfigError{Field: "color", Reason: "x"}, ExitConfigError},
		{"toml syntax", fmt.Errorf("load: %w", toml.ParseError{Message: "bad"}), ExitConfigError},
		{"theme not found", fmt.Errorf("%w: Neon", theme.ErrThemeNotFound), ExitConfigError},
		{"config load", NewCommandError("config", "load", "unreadable", errors.New("eacces")), ExitConfigError},
		{"doctor failure", NewCommandError("doctor", "check", "1 check(s) failed", nil), ExitGeneralError},
		{"reported doctor failure", &ReportedError{Err: NewCommandError("doctor", "check", "x", nil)}, ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("disk full")
	err := NewCommandError("config", "export", "could not encode", inner)
	assert.Equal(t, "config export failed: could not encode: disk full", err.Error())
	assert.ErrorIs(t, err, inner)

	err = NewCommandError("doctor", "check", "2 check(s) failed", nil)
	assert.Equal(t, "doctor check failed: 2 check(s) failed", err.Error())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "--spacing", Value: "x", Reason: "must be a non-negative integer", Example: "sysview --spacing 2"}
	assert.Equal(t, "invalid --spacing: must be a non-negative integer (got: x)\nExample: sysview --spacing 2", err.Error())
}

func TestDisplayError_Text(t *testing.T) {
	var stderr, stdout bytes.Buffer
	displayError(&stderr, &stdout, errors.New("boom"), false)
	assert.Contains(t, stderr.String(), "Error:")
	assert.Contains(t, stderr.String(), "boom")
	assert.Empty(t, stdout.String())
}

func TestDisplayError_SkipsReported(t *testing.T) {
	var stderr, stdout bytes.Buffer
	displayError(&stderr, &stdout, &ReportedError{Err: errors.New("boom")}, true)
	displayError(&stderr, &stdout, &ReportedError{Err: errors.New("boom")}, false)
	displayError(&stderr, &stdout, nil, false)
	assert.Empty(t, stderr.String())
	assert.Empty(t, stdout.String())
}

func TestDisplayError_JSON(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
		check    func(t *testing.T, out map[string]any)
	}{
		{
			name:     "validation",
			err:      &ValidationError{Field: "--theme", Reason: "requires a value", Example: "sysview --theme <value>"},
			wantType: "validation_error",
			check: func(t *testing.T, out map[string]any) {
				assert.Equal(t, "--theme", out["field"])
				assert.Equal(t, "sysview --theme <value>", out["example"])
			},
		},
		{
			name:     "config",
			err:      config.ValidateErrors{{Field: "show", Message: "cannot be combined with hide"}},
			wantType: "config_error",
			check: func(t *testing.T, out map[string]any) {
				fields, ok := out["fields"].([]any)
				require.True(t, ok)
				require.Len(t, fields, 1)
				assert.Equal(t, "show", fields[0].(map[string]any)["field"])
			},
		},
		{
			name:     "theme",
			err:      &theme.ConfigError{Theme: "Neon", Field: "key_color", Reason: "conflicts with randomize"},
			wantType: "theme_error",
			check: func(t *testing.T, out map[string]any) {
				assert.Equal(t, "Neon", out["theme"])
				assert.Equal(t, "key_color", out["field"])
			},
		},
		{
			name:     "command",
			err:      NewCommandError("render", "flush", "terminal closed", errors.New("EPIPE")),
			wantType: "command_error",
			check: func(t *testing.T, out map[string]any) {
				assert.Equal(t, "render", out["command"])
				assert.Equal(t, "EPIPE", out["underlying_error"])
			},
		},
		{
			name:     "generic",
			err:      errors.New("boom"),
			wantType: "generic_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr, stdout bytes.Buffer
			displayError(&stderr, &stdout, tt.err, true)
			assert.Empty(t, stderr.String())

			var out map[string]any
			require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
			assert.Equal(t, false, out["success"])
			assert.Equal(t, tt.err.Error(), out["error"])
			assert.Equal(t, tt.wantType, out["error_type"])
			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

// =============================================================================
// TERMINAL TESTS
// =============================================================================

func TestColorsFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		tty  bool
		want bool
	}{
		{"tty", nil, true, true},
		{"pipe", nil, false, false},
		{"no color on tty", map[string]string{"NO_COLOR": "1"}, true, false},
		{"force color on pipe", map[string]string{"FORCE_COLOR": "1"}, false, true},
		{"no color beats force", map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "1"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			assert.Equal(t, tt.want, colorsFromEnv(getenv, tt.tty))
		})
	}
}

// =============================================================================
// HANDLER TESTS
// =============================================================================

type fakeCollector map[readout.Key]readout.Readout

func (f fakeCollector) Collect(_ context.Context, keys []readout.Key) []readout.Readout {
	out := make([]readout.Readout, len(keys))
	for i, k := range keys {
		ro, ok := f[k]
		if !ok {
			ro = readout.Readout{Value: readout.Value{Text: "ok"}}
		}
		ro.Key = k
		out[i] = ro
	}
	return out
}

func testEnv(cfg *config.Config, c fakeCollector) (*Env, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Env{
		Config:    cfg,
		Collector: c,
		Terminal:  TerminalCapabilities{IsStdoutTTY: true, Width: 120, Height: 40, ColorProfile: "ansi256"},
		Stdout:    &stdout,
		Stderr:    &stderr,
	}, &stdout, &stderr
}

func decodeResponse(t *testing.T, b *bytes.Buffer, data any) JSONResponse {
	t.Helper()
	resp := JSONResponse{Data: data}
	require.NoError(t, json.Unmarshal(b.Bytes(), &resp))
	return resp
}

func TestCheckStatus(t *testing.T) {
	assert.Equal(t, "pass", CheckPass.String())
	assert.Equal(t, "warn", CheckWarn.String())
	assert.Equal(t, "fail", CheckFail.String())
	assert.Equal(t, "unknown", CheckStatus(7).String())
	assert.Contains(t, CheckFail.Symbol(), "FAIL")
}

func TestHealthCheck_Render(t *testing.T) {
	pass := &HealthCheck{Name: "Host", Status: CheckPass, Message: "box", Fix: "ignored"}
	assert.NotContains(t, pass.Render(8), "ignored")
	assert.Contains(t, pass.Render(8), "box")

	fail := &HealthCheck{Name: "GPU", Status: CheckFail, Message: "unavailable", Fix: "Hide it"}
	out := fail.Render(8)
	assert.Contains(t, out, "[FAIL]")
	assert.Contains(t, out, "-> Hide it")
}

func TestHandleDoctor_AllPass(t *testing.T) {
	env, stdout, _ := testEnv(config.Default(), fakeCollector{})

	err := HandleDoctor(context.Background(), env, Args{})
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "sysview Doctor")
	assert.Contains(t, out, "No configuration file")
	assert.Contains(t, out, "Hydrogen (built-in)")
	assert.Contains(t, out, "120x40")
	assert.NotContains(t, out, "failed")
}

func TestHandleDoctor_ReadoutFailure(t *testing.T) {
	env, stdout, _ := testEnv(config.Default(), fakeCollector{
		readout.Battery: {Err: readout.ErrUnsupported},
	})

	err := HandleDoctor(context.Background(), env, Args{})
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "doctor", cmdErr.Command)
	assert.Equal(t, ExitGeneralError, GetExitCode(err))

	out := stdout.String()
	assert.Contains(t, out, "sysview --hide battery")
	assert.Contains(t, out, "1 failed")
}

func TestHandleDoctor_JSON(t *testing.T) {
	env, stdout, _ := testEnv(&config.Config{Theme: "Neon"}, fakeCollector{
		readout.GPU: {Err: errors.New("no lspci")},
	})
	env.Terminal = TerminalCapabilities{}

	err := HandleDoctor(context.Background(), env, Args{JSON: true})
	var reported *ReportedError
	require.ErrorAs(t, err, &reported)

	var data DoctorData
	resp := decodeResponse(t, stdout, &data)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "doctor", resp.Command)

	assert.Equal(t, 1, data.Summary.Failed)
	assert.Equal(t, 2, data.Summary.Warned) // theme and terminal
	assert.False(t, data.Summary.Healthy)
	assert.Len(t, data.Checks, 3+len(readout.All()))

	byName := make(map[string]DoctorCheck)
	for _, c := range data.Checks {
		byName[c.Name] = c
	}
	assert.Equal(t, "warn", byName["Theme"].Status)
	assert.Equal(t, "fail", byName[readout.GPU.Title()].Status)
	assert.Contains(t, byName[readout.GPU.Title()].Message, "no lspci")
}

func TestHandleDoctor_ThemeConflictFails(t *testing.T) {
	env, stdout, _ := testEnv(config.Default(), fakeCollector{})

	err := HandleDoctor(context.Background(), env, Args{KeyColor: "red", RandomColor: true, JSON: true})
	require.Error(t, err)

	var data DoctorData
	decodeResponse(t, stdout, &data)
	assert.Equal(t, "fail", data.Checks[1].Status)
	assert.Equal(t, "Theme", data.Checks[1].Name)
}

func TestHandleRender_JSON(t *testing.T) {
	cfg := &config.Config{Theme: "Neon", Show: []string{"host", "memory", "gpu"}}
	env, stdout, stderr := testEnv(cfg, fakeCollector{
		readout.Host:   {Value: readout.Value{Text: "box"}},
		readout.Memory: {Value: readout.Value{Text: "2 GiB / 8 GiB", Ratio: 0.25, HasRatio: true}},
		readout.GPU:    {Err: readout.ErrUnsupported},
	})

	require.NoError(t, HandleRender(context.Background(), env, Args{JSON: true}))
	assert.Contains(t, stderr.String(), `theme "Neon" not found`)

	var data RenderData
	resp := decodeResponse(t, stdout, &data)
	assert.True(t, resp.Success)
	assert.Equal(t, theme.DefaultName, data.Theme)
	require.Len(t, data.Readouts, 3)

	assert.Equal(t, ReadoutData{Key: "host", Label: "Host", Value: "box"}, data.Readouts[0])
	require.NotNil(t, data.Readouts[1].Ratio)
	assert.InDelta(t, 0.25, *data.Readouts[1].Ratio, 1e-9)
	assert.Equal(t, readout.Unavailable, data.Readouts[2].Value)
	assert.Equal(t, readout.ErrUnsupported.Error(), data.Readouts[2].Error)
	assert.Nil(t, data.Readouts[2].Ratio)
}

func TestHandleThemes(t *testing.T) {
	env, stdout, _ := testEnv(config.Default(), fakeCollector{})

	require.NoError(t, HandleThemes(env, Args{JSON: true}))

	var data []ThemeData
	decodeResponse(t, stdout, &data)
	require.NotEmpty(t, data)

	active := 0
	for _, d := range data {
		assert.True(t, d.Builtin)
		if d.Active {
			active++
			assert.Equal(t, theme.DefaultName, d.Name)
		}
	}
	assert.Equal(t, 1, active)

	stdout.Reset()
	require.NoError(t, HandleThemes(env, Args{Theme: "helium"}))
	assert.Contains(t, stdout.String(), "Helium")
	assert.Contains(t, stdout.String(), "built-in")
}

func TestHandleReadouts(t *testing.T) {
	env, stdout, _ := testEnv(&config.Config{Show: []string{"host", "kernel"}}, fakeCollector{})

	require.NoError(t, HandleReadouts(env, Args{JSON: true}))

	var data []KeyData
	decodeResponse(t, stdout, &data)
	require.Len(t, data, len(readout.All()))
	for _, k := range data {
		assert.Equal(t, k.Key == "host" || k.Key == "kernel", k.Shown, k.Key)
	}

	stdout.Reset()
	require.NoError(t, HandleReadouts(env, Args{}))
	assert.Contains(t, stdout.String(), "local_ip")
	assert.Contains(t, stdout.String(), "(hidden)")
}

func TestHandleExportConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Hide = []string{"gpu"}
	env, stdout, _ := testEnv(cfg, fakeCollector{})

	require.NoError(t, HandleExportConfig(env, Args{}))

	var decoded config.Config
	_, err := toml.Decode(stdout.String(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultName, decoded.Theme)
	assert.Equal(t, []string{"gpu"}, decoded.Hide)

	stdout.Reset()
	require.NoError(t, HandleExportConfig(env, Args{JSON: true}))
	var data config.Config
	resp := decodeResponse(t, stdout, &data)
	assert.Equal(t, "config", resp.Command)
	assert.Equal(t, []string{"gpu"}, data.Hide)
}

func TestHandleExportConfig_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysview.toml")
	cfg := config.Default()
	cfg.Theme = "Helium"
	env, stdout, _ := testEnv(cfg, fakeCollector{})

	require.NoError(t, HandleExportConfig(env, Args{Write: true, ConfigPath: path}))
	assert.Contains(t, stdout.String(), path)

	loaded, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "Helium", loaded.Theme)
}

func TestHandleArtists(t *testing.T) {
	env, stdout, _ := testEnv(config.Default(), fakeCollector{})

	require.NoError(t, Run(context.Background(), CmdArtists, env, Args{JSON: true}))

	var data []ArtistData
	resp := decodeResponse(t, stdout, &data)
	assert.Equal(t, "artists", resp.Command)
	require.Len(t, data, len(ascii.Systems()))
	for _, a := range data {
		assert.NotEmpty(t, a.Artist, a.System)
	}

	stdout.Reset()
	require.NoError(t, HandleArtists(env, Args{}))
	assert.Contains(t, stdout.String(), "ASCII Artists")
	assert.Contains(t, stdout.String(), "linux")
}

func TestHandleVersion(t *testing.T) {
	env, stdout, _ := testEnv(config.Default(), fakeCollector{})

	require.NoError(t, HandleVersion(env, Args{}))
	assert.Contains(t, stdout.String(), "sysview version "+Version)

	stdout.Reset()
	require.NoError(t, HandleVersion(env, Args{JSON: true}))
	var data VersionData
	decodeResponse(t, stdout, &data)
	assert.Equal(t, Version, data.Version)
	assert.NotEmpty(t, data.GoVersion)
}

func TestRun_Help(t *testing.T) {
	env, stdout, _ := testEnv(config.Default(), fakeCollector{})
	require.NoError(t, Run(context.Background(), CmdHelp, env, Args{}))
	assert.Contains(t, stdout.String(), "Usage:")
}

func TestJSONResponse(t *testing.T) {
	resp := NewJSONErrorResponse("render", errors.New("boom"))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "boom", *resp.Error)
	assert.Contains(t, resp.String(), `"command": "render"`)
}
