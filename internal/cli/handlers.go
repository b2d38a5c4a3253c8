// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/sysview/internal/ascii"
	"github.com/jeranaias/sysview/internal/config"
	"github.com/jeranaias/sysview/internal/readout"
	"github.com/jeranaias/sysview/internal/render"
	"github.com/jeranaias/sysview/internal/term"
	"github.com/jeranaias/sysview/internal/theme"
)

// Env is the state every handler works with.
type Env struct {
	Config *config.Config
	// ConfigPath is the file Config was loaded from, empty for defaults.
	ConfigPath string
	ThemeDirs  []string
	Collector  render.Collector
	Terminal   TerminalCapabilities

	Stdout io.Writer
	Stderr io.Writer
	// Backend draws the rendered panel. Nil uses the ANSI backend on
	// os.Stdout.
	Backend term.Backend
}

// NewEnv returns an Env for cfg using the real system and terminal.
func NewEnv(cfg *config.Config, configPath string) *Env {
	return &Env{
		Config:     cfg,
		ConfigPath: configPath,
		ThemeDirs:  config.ThemeDirs(),
		Collector:  readout.NewCollector(readout.NewSystem(), cfg.ReadoutOptions()),
		Terminal:   GetTerminalCapabilities(),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// Run dispatches cmd.
func Run(ctx context.Context, cmd Command, env *Env, args Args) error {
	switch cmd {
	case CmdDoctor:
		return HandleDoctor(ctx, env, args)
	case CmdThemes:
		return HandleThemes(env, args)
	case CmdReadouts:
		return HandleReadouts(env, args)
	case CmdConfig:
		return HandleExportConfig(env, args)
	case CmdArtists:
		return HandleArtists(env, args)
	case CmdVersion:
		return HandleVersion(env, args)
	case CmdHelp:
		fmt.Fprint(env.Stdout, Usage())
		return nil
	default:
		return HandleRender(ctx, env, args)
	}
}

// =============================================================================
// RENDER
// =============================================================================

// HandleRender draws the panel below the cursor. With --json it prints
// the readouts instead.
func HandleRender(ctx context.Context, env *Env, args Args) error {
	r := &render.Renderer{
		Config:    env.Config,
		Overrides: args.ThemeOverrides(),
		ThemeDirs: env.ThemeDirs,
		Collector: env.Collector,
	}

	// Warn before drawing so the message does not land inside the panel.
	if _, err := theme.Resolve(env.Config.Theme, env.ThemeDirs); errors.Is(err, theme.ErrThemeNotFound) {
		fmt.Fprintf(env.Stderr, "%s theme %q not found, using %s\n",
			WarningStyle.Render("Warning:"), env.Config.Theme, theme.DefaultName)
	}

	if args.JSON {
		return renderJSON(ctx, r, env)
	}

	b := env.Backend
	if b == nil {
		b = term.NewANSI(os.Stdout, os.Stdin, GetColorProfile())
	}
	if _, err := r.Run(ctx, b); err != nil {
		return err
	}
	return nil
}

func renderJSON(ctx context.Context, r *render.Renderer, env *Env) error {
	th, _, err := r.Theme()
	if err != nil {
		return err
	}
	readouts := env.Collector.Collect(ctx, env.Config.Keys())

	data := RenderData{Theme: th.Name, Readouts: make([]ReadoutData, 0, len(readouts))}
	for _, ro := range readouts {
		rd := ReadoutData{
			Key:   ro.Key.String(),
			Label: th.Label(ro.Key.String(), ro.Key.Label()),
			Value: ro.Text(),
		}
		if ro.Err != nil {
			rd.Error = ro.Err.Error()
		} else if ro.Value.HasRatio {
			ratio := ro.Value.Ratio
			rd.Ratio = &ratio
		}
		data.Readouts = append(data.Readouts, rd)
	}
	return NewJSONResponse("render", data).Write(env.Stdout)
}

// =============================================================================
// LISTS
// =============================================================================

// HandleThemes lists built-in and custom themes and marks the active one.
func HandleThemes(env *Env, args Args) error {
	entries := theme.List(env.ThemeDirs)
	active := env.Config.Theme
	if args.Theme != "" {
		active = args.Theme
	}

	data := make([]ThemeData, 0, len(entries))
	for _, e := range entries {
		data = append(data, ThemeData{
			Name:    e.Name,
			Builtin: e.Builtin,
			Path:    e.Path,
			Active:  strings.EqualFold(e.Name, active),
		})
	}

	if args.JSON {
		return NewJSONResponse("themes", data).Write(env.Stdout)
	}

	width := 0
	for _, t := range data {
		width = max(width, runewidth.StringWidth(t.Name))
	}
	fmt.Fprintln(env.Stdout, TitleStyle.Render("Themes"))
	for _, t := range data {
		marker := "  "
		if t.Active {
			marker = SuccessStyle.Render("* ")
		}
		source := "built-in"
		if !t.Builtin {
			source = t.Path
		}
		fmt.Fprintf(env.Stdout, "%s%s %s\n", marker, RenderLabel(t.Name, width), DimStyle.Render(source))
	}
	return nil
}

// HandleReadouts lists every readout key and whether the current
// configuration shows it.
func HandleReadouts(env *Env, args Args) error {
	shown := env.Config.Keys()

	data := make([]KeyData, 0)
	for _, k := range readout.All() {
		data = append(data, KeyData{
			Key:   k.String(),
			Label: k.Label(),
			Title: k.Title(),
			Shown: slices.Contains(shown, k),
		})
	}

	if args.JSON {
		return NewJSONResponse("readouts", data).Write(env.Stdout)
	}

	width := 0
	for _, k := range data {
		width = max(width, len(k.Key))
	}
	fmt.Fprintln(env.Stdout, TitleStyle.Render("Readouts"))
	for _, k := range data {
		line := fmt.Sprintf("  %s %s", RenderLabel(k.Key, width), ValueStyle.Render(k.Title))
		if !k.Shown {
			line += " " + DimStyle.Render("(hidden)")
		}
		fmt.Fprintln(env.Stdout, line)
	}
	return nil
}

// HandleArtists credits the authors of the built-in ascii art.
func HandleArtists(env *Env, args Args) error {
	credits := ascii.Artists()
	data := make([]ArtistData, 0, len(credits))
	for _, c := range credits {
		data = append(data, ArtistData{System: c.System, Artist: c.Artist})
	}

	if args.JSON {
		return NewJSONResponse("artists", data).Write(env.Stdout)
	}

	width := 0
	for _, a := range data {
		width = max(width, len(a.System))
	}
	fmt.Fprintln(env.Stdout, TitleStyle.Render("ASCII Artists"))
	for _, a := range data {
		fmt.Fprintf(env.Stdout, "  %s %s\n", RenderLabel(a.System, width), ValueStyle.Render(a.Artist))
	}
	return nil
}

// =============================================================================
// CONFIG AND VERSION
// =============================================================================

// HandleExportConfig prints the effective configuration, file and flags
// merged, as TOML (or JSON with --json). With --write it saves the
// configuration to the file it was loaded from, or the default path.
func HandleExportConfig(env *Env, args Args) error {
	if args.Write {
		return saveConfig(env, args)
	}
	if args.JSON {
		return NewJSONResponse("config", env.Config).Write(env.Stdout)
	}
	if err := env.Config.Encode(env.Stdout); err != nil {
		return NewCommandError("config", "export", "could not encode configuration", err)
	}
	return nil
}

func saveConfig(env *Env, args Args) error {
	path := args.ConfigPath
	if path == "" {
		path = env.ConfigPath
	}
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return NewCommandError("config", "write", "no configuration path", err)
		}
		path = p
	}
	if err := env.Config.Save(path); err != nil {
		return NewCommandError("config", "write", "could not save configuration", err)
	}

	if args.JSON {
		return NewJSONResponse("config", map[string]string{"path": path}).Write(env.Stdout)
	}
	fmt.Fprintf(env.Stdout, "%s %s\n", SuccessStyle.Render("Wrote"), path)
	return nil
}

// HandleVersion prints version information.
func HandleVersion(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		}).Write(env.Stdout)
	}
	writeVersion(env.Stdout)
	return nil
}
