// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/jeranaias/sysview/internal/config"
	"github.com/jeranaias/sysview/internal/theme"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdRender Command = iota
	CmdDoctor
	CmdThemes
	CmdReadouts
	CmdConfig
	CmdArtists
	CmdVersion
	CmdHelp
)

var commandNames = map[Command]string{
	CmdRender:   "render",
	CmdDoctor:   "doctor",
	CmdThemes:   "themes",
	CmdReadouts: "readouts",
	CmdConfig:   "config",
	CmdArtists:  "artists",
	CmdVersion:  "version",
	CmdHelp:     "help",
}

func (c Command) String() string {
	if n, ok := commandNames[c]; ok {
		return n
	}
	return fmt.Sprintf("command(%d)", int(c))
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Verbose    bool
	JSON       bool   // Output in JSON format
	ConfigPath string // --config, replaces the default config file
	Write      bool   // config: save to the config file instead of printing

	// Readout selection
	Theme string
	Show  []string
	Hide  []string

	// Readout formatting
	LongUptime       bool
	LongShell        bool
	LongKernel       bool
	PhysicalCores    bool
	MemoryPercentage bool
	DiskPercentage   bool
	Interface        string
	Disks            []string

	// Theme overrides
	KeyColor       string
	SeparatorColor string
	RandomColor    bool
	RandomSepColor bool
	NoColor        bool
	NoASCII        bool
	SmallASCII     bool
	NoBox          bool
	BoxTitle       *string
	Bar            bool
	Palette        string
	Spacing        *int
	Padding        *int

	// Raw args (positional arguments after the command)
	Raw []string
}

const usageText = `sysview - system information, drawn beside your prompt

sysview probes the running system and prints a themed panel of readouts
next to an ascii logo, below the cursor, without clearing the screen.

Usage:
  sysview [flags]            Render the panel (default)
  sysview doctor             Check every readout and explain failures
  sysview themes             List built-in and custom themes
  sysview readouts           List readout keys
  sysview config             Print the effective configuration as TOML
  sysview config --write     Save it to the configuration file
  sysview artists            Credit the authors of the ascii art
  sysview version            Show version information
  sysview help               Show this help

Readouts:
  -t, --theme NAME           Theme to use (default: Hydrogen)
  --show KEYS                Comma separated readouts to show, in order
  --hide KEYS                Comma separated readouts to hide
  --long-uptime              Spell out uptime units
  --long-shell               Show the shell's full command line
  --long-kernel              Prefix the kernel release with its name
  --physical-cores           Count physical instead of logical cores
  --memory-percentage        Append the used percentage to memory
  --disk-percentage          Append the used percentage to disk space
  --disks PATHS              Comma separated mount points for disk space
  --interface NAME           Network interface for local IP

Appearance:
  --color COLOR              Readout key color (name, 0-255 or #rrggbb)
  --separator-color COLOR    Separator color
  --random-color             Pick a random key color
  --random-sep-color         Pick a random separator color
  --no-color                 Disable theme colors
  --no-ascii                 Hide the ascii logo
  --small-ascii              Prefer the small ascii logo
  --no-box                   Hide the box around the readouts
  --box-title TITLE          Replace the box title
  --bar                      Draw bars for percentage readouts
  --palette TYPE             Color palette: none, dark, light, full
  --spacing N                Spaces around the separator
  --padding N                Columns between logo and readouts

Global Flags:
  --config PATH              Configuration file (default: %s)
  --json                     Output in JSON format
  --verbose                  Log diagnostics to stderr
  -h, --help                 Show this help
  -v, --version              Show version information

Flag forms of commands:
  --doctor, --list-themes, --list-readouts, --export-config,
  --ascii-artists

Environment:
  SYSVIEW_CONFIG             Configuration file path
  SYSVIEW_THEME              Theme, overrides the config file
  SYSVIEW_SHOW, SYSVIEW_HIDE Readout selection, overrides the config file
  SYSVIEW_DEBUG=1            Same as --verbose
  NO_COLOR, FORCE_COLOR      Color output control

Exit Codes:
  0   Success
  1   General error (nothing rendered, readouts failed in doctor)
  2   Usage error
  3   Configuration or theme error

Version: %s
`

// Usage returns the usage/help text.
func Usage() string {
	path, err := config.ConfigPathTOML()
	if err != nil {
		path = "sysview.toml in the user config directory"
	}
	return fmt.Sprintf(usageText, path, Version)
}

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Print(Usage())
}

// PrintVersion prints version information.
func PrintVersion() {
	writeVersion(os.Stdout)
}

func writeVersion(w io.Writer) {
	fmt.Fprintf(w, "sysview version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// =============================================================================
// PARSING
// =============================================================================

// boolFlags never take a value.
var boolFlags = []string{
	"verbose", "json", "help", "version",
	"long-uptime", "long-shell", "long-kernel", "physical-cores",
	"memory-percentage", "disk-percentage",
	"random-color", "random-sep-color", "no-color",
	"no-ascii", "small-ascii", "no-box", "bar",
	"doctor", "list-themes", "list-readouts", "export-config", "ascii-artists", "write",
}

// valueFlags require a value.
var valueFlags = []string{
	"config", "theme", "show", "hide", "interface", "disks",
	"color", "separator-color", "box-title", "palette", "spacing", "padding",
}

var shortFlags = map[string]string{
	"-t": "--theme",
	"-h": "--help",
	"-v": "--version",
}

// flagCommands are flags that select a command.
var flagCommands = []struct {
	flag string
	cmd  Command
}{
	{"help", CmdHelp},
	{"version", CmdVersion},
	{"doctor", CmdDoctor},
	{"list-themes", CmdThemes},
	{"list-readouts", CmdReadouts},
	{"export-config", CmdConfig},
	{"ascii-artists", CmdArtists},
}

// Parse parses os.Args.
func Parse() (Command, Args, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name) and returns the
// command and its arguments. Unknown flags and commands and malformed
// values are reported as *ValidationError.
func ParseArgs(argv []string) (Command, Args, error) {
	expanded := make([]string, len(argv))
	for i, a := range argv {
		if long, ok := shortFlags[a]; ok {
			a = long
		}
		expanded[i] = a
	}
	p := NewArgParser(expanded, boolFlags...)

	var args Args
	for _, name := range p.Names() {
		switch {
		case slices.Contains(boolFlags, name):
			if p.HasValue(name) {
				return CmdHelp, args, &ValidationError{
					Field:  "--" + name,
					Value:  p.Flag(name),
					Reason: "expected a boolean",
				}
			}
		case slices.Contains(valueFlags, name):
			if !p.HasValue(name) {
				return CmdHelp, args, &ValidationError{
					Field:   "--" + name,
					Reason:  "requires a value",
					Example: fmt.Sprintf("sysview --%s <value>", name),
				}
			}
		default:
			return CmdHelp, args, &ValidationError{
				Field:   "flag",
				Value:   "--" + name,
				Reason:  "unknown flag",
				Example: "sysview --help",
			}
		}
	}

	// Global flags
	args.Verbose = p.BoolFlag("verbose")
	args.JSON = p.BoolFlag("json")
	args.ConfigPath = p.Flag("config")
	args.Write = p.BoolFlag("write")

	// Readouts
	args.Theme = p.Flag("theme")
	args.Show = config.SplitList(p.Flag("show"))
	args.Hide = config.SplitList(p.Flag("hide"))
	args.LongUptime = p.BoolFlag("long-uptime")
	args.LongShell = p.BoolFlag("long-shell")
	args.LongKernel = p.BoolFlag("long-kernel")
	args.PhysicalCores = p.BoolFlag("physical-cores")
	args.MemoryPercentage = p.BoolFlag("memory-percentage")
	args.DiskPercentage = p.BoolFlag("disk-percentage")
	args.Interface = p.Flag("interface")
	args.Disks = config.SplitList(p.Flag("disks"))

	// Appearance
	args.KeyColor = p.Flag("color")
	args.SeparatorColor = p.Flag("separator-color")
	args.RandomColor = p.BoolFlag("random-color")
	args.RandomSepColor = p.BoolFlag("random-sep-color")
	args.NoColor = p.BoolFlag("no-color")
	args.NoASCII = p.BoolFlag("no-ascii")
	args.SmallASCII = p.BoolFlag("small-ascii")
	args.NoBox = p.BoolFlag("no-box")
	args.Bar = p.BoolFlag("bar")
	args.Palette = p.Flag("palette")
	if p.HasValue("box-title") {
		title := p.Flag("box-title")
		args.BoxTitle = &title
	}
	for _, f := range []struct {
		name string
		dst  **int
	}{{"spacing", &args.Spacing}, {"padding", &args.Padding}} {
		if !p.HasValue(f.name) {
			continue
		}
		n, err := ParseIntWithValidation(p.Flag(f.name), f.name)
		if err != nil {
			return CmdHelp, args, &ValidationError{
				Field:   "--" + f.name,
				Value:   p.Flag(f.name),
				Reason:  "must be a non-negative integer",
				Example: fmt.Sprintf("sysview --%s 2", f.name),
			}
		}
		*f.dst = &n
	}

	// A flag form of a command wins over the default.
	cmd := CmdRender
	for _, fc := range flagCommands {
		if p.BoolFlag(fc.flag) {
			cmd = fc.cmd
			break
		}
	}

	if p.PositionalCount() == 0 {
		return cmd, args, nil
	}

	name := strings.ToLower(p.Subcommand())
	args.Raw = p.PositionalFrom(1)

	switch name {
	case "render", "show":
		cmd = CmdRender
	case "doctor", "diag":
		cmd = CmdDoctor
	case "themes", "theme":
		cmd = CmdThemes
	case "readouts", "keys":
		cmd = CmdReadouts
	case "config":
		cmd = CmdConfig
	case "artists":
		cmd = CmdArtists
	case "version":
		cmd = CmdVersion
	case "help":
		cmd = CmdHelp
	default:
		return CmdHelp, args, &ValidationError{
			Field:   "command",
			Value:   p.Subcommand(),
			Reason:  "unknown command",
			Example: "sysview help",
		}
	}

	return cmd, args, nil
}

// =============================================================================
// OVERRIDES
// =============================================================================

// ConfigOverrides returns the readout settings given on the command line
// as a partial config for config.Merge.
func (a Args) ConfigOverrides() *config.Config {
	return &config.Config{
		Theme:               a.Theme,
		Show:                a.Show,
		Hide:                a.Hide,
		LongUptime:          a.LongUptime,
		LongShell:           a.LongShell,
		LongKernel:          a.LongKernel,
		PhysicalCores:       a.PhysicalCores,
		MemoryPercentage:    a.MemoryPercentage,
		DiskSpacePercentage: a.DiskPercentage,
		Disks:               a.Disks,
		Interface:           a.Interface,
	}
}

// ThemeOverrides returns the appearance flags for theme.Build.
func (a Args) ThemeOverrides() theme.Overrides {
	return theme.Overrides{
		KeyColor:             a.KeyColor,
		SeparatorColor:       a.SeparatorColor,
		RandomKeyColor:       a.RandomColor,
		RandomSeparatorColor: a.RandomSepColor,
		NoColor:              a.NoColor,
		BoxTitle:             a.BoxTitle,
		NoBox:                a.NoBox,
		NoASCII:              a.NoASCII,
		SmallASCII:           a.SmallASCII,
		Bar:                  a.Bar,
		Palette:              a.Palette,
		Spacing:              a.Spacing,
		Padding:              a.Padding,
	}
}
