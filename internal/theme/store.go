// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrThemeNotFound is returned by Resolve when no built-in or custom theme
// carries the requested name.
var ErrThemeNotFound = errors.New("theme not found")

// Entry describes a theme available to Resolve.
type Entry struct {
	Name    string
	Path    string // empty for built-in themes
	Builtin bool
}

// LoadFile decodes the theme file at path. The theme is named after the
// file without its extension.
func LoadFile(path string) (File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return File{}, fmt.Errorf("failed to decode theme %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("THEME_UNKNOWN_KEY | path=%s key=%s", path, key.String())
	}
	f.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f.Path = path

	if f.CustomASCII.Path != "" && !filepath.IsAbs(f.CustomASCII.Path) {
		f.CustomASCII.Path = filepath.Join(filepath.Dir(path), f.CustomASCII.Path)
	}
	return f, nil
}

// Resolve finds the theme called name. Custom themes in dirs take
// precedence over built-ins, and earlier dirs over later ones. Matching is
// case-insensitive.
func Resolve(name string, dirs []string) (File, error) {
	if name == "" {
		name = DefaultName
	}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
				continue
			}
			if strings.EqualFold(strings.TrimSuffix(e.Name(), ".toml"), name) {
				return LoadFile(filepath.Join(dir, e.Name()))
			}
		}
	}
	if f, ok := Builtin(name); ok {
		return f, nil
	}
	return File{}, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
}

// ResolveOrDefault behaves like Resolve but falls back to the default
// theme when name is unknown. The returned bool reports the fallback.
func ResolveOrDefault(name string, dirs []string) (File, bool, error) {
	f, err := Resolve(name, dirs)
	if errors.Is(err, ErrThemeNotFound) {
		log.Printf("THEME_FALLBACK | requested=%s using=%s", name, DefaultName)
		f, _ = Builtin(DefaultName)
		return f, true, nil
	}
	return f, false, err
}

// List returns every theme Resolve can find, built-ins first, then custom
// themes sorted by name. A custom theme that shadows a built-in is listed
// once, as custom.
func List(dirs []string) []Entry {
	custom := make(map[string]Entry)
	for _, dir := range dirs {
		paths, err := filepath.Glob(filepath.Join(dir, "*.toml"))
		if err != nil {
			continue
		}
		for _, p := range paths {
			name := strings.TrimSuffix(filepath.Base(p), ".toml")
			key := strings.ToLower(name)
			if _, seen := custom[key]; !seen {
				custom[key] = Entry{Name: name, Path: p}
			}
		}
	}

	var out []Entry
	for _, name := range BuiltinNames() {
		if _, shadowed := custom[strings.ToLower(name)]; shadowed {
			continue
		}
		out = append(out, Entry{Name: name, Builtin: true})
	}
	var rest []Entry
	for _, e := range custom {
		rest = append(rest, e)
	}
	slices.SortFunc(rest, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	return append(out, rest...)
}
