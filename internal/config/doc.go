// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for sysview.
//
// # Configuration Precedence
//
// Settings are resolved from (highest first):
//   - Command-line flags, merged with Config.Merge
//   - Environment variables (SYSVIEW_*)
//   - The config file, $XDG_CONFIG_HOME/sysview/sysview.toml or $SYSVIEW_CONFIG
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	keys := cfg.Keys()
//	opts := cfg.ReadoutOptions()
package config
