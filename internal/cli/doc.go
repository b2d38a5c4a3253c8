// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and command handlers for
// sysview.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed flags, converted to config and theme overrides
//   - Env: Configuration, collector and output streams shared by handlers
//   - JSONResponse: The envelope every command prints with --json
//
// # Usage
//
//	cmd, args, err := cli.Parse()
//	if err != nil {
//	    cli.HandleErrorAndExit(err, false)
//	}
//	env := cli.NewEnv(cfg, path)
//	if err := cli.Run(ctx, cmd, env, args); err != nil {
//	    cli.HandleErrorAndExit(err, args.JSON)
//	}
//
// # Commands
//
//   - render (default): Draw the panel below the cursor
//   - doctor: Probe every readout and report failures
//   - themes: List themes
//   - readouts: List readout keys
//   - config: Print the effective configuration
//   - artists: Credit the ascii art authors
//   - version, help
//
// # Exit Codes
//
//   - 0: Success
//   - 1: General error
//   - 2: Usage error (bad flag or command)
//   - 3: Configuration or theme error
package cli
