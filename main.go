// sysview - system information, drawn beside your prompt.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/jeranaias/sysview/internal/cli"
	"github.com/jeranaias/sysview/internal/config"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate

	// Diagnostics stay silent unless asked for.
	log.SetOutput(io.Discard)
	log.SetFlags(log.Ltime | log.Lmicroseconds)
	log.SetPrefix("sysview: ")
}

func main() {
	// Parse CLI arguments
	cmd, args, err := cli.Parse()
	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}
	if args.Verbose || os.Getenv("SYSVIEW_DEBUG") == "1" {
		log.SetOutput(os.Stderr)
	}

	// Help, version and artists work without a readable configuration.
	if cmd == cli.CmdHelp || cmd == cli.CmdVersion || cmd == cli.CmdArtists {
		env := &cli.Env{Config: config.Default(), Stdout: os.Stdout, Stderr: os.Stderr}
		cli.HandleErrorAndExit(cli.Run(context.Background(), cmd, env, args), args.JSON)
		return
	}

	cfg, path, err := loadConfig(args)
	if err != nil {
		cli.HandleErrorAndExit(err, args.JSON)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := cli.NewEnv(cfg, path)
	if err := cli.Run(ctx, cmd, env, args); err != nil {
		stop()
		cli.HandleErrorAndExit(err, args.JSON)
	}
}

// loadConfig loads the configuration file, applies the command-line
// overrides and validates the result. The returned path is empty when no
// file was read.
func loadConfig(args cli.Args) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if args.ConfigPath != "" {
		path = args.ConfigPath
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
		if p, perr := config.ConfigPathTOML(); perr == nil {
			if _, serr := os.Stat(p); serr == nil {
				path = p
			}
		}
	}
	if err != nil {
		return nil, "", cli.NewCommandError("config", "load", "could not load configuration", err)
	}

	cfg.Merge(args.ConfigOverrides())
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}
