// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"log"
	"os"

	"codeberg.org/noambuilds/site/internal/config"
	"codeberg.org/noambuilds/site/internal/server"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:   "app",
		Usage:  "NoamBuilds portfolio site and waitlist",
		Flags:  append([]cli.Flag{config.ConfigFlag()}, config.Flags()...),
		Action: server.Run,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the web server (default)",
				Action: server.Run,
			},
			migrateCommand(),
			waitlistCommand(),
		},
	}
}
