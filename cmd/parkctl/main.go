package main

import (
	"Revamp/pkg/apiclient"
	"Revamp/pkg/log"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "parkctl",
		Usage: "revAMP parking zones and favorites",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api-url",
				Usage:   "revAMP API base url",
				Value:   "http://localhost:8000",
				EnvVars: []string{"REVAMP_API_URL"},
			},
			&cli.StringFlag{
				Name:    "token-file",
				Usage:   "where the access token is kept",
				EnvVars: []string{"REVAMP_TOKEN_FILE"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "API request timeout",
				Value:   apiclient.DefaultTimeout,
				EnvVars: []string{"REVAMP_API_TIMEOUT"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "verbose logs on stderr",
			},
		},
		Before: func(ctx *cli.Context) error {
			if ctx.Bool("debug") {
				log.SetLevel("debug")
			} else {
				log.SetLevel("warn")
			}
			return nil
		},
		Commands: []*cli.Command{
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			favoritesCommand(),
			zonesCommand(),
		},
	}
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
