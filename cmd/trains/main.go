package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/trains/pkg/api"
	"github.com/travigo/trains/pkg/api/routes"
	"github.com/travigo/trains/pkg/config"
	"github.com/travigo/trains/pkg/grpcapi"
	"github.com/travigo/trains/pkg/planner"
	"github.com/travigo/trains/pkg/stations"
	"github.com/urfave/cli/v2"
)

var version = "v0.1"

func main() {
	// Reports go to stdout so logs stay on stderr
	if os.Getenv("TRAINS_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		log.Logger = log.Output(os.Stderr)
	}

	if os.Getenv("TRAINS_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	routes.Version = version
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	app := &cli.App{
		Name:        "trains",
		Usage:       "List the trains between two stations and the stops they make",
		Description: "Single binary for the trains planner - runs the CLI, web API and gRPC service",
		Version:     version,
		ArgsUsage:   "<from> <to>",

		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "debug logging and a dump of the enriched journey",
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file",
				EnvVars: []string{"TRAINS_CONFIG"},
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				log.Logger = log.Logger.Level(zerolog.DebugLevel)
			}

			return nil
		},
		Action: printJourney,

		Commands: []*cli.Command{
			api.RegisterCLI(),
			grpcapi.RegisterCLI(),
			stations.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}

func printJourney(c *cli.Context) error {
	if c.NArg() != 2 {
		cli.ShowAppHelp(c)
		return cli.Exit("expected <from> and <to> station codes", 1)
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	journeyPlanner, _, err := planner.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	report, err := journeyPlanner.PlanJourney(c.Context, c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return err
	}

	if c.Bool("verbose") {
		pretty.Fprintf(os.Stderr, "%# v\n", report.Journey)
	}

	fmt.Print(report.Text)

	return nil
}
